package symbols

import "chitraboard/internal/models"

// library is the static symbol catalog. Image URLs point at the hosted
// picture set; labels carry English, Hindi and Tamil text.
var library = []models.Symbol{
	{
		ID:       "food-roti",
		ImageURL: "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=400",
		Labels:   models.MultilingualLabel{English: "Roti", Hindi: "रोटी", Regional: "ரொட்டி"},
		Category: models.CategoryFood,
		Tags:     []string{"bread", "meal", "dinner", "lunch"},
	},
	{
		ID:       "food-dosa",
		ImageURL: "https://images.unsplash.com/photo-1630383249896-424e482df921?w=400",
		Labels:   models.MultilingualLabel{English: "Dosa", Hindi: "डोसा", Regional: "தோசை"},
		Category: models.CategoryFood,
		Tags:     []string{"breakfast", "south indian", "crispy"},
	},
	{
		ID:       "food-rice",
		ImageURL: "https://images.unsplash.com/photo-1516684732162-798a0062be99?w=400",
		Labels:   models.MultilingualLabel{English: "Rice", Hindi: "चावल", Regional: "அரிசி"},
		Category: models.CategoryFood,
		Tags:     []string{"meal", "staple", "lunch", "dinner"},
	},
	{
		ID:       "food-samosa",
		ImageURL: "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400",
		Labels:   models.MultilingualLabel{English: "Samosa", Hindi: "समोसा", Regional: "சமோசா"},
		Category: models.CategoryFood,
		Tags:     []string{"snack", "fried", "tea time"},
	},
	{
		ID:       "food-chai",
		ImageURL: "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=400",
		Labels:   models.MultilingualLabel{English: "Chai", Hindi: "चाय", Regional: "சாய்"},
		Category: models.CategoryFood,
		Tags:     []string{"tea", "drink", "beverage", "morning"},
	},
	{
		ID:       "food-ladoo",
		ImageURL: "https://images.unsplash.com/photo-1599599810769-bcde5a160d32?w=400",
		Labels:   models.MultilingualLabel{English: "Ladoo", Hindi: "लड्डू", Regional: "லட்டு"},
		Category: models.CategoryFood,
		Tags:     []string{"sweet", "dessert", "festival"},
	},
	{
		ID:       "food-thali",
		ImageURL: "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=400",
		Labels:   models.MultilingualLabel{English: "Thali", Hindi: "थाली", Regional: "தாலி"},
		Category: models.CategoryFood,
		Tags:     []string{"meal", "complete", "lunch", "dinner"},
	},
	{
		ID:       "food-paratha",
		ImageURL: "https://images.unsplash.com/photo-1626132647523-66f5bf380027?w=400",
		Labels:   models.MultilingualLabel{English: "Paratha", Hindi: "पराठा", Regional: "பராத்தா"},
		Category: models.CategoryFood,
		Tags:     []string{"bread", "breakfast", "stuffed"},
	},
	{
		ID:       "transport-rickshaw",
		ImageURL: "https://images.unsplash.com/photo-1605641379126-7eb9c0e4c7b5?w=400",
		Labels:   models.MultilingualLabel{English: "Auto Rickshaw", Hindi: "ऑटो रिक्शा", Regional: "ஆட்டோ"},
		Category: models.CategoryTransport,
		Tags:     []string{"vehicle", "three wheeler", "ride"},
	},
	{
		ID:       "transport-bus",
		ImageURL: "https://images.unsplash.com/photo-1544620347-c4fd4a3d5957?w=400",
		Labels:   models.MultilingualLabel{English: "Bus", Hindi: "बस", Regional: "பேருந்து"},
		Category: models.CategoryTransport,
		Tags:     []string{"vehicle", "public transport", "travel"},
	},
	{
		ID:       "transport-train",
		ImageURL: "https://images.unsplash.com/photo-1474487548417-781cb71495f3?w=400",
		Labels:   models.MultilingualLabel{English: "Train", Hindi: "रेलगाड़ी", Regional: "ரயில்"},
		Category: models.CategoryTransport,
		Tags:     []string{"vehicle", "railway", "travel", "long distance"},
	},
	{
		ID:       "transport-bicycle",
		ImageURL: "https://images.unsplash.com/photo-1485965120184-e220f721d03e?w=400",
		Labels:   models.MultilingualLabel{English: "Bicycle", Hindi: "साइकिल", Regional: "சைக்கிள்"},
		Category: models.CategoryTransport,
		Tags:     []string{"vehicle", "cycle", "ride", "exercise"},
	},
	{
		ID:       "transport-school-bus",
		ImageURL: "https://images.unsplash.com/photo-1570125909232-eb263c188f7e?w=400",
		Labels:   models.MultilingualLabel{English: "School Bus", Hindi: "स्कूल बस", Regional: "பள்ளி பேருந்து"},
		Category: models.CategoryTransport,
		Tags:     []string{"vehicle", "school", "children", "education"},
	},
	{
		ID:       "festival-diwali",
		ImageURL: "https://images.unsplash.com/photo-1605811625530-d3a3c0d3b66e?w=400",
		Labels:   models.MultilingualLabel{English: "Diwali", Hindi: "दिवाली", Regional: "தீபாவளி"},
		Category: models.CategoryFestival,
		Tags:     []string{"celebration", "lights", "diya", "festival"},
	},
	{
		ID:       "festival-holi",
		ImageURL: "https://images.unsplash.com/photo-1583241800698-c318e4b8e5c7?w=400",
		Labels:   models.MultilingualLabel{English: "Holi", Hindi: "होली", Regional: "ஹோலி"},
		Category: models.CategoryFestival,
		Tags:     []string{"celebration", "colors", "festival", "spring"},
	},
	{
		ID:       "festival-eid",
		ImageURL: "https://images.unsplash.com/photo-1591604021695-0c69b7c05981?w=400",
		Labels:   models.MultilingualLabel{English: "Eid", Hindi: "ईद", Regional: "ஈத்"},
		Category: models.CategoryFestival,
		Tags:     []string{"celebration", "festival", "moon", "prayer"},
	},
	{
		ID:       "routine-tiffin",
		ImageURL: "https://images.unsplash.com/photo-1562158147-f8c60d0b3f9f?w=400",
		Labels:   models.MultilingualLabel{English: "Tiffin Box", Hindi: "टिफिन", Regional: "டிஃபின்"},
		Category: models.CategoryRoutine,
		Tags:     []string{"lunch", "school", "food", "container"},
	},
	{
		ID:       "routine-uniform",
		ImageURL: "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?w=400",
		Labels:   models.MultilingualLabel{English: "School Uniform", Hindi: "स्कूल यूनिफॉर्म", Regional: "பள்ளி சீருடை"},
		Category: models.CategoryRoutine,
		Tags:     []string{"school", "clothes", "dress", "education"},
	},
	{
		ID:       "routine-prayer",
		ImageURL: "https://images.unsplash.com/photo-1591604021695-0c69b7c05981?w=400",
		Labels:   models.MultilingualLabel{English: "Prayer", Hindi: "प्रार्थना", Regional: "பிரார்த்தனை"},
		Category: models.CategoryRoutine,
		Tags:     []string{"namaste", "worship", "morning", "evening"},
	},
	{
		ID:       "routine-wake-up",
		ImageURL: "https://images.unsplash.com/photo-1495364141860-b0d03eccd065?w=400",
		Labels:   models.MultilingualLabel{English: "Wake Up", Hindi: "जागना", Regional: "எழுந்திரு"},
		Category: models.CategoryRoutine,
		Tags:     []string{"morning", "alarm", "start", "day"},
	},
	{
		ID:       "routine-brush",
		ImageURL: "https://images.unsplash.com/photo-1607613009820-a29f7bb81c04?w=400",
		Labels:   models.MultilingualLabel{English: "Brush Teeth", Hindi: "दांत साफ करना", Regional: "பல் துலக்கு"},
		Category: models.CategoryRoutine,
		Tags:     []string{"hygiene", "morning", "clean", "toothbrush"},
	},
	{
		ID:       "emotion-happy",
		ImageURL: "https://images.unsplash.com/photo-1554244933-d876deb6b2ff?w=400",
		Labels:   models.MultilingualLabel{English: "Happy", Hindi: "खुश", Regional: "மகிழ்ச்சி"},
		Category: models.CategoryEmotion,
		Tags:     []string{"smile", "joy", "feeling", "positive"},
	},
	{
		ID:       "emotion-sad",
		ImageURL: "https://images.unsplash.com/photo-1516733968668-dbdce39c4651?w=400",
		Labels:   models.MultilingualLabel{English: "Sad", Hindi: "उदास", Regional: "சோகம்"},
		Category: models.CategoryEmotion,
		Tags:     []string{"cry", "unhappy", "feeling", "tears"},
	},
	{
		ID:       "emotion-angry",
		ImageURL: "https://images.unsplash.com/photo-1621252179027-94459d278660?w=400",
		Labels:   models.MultilingualLabel{English: "Angry", Hindi: "गुस्सा", Regional: "கோபம்"},
		Category: models.CategoryEmotion,
		Tags:     []string{"mad", "upset", "feeling", "frustrated"},
	},
	{
		ID:       "action-eat",
		ImageURL: "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=400",
		Labels:   models.MultilingualLabel{English: "Eat", Hindi: "खाना", Regional: "சாப்பிடு"},
		Category: models.CategoryAction,
		Tags:     []string{"food", "meal", "hungry", "dining"},
	},
	{
		ID:       "action-drink",
		ImageURL: "https://images.unsplash.com/photo-1548839140-29a749e1cf4d?w=400",
		Labels:   models.MultilingualLabel{English: "Drink", Hindi: "पीना", Regional: "குடி"},
		Category: models.CategoryAction,
		Tags:     []string{"water", "thirsty", "beverage", "glass"},
	},
	{
		ID:       "action-sleep",
		ImageURL: "https://images.unsplash.com/photo-1541781774459-bb2af2f05b55?w=400",
		Labels:   models.MultilingualLabel{English: "Sleep", Hindi: "सोना", Regional: "தூங்கு"},
		Category: models.CategoryAction,
		Tags:     []string{"rest", "bed", "night", "tired"},
	},
	{
		ID:       "place-home",
		ImageURL: "https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=400",
		Labels:   models.MultilingualLabel{English: "Home", Hindi: "घर", Regional: "வீடு"},
		Category: models.CategoryPlace,
		Tags:     []string{"house", "family", "live", "building"},
	},
	{
		ID:       "place-school",
		ImageURL: "https://images.unsplash.com/photo-1580582932707-520aed937b7b?w=400",
		Labels:   models.MultilingualLabel{English: "School", Hindi: "स्कूल", Regional: "பள்ளி"},
		Category: models.CategoryPlace,
		Tags:     []string{"education", "learn", "study", "building"},
	},
	{
		ID:       "place-park",
		ImageURL: "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400",
		Labels:   models.MultilingualLabel{English: "Park", Hindi: "पार्क", Regional: "பூங்கா"},
		Category: models.CategoryPlace,
		Tags:     []string{"playground", "play", "outdoor", "fun"},
	},
	{
		ID:       "place-hospital",
		ImageURL: "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?w=400",
		Labels:   models.MultilingualLabel{English: "Hospital", Hindi: "अस्पताल", Regional: "மருத்துவமனை"},
		Category: models.CategoryPlace,
		Tags:     []string{"doctor", "medical", "health", "building"},
	},
	{
		ID:       "body-hand",
		ImageURL: "https://images.unsplash.com/photo-1577192132196-9d279ab0b0f3?w=400",
		Labels:   models.MultilingualLabel{English: "Hand", Hindi: "हाथ", Regional: "கை"},
		Category: models.CategoryBody,
		Tags:     []string{"body", "fingers", "touch", "wave"},
	},
	{
		ID:       "body-eyes",
		ImageURL: "https://images.unsplash.com/photo-1559757175-5700dde675bc?w=400",
		Labels:   models.MultilingualLabel{English: "Eyes", Hindi: "आंखें", Regional: "கண்கள்"},
		Category: models.CategoryBody,
		Tags:     []string{"body", "see", "look", "face"},
	},
	{
		ID:       "family-mother",
		ImageURL: "https://images.unsplash.com/photo-1543342384-1f1350e27861?w=400",
		Labels:   models.MultilingualLabel{English: "Mother", Hindi: "माँ", Regional: "அம்மா"},
		Category: models.CategoryFamily,
		Tags:     []string{"family", "parent", "amma", "maa"},
	},
	{
		ID:       "family-father",
		ImageURL: "https://images.unsplash.com/photo-1560328055-e938bb2ed50a?w=400",
		Labels:   models.MultilingualLabel{English: "Father", Hindi: "पिता", Regional: "அப்பா"},
		Category: models.CategoryFamily,
		Tags:     []string{"family", "parent", "appa", "papa"},
	},
	{
		ID:       "animal-cow",
		ImageURL: "https://images.unsplash.com/photo-1570042225831-d98fa7577f1e?w=400",
		Labels:   models.MultilingualLabel{English: "Cow", Hindi: "गाय", Regional: "பசு"},
		Category: models.CategoryAnimal,
		Tags:     []string{"animal", "milk", "farm"},
	},
	{
		ID:       "animal-elephant",
		ImageURL: "https://images.unsplash.com/photo-1557050543-4d5f4e07ef46?w=400",
		Labels:   models.MultilingualLabel{English: "Elephant", Hindi: "हाथी", Regional: "யானை"},
		Category: models.CategoryAnimal,
		Tags:     []string{"animal", "big", "trunk", "temple"},
	},
	{
		ID:       "animal-peacock",
		ImageURL: "https://images.unsplash.com/photo-1512990414788-d97cb4a25db3?w=400",
		Labels:   models.MultilingualLabel{English: "Peacock", Hindi: "मोर", Regional: "மயில்"},
		Category: models.CategoryAnimal,
		Tags:     []string{"animal", "bird", "feathers", "dance"},
	},
	{
		ID:       "color-red",
		ImageURL: "https://images.unsplash.com/photo-1518621736915-f3b1c41bfd00?w=400",
		Labels:   models.MultilingualLabel{English: "Red", Hindi: "लाल", Regional: "சிவப்பு"},
		Category: models.CategoryColor,
		Tags:     []string{"color", "bright"},
	},
	{
		ID:       "color-blue",
		ImageURL: "https://images.unsplash.com/photo-1528459801416-a9e53bbf4e17?w=400",
		Labels:   models.MultilingualLabel{English: "Blue", Hindi: "नीला", Regional: "நீலம்"},
		Category: models.CategoryColor,
		Tags:     []string{"color", "sky", "water"},
	},
	{
		ID:       "number-one",
		ImageURL: "https://images.unsplash.com/photo-1509228468518-180dd4864904?w=400",
		Labels:   models.MultilingualLabel{English: "One", Hindi: "एक", Regional: "ஒன்று"},
		Category: models.CategoryNumber,
		Tags:     []string{"number", "count", "first"},
	},
	{
		ID:       "number-two",
		ImageURL: "https://images.unsplash.com/photo-1518133910546-b6c2fb7d79e3?w=400",
		Labels:   models.MultilingualLabel{English: "Two", Hindi: "दो", Regional: "இரண்டு"},
		Category: models.CategoryNumber,
		Tags:     []string{"number", "count", "pair"},
	},
	{
		ID:       "weather-sun",
		ImageURL: "https://images.unsplash.com/photo-1506864908255-501d7e9b23e9?w=400",
		Labels:   models.MultilingualLabel{English: "Sunny", Hindi: "धूप", Regional: "வெயில்"},
		Category: models.CategoryWeather,
		Tags:     []string{"weather", "hot", "sun", "bright"},
	},
	{
		ID:       "weather-rain",
		ImageURL: "https://images.unsplash.com/photo-1515694346937-94d85e41e6f0?w=400",
		Labels:   models.MultilingualLabel{English: "Rain", Hindi: "बारिश", Regional: "மழை"},
		Category: models.CategoryWeather,
		Tags:     []string{"weather", "monsoon", "umbrella", "wet"},
	},
}
