package models

// Category groups symbols in the library and the picker UI.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryTransport Category = "transport"
	CategoryFestival  Category = "festival"
	CategoryRoutine   Category = "routine"
	CategoryEmotion   Category = "emotion"
	CategoryAction    Category = "action"
	CategoryObject    Category = "object"
	CategoryPlace     Category = "place"
	CategoryBody      Category = "body"
	CategoryFamily    Category = "family"
	CategoryAnimal    Category = "animal"
	CategoryColor     Category = "color"
	CategoryNumber    Category = "number"
	CategoryWeather   Category = "weather"
)

// MultilingualLabel carries the three display languages for a symbol.
type MultilingualLabel struct {
	English  string `json:"english"`
	Hindi    string `json:"hindi"`
	Regional string `json:"regional"`
}

// Symbol is one pictographic entry in the static library. Symbols are
// immutable after process start.
type Symbol struct {
	ID       string            `json:"id"`
	ImageURL string            `json:"image_url"`
	Labels   MultilingualLabel `json:"labels"`
	Category Category          `json:"category"`
	Tags     []string          `json:"tags"`
}

// Language names a display/speech language choice.
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageHindi    Language = "hindi"
	LanguageRegional Language = "regional"
)

// LanguageSettings is the per-user language preference document kept in
// the local draft store.
type LanguageSettings struct {
	English          bool   `json:"english"`
	Hindi            bool   `json:"hindi"`
	Regional         bool   `json:"regional"`
	RegionalLanguage string `json:"regional_language"`
}
