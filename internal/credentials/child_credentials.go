// Package credentials generates login credentials for child accounts
// created by a therapist. Usernames are friendly word pairs a child can
// recognize; passwords are short enough to type on a tablet keyboard.
package credentials

import (
	"crypto/rand"
	"math/big"
)

var adjectives = []string{
	"happy", "sunny", "brave", "bright", "cool", "swift", "clever", "jolly",
	"gentle", "kind", "merry", "quick", "shiny", "calm", "cozy", "bouncy",
	"little", "mighty", "quiet", "smiley", "sparkly", "tiny", "warm", "zippy",
}

var nouns = []string{
	"peacock", "elephant", "tiger", "parrot", "lotus", "mango", "banyan",
	"sparrow", "rabbit", "deer", "dolphin", "butterfly", "firefly", "koel",
	"squirrel", "turtle", "kitten", "puppy", "star", "moon", "cloud", "river",
	"kite", "drum",
}

// GenerateChildUsername returns a random "adjective-noun" username.
func GenerateChildUsername() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}
	return adjective + "-" + noun, nil
}

// GenerateChildPassword returns a random 6-character password of
// lowercase letters and digits, avoiding ambiguous characters.
func GenerateChildPassword() (string, error) {
	const chars = "abcdefghjkmnpqrstuvwxyz23456789"
	password := make([]byte, 6)
	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		password[i] = chars[num.Int64()]
	}
	return string(password), nil
}

func randomElement(slice []string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
