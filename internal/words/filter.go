package words

import "unicode"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterLetters keeps words made only of letters.
func FilterLetters() FilterFunc {
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	}
}
