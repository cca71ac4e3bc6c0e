package ttf

import (
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Usage accumulates the characters drawn with a font, in first-use order.
//
// The zero value is ready to use. A Usage is not safe for concurrent use.
type Usage struct {
	seen  bitset.BitSet
	runes []rune
}

// Add records every character of text.
func (u *Usage) Add(text string) {
	for _, char := range text {
		u.AddRune(char)
	}
}

// AddRune records char. Values outside the Unicode range are ignored.
func (u *Usage) AddRune(char rune) {
	if char < 0 || char > unicode.MaxRune || u.seen.Test(uint(char)) {
		return
	}

	u.seen.Set(uint(char))
	u.runes = append(u.runes, char)
}

// Has reports whether char has been recorded.
func (u *Usage) Has(char rune) bool {
	return char >= 0 && char <= unicode.MaxRune && u.seen.Test(uint(char))
}

func (u *Usage) Len() int {
	return len(u.runes)
}

// Runes returns the recorded characters in first-use order. The slice is
// owned by u.
func (u *Usage) Runes() []rune {
	return u.runes
}

// Subset builds a subset of font holding the recorded characters.
func (u *Usage) Subset(font *Font) (*Subset, error) {
	return font.Subset(u.runes)
}
