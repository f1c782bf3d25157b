// Package caesar implements the Caesar shift cipher and a frequency-analysis
// solver for it.
package caesar

import (
	"strings"

	"github.com/verte-zerg/kasiski/internal/language"
)

// Direction selects which way a shift rotates through the alphabet.
type Direction int

const (
	// Forward rotates by +offset and is used for encryption.
	Forward Direction = iota
	// Backward rotates by -offset, the inverse of Forward for the same offset.
	Backward
)

// Sign returns the rotation sign of the direction.
func (d Direction) Sign() int {
	if d == Backward {
		return -1
	}
	return 1
}

// ShiftRune rotates r by offset within the model's alphabet, preserving case.
// Characters outside the alphabet pass through unchanged.
func ShiftRune(r rune, offset int, dir Direction, m *language.Model) rune {
	idx, upper := m.IndexOf(r)
	if idx < 0 {
		return r
	}
	size := m.Size()
	// Floored modulo so negative rotations wrap into [0, size).
	shifted := (idx + dir.Sign()*offset) % size
	if shifted < 0 {
		shifted += size
	}
	return m.LetterAt(shifted, upper)
}

// ShiftRuneBy rotates r by the offset encoded by key, a lower-case alphabet
// character.
func ShiftRuneBy(r, key rune, dir Direction, m *language.Model) (rune, error) {
	offset, err := m.KeyOffset(key)
	if err != nil {
		return 0, err
	}
	return ShiftRune(r, offset, dir, m), nil
}

// ShiftString applies ShiftRune to every character, preserving length and
// order.
func ShiftString(text string, offset int, dir Direction, m *language.Model) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(ShiftRune(r, offset, dir, m))
	}
	return b.String()
}

// Encrypt shifts text forward by the offset encoded by key.
func Encrypt(text string, key rune, m *language.Model) (string, error) {
	offset, err := m.KeyOffset(key)
	if err != nil {
		return "", err
	}
	return ShiftString(text, offset, Forward, m), nil
}

// Decrypt shifts text backward by the offset encoded by key.
func Decrypt(text string, key rune, m *language.Model) (string, error) {
	offset, err := m.KeyOffset(key)
	if err != nil {
		return "", err
	}
	return ShiftString(text, offset, Backward, m), nil
}
