// Package language defines alphabet and letter-frequency models used by the
// cipher solvers.
package language

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	// ErrUnknownCharacter is returned when a frequency lookup is made for a
	// character outside the model's alphabet.
	ErrUnknownCharacter = errors.New("character not in alphabet")
	// ErrIncompleteFrequencyTable is returned when a model is constructed
	// without a frequency entry for every alphabet character.
	ErrIncompleteFrequencyTable = errors.New("incomplete frequency table")
	// ErrInvalidKeyCharacter is returned when a key character is not a member
	// of the lower-case alphabet.
	ErrInvalidKeyCharacter = errors.New("invalid key character")
)

// Model holds an ordered alphabet and the expected relative frequency of each
// letter. The upper-case variant is derived from the lower-case alphabet; both
// variants count as in-alphabet, frequency lookups fold to lower case. A Model
// is immutable after construction and safe for concurrent reads.
type Model struct {
	name       string
	lower      []rune
	upper      []rune
	freqs      map[rune]float64
	lowerIndex map[rune]int
	upperIndex map[rune]int
}

// New builds a Model from an ordered lower-case alphabet and a letter
// frequency map. The alphabet must contain at least two distinct characters
// and every alphabet character needs a non-negative frequency entry.
func New(name string, alphabet []rune, freqs map[rune]float64) (*Model, error) {
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("alphabet needs at least 2 characters, got %d", len(alphabet))
	}
	m := &Model{
		name:       name,
		lower:      make([]rune, len(alphabet)),
		upper:      make([]rune, len(alphabet)),
		freqs:      make(map[rune]float64, len(alphabet)),
		lowerIndex: make(map[rune]int, len(alphabet)),
		upperIndex: make(map[rune]int, len(alphabet)),
	}
	copy(m.lower, alphabet)
	for i, r := range m.lower {
		if _, ok := m.lowerIndex[r]; ok {
			return nil, fmt.Errorf("duplicate alphabet character %q", r)
		}
		m.lowerIndex[r] = i
		u := unicode.ToUpper(r)
		m.upper[i] = u
		if u != r {
			m.upperIndex[u] = i
		}
		f, ok := freqs[r]
		if !ok {
			return nil, fmt.Errorf("%w: no frequency for %q", ErrIncompleteFrequencyTable, r)
		}
		if f < 0 {
			return nil, fmt.Errorf("negative frequency %v for %q", f, r)
		}
		m.freqs[r] = f
	}
	return m, nil
}

// Name returns the model's language code.
func (m *Model) Name() string {
	return m.name
}

// Size returns the alphabet length.
func (m *Model) Size() int {
	return len(m.lower)
}

// Letters returns the ordered lower-case alphabet.
func (m *Model) Letters() []rune {
	out := make([]rune, len(m.lower))
	copy(out, m.lower)
	return out
}

// Contains reports whether r belongs to the alphabet in either case variant.
func (m *Model) Contains(r rune) bool {
	if _, ok := m.lowerIndex[r]; ok {
		return true
	}
	_, ok := m.upperIndex[r]
	return ok
}

// FrequencyOf returns the expected relative frequency of r, folding upper-case
// input to lower case.
func (m *Model) FrequencyOf(r rune) (float64, error) {
	if i, ok := m.upperIndex[r]; ok {
		r = m.lower[i]
	}
	f, ok := m.freqs[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCharacter, r)
	}
	return f, nil
}

// IndexOf returns the zero-based alphabet index of r and whether r was found
// as an upper-case variant. The second result is false when r is not in the
// alphabet at all; callers should check Contains first or treat -1 as absent.
func (m *Model) IndexOf(r rune) (idx int, upper bool) {
	if i, ok := m.lowerIndex[r]; ok {
		return i, false
	}
	if i, ok := m.upperIndex[r]; ok {
		return i, true
	}
	return -1, false
}

// KeyOffset returns the shift offset encoded by a lower-case key character.
func (m *Model) KeyOffset(r rune) (int, error) {
	i, ok := m.lowerIndex[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKeyCharacter, r)
	}
	return i, nil
}

// LetterAt maps a zero-based alphabet index back to a character in the
// requested case variant. The index must already be reduced modulo Size.
func (m *Model) LetterAt(idx int, upper bool) rune {
	if upper {
		return m.upper[idx]
	}
	return m.lower[idx]
}

// ValidKey reports whether every character of key is a lower-case alphabet
// member, i.e. usable as a Vigenère key.
func (m *Model) ValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if _, ok := m.lowerIndex[r]; !ok {
			return false
		}
	}
	return true
}
