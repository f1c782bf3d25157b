package vigenere

import (
	"iter"

	"github.com/verte-zerg/kasiski/internal/language"
)

// Keys yields every string of exactly length characters over the model's
// lower-case alphabet. The sequence is computed on demand, never materialized,
// and regenerates deterministically each time it is ranged over. A length of
// zero or less yields nothing.
func Keys(length int, m *language.Model) iter.Seq[string] {
	letters := m.Letters()
	return func(yield func(string) bool) {
		if length <= 0 {
			return
		}
		buf := make([]rune, length)
		emit(buf, 0, letters, yield)
	}
}

func emit(buf []rune, pos int, letters []rune, yield func(string) bool) bool {
	if pos == len(buf) {
		return yield(string(buf))
	}
	for _, r := range letters {
		buf[pos] = r
		if !emit(buf, pos+1, letters, yield) {
			return false
		}
	}
	return true
}
