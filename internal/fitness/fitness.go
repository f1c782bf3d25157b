// Package fitness scores how closely a text's letter distribution matches a
// language model.
package fitness

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/kasiski/internal/language"
)

// ErrZeroExpectedFrequency is returned when a model assigns zero frequency to
// a letter observed in the text, which would divide by zero.
var ErrZeroExpectedFrequency = errors.New("zero expected frequency")

// ChiSquared returns the chi-squared distance between the text's observed
// letter counts and the counts the model predicts. Counting folds case and
// ignores characters outside the alphabet. Lower is a better fit; a text with
// no alphabet characters scores 0.
func ChiSquared(text string, m *language.Model) (float64, error) {
	counts := make(map[rune]int, m.Size())
	total := 0
	for _, r := range text {
		idx, _ := m.IndexOf(r)
		if idx < 0 {
			continue
		}
		counts[m.LetterAt(idx, false)]++
		total++
	}
	if total == 0 {
		return 0, nil
	}

	var score float64
	for _, letter := range m.Letters() {
		freq, err := m.FrequencyOf(letter)
		if err != nil {
			return 0, err
		}
		expected := freq * float64(total)
		if expected == 0 {
			return 0, fmt.Errorf("%w: %q", ErrZeroExpectedFrequency, letter)
		}
		observed := float64(counts[letter])
		diff := observed - expected
		score += diff * diff / expected
	}
	return score, nil
}
