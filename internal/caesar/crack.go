package caesar

import (
	"fmt"

	"github.com/verte-zerg/kasiski/internal/fitness"
	"github.com/verte-zerg/kasiski/internal/language"
)

// Score holds one candidate decryption produced while cracking.
type Score struct {
	Key       rune
	Plaintext string
	Value     float64
}

// CrackScores decrypts the ciphertext under every possible key and returns
// the chi-squared score of each candidate, in alphabet order.
func CrackScores(ciphertext string, m *language.Model) ([]Score, error) {
	scores := make([]Score, 0, m.Size())
	for _, key := range m.Letters() {
		plaintext, err := Decrypt(ciphertext, key, m)
		if err != nil {
			return nil, err
		}
		value, err := fitness.ChiSquared(plaintext, m)
		if err != nil {
			return nil, fmt.Errorf("scoring key %q: %w", key, err)
		}
		scores = append(scores, Score{Key: key, Plaintext: plaintext, Value: value})
	}
	return scores, nil
}

// Crack tries every alphabet character as the key and returns the candidate
// whose plaintext best fits the model. Ties keep the first key in alphabet
// order; which of several equally scored keys wins is not part of the
// contract.
func Crack(ciphertext string, m *language.Model) (rune, string, error) {
	scores, err := CrackScores(ciphertext, m)
	if err != nil {
		return 0, "", err
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Value < best.Value {
			best = s
		}
	}
	return best.Key, best.Plaintext, nil
}
