package vigenere

import (
	"iter"

	"github.com/verte-zerg/kasiski/internal/fitness"
	"github.com/verte-zerg/kasiski/internal/language"
	"github.com/verte-zerg/kasiski/internal/model"
)

// Scan decrypts the ciphertext under each candidate key in sequence order and
// yields the scored result. One key is pulled and evaluated per element, so a
// consumer that stops early never pays for the rest of the key space. The
// scan itself tracks no minimum; callers filter as they consume.
func Scan(ciphertext string, keys iter.Seq[string], m *language.Model) iter.Seq2[model.Candidate, error] {
	return func(yield func(model.Candidate, error) bool) {
		for key := range keys {
			plaintext, err := Decrypt(ciphertext, key, m)
			if err != nil {
				if !yield(model.Candidate{Key: key}, err) {
					return
				}
				continue
			}
			score, err := fitness.ChiSquared(plaintext, m)
			if err != nil {
				if !yield(model.Candidate{Key: key, Plaintext: plaintext}, err) {
					return
				}
				continue
			}
			if !yield(model.Candidate{Key: key, Plaintext: plaintext, Score: score}, nil) {
				return
			}
		}
	}
}
