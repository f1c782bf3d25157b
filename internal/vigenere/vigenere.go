// Package vigenere implements the Vigenère cipher, Kasiski-style period
// detection, and solvers that recover the key by frequency analysis or brute
// force.
package vigenere

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/kasiski/internal/caesar"
	"github.com/verte-zerg/kasiski/internal/fitness"
	"github.com/verte-zerg/kasiski/internal/language"
)

// Default repeated-substring lengths scanned by Crack when guessing the key
// length.
const (
	DefaultMinRepeat = 2
	DefaultMaxRepeat = 10
)

func shift(text, key string, dir caesar.Direction, m *language.Model) (string, error) {
	if !m.ValidKey(key) {
		return "", fmt.Errorf("%w: %q", language.ErrInvalidKeyCharacter, key)
	}
	keyRunes := []rune(key)
	var b strings.Builder
	b.Grow(len(text))
	// The key advances on every character, including passthrough ones, so
	// positions line up with plain chunking by key length.
	for i, r := range []rune(text) {
		out, err := caesar.ShiftRuneBy(r, keyRunes[i%len(keyRunes)], dir, m)
		if err != nil {
			return "", err
		}
		b.WriteRune(out)
	}
	return b.String(), nil
}

// Encrypt applies the key cyclically with forward shifts. Characters outside
// the alphabet pass through unchanged.
func Encrypt(plaintext, key string, m *language.Model) (string, error) {
	return shift(plaintext, key, caesar.Forward, m)
}

// Decrypt is the inverse of Encrypt for the same key.
func Decrypt(ciphertext, key string, m *language.Model) (string, error) {
	return shift(ciphertext, key, caesar.Backward, m)
}

// KeyFromPlaintext recovers a key of the given length from aligned ciphertext
// and plaintext, for known-plaintext attacks. The first keyLength character
// pairs must all be alphabet members.
func KeyFromPlaintext(ciphertext, plaintext string, keyLength int, m *language.Model) (string, error) {
	if keyLength <= 0 {
		return "", fmt.Errorf("key length must be positive, got %d", keyLength)
	}
	cipherRunes := []rune(ciphertext)
	plainRunes := []rune(plaintext)
	if len(cipherRunes) < keyLength || len(plainRunes) < keyLength {
		return "", fmt.Errorf("need at least %d aligned characters", keyLength)
	}
	key := make([]rune, keyLength)
	for i := 0; i < keyLength; i++ {
		ci, _ := m.IndexOf(cipherRunes[i])
		pi, _ := m.IndexOf(plainRunes[i])
		if ci < 0 {
			return "", fmt.Errorf("%w: %q", language.ErrUnknownCharacter, cipherRunes[i])
		}
		if pi < 0 {
			return "", fmt.Errorf("%w: %q", language.ErrUnknownCharacter, plainRunes[i])
		}
		offset := (ci - pi) % m.Size()
		if offset < 0 {
			offset += m.Size()
		}
		key[i] = m.LetterAt(offset, false)
	}
	return string(key), nil
}

// transpose regroups text by position modulo keyLength: substream j collects
// the characters at positions j, j+keyLength, j+2*keyLength, ... Each
// substream of a Vigenère ciphertext was encrypted under one fixed Caesar
// offset.
func transpose(text string, keyLength int) []string {
	streams := make([]strings.Builder, keyLength)
	for i, r := range []rune(text) {
		streams[i%keyLength].WriteRune(r)
	}
	out := make([]string, keyLength)
	for i := range streams {
		out[i] = streams[i].String()
	}
	return out
}

// interleave inverts transpose. The last substreams may be one character
// shorter when the original length is not a multiple of the stream count.
func interleave(streams []string) string {
	runes := make([][]rune, len(streams))
	total := 0
	for i, s := range streams {
		runes[i] = []rune(s)
		total += len(runes[i])
	}
	var b strings.Builder
	b.Grow(total)
	for pos := 0; ; pos++ {
		wrote := false
		for _, stream := range runes {
			if pos < len(stream) {
				b.WriteRune(stream[pos])
				wrote = true
			}
		}
		if !wrote {
			return b.String()
		}
	}
}

// CrackWithLength recovers the key and plaintext for a known key length by
// running the Caesar solver on each transposed substream independently.
func CrackWithLength(ciphertext string, keyLength int, m *language.Model) (string, string, error) {
	if keyLength <= 0 {
		return "", "", fmt.Errorf("key length must be positive, got %d", keyLength)
	}
	streams := transpose(ciphertext, keyLength)
	key := make([]rune, 0, keyLength)
	decrypted := make([]string, 0, keyLength)
	for _, stream := range streams {
		keyChar, plain, err := caesar.Crack(stream, m)
		if err != nil {
			return "", "", err
		}
		key = append(key, keyChar)
		decrypted = append(decrypted, plain)
	}
	return string(key), interleave(decrypted), nil
}

// Crack guesses the key length from repeated substrings of every length in
// [minRepeat, maxRepeat] and picks the frequency-analysis result whose
// plaintext best fits the model. ok is false when no substring length
// produced a repeat, i.e. there is nothing to base a guess on.
func Crack(ciphertext string, m *language.Model, minRepeat, maxRepeat int) (key, plaintext string, ok bool, err error) {
	if minRepeat <= 0 {
		minRepeat = DefaultMinRepeat
	}
	if maxRepeat < minRepeat {
		maxRepeat = DefaultMaxRepeat
	}
	bestScore := 0.0
	tried := make(map[int]struct{})
	for length := minRepeat; length <= maxRepeat; length++ {
		keyLength, found := GuessKeyLength(ciphertext, length)
		if !found {
			continue
		}
		if _, dup := tried[keyLength]; dup {
			continue
		}
		tried[keyLength] = struct{}{}
		candKey, candPlain, cerr := CrackWithLength(ciphertext, keyLength, m)
		if cerr != nil {
			return "", "", false, cerr
		}
		score, serr := fitness.ChiSquared(candPlain, m)
		if serr != nil {
			return "", "", false, serr
		}
		if !ok || score < bestScore {
			key, plaintext, bestScore, ok = candKey, candPlain, score, true
		}
	}
	return key, plaintext, ok, nil
}
