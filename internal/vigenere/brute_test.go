package vigenere

import (
	"iter"
	"testing"

	"github.com/verte-zerg/kasiski/internal/language"
)

func sliceKeys(keys []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

func TestScanFindsPlantedKey(t *testing.T) {
	m := language.English()
	ciphertext, err := Encrypt(sampleProse, "lemon", m)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	keys := sliceKeys([]string{"apple", "grape", "lemon", "mango", "olive"})

	bestKey := ""
	bestScore := 0.0
	found := false
	for cand, err := range Scan(ciphertext, keys, m) {
		if err != nil {
			t.Fatalf("Scan failed for key %q: %v", cand.Key, err)
		}
		if !found || cand.Score < bestScore {
			bestKey, bestScore, found = cand.Key, cand.Score, true
		}
	}
	if bestKey != "lemon" {
		t.Fatalf("expected %q to win, got %q", "lemon", bestKey)
	}
}

func TestScanIsLazy(t *testing.T) {
	m := language.English()
	pulled := 0
	counting := func(yield func(string) bool) {
		for key := range Keys(6, m) {
			pulled++
			if !yield(key) {
				return
			}
		}
	}

	for cand, err := range Scan("lxfopvefrnhr", counting, m) {
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if cand.Key == "" {
			t.Fatalf("expected a candidate key")
		}
		break
	}
	if pulled != 1 {
		t.Fatalf("expected exactly one key pulled for one result, got %d", pulled)
	}
}

func TestScanReportsInvalidKeys(t *testing.T) {
	m := language.English()
	keys := sliceKeys([]string{"BAD!", "lemon"})

	var errs, oks int
	for _, err := range Scan("lxfopvefrnhr", keys, m) {
		if err != nil {
			errs++
			continue
		}
		oks++
	}
	if errs != 1 || oks != 1 {
		t.Fatalf("expected 1 error and 1 result, got %d and %d", errs, oks)
	}
}
