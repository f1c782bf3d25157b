package vigenere

import (
	"testing"

	"github.com/verte-zerg/kasiski/internal/language"
)

func toyModel(t *testing.T) *language.Model {
	t.Helper()
	m, err := language.New("toy", []rune("ab"), map[rune]float64{'a': 0.5, 'b': 0.5})
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	return m
}

func TestKeysEnumeratesFullSpace(t *testing.T) {
	m := toyModel(t)
	seen := make(map[string]struct{})
	for key := range Keys(3, m) {
		if len(key) != 3 {
			t.Fatalf("expected length 3, got %q", key)
		}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 keys, got %d", len(seen))
	}
}

func TestKeysRestartable(t *testing.T) {
	m := toyModel(t)
	first := func() string {
		for key := range Keys(2, m) {
			return key
		}
		return ""
	}
	a, b := first(), first()
	if a == "" || a != b {
		t.Fatalf("expected deterministic regeneration, got %q and %q", a, b)
	}
}

func TestKeysEarlyStop(t *testing.T) {
	m := language.English()
	// Length 6 is 26^6 keys; consuming one element must not enumerate more.
	count := 0
	for range Keys(6, m) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected a single pulled key, got %d", count)
	}
}

func TestKeysZeroLength(t *testing.T) {
	m := toyModel(t)
	for key := range Keys(0, m) {
		t.Fatalf("expected no keys, got %q", key)
	}
}
