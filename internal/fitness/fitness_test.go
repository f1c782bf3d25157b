package fitness

import (
	"errors"
	"testing"

	"github.com/verte-zerg/kasiski/internal/language"
)

func TestChiSquaredNoAlphabetChars(t *testing.T) {
	m := language.English()
	score, err := ChiSquared("123 !?.", m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %v", score)
	}
}

func TestChiSquaredExactMatch(t *testing.T) {
	m, err := language.New("toy", []rune("ab"), map[rune]float64{'a': 0.5, 'b': 0.5})
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	// Observed counts equal expected counts, every term is zero.
	score, err := ChiSquared("abba", m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %v", score)
	}
}

func TestChiSquaredFoldsCase(t *testing.T) {
	m := language.English()
	lower, err := ChiSquared("hello world", m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	mixed, err := ChiSquared("HeLLo WoRLD", m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	if lower != mixed {
		t.Fatalf("expected case-folded scores to match, got %v and %v", lower, mixed)
	}
}

func TestChiSquaredZeroExpectedFrequency(t *testing.T) {
	m, err := language.New("toy", []rune("ab"), map[rune]float64{'a': 1.0, 'b': 0.0})
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	if _, err := ChiSquared("aa", m); !errors.Is(err, ErrZeroExpectedFrequency) {
		t.Fatalf("expected ErrZeroExpectedFrequency, got %v", err)
	}
}

func TestChiSquaredPrefersEnglish(t *testing.T) {
	m := language.English()
	english := "it was the best of times it was the worst of times it was the age of wisdom"
	scrambled := "zqxj kvvq zzpw qqxj zkwv jxqz wqpk zzqx jkvw pqzx kjzz wqxv pkqz jxwq zzkv"
	englishScore, err := ChiSquared(english, m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	scrambledScore, err := ChiSquared(scrambled, m)
	if err != nil {
		t.Fatalf("ChiSquared failed: %v", err)
	}
	if englishScore >= scrambledScore {
		t.Fatalf("expected english (%v) to score below scrambled (%v)", englishScore, scrambledScore)
	}
}
