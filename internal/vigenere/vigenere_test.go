package vigenere

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/kasiski/internal/language"
)

const sampleProse = "it is a truth universally acknowledged that a single man in possession " +
	"of a good fortune must be in want of a wife however little known the feelings or " +
	"views of such a man may be on his first entering a neighbourhood this truth is so " +
	"well fixed in the minds of the surrounding families that he is considered as the " +
	"rightful property of some one or other of their daughters my dear mr bennet said " +
	"his lady to him one day have you heard that netherfield park is let at last mr " +
	"bennet replied that he had not but it is returned she for mrs long has just been " +
	"here and she told me all about it"

func TestEncryptKnownValue(t *testing.T) {
	m := language.English()
	got, err := Encrypt("attackatdawn", "lemon", m)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if got != "lxfopvefrnhr" {
		t.Fatalf("expected %q, got %q", "lxfopvefrnhr", got)
	}
}

func TestDecryptKnownValue(t *testing.T) {
	m := language.English()
	got, err := Decrypt("lxfopvefrnhr", "lemon", m)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != "attackatdawn" {
		t.Fatalf("expected %q, got %q", "attackatdawn", got)
	}
}

func TestRoundTripWithPassthrough(t *testing.T) {
	m := language.English()
	cases := []struct {
		text string
		key  string
	}{
		{text: "Attack at dawn!", key: "lemon"},
		{text: "one 2 three 4 five", key: "key"},
		{text: "...", key: "abc"},
	}
	for _, tc := range cases {
		encrypted, err := Encrypt(tc.text, tc.key, m)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if len([]rune(encrypted)) != len([]rune(tc.text)) {
			t.Fatalf("length changed: %q -> %q", tc.text, encrypted)
		}
		decrypted, err := Decrypt(encrypted, tc.key, m)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != tc.text {
			t.Fatalf("round trip of %q with key %q gave %q", tc.text, tc.key, decrypted)
		}
	}
}

func TestEncryptInvalidKey(t *testing.T) {
	m := language.English()
	for _, key := range []string{"", "Lemon", "le mon"} {
		if _, err := Encrypt("attackatdawn", key, m); !errors.Is(err, language.ErrInvalidKeyCharacter) {
			t.Fatalf("expected ErrInvalidKeyCharacter for key %q, got %v", key, err)
		}
	}
}

func TestKeyFromPlaintext(t *testing.T) {
	m := language.English()
	key, err := KeyFromPlaintext("lxfopvefrnhr", "attackatdawn", 5, m)
	if err != nil {
		t.Fatalf("KeyFromPlaintext failed: %v", err)
	}
	if key != "lemon" {
		t.Fatalf("expected key %q, got %q", "lemon", key)
	}
}

func TestTransposeInterleave(t *testing.T) {
	streams := transpose("abcdefg", 3)
	want := []string{"adg", "be", "cf"}
	if len(streams) != len(want) {
		t.Fatalf("expected %d streams, got %d", len(want), len(streams))
	}
	for i := range want {
		if streams[i] != want[i] {
			t.Fatalf("expected stream %d to be %q, got %q", i, want[i], streams[i])
		}
	}
	if got := interleave(streams); got != "abcdefg" {
		t.Fatalf("interleave did not invert transpose, got %q", got)
	}
}

func TestCrackWithLength(t *testing.T) {
	m := language.English()
	ciphertext, err := Encrypt(sampleProse, "lemon", m)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	key, plaintext, err := CrackWithLength(ciphertext, 5, m)
	if err != nil {
		t.Fatalf("CrackWithLength failed: %v", err)
	}
	if key != "lemon" {
		t.Fatalf("expected key %q, got %q", "lemon", key)
	}
	if plaintext != sampleProse {
		t.Fatalf("recovered plaintext does not match original")
	}
}

func TestCrackEndToEnd(t *testing.T) {
	m := language.English()
	// Letters only, with a marker phrase planted at gaps 15 and 35 so the
	// repeated-substring gaps have gcd 5, the key length.
	clean := strings.ReplaceAll(sampleProse, " ", "")
	marker := "conquertheworld"
	plaintext := clean[:100] + marker + marker + clean[100:120] + marker + clean[120:]

	ciphertext, err := Encrypt(plaintext, "lemon", m)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	key, recovered, ok, err := Crack(ciphertext, m, DefaultMinRepeat, DefaultMaxRepeat)
	if err != nil {
		t.Fatalf("Crack failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a key length guess")
	}
	if key != "lemon" {
		t.Fatalf("expected key %q, got %q", "lemon", key)
	}
	if recovered != plaintext {
		t.Fatalf("recovered plaintext does not match original")
	}
}

func TestCrackNoRepeats(t *testing.T) {
	m := language.English()
	_, _, ok, err := Crack("abcdefg", m, DefaultMinRepeat, DefaultMaxRepeat)
	if err != nil {
		t.Fatalf("Crack failed: %v", err)
	}
	if ok {
		t.Fatalf("expected no guess for text without repeats")
	}
}
