package keylist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/kasiski/internal/language"
)

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}
	return path
}

func TestLoadKeysFiltersAndFolds(t *testing.T) {
	m := language.English()
	path := writeKeyFile(t, "lemon\n\nMANGO\nbad key\nol1ve\n")

	keys, err := LoadKeys(path, m)
	if err != nil {
		t.Fatalf("LoadKeys failed: %v", err)
	}
	want := []string{"lemon", "mango"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

func TestLoadKeysEmptyFile(t *testing.T) {
	m := language.English()
	path := writeKeyFile(t, "\n\n")
	if _, err := LoadKeys(path, m); err == nil {
		t.Fatalf("expected error for empty key list")
	}
}

func TestLoadKeysAllInvalid(t *testing.T) {
	m := language.English()
	path := writeKeyFile(t, "k3y\nno way\n")
	if _, err := LoadKeys(path, m); err == nil {
		t.Fatalf("expected error when every key is skipped")
	}
}
