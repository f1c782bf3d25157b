package language

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileModel represents a language table in TOML form:
//
//	alphabet = "abcdefghijklmnopqrstuvwxyz"
//	[frequencies]
//	a = 0.08167
//	...
type fileModel struct {
	Alphabet    string             `toml:"alphabet"`
	Frequencies map[string]float64 `toml:"frequencies"`
}

// LoadModel reads a language table from a TOML file. The model name is the
// file name without extension.
func LoadModel(path string) (*Model, error) {
	var fm fileModel
	if _, err := toml.DecodeFile(path, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode language table: %w", err)
	}
	if fm.Alphabet == "" {
		return nil, fmt.Errorf("language table %s has no alphabet", path)
	}
	freqs := make(map[rune]float64, len(fm.Frequencies))
	for k, v := range fm.Frequencies {
		runes := []rune(k)
		if len(runes) != 1 {
			return nil, fmt.Errorf("frequency key %q is not a single character", k)
		}
		freqs[runes[0]] = v
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, []rune(fm.Alphabet), freqs)
}

// Resolve returns the model for a language code: the built-in English model
// for "en", otherwise a TOML table named <lang>.toml in dir.
func Resolve(lang, dir string) (*Model, error) {
	if lang == "en" {
		return English(), nil
	}
	path := filepath.Join(dir, lang+".toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no language table for %q (looked for %s)", lang, path)
		}
		return nil, fmt.Errorf("failed to stat language table: %w", err)
	}
	return LoadModel(path)
}

// Available lists language codes with a table present: the built-in "en" plus
// every *.toml file in dir.
func Available(dir string) ([]string, error) {
	langs := []string{"en"}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".toml")
		if name != "en" {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs, nil
}
