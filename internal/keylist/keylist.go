// Package keylist loads candidate key lists from files.
package keylist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/kasiski/internal/language"
)

// LoadKeys reads one candidate key per line from the provided file path,
// skipping blank lines and keys with characters outside the model's
// lower-case alphabet.
func LoadKeys(path string, m *language.Model) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only key list.
			_ = cerr
		}
	}()

	var keys []string
	skipped := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.ToLower(line)
		if !m.ValidKey(line) {
			skipped++
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		if skipped > 0 {
			return nil, fmt.Errorf("key list has no usable keys (%d skipped)", skipped)
		}
		return nil, fmt.Errorf("key list is empty")
	}
	return keys, nil
}
