package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/kasiski/internal/caesar"
	"github.com/verte-zerg/kasiski/internal/model"
)

const (
	terminalWidthBackup = 80
	fixedColumnsWidth   = 28
	minPreviewWidth     = 16
)

// TerminalWidth returns the current terminal width or a backup value when
// stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func previewWidth(totalWidth int) int {
	w := totalWidth - fixedColumnsWidth
	if w < minPreviewWidth {
		return minPreviewWidth
	}
	return w
}

func truncate(value string, width int) string {
	return runewidth.Truncate(value, width, "…")
}

// RenderResult prints a recovered key and plaintext.
func RenderResult(w io.Writer, key, plaintext string, score float64) error {
	if _, err := fmt.Fprintf(w, "Key: %s\n", key); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Fitness: %.2f\n", score); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, plaintext)
	return err
}

// RenderShiftScores prints per-shift chi-squared scores with a sparkline.
func RenderShiftScores(w io.Writer, scores []caesar.Score) error {
	values := make([]float64, len(scores))
	keys := make([]rune, 0, len(scores))
	for i, s := range scores {
		values[i] = s.Value
		keys = append(keys, s.Key)
	}
	if _, err := fmt.Fprintf(w, "Shift fitness (%s)\n", string(keys)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "               %s\n", Sparkline(values)); err != nil {
		return err
	}

	headers := []string{"Key", "Fitness"}
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{string(s.Key), fmt.Sprintf("%.2f", s.Value)})
	}
	rightAlign := map[int]bool{1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCandidates prints scored brute-force candidates, best first.
func RenderCandidates(w io.Writer, candidates []model.Candidate, totalWidth int) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No candidates scored.")
		return err
	}
	sorted := make([]model.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	pw := previewWidth(totalWidth)
	headers := []string{"Key", "Fitness", "Plaintext"}
	rows := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, []string{
			c.Key,
			fmt.Sprintf("%.2f", c.Score),
			truncate(c.Plaintext, pw),
		})
	}
	rightAlign := map[int]bool{1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRuns prints stored crack runs.
func RenderRuns(w io.Writer, runs []model.Run, totalWidth int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	pw := previewWidth(totalWidth)
	headers := []string{"When", "Cipher", "Lang", "Key", "Fitness", "Len", "Preview"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			r.Cipher,
			r.Lang,
			r.Key,
			fmt.Sprintf("%.2f", r.Score),
			fmt.Sprintf("%d", r.TextLen),
			truncate(r.Preview, pw),
		})
	}
	rightAlign := map[int]bool{4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderGapHistogram prints repeated-substring gaps sorted by gap length.
func RenderGapHistogram(w io.Writer, hist map[int]int) error {
	if len(hist) == 0 {
		_, err := fmt.Fprintln(w, "No repeated substrings found.")
		return err
	}
	gaps := make([]int, 0, len(hist))
	for gap := range hist {
		gaps = append(gaps, gap)
	}
	sort.Ints(gaps)

	headers := []string{"Gap", "Count"}
	rows := make([][]string, 0, len(gaps))
	for _, gap := range gaps {
		rows = append(rows, []string{fmt.Sprintf("%d", gap), fmt.Sprintf("%d", hist[gap])})
	}
	rightAlign := map[int]bool{0: true, 1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
