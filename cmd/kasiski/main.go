// Package main provides the CLI entrypoint for kasiski.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kasiski/internal/caesar"
	"github.com/verte-zerg/kasiski/internal/config"
	"github.com/verte-zerg/kasiski/internal/fitness"
	"github.com/verte-zerg/kasiski/internal/keylist"
	"github.com/verte-zerg/kasiski/internal/language"
	"github.com/verte-zerg/kasiski/internal/model"
	"github.com/verte-zerg/kasiski/internal/report"
	"github.com/verte-zerg/kasiski/internal/store"
	"github.com/verte-zerg/kasiski/internal/tui"
	"github.com/verte-zerg/kasiski/internal/vigenere"
)

const (
	defaultLang      = "en"
	defaultMinRepeat = vigenere.DefaultMinRepeat
	defaultMaxRepeat = vigenere.DefaultMaxRepeat
	defaultTop       = 20
	previewLen       = 60
)

var (
	crackLang      string
	crackScores    bool
	crackGaps      bool
	crackKeyLength int
	crackMinRepeat int
	crackMaxRepeat int
	crackNoHistory bool

	scanLang        string
	scanKeyLength   int
	scanKeysPath    string
	scanTop         int
	scanInteractive bool

	codecLang   string
	codecCipher string
	codecKey    string

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kasiski",
		Short:         "Classical-cipher cryptanalysis toolkit",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newCaesarCmd())
	rootCmd.AddCommand(newVigenereCmd())
	rootCmd.AddCommand(newBruteCmd())
	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newCaesarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caesar [file]",
		Short: "Recover a Caesar shift key by frequency analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCaesarCmd,
	}
	cmd.Flags().StringVar(&crackLang, "lang", defaultLang, "language code")
	cmd.Flags().BoolVar(&crackScores, "scores", false, "show per-shift fitness scores")
	cmd.Flags().BoolVar(&crackNoHistory, "no-history", false, "do not record the run")
	return cmd
}

func runCaesarCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadCrackConfig(cmd)
	if err != nil {
		return err
	}
	m, err := language.Resolve(cfg.Lang, config.DefaultLanguageDir())
	if err != nil {
		return err
	}
	ciphertext, err := readInput(args)
	if err != nil {
		return err
	}

	scores, err := caesar.CrackScores(ciphertext, m)
	if err != nil {
		return fmt.Errorf("failed to crack: %w", err)
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Value < best.Value {
			best = s
		}
	}

	out := cmd.OutOrStdout()
	if cfg.Scores {
		if err := report.RenderShiftScores(out, scores); err != nil {
			return err
		}
	}
	if err := report.RenderResult(out, string(best.Key), best.Plaintext, best.Value); err != nil {
		return err
	}
	return recordRun(cfg, "caesar", string(best.Key), best.Value, best.Plaintext)
}

func newVigenereCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vigenere [file]",
		Short: "Recover a Vigenère key by period detection and frequency analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVigenereCmd,
	}
	cmd.Flags().StringVar(&crackLang, "lang", defaultLang, "language code")
	cmd.Flags().IntVar(&crackKeyLength, "key-length", 0, "skip period detection and use this key length")
	cmd.Flags().IntVar(&crackMinRepeat, "min-repeat", defaultMinRepeat, "shortest repeated substring to scan")
	cmd.Flags().IntVar(&crackMaxRepeat, "max-repeat", defaultMaxRepeat, "longest repeated substring to scan")
	cmd.Flags().BoolVar(&crackGaps, "gaps", false, "show the repeated-substring gap histogram")
	cmd.Flags().BoolVar(&crackNoHistory, "no-history", false, "do not record the run")
	return cmd
}

func runVigenereCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadCrackConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.MinRepeat <= 0 || cfg.MaxRepeat < cfg.MinRepeat {
		return fmt.Errorf("--min-repeat must be > 0 and --max-repeat >= --min-repeat")
	}
	m, err := language.Resolve(cfg.Lang, config.DefaultLanguageDir())
	if err != nil {
		return err
	}
	ciphertext, err := readInput(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if crackGaps {
		if err := report.RenderGapHistogram(out, vigenere.GapHistogram(ciphertext, cfg.MinRepeat)); err != nil {
			return err
		}
	}

	var key, plaintext string
	if cfg.KeyLength > 0 {
		key, plaintext, err = vigenere.CrackWithLength(ciphertext, cfg.KeyLength, m)
		if err != nil {
			return fmt.Errorf("failed to crack: %w", err)
		}
	} else {
		var ok bool
		key, plaintext, ok, err = vigenere.Crack(ciphertext, m, cfg.MinRepeat, cfg.MaxRepeat)
		if err != nil {
			return fmt.Errorf("failed to crack: %w", err)
		}
		if !ok {
			return fmt.Errorf("no repeated substrings found; cannot guess key length (try --key-length)")
		}
	}

	score, err := scorePlaintext(plaintext, m)
	if err != nil {
		return err
	}
	if err := report.RenderResult(out, key, plaintext, score); err != nil {
		return err
	}
	return recordRun(cfg, "vigenere", key, score, plaintext)
}

func newBruteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brute [file]",
		Short: "Scan candidate Vigenère keys exhaustively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBruteCmd,
	}
	cmd.Flags().StringVar(&scanLang, "lang", defaultLang, "language code")
	cmd.Flags().IntVar(&scanKeyLength, "length", 0, "enumerate every key of this length")
	cmd.Flags().StringVar(&scanKeysPath, "keys", "", "file with one candidate key per line")
	cmd.Flags().IntVar(&scanTop, "top", defaultTop, "number of best candidates to keep")
	cmd.Flags().BoolVar(&scanInteractive, "interactive", false, "browse the scan in a TUI")
	return cmd
}

func runBruteCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &scanTop, fileCfg.Scan.Top)

	cfg := model.ScanConfig{
		Lang:        scanLang,
		KeyLength:   scanKeyLength,
		KeysPath:    scanKeysPath,
		Top:         scanTop,
		Interactive: scanInteractive,
	}
	if cfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if (cfg.KeyLength <= 0) == (cfg.KeysPath == "") {
		return fmt.Errorf("exactly one of --length or --keys is required")
	}

	m, err := language.Resolve(cfg.Lang, config.DefaultLanguageDir())
	if err != nil {
		return err
	}
	ciphertext, err := readInput(args)
	if err != nil {
		return err
	}

	keys := vigenere.Keys(cfg.KeyLength, m)
	if cfg.KeysPath != "" {
		list, err := keylist.LoadKeys(cfg.KeysPath, m)
		if err != nil {
			return fmt.Errorf("failed to load key list: %w", err)
		}
		keys = func(yield func(string) bool) {
			for _, k := range list {
				if !yield(k) {
					return
				}
			}
		}
	}

	scan := vigenere.Scan(ciphertext, keys, m)

	if cfg.Interactive {
		browser := tui.NewModel(scan, cfg.Top)
		program := tea.NewProgram(browser, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return report.RenderCandidates(cmd.OutOrStdout(), browser.Best(), report.TerminalWidth())
	}

	best := make([]model.Candidate, 0, cfg.Top)
	for cand, err := range scan {
		if err != nil {
			return fmt.Errorf("failed to scan key %q: %w", cand.Key, err)
		}
		best = insertCandidate(best, cand, cfg.Top)
	}
	return report.RenderCandidates(cmd.OutOrStdout(), best, report.TerminalWidth())
}

// insertCandidate keeps the `top` lowest-score candidates, preserving score
// order, so a full enumeration never holds more than `top` results.
func insertCandidate(best []model.Candidate, cand model.Candidate, top int) []model.Candidate {
	pos := len(best)
	for i, b := range best {
		if cand.Score < b.Score {
			pos = i
			break
		}
	}
	if pos >= top {
		return best
	}
	best = append(best, model.Candidate{})
	copy(best[pos+1:], best[pos:])
	best[pos] = cand
	if len(best) > top {
		best = best[:top]
	}
	return best
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Encrypt with a known key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodecCmd(cmd, args, false)
		},
	}
	addCodecFlags(cmd)
	return cmd
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Decrypt with a known key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodecCmd(cmd, args, true)
		},
	}
	addCodecFlags(cmd)
	return cmd
}

func addCodecFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&codecLang, "lang", defaultLang, "language code")
	cmd.Flags().StringVar(&codecCipher, "cipher", "vigenere", "cipher: caesar or vigenere")
	cmd.Flags().StringVar(&codecKey, "key", "", "cipher key")
	// The flag is registered right above, so this cannot fail.
	_ = cmd.MarkFlagRequired("key")
}

func runCodecCmd(cmd *cobra.Command, args []string, decrypt bool) error {
	m, err := language.Resolve(codecLang, config.DefaultLanguageDir())
	if err != nil {
		return err
	}
	text, err := readInput(args)
	if err != nil {
		return err
	}

	var out string
	switch codecCipher {
	case "caesar":
		keyRunes := []rune(codecKey)
		if len(keyRunes) != 1 {
			return fmt.Errorf("caesar key must be a single character")
		}
		if decrypt {
			out, err = caesar.Decrypt(text, keyRunes[0], m)
		} else {
			out, err = caesar.Encrypt(text, keyRunes[0], m)
		}
	case "vigenere":
		if decrypt {
			out, err = vigenere.Decrypt(text, codecKey, m)
		} else {
			out, err = vigenere.Encrypt(text, codecKey, m)
		}
	default:
		return fmt.Errorf("unknown cipher %q (want caesar or vigenere)", codecCipher)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available language tables",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := language.Available(config.DefaultLanguageDir())
	if err != nil {
		return fmt.Errorf("failed to read language directory: %w", err)
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded crack runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.RenderRuns(cmd.OutOrStdout(), runs, report.TerminalWidth())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadCrackConfig(cmd *cobra.Command) (model.CrackConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.CrackConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &crackLang, fileCfg.Crack.Lang)
	applyIntConfig(cmd, "min-repeat", &crackMinRepeat, fileCfg.Crack.MinRepeat)
	applyIntConfig(cmd, "max-repeat", &crackMaxRepeat, fileCfg.Crack.MaxRepeat)
	applyBoolConfig(cmd, "no-history", &crackNoHistory, fileCfg.Crack.NoHistory)

	return model.CrackConfig{
		Lang:      crackLang,
		MinRepeat: crackMinRepeat,
		MaxRepeat: crackMaxRepeat,
		KeyLength: crackKeyLength,
		Scores:    crackScores,
		NoHistory: crackNoHistory,
	}, nil
}

func scorePlaintext(plaintext string, m *language.Model) (float64, error) {
	score, err := fitness.ChiSquared(plaintext, m)
	if err != nil {
		return 0, fmt.Errorf("failed to score plaintext: %w", err)
	}
	return score, nil
}

func recordRun(cfg model.CrackConfig, cipher, key string, score float64, plaintext string) error {
	if cfg.NoHistory {
		return nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	run := model.Run{
		FinishedAt: time.Now(),
		Cipher:     cipher,
		Lang:       cfg.Lang,
		Key:        key,
		Score:      score,
		TextLen:    len([]rune(plaintext)),
		Preview:    preview(plaintext),
	}
	if _, err := st.InsertRun(context.Background(), run); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
	return nil
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen])
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kasiski configuration
# Uncomment a value to enable it. CLI flags override config values.

[crack]
# lang = %q            # Language code
# min-repeat = %d        # Shortest repeated substring scanned for the period
# max-repeat = %d       # Longest repeated substring scanned for the period
# no-history = false    # Do not record crack runs

[scan]
# top = %d              # Number of best brute-force candidates to keep
`,
		defaultLang,
		defaultMinRepeat,
		defaultMaxRepeat,
		defaultTop,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
