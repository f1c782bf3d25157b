// Package model defines shared data structures.
package model

import "time"

// Candidate is one scored decryption attempt.
type Candidate struct {
	Key       string
	Plaintext string
	Score     float64
}

// Run records a completed crack run for the history store.
type Run struct {
	RunID      int64
	FinishedAt time.Time
	Cipher     string
	Lang       string
	Key        string
	Score      float64
	TextLen    int
	Preview    string
}

// CrackConfig defines settings for the caesar and vigenere crack commands.
type CrackConfig struct {
	Lang      string
	MinRepeat int
	MaxRepeat int
	KeyLength int
	Scores    bool
	NoHistory bool
}

// ScanConfig defines settings for the brute-force scan command.
type ScanConfig struct {
	Lang        string
	KeyLength   int
	KeysPath    string
	Top         int
	Interactive bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Last int
}
