package vigenere

// GapHistogram counts the distances between repeated substrings of a fixed
// length. Start positions are grouped by substring content; for each group
// seen at least twice, only the gaps between consecutive occurrences are
// tallied, not all pairs.
func GapHistogram(text string, substrLen int) map[int]int {
	runes := []rune(text)
	hist := make(map[int]int)
	if substrLen <= 0 || len(runes) < substrLen {
		return hist
	}
	positions := make(map[string][]int)
	for i := 0; i+substrLen <= len(runes); i++ {
		s := string(runes[i : i+substrLen])
		positions[s] = append(positions[s], i)
	}
	for _, occ := range positions {
		// Scan order keeps occurrences sorted by position.
		for i := 1; i < len(occ); i++ {
			hist[occ[i]-occ[i-1]]++
		}
	}
	return hist
}

// GuessKeyLength estimates the Vigenère period as the greatest common divisor
// of all repeated-substring gaps of the given substring length. ok is false
// when the text has no such repeats. Identical plaintext encrypted at
// positions a whole number of periods apart yields identical ciphertext, so
// gaps cluster on multiples of the period; coincidental repeats can still
// drag the gcd below the true period.
func GuessKeyLength(text string, substrLen int) (keyLength int, ok bool) {
	hist := GapHistogram(text, substrLen)
	if len(hist) == 0 {
		return 0, false
	}
	g := 0
	for gap := range hist {
		g = gcd(g, gap)
	}
	return g, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
