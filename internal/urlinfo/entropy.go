package urlinfo

import "math"

// Entropy returns the Shannon entropy in bits of the character frequency
// distribution of s: H = -sum(p_i * log2(p_i)) over distinct characters.
// The empty string has entropy 0.
//
// High entropy in a URL path or in the URL as a whole is a signal of
// machine-generated or obfuscated content: encoded payloads, DGA-style
// hostnames, and random tracking junk all push entropy well above what
// human-chosen words reach.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}

	runes := []rune(s)
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}

	n := float64(len(runes))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
