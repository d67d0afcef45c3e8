package storetest

import "strings"

// trigrams extracts the pg_trgm-style trigram set of s: each word is
// padded with two leading and one trailing space before slicing.
func trigrams(s string) map[string]bool {
	out := map[string]bool{}
	for _, word := range strings.Fields(s) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			out[string(runes[i:i+3])] = true
		}
	}
	return out
}

// trigramSimilarity approximates pg_trgm's similarity(): shared trigrams
// over the union.
func trigramSimilarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for t := range ta {
		if tb[t] {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

// wordSimilarity approximates pg_trgm's word_similarity(needle, hay): the
// best trigram similarity between the needle and any single word of hay.
func wordSimilarity(needle, hay string) float64 {
	best := 0.0
	for _, word := range strings.Fields(hay) {
		if s := trigramSimilarity(needle, word); s > best {
			best = s
		}
	}
	return best
}
