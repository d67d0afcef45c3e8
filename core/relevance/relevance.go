// Package relevance scores fuzzy-search candidates and orders results.
//
// Storage supplies the two trigram measures per candidate (character-level
// similarity and directional-max word similarity); this package turns them
// into the discretised relevance score and applies the result ordering.
package relevance

import (
	"sort"
	"strings"

	"github.com/quranhub/quranhub/core/normalize"
)

// Candidate is one verse accepted by the fuzzy candidate selection.
type Candidate struct {
	AyahNumber     int    // global number under the search edition
	Surah          int
	AyahInSurah    int
	Text           string // verse text under the search edition
	Similarity     float64
	WordSimilarity float64
}

// Scored pairs a candidate with its relevance score.
type Scored struct {
	Candidate
	Relevance float64
}

// interpolate maps v from [lo,1] onto [base,base+10], clamped.
func interpolate(v, lo, base float64) float64 {
	s := base + (v-lo)/(1-lo)*10
	if s > base+10 {
		return base + 10
	}
	return s
}

// Score computes the relevance score for one candidate. The keyword must
// already be normalised; the candidate text is normalised here before the
// substring tests. Rules fire top to bottom, first match wins.
func Score(c Candidate, keyword string, arabic bool) float64 {
	var text string
	if arabic {
		text = normalize.Arabic(c.Text)
	} else {
		text = normalize.Other(c.Text)
	}

	switch {
	case !arabic && text == keyword:
		return 100
	case strings.Contains(text, keyword):
		return 90
	case c.WordSimilarity > 0.6:
		return interpolate(c.WordSimilarity, 0.6, 80)
	case c.Similarity > 0.4:
		return interpolate(c.Similarity, 0.4, 70)
	}
	if arabic {
		switch {
		case c.WordSimilarity > 0.4:
			return 70
		case c.Similarity > 0.3:
			return 60
		}
		return 50
	}
	if s := c.WordSimilarity * 65; s > c.Similarity*60 {
		return s
	}
	return c.Similarity * 60
}

// Rank scores every candidate and sorts by relevance desc, word
// similarity desc, similarity desc, verse number asc.
func Rank(cands []Candidate, keyword string, arabic bool) []Scored {
	out := make([]Scored, len(cands))
	for i, c := range cands {
		out[i] = Scored{Candidate: c, Relevance: Score(c, keyword, arabic)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		if a.WordSimilarity != b.WordSimilarity {
			return a.WordSimilarity > b.WordSimilarity
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return a.AyahNumber < b.AyahNumber
	})
	return out
}

// Page applies limit/offset to a ranked slice. A zero limit means no cap.
func Page(results []Scored, limit, offset int) []Scored {
	if offset >= len(results) {
		return nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}
