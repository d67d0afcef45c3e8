// Package normalize prepares keywords and verse text for search matching.
//
// Two normalisation paths exist: Arabic (diacritic stripping, hamza-carrier
// and ligature folding) and everything else (trim, collapse, lowercase).
// Both are idempotent and never fail; callers pick the path with IsArabic.
//
// All functions are safe for concurrent use by multiple goroutines.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Arabic letters and marks referenced by the fold table.
const (
	alef           = 'ا' // ا
	alefMadda      = 'آ' // آ
	alefHamzaAbove = 'أ' // أ
	alefHamzaBelow = 'إ' // إ
	alefWasla      = 'ٱ' // ٱ
	yeh            = 'ي' // ي
	dotlessYeh     = 'ى' // ى
	yehHamza       = 'ئ' // ئ
	waw            = 'و' // و
	wawHamza       = 'ؤ' // ؤ
	tehMarbuta     = 'ة' // ة
	heh            = 'ه' // ه
	tatweel        = 'ـ' // ـ
)

// arabicBlocks are the Unicode ranges whose presence classifies a keyword
// as Arabic: the base block, the two supplements, and the presentation
// forms produced by some input methods.
var arabicBlocks = []struct{ lo, hi rune }{
	{0x0600, 0x06FF},
	{0x0750, 0x077F},
	{0x08A0, 0x08FF},
	{0xFB50, 0xFDFF},
	{0xFE70, 0xFEFF},
}

// IsArabic reports whether s contains at least one rune from the Arabic
// Unicode blocks.
func IsArabic(s string) bool {
	for _, r := range s {
		for _, b := range arabicBlocks {
			if r >= b.lo && r <= b.hi {
				return true
			}
		}
	}
	return false
}

// isTashkil reports whether r is a combining mark stripped during Arabic
// normalisation: harakat, tanwin, shadda, sukun, superscript alef, and the
// Quranic annotation marks.
func isTashkil(r rune) bool {
	switch {
	case r >= 0x064B && r <= 0x065F: // tanwin, harakat, shadda, sukun, extensions
		return true
	case r == 0x0670: // superscript alef
		return true
	case r >= 0x0610 && r <= 0x061A: // honorific and Quranic marks
		return true
	case r >= 0x06D6 && r <= 0x06DC: // small high ligatures
		return true
	case r >= 0x06DF && r <= 0x06E8: // small high/low marks
		return true
	case r >= 0x06EA && r <= 0x06ED: // empty centre marks
		return true
	}
	return false
}

// isArabicPunct reports whether r is punctuation stripped from search keys.
func isArabicPunct(r rune) bool {
	switch r {
	case '،', '؛', '؟', '۔': // ، ؛ ؟ ۔
		return true
	case '!', '.', ',', ';', '?':
		return true
	}
	return false
}

// Arabic normalises Arabic text into its canonical search form: NFKC (which
// also unfolds presentation-form ligatures), tashkil and tatweel removal,
// hamza-carrier folding to the bare letter, teh marbuta to heh, punctuation
// removal, and whitespace collapsing.
func Arabic(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case isTashkil(r), r == tatweel:
			continue
		case isArabicPunct(r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		}
		switch r {
		case alefMadda, alefHamzaAbove, alefHamzaBelow, alefWasla:
			r = alef
		case dotlessYeh, yehHamza:
			r = yeh
		case wawHamza:
			r = waw
		case tehMarbuta:
			r = heh
		}
		if space {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Other normalises non-Arabic text: trim, collapse inner whitespace,
// lowercase.
func Other(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Keyword applies the normalisation path matching the keyword's script and
// reports which path was taken.
func Keyword(s string) (normalised string, arabic bool) {
	if IsArabic(s) {
		return Arabic(s), true
	}
	return Other(s), false
}
