// Package audio composes CDN URLs for recitation audio. The composer is
// pure: it never queries storage, it only formats the fixed URL template
// around an edition's bitrate list.
package audio

import "fmt"

// BaseURL is the CDN root for all recitation audio.
const BaseURL = "https://quranhub.b-cdn.net/quran"

// maxBitrate returns the highest bitrate and the remaining bitrates in
// their original order. Bitrate lists are unique per edition, so the
// choice is deterministic.
func maxBitrate(bitrates []int) (int, []int) {
	best := bitrates[0]
	for _, b := range bitrates[1:] {
		if b > best {
			best = b
		}
	}
	rest := make([]int, 0, len(bitrates)-1)
	for _, b := range bitrates {
		if b != best {
			rest = append(rest, b)
		}
	}
	return best, rest
}

func ayahURL(bitrate int, edition string, ayah int) string {
	return fmt.Sprintf("%s/audio/versebyverse/%d/%s/%d.mp3", BaseURL, bitrate, edition, ayah)
}

func surahURL(bitrate int, edition string, surah int) string {
	return fmt.Sprintf("%s/audio/surah/%d/%s/%d.mp3", BaseURL, bitrate, edition, surah)
}

// AyahURLs returns the primary URL (highest bitrate) and the secondary
// URLs (every other bitrate, original order) for one ayah's recitation.
// Editions without bitrates produce no URLs.
func AyahURLs(bitrates []int, edition string, ayah int) (primary string, secondary []string) {
	if len(bitrates) == 0 {
		return "", nil
	}
	best, rest := maxBitrate(bitrates)
	primary = ayahURL(best, edition, ayah)
	secondary = make([]string, len(rest))
	for i, b := range rest {
		secondary[i] = ayahURL(b, edition, ayah)
	}
	return primary, secondary
}

// SurahURLs is AyahURLs for whole-surah recordings; only the path prefix
// differs.
func SurahURLs(bitrates []int, edition string, surah int) (primary string, secondary []string) {
	if len(bitrates) == 0 {
		return "", nil
	}
	best, rest := maxBitrate(bitrates)
	primary = surahURL(best, edition, surah)
	secondary = make([]string, len(rest))
	for i, b := range rest {
		secondary[i] = surahURL(b, edition, surah)
	}
	return primary, secondary
}
