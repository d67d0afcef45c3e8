package catalogue

import (
	"context"
	"sort"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// LanguageCount splits one language's editions by format.
type LanguageCount struct {
	Total int `json:"total"`
	Text  int `json:"text"`
	Audio int `json:"audio"`
}

// BitrateStats summarises the bitrates offered across audio editions.
type BitrateStats struct {
	Distinct []int `json:"distinct"`
	Min      int   `json:"min"`
	Max      int   `json:"max"`
}

// Analytics is the aggregate catalogue summary.
type Analytics struct {
	TotalEditions   int                      `json:"totalEditions"`
	ByFormat        map[string]int           `json:"byFormat"`
	ByType          map[string]int           `json:"byType"`
	ByLanguage      map[string]LanguageCount `json:"byLanguage"`
	ByNarration     map[string]int           `json:"byNarration"`
	UniqueReciters  int                      `json:"uniqueReciters"`
	Bitrates        BitrateStats             `json:"bitrates"`
	TotalAudioFiles int                      `json:"totalAudioFiles"`
}

// Summarise computes the catalogue analytics over all editions. The audio
// file total counts one file per bitrate per surah (114) for surah-type
// editions and per ayah (6236) for verse-by-verse editions.
func (c *Catalogue) Summarise(ctx context.Context) (Analytics, error) {
	editions, err := c.store.Editions(ctx, store.EditionFilter{})
	if err != nil {
		return Analytics{}, qerrors.Internal("store.Editions", err)
	}

	a := Analytics{
		TotalEditions: len(editions),
		ByFormat:      map[string]int{},
		ByType:        map[string]int{},
		ByLanguage:    map[string]LanguageCount{},
		ByNarration:   map[string]int{},
	}
	reciters := map[int64]bool{}
	bitrates := map[int]bool{}

	for _, e := range editions {
		a.ByFormat[e.Format]++
		a.ByType[e.Type]++

		lc := a.ByLanguage[e.Language]
		lc.Total++
		if e.IsAudio() {
			lc.Audio++
		} else {
			lc.Text++
		}
		a.ByLanguage[e.Language] = lc

		if e.NarratorIdentifier != "" {
			a.ByNarration[e.NarratorIdentifier]++
		}
		if e.ReciterID != 0 {
			reciters[e.ReciterID] = true
		}
		for _, b := range e.Bitrates {
			bitrates[b] = true
		}

		switch {
		case e.IsAudio() && e.Type == model.TypeSurah:
			a.TotalAudioFiles += len(e.Bitrates) * model.SurahCount
		case e.IsAudio() && e.Type == model.TypeVersebyverse:
			a.TotalAudioFiles += len(e.Bitrates) * model.AyahCount
		}
	}

	a.UniqueReciters = len(reciters)
	for b := range bitrates {
		a.Bitrates.Distinct = append(a.Bitrates.Distinct, b)
	}
	sort.Ints(a.Bitrates.Distinct)
	if n := len(a.Bitrates.Distinct); n > 0 {
		a.Bitrates.Min = a.Bitrates.Distinct[0]
		a.Bitrates.Max = a.Bitrates.Distinct[n-1]
	}
	return a, nil
}
