package quran

import (
	"context"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// UnitResult is the envelope for one structural unit: its verses in
// reading order and the distinct surahs the unit crosses. Pages
// additionally carry the hizb numbers crossing the page and the surah
// owning most of it.
type UnitResult struct {
	Number   int           `json:"number"`
	Edition  model.Edition `json:"edition"`
	Ayahs    []Verse       `json:"ayahs"`
	Surahs   []model.Surah `json:"surahs"`
	Hizbs    []int         `json:"hizbs,omitempty"`
	TopSurah *model.Surah  `json:"topSurah,omitempty"`
}

// UnitOptions tunes a unit retrieval.
type UnitOptions struct {
	Limit  int
	Offset int
	Words  bool // expand word-level metadata (pages only)
}

// ByUnit returns the verses of one structural unit under an edition.
func (s *Service) ByUnit(ctx context.Context, unit store.Unit, number int, edition string, opts UnitOptions) (UnitResult, error) {
	if max := unit.Max(); number < 1 || number > max {
		return UnitResult{}, &qerrors.CoordinateError{
			Field: string(unit), Value: fmt.Sprint(number),
			Message: fmt.Sprintf("must be 1..%d", unit.Max()),
		}
	}
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return UnitResult{}, err
	}
	ayahs, err := s.store.AyahsByUnit(ctx, res.TextLookup.Identifier, unit, number, opts.Limit, opts.Offset)
	if err != nil {
		return UnitResult{}, qerrors.Internal("store.AyahsByUnit", err)
	}

	result := UnitResult{Number: number, Edition: res.Response}
	surahSeen := map[int]bool{}
	surahByNumber := map[int]model.Surah{}
	for _, a := range ayahs {
		if !surahSeen[a.SurahNumber] {
			surahSeen[a.SurahNumber] = true
			su, err := s.store.SurahByNumber(ctx, a.SurahNumber)
			if err != nil {
				return UnitResult{}, qerrors.Internal("store.SurahByNumber", err)
			}
			surahByNumber[a.SurahNumber] = su
			result.Surahs = append(result.Surahs, su)
		}
		result.Ayahs = append(result.Ayahs, newVerse(a, surahByNumber[a.SurahNumber], res))
	}

	if unit == store.UnitPage {
		s.pageExtras(&result, ayahs)
		if opts.Words {
			if err := s.expandWords(ctx, res, result.Ayahs); err != nil {
				return UnitResult{}, err
			}
		}
	}
	return result, nil
}

// pageExtras computes the hizb crossing list and the top surah of a page.
// The top surah owns the most ayahs on the page; ties go to the surah
// seen first.
func (s *Service) pageExtras(result *UnitResult, ayahs []model.Ayah) {
	hizbSeen := map[int]bool{}
	counts := map[int]int{}
	for _, a := range ayahs {
		if !hizbSeen[a.Hizb] {
			hizbSeen[a.Hizb] = true
			result.Hizbs = append(result.Hizbs, a.Hizb)
		}
		counts[a.SurahNumber]++
	}
	var top model.Surah
	best := 0
	for _, su := range result.Surahs { // first-seen order settles ties
		if counts[su.Number] > best {
			best = counts[su.Number]
			top = su
		}
	}
	if best > 0 {
		result.TopSurah = &top
	}
}

// UnitMetadata summarises every number of a unit.
func (s *Service) UnitMetadata(ctx context.Context, unit store.Unit) ([]model.UnitMeta, error) {
	meta, err := s.store.UnitMetadata(ctx, unit)
	return meta, qerrors.Internal("store.UnitMetadata", err)
}

// SurahContent is one chapter with its verses.
type SurahContent struct {
	model.Surah
	Edition model.Edition `json:"edition"`
	Ayahs   []Verse       `json:"ayahs"`
}

// Surahs lists all chapter summaries.
func (s *Service) Surahs(ctx context.Context) ([]model.Surah, error) {
	v, err := s.store.Surahs(ctx)
	return v, qerrors.Internal("store.Surahs", err)
}

// SurahByNumber returns one chapter with its verses under an edition.
func (s *Service) SurahByNumber(ctx context.Context, number int, edition string, limit, offset int) (SurahContent, error) {
	if number < 1 || number > model.SurahCount {
		return SurahContent{}, &qerrors.CoordinateError{Field: "surah", Value: fmt.Sprint(number), Message: "must be 1..114"}
	}
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentSurahAudio)
	if err != nil {
		return SurahContent{}, err
	}
	su, err := s.store.SurahByNumber(ctx, number)
	if err != nil {
		return SurahContent{}, qerrors.Internal("store.SurahByNumber", err)
	}
	ayahs, err := s.store.AyahsBySurah(ctx, res.TextLookup.Identifier, number, limit, offset)
	if err != nil {
		return SurahContent{}, qerrors.Internal("store.AyahsBySurah", err)
	}
	content := SurahContent{Surah: su, Edition: res.Response}
	for _, a := range ayahs {
		content.Ayahs = append(content.Ayahs, newVerse(a, su, res))
	}
	return content, nil
}

// Sajdas lists the prostration verses of an edition.
func (s *Service) Sajdas(ctx context.Context, edition string) ([]Verse, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return nil, err
	}
	ayahs, err := s.store.SajdaAyahs(ctx, res.TextLookup.Identifier)
	if err != nil {
		return nil, qerrors.Internal("store.SajdaAyahs", err)
	}
	out := make([]Verse, 0, len(ayahs))
	for _, a := range ayahs {
		su, err := s.store.SurahByNumber(ctx, a.SurahNumber)
		if err != nil {
			return nil, qerrors.Internal("store.SurahByNumber", err)
		}
		out = append(out, newVerse(a, su, res))
	}
	return out, nil
}

// WholeQuran returns the complete text of an edition grouped by surah.
func (s *Service) WholeQuran(ctx context.Context, edition string) ([]SurahContent, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return nil, err
	}
	ayahs, err := s.store.AllAyahs(ctx, res.TextLookup.Identifier)
	if err != nil {
		return nil, qerrors.Internal("store.AllAyahs", err)
	}
	surahs, err := s.store.Surahs(ctx)
	if err != nil {
		return nil, qerrors.Internal("store.Surahs", err)
	}
	byNumber := make(map[int]int, len(surahs)) // surah number -> index in out
	var out []SurahContent
	for _, su := range surahs {
		byNumber[su.Number] = len(out)
		out = append(out, SurahContent{Surah: su, Edition: res.Response})
	}
	for _, a := range ayahs {
		i, ok := byNumber[a.SurahNumber]
		if !ok {
			continue
		}
		out[i].Ayahs = append(out[i].Ayahs, newVerse(a, out[i].Surah, res))
	}
	return out, nil
}

// Meta is the structural and catalogue summary for /v1/meta/.
type Meta struct {
	Surahs       int `json:"surahs"`
	Ayahs        int `json:"ayahs"`
	Pages        int `json:"pages"`
	Juzs         int `json:"juzs"`
	Hizbs        int `json:"hizbs"`
	HizbQuarters int `json:"hizbQuarters"`
	Manzils      int `json:"manzils"`
	Rukus        int `json:"rukus"`
	Sajdas       int `json:"sajdas"`

	Editions  int `json:"editions"`
	Languages int `json:"languages"`
}

// Meta returns the structural constants plus catalogue totals.
func (s *Service) Meta(ctx context.Context) (Meta, error) {
	editions, err := s.store.Editions(ctx, store.EditionFilter{})
	if err != nil {
		return Meta{}, qerrors.Internal("store.Editions", err)
	}
	languages, err := s.store.EditionLanguages(ctx)
	if err != nil {
		return Meta{}, qerrors.Internal("store.EditionLanguages", err)
	}
	return Meta{
		Surahs:       model.SurahCount,
		Ayahs:        model.AyahCount,
		Pages:        model.PageCount,
		Juzs:         model.JuzCount,
		Hizbs:        model.HizbCount,
		HizbQuarters: model.HizbQuarterCount,
		Manzils:      model.ManzilCount,
		Rukus:        model.RukuCount,
		Sajdas:       model.SajdaCount,
		Editions:     len(editions),
		Languages:    len(languages),
	}, nil
}
