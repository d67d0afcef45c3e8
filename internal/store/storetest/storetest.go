// Package storetest provides an in-memory store.Store fake for service
// and handler tests. Data is plain exported slices and maps; tests mutate
// them directly. Fuzzy search approximates pg_trgm with a small trigram
// implementation so the search pipeline can be exercised end to end.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/core/narration"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// Store is the fake. The zero value is usable and empty.
type Store struct {
	EditionList []model.Edition
	SurahList   []model.Surah
	AyahsByEd   map[string][]model.Ayah // ordered by global number
	Rows        map[int][]narration.Row
	Diffs       []diffRecord
	WordList    []model.Word
	Matches     []model.AyahMatch
	Spans       []model.MatchSpan
	Phrases     map[int64]model.Phrase
	Occurrences []model.PhraseOccurrence
	ThemeList   []model.Theme
	ThemeLinks  map[[2]int][]int64 // (surah, ayah) -> theme ids
	Layouts     []model.MushafLayout
	Lines       []model.MushafLine
	FontList    []model.Font
	FontFileMap map[int64][]model.FontFile
	PageFiles   map[string]model.FontPageFile // "fontID/page"

	// Err, when set, is returned by every method to exercise the
	// internal-error path.
	Err error
}

type diffRecord struct {
	Source, Target string
	Page           int
	Diff           store.NarrationDifference
}

// New returns an empty fake with all maps initialised.
func New() *Store {
	return &Store{
		AyahsByEd:   make(map[string][]model.Ayah),
		Rows:        make(map[int][]narration.Row),
		Phrases:     make(map[int64]model.Phrase),
		ThemeLinks:  make(map[[2]int][]int64),
		FontFileMap: make(map[int64][]model.FontFile),
		PageFiles:   make(map[string]model.FontPageFile),
	}
}

// AddDifference registers a narration difference row.
func (s *Store) AddDifference(source, target string, page int, d store.NarrationDifference) {
	s.Diffs = append(s.Diffs, diffRecord{Source: source, Target: target, Page: page, Diff: d})
}

func (s *Store) Editions(_ context.Context, f store.EditionFilter) ([]model.Edition, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Edition
	for _, e := range s.EditionList {
		if f.Language != "" && e.Language != f.Language {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.Format != "" && e.Format != f.Format {
			continue
		}
		if f.Narrator != "" && e.NarratorIdentifier != f.Narrator {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}

func (s *Store) EditionByIdentifier(_ context.Context, identifier string) (store.Lookup, error) {
	if s.Err != nil {
		return store.Lookup{}, s.Err
	}
	var matches []model.Edition
	for _, e := range s.EditionList {
		if e.Identifier == identifier {
			matches = append(matches, e)
		}
	}
	return store.NewLookup(matches), nil
}

func (s *Store) distinct(pick func(model.Edition) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range s.EditionList {
		v := pick(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *Store) EditionLanguages(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.distinct(func(e model.Edition) string { return e.Language }), nil
}

func (s *Store) EditionTypes(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.distinct(func(e model.Edition) string { return e.Type }), nil
}

func (s *Store) EditionFormats(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.distinct(func(e model.Edition) string { return e.Format }), nil
}

func (s *Store) EditionNarrators(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.distinct(func(e model.Edition) string { return e.NarratorIdentifier }), nil
}

func (s *Store) ReciterByID(_ context.Context, id int64) (model.Reciter, error) {
	if s.Err != nil {
		return model.Reciter{}, s.Err
	}
	return model.Reciter{ID: id, Name: fmt.Sprintf("reciter-%d", id)}, nil
}

func (s *Store) TafsirByID(_ context.Context, id int64) (model.Tafsir, error) {
	if s.Err != nil {
		return model.Tafsir{}, s.Err
	}
	return model.Tafsir{ID: id, Name: fmt.Sprintf("tafsir-%d", id)}, nil
}

func (s *Store) Surahs(context.Context) ([]model.Surah, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.SurahList, nil
}

func (s *Store) SurahByNumber(_ context.Context, number int) (model.Surah, error) {
	if s.Err != nil {
		return model.Surah{}, s.Err
	}
	for _, su := range s.SurahList {
		if su.Number == number {
			return su, nil
		}
	}
	return model.Surah{}, &qerrors.CoordinateError{Field: "surah", Value: fmt.Sprint(number), Message: "must be 1..114"}
}

func (s *Store) AyahByNumber(_ context.Context, edition string, number int) (model.Ayah, error) {
	if s.Err != nil {
		return model.Ayah{}, s.Err
	}
	for _, a := range s.AyahsByEd[edition] {
		if a.Number == number {
			return a, nil
		}
	}
	return model.Ayah{}, &qerrors.AyahNotFoundError{Edition: edition, Ayah: number}
}

func (s *Store) AyahBySurah(_ context.Context, edition string, surah, inSurah int) (model.Ayah, error) {
	if s.Err != nil {
		return model.Ayah{}, s.Err
	}
	for _, a := range s.AyahsByEd[edition] {
		if a.SurahNumber == surah && a.NumberInSurah == inSurah {
			return a, nil
		}
	}
	return model.Ayah{}, &qerrors.AyahNotFoundError{Edition: edition, Surah: surah, Ayah: inSurah}
}

func page(ayahs []model.Ayah, limit, offset int) []model.Ayah {
	if offset >= len(ayahs) {
		return nil
	}
	ayahs = ayahs[offset:]
	if limit > 0 && limit < len(ayahs) {
		ayahs = ayahs[:limit]
	}
	return ayahs
}

func (s *Store) AyahsBySurah(_ context.Context, edition string, surah, limit, offset int) ([]model.Ayah, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Ayah
	for _, a := range s.AyahsByEd[edition] {
		if a.SurahNumber == surah {
			out = append(out, a)
		}
	}
	return page(out, limit, offset), nil
}

func unitValue(a model.Ayah, unit store.Unit) int {
	switch unit {
	case store.UnitPage:
		return a.Page
	case store.UnitJuz:
		return a.Juz
	case store.UnitHizb:
		return a.Hizb
	case store.UnitHizbQuarter:
		return a.HizbQuarter
	case store.UnitManzil:
		return a.Manzil
	case store.UnitRuku:
		return a.Ruku
	}
	return -1
}

func (s *Store) AyahsByUnit(_ context.Context, edition string, unit store.Unit, number, limit, offset int) ([]model.Ayah, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Ayah
	for _, a := range s.AyahsByEd[edition] {
		if unitValue(a, unit) == number {
			out = append(out, a)
		}
	}
	return page(out, limit, offset), nil
}

func (s *Store) AllAyahs(_ context.Context, edition string) ([]model.Ayah, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.AyahsByEd[edition], nil
}

func (s *Store) AyahCount(_ context.Context, edition string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.AyahsByEd[edition]), nil
}

func (s *Store) SajdaAyahs(_ context.Context, edition string) ([]model.Ayah, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Ayah
	for _, a := range s.AyahsByEd[edition] {
		if a.Sajda.Mark != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) UnitMetadata(_ context.Context, unit store.Unit) ([]model.UnitMeta, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	byNumber := map[int]model.Ayah{}
	for _, a := range s.AyahsByEd["quran-simple"] {
		n := unitValue(a, unit)
		if first, ok := byNumber[n]; !ok || a.Number < first.Number {
			byNumber[n] = a
		}
	}
	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]model.UnitMeta, 0, len(numbers))
	for _, n := range numbers {
		a := byNumber[n]
		su, _ := s.SurahByNumber(context.Background(), a.SurahNumber)
		out = append(out, model.UnitMeta{
			Number:          n,
			FirstPage:       a.Page,
			FirstAyahNumber: a.Number,
			FirstAyahText:   a.Text,
			FirstSurah:      su,
		})
	}
	return out, nil
}

func (s *Store) NarrationRows(_ context.Context, surah int) ([]narration.Row, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows[surah], nil
}

func (s *Store) NarrationDifferences(_ context.Context, source, target string, pageNum int) ([]store.NarrationDifference, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []store.NarrationDifference
	for _, d := range s.Diffs {
		if d.Source == source && d.Target == target && d.Page == pageNum {
			out = append(out, d.Diff)
		}
	}
	return out, nil
}

func (s *Store) SearchExact(_ context.Context, edition, keyword string, surah int) ([]store.SearchCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []store.SearchCandidate
	for _, a := range s.AyahsByEd[edition] {
		if surah != 0 && a.SurahNumber != surah {
			continue
		}
		if strings.Contains(strings.ToLower(a.Text), strings.ToLower(keyword)) {
			out = append(out, store.SearchCandidate{Ayah: a})
		}
	}
	return out, nil
}

func (s *Store) SearchFuzzy(_ context.Context, edition, keyword string, arabic bool, surah int) ([]store.SearchCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []store.SearchCandidate
	for _, a := range s.AyahsByEd[edition] {
		if surah != 0 && a.SurahNumber != surah {
			continue
		}
		text := strings.ToLower(a.Text)
		kw := strings.ToLower(keyword)
		sim := trigramSimilarity(text, kw)
		wsim := wordSimilarity(kw, text)
		if w2 := wordSimilarity(text, kw); w2 > wsim {
			wsim = w2
		}
		accept := strings.Contains(text, kw)
		if arabic {
			accept = accept || sim > 0.25 || wsim > 0.35
		} else {
			accept = accept || (len([]rune(kw)) > 3 && sim > 0.35)
		}
		if accept {
			out = append(out, store.SearchCandidate{Ayah: a, Similarity: sim, WordSimilarity: wsim})
		}
	}
	return out, nil
}

func (s *Store) Word(_ context.Context, surah, inSurah, position int) (model.Word, error) {
	if s.Err != nil {
		return model.Word{}, s.Err
	}
	for _, w := range s.WordList {
		if w.Surah == surah && w.AyahInSurah == inSurah && w.Position == position {
			return w, nil
		}
	}
	return model.Word{}, &qerrors.NotFoundError{
		Resource: "word",
		ID:       fmt.Sprintf("%d:%d:%d", surah, inSurah, position),
	}
}

func (s *Store) WordsForAyah(_ context.Context, surah, inSurah int) ([]model.Word, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Word
	for _, w := range s.WordList {
		if w.Surah == surah && w.AyahInSurah == inSurah {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *Store) AyahMatches(_ context.Context, surah, inSurah int) ([]model.AyahMatch, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.AyahMatch
	for _, m := range s.Matches {
		if m.SourceSurah == surah && m.SourceAyah == inSurah {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) MatchSpans(_ context.Context, matchID int64) ([]model.MatchSpan, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.MatchSpan
	for _, sp := range s.Spans {
		if sp.MatchID == matchID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (s *Store) PhraseOccurrences(_ context.Context, surah, inSurah int) ([]model.PhraseOccurrence, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.PhraseOccurrence
	for _, o := range s.Occurrences {
		if o.Surah == surah && o.AyahInSurah == inSurah {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) PhraseByID(_ context.Context, id int64) (model.Phrase, error) {
	if s.Err != nil {
		return model.Phrase{}, s.Err
	}
	p, ok := s.Phrases[id]
	if !ok {
		return model.Phrase{}, &qerrors.NotFoundError{Resource: "phrase", ID: fmt.Sprint(id)}
	}
	return p, nil
}

func (s *Store) Themes(context.Context) ([]model.Theme, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.ThemeList, nil
}

func (s *Store) ThemesForAyah(_ context.Context, surah, inSurah int) ([]model.Theme, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	ids := s.ThemeLinks[[2]int{surah, inSurah}]
	var out []model.Theme
	for _, t := range s.ThemeList {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (s *Store) MushafLayouts(context.Context) ([]model.MushafLayout, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Layouts, nil
}

func (s *Store) MushafLines(_ context.Context, layoutID int64, pageNum int) ([]model.MushafLine, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.MushafLine
	for _, l := range s.Lines {
		if l.LayoutID == layoutID && l.Page == pageNum {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out, nil
}

func (s *Store) Fonts(context.Context) ([]model.Font, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.FontList, nil
}

func (s *Store) FontFiles(_ context.Context, fontID int64) ([]model.FontFile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.FontFileMap[fontID], nil
}

func (s *Store) FontPageFile(_ context.Context, fontID int64, pageNum int) (model.FontPageFile, error) {
	if s.Err != nil {
		return model.FontPageFile{}, s.Err
	}
	f, ok := s.PageFiles[fmt.Sprintf("%d/%d", fontID, pageNum)]
	if !ok {
		return model.FontPageFile{}, &qerrors.NotFoundError{
			Resource: "font page",
			ID:       fmt.Sprintf("%d/%d", fontID, pageNum),
		}
	}
	return f, nil
}

func (s *Store) Ping(context.Context) error { return s.Err }
