// Package relation serves the similar-ayah and mutashabihat relations
// plus the thematic index. Relations are stored in Hafs coordinates;
// callers in another narration have their coordinates mapped both ways
// through the numbering mapper.
package relation

import (
	"context"
	"strings"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/quran"
	"github.com/quranhub/quranhub/internal/store"
)

// Service bundles the relation lookups over one store.
type Service struct {
	store  store.Store
	cat    *catalogue.Catalogue
	mapper *catalogue.Mapper
	verses *quran.Service
}

// New wires the relation service.
func New(st store.Store, cat *catalogue.Catalogue, mapper *catalogue.Mapper, verses *quran.Service) *Service {
	return &Service{store: st, cat: cat, mapper: mapper, verses: verses}
}

// SimilarMatch is one similar verse with its match metrics and the
// matched span's text.
type SimilarMatch struct {
	quran.Verse
	Score            float64 `json:"score"`
	Coverage         float64 `json:"coverage"`
	MatchedWordCount int     `json:"matchedWordCount"`
	MatchedText      string  `json:"matchedText,omitempty"`
}

// SimilarResult pairs a source verse with its similar verses.
type SimilarResult struct {
	Source  quran.Verse    `json:"source"`
	Matches []SimilarMatch `json:"matches"`
}

// spanText joins the words of one Hafs verse between two positions
// inclusive.
func (s *Service) spanText(ctx context.Context, surah, ayah, start, end int) (string, error) {
	words, err := s.store.WordsForAyah(ctx, surah, ayah)
	if err != nil {
		return "", qerrors.Internal("store.WordsForAyah", err)
	}
	var parts []string
	for _, w := range words {
		if w.Position >= start && w.Position <= end {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " "), nil
}

// intoNarration maps a Hafs coordinate into the resolved narration and
// loads the first target verse that exists under it.
func (s *Service) intoNarration(ctx context.Context, res catalogue.Resolved, surah, hafsAyah int) (quran.Verse, error) {
	targets := []int{hafsAyah}
	if !s.mapper.IsHafs(res.TextLookup.Identifier) {
		var err error
		targets, err = s.mapper.Map(ctx, catalogue.DefaultTextEdition, res.TextLookup.Identifier, surah, hafsAyah)
		if err != nil {
			return quran.Verse{}, err
		}
	}
	var lastErr error
	for _, ayah := range targets {
		v, err := s.verses.VerseUnder(ctx, res, quran.Ref{Surah: surah, InSurah: ayah})
		if err == nil {
			return v, nil
		}
		if !qerrors.Is(err, qerrors.ErrAyahNotFound) {
			return quran.Verse{}, err
		}
		lastErr = err
	}
	return quran.Verse{}, lastErr
}

// SimilarAyahs returns the similar-verse matches of one coordinate under
// an edition.
func (s *Service) SimilarAyahs(ctx context.Context, surah, ayah int, edition string) (SimilarResult, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return SimilarResult{}, err
	}
	source, err := s.verses.VerseUnder(ctx, res, quran.Ref{Surah: surah, InSurah: ayah})
	if err != nil {
		return SimilarResult{}, err
	}
	hafs, err := s.mapper.ToHafs(ctx, res.TextLookup.Identifier, surah, ayah)
	if err != nil {
		return SimilarResult{}, err
	}

	result := SimilarResult{Source: source}
	for _, h := range hafs {
		matches, err := s.store.AyahMatches(ctx, surah, h)
		if err != nil {
			return SimilarResult{}, qerrors.Internal("store.AyahMatches", err)
		}
		for _, m := range matches {
			v, err := s.intoNarration(ctx, res, m.MatchedSurah, m.MatchedAyah)
			if err != nil {
				if qerrors.Is(err, qerrors.ErrAyahNotFound) {
					continue
				}
				return SimilarResult{}, err
			}
			sm := SimilarMatch{
				Verse:            v,
				Score:            m.Score,
				Coverage:         m.Coverage,
				MatchedWordCount: m.MatchedWordCount,
			}
			spans, err := s.store.MatchSpans(ctx, m.ID)
			if err != nil {
				return SimilarResult{}, qerrors.Internal("store.MatchSpans", err)
			}
			var parts []string
			for _, sp := range spans {
				text, err := s.spanText(ctx, m.MatchedSurah, m.MatchedAyah, sp.MatchedStart, sp.MatchedEnd)
				if err != nil {
					return SimilarResult{}, err
				}
				if text != "" {
					parts = append(parts, text)
				}
			}
			sm.MatchedText = strings.Join(parts, " ")
			result.Matches = append(result.Matches, sm)
		}
	}
	return result, nil
}

// PhraseHit is one mutashabih occurrence with its phrase text and the
// phrase's source verse resolved into the caller's narration.
type PhraseHit struct {
	PhraseID   int64       `json:"phraseId"`
	Text       string      `json:"text"`
	StartPos   int         `json:"startPos"`
	EndPos     int         `json:"endPos"`
	SourceAyah quran.Verse `json:"sourceAyah"`
}

// MutashabihatResult pairs a verse with its phrase occurrences.
type MutashabihatResult struct {
	Source  quran.Verse `json:"source"`
	Phrases []PhraseHit `json:"phrases"`
}

// Mutashabihat returns the recurring phrases on one coordinate under an
// edition.
func (s *Service) Mutashabihat(ctx context.Context, surah, ayah int, edition string) (MutashabihatResult, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return MutashabihatResult{}, err
	}
	source, err := s.verses.VerseUnder(ctx, res, quran.Ref{Surah: surah, InSurah: ayah})
	if err != nil {
		return MutashabihatResult{}, err
	}
	hafs, err := s.mapper.ToHafs(ctx, res.TextLookup.Identifier, surah, ayah)
	if err != nil {
		return MutashabihatResult{}, err
	}

	result := MutashabihatResult{Source: source}
	for _, h := range hafs {
		occurrences, err := s.store.PhraseOccurrences(ctx, surah, h)
		if err != nil {
			return MutashabihatResult{}, qerrors.Internal("store.PhraseOccurrences", err)
		}
		for _, o := range occurrences {
			text, err := s.spanText(ctx, o.Surah, o.AyahInSurah, o.StartPos, o.EndPos)
			if err != nil {
				return MutashabihatResult{}, err
			}
			phrase, err := s.store.PhraseByID(ctx, o.PhraseID)
			if err != nil {
				return MutashabihatResult{}, qerrors.Internal("store.PhraseByID", err)
			}
			src, err := s.intoNarration(ctx, res, phrase.SourceSurah, phrase.SourceAyah)
			if err != nil {
				if qerrors.Is(err, qerrors.ErrAyahNotFound) {
					continue
				}
				return MutashabihatResult{}, err
			}
			result.Phrases = append(result.Phrases, PhraseHit{
				PhraseID:   o.PhraseID,
				Text:       text,
				StartPos:   o.StartPos,
				EndPos:     o.EndPos,
				SourceAyah: src,
			})
		}
	}
	return result, nil
}

// Themes lists every theme.
func (s *Service) Themes(ctx context.Context) ([]model.Theme, error) {
	v, err := s.store.Themes(ctx)
	return v, qerrors.Internal("store.Themes", err)
}

// ThemesForAyah returns the themes linked to one coordinate under an
// edition. Theme links are Hafs-indexed.
func (s *Service) ThemesForAyah(ctx context.Context, surah, ayah int, edition string) ([]model.Theme, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentText)
	if err != nil {
		return nil, err
	}
	hafs, err := s.mapper.ToHafs(ctx, res.TextLookup.Identifier, surah, ayah)
	if err != nil {
		return nil, err
	}
	var out []model.Theme
	seen := map[int64]bool{}
	for _, h := range hafs {
		themes, err := s.store.ThemesForAyah(ctx, surah, h)
		if err != nil {
			return nil, qerrors.Internal("store.ThemesForAyah", err)
		}
		for _, t := range themes {
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}
