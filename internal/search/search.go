// Package search implements the bilingual keyword search pipeline:
// normalise the keyword, resolve the edition, pick a search edition,
// select and score candidates, map hits into the caller's narration and
// rehydrate them as full verse envelopes.
package search

import (
	"context"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/core/normalize"
	"github.com/quranhub/quranhub/core/relevance"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/quran"
	"github.com/quranhub/quranhub/internal/store"
)

// fuzzyMinRunes is the shortest normalised Arabic keyword the fuzzy
// branch accepts. Shorter keywords return an empty result because
// trigram noise overwhelms two-letter particles.
const fuzzyMinRunes = 3

// Service runs the search pipeline over one store.
type Service struct {
	store  store.Store
	cat    *catalogue.Catalogue
	mapper *catalogue.Mapper
	verses *quran.Service
}

// New wires the search service.
func New(st store.Store, cat *catalogue.Catalogue, mapper *catalogue.Mapper, verses *quran.Service) *Service {
	return &Service{store: st, cat: cat, mapper: mapper, verses: verses}
}

// Options tunes one search request.
type Options struct {
	Edition  string // edition identifier; empty picks a default per language
	Language string // ISO 639-1 code, used only when Edition is empty
	Surah    int    // restrict to one surah, 0 for all
	Exact    bool   // substring-only candidate selection
	Limit    int
	Offset   int
}

// Match is one search hit: the standard verse envelope plus the
// similarity block of the fuzzy scorer.
type Match struct {
	quran.Verse
	Similarity     float64 `json:"similarity,omitempty"`
	WordSimilarity float64 `json:"wordSimilarity,omitempty"`
	Relevance      float64 `json:"relevanceScore,omitempty"`
}

// Result is the search envelope. Zero matches is a success.
type Result struct {
	Count   int           `json:"count"`
	Keyword string        `json:"keyword"`
	Edition model.Edition `json:"edition"`
	Matches []Match       `json:"matches"`
}

// editionFor settles the edition the caller searches under. An explicit
// identifier wins; otherwise the language picks the first text edition
// carrying it, and Arabic keywords default to the canonical text.
func (s *Service) editionFor(ctx context.Context, opts Options, arabic bool) (string, error) {
	if opts.Edition != "" {
		return opts.Edition, nil
	}
	if arabic || opts.Language == "" || opts.Language == "ar" {
		return catalogue.DefaultTextEdition, nil
	}
	editions, err := s.cat.List(ctx, store.EditionFilter{Language: opts.Language, Format: model.FormatText})
	if err != nil {
		return "", err
	}
	if len(editions) == 0 {
		return "", &qerrors.EditionNotFoundError{Identifier: opts.Language}
	}
	return editions[0].Identifier, nil
}

// Search runs the pipeline for one keyword.
func (s *Service) Search(ctx context.Context, keyword string, opts Options) (Result, error) {
	kw, arabic := normalize.Keyword(keyword)

	identifier, err := s.editionFor(ctx, opts, arabic)
	if err != nil {
		return Result{}, err
	}
	res, err := s.cat.Resolve(ctx, identifier, catalogue.IntentAudio)
	if err != nil {
		return Result{}, err
	}

	// Arabic keywords always search the clean canonical text; everything
	// else searches the requested edition's own verses.
	searchEdition := res.TextLookup.Identifier
	if arabic {
		searchEdition = catalogue.ArabicSearchEdition
	}

	// The fuzzy branch refuses Arabic keywords too short to carry a
	// trigram signal. This is not an error and not a substring search:
	// the caller gets an empty success.
	if !opts.Exact && arabic && len([]rune(kw)) < fuzzyMinRunes {
		return Result{Count: 0, Keyword: kw, Edition: res.Response, Matches: []Match{}}, nil
	}

	exact := opts.Exact
	var cands []store.SearchCandidate
	if exact {
		cands, err = s.store.SearchExact(ctx, searchEdition, kw, opts.Surah)
	} else {
		cands, err = s.store.SearchFuzzy(ctx, searchEdition, kw, arabic, opts.Surah)
	}
	if err != nil {
		return Result{}, qerrors.Internal("store.Search", err)
	}

	scored := rank(cands, kw, arabic, exact)
	scored = relevance.Page(scored, opts.Limit, opts.Offset)

	matches, err := s.rehydrate(ctx, res, scored, arabic, exact)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Count:   len(matches),
		Keyword: kw,
		Edition: res.Response,
		Matches: matches,
	}, nil
}

// rank converts store candidates and applies the relevance ordering.
// Exact hits are not scored; they keep storage's verse order.
func rank(cands []store.SearchCandidate, kw string, arabic, exact bool) []relevance.Scored {
	rc := make([]relevance.Candidate, len(cands))
	for i, c := range cands {
		rc[i] = relevance.Candidate{
			AyahNumber:     c.Ayah.Number,
			Surah:          c.Ayah.SurahNumber,
			AyahInSurah:    c.Ayah.NumberInSurah,
			Text:           c.Ayah.Text,
			Similarity:     c.Similarity,
			WordSimilarity: c.WordSimilarity,
		}
	}
	if exact {
		out := make([]relevance.Scored, len(rc))
		for i, c := range rc {
			out[i] = relevance.Scored{Candidate: c}
		}
		return out
	}
	return relevance.Rank(rc, kw, arabic)
}

// rehydrate maps ranked hits into the caller's narration and loads the
// full verse envelopes. The Arabic search edition is Hafs-indexed, so a
// non-Hafs caller narration fans each hit out through the numbering
// mapper; fanned-out verses keep their source's rank. Coordinates absent
// under the text-lookup edition are skipped, not errors.
func (s *Service) rehydrate(ctx context.Context, res catalogue.Resolved, scored []relevance.Scored, arabic, exact bool) ([]Match, error) {
	remap := arabic && !s.mapper.IsHafs(res.TextLookup.Identifier)

	matches := make([]Match, 0, len(scored))
	for _, sc := range scored {
		targets := []int{sc.AyahInSurah}
		if remap {
			var err error
			targets, err = s.mapper.Map(ctx, catalogue.DefaultTextEdition, res.TextLookup.Identifier, sc.Surah, sc.AyahInSurah)
			if err != nil {
				return nil, err
			}
		}
		for _, ayah := range targets {
			v, err := s.verses.VerseUnder(ctx, res, quran.Ref{Surah: sc.Surah, InSurah: ayah})
			if err != nil {
				if qerrors.Is(err, qerrors.ErrAyahNotFound) {
					continue
				}
				return nil, err
			}
			m := Match{Verse: v}
			if !exact {
				m.Similarity = sc.Similarity
				m.WordSimilarity = sc.WordSimilarity
				m.Relevance = sc.Relevance
			}
			matches = append(matches, m)
		}
	}
	return matches, nil
}
