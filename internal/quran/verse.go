package quran

import (
	"context"
	"math/rand"
	"sync"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
)

// batchParallelism bounds the fan-out of multi-edition requests.
const batchParallelism = 4

// fetch loads one verse under the resolved pair.
func (s *Service) fetch(ctx context.Context, res catalogue.Resolved, ref Ref) (Verse, error) {
	var a model.Ayah
	var err error
	if ref.Global > 0 {
		a, err = s.store.AyahByNumber(ctx, res.TextLookup.Identifier, ref.Global)
	} else {
		a, err = s.store.AyahBySurah(ctx, res.TextLookup.Identifier, ref.Surah, ref.InSurah)
	}
	if err != nil {
		return Verse{}, qerrors.Internal("store.Ayah", err)
	}
	su, err := s.store.SurahByNumber(ctx, a.SurahNumber)
	if err != nil {
		return Verse{}, qerrors.Internal("store.SurahByNumber", err)
	}
	return newVerse(a, su, res), nil
}

// VerseUnder returns one verse under an already resolved edition pair.
// Callers that resolve once and fetch many coordinates use this instead
// of VerseByRef.
func (s *Service) VerseUnder(ctx context.Context, res catalogue.Resolved, ref Ref) (Verse, error) {
	return s.fetch(ctx, res, ref)
}

// VerseByRef returns one verse in the given edition.
func (s *Service) VerseByRef(ctx context.Context, ref Ref, edition string) (Verse, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return Verse{}, err
	}
	return s.fetch(ctx, res, ref)
}

// VerseByEditions returns the same verse rendered under several editions,
// fetched concurrently with the input order preserved.
func (s *Service) VerseByEditions(ctx context.Context, ref Ref, editions []string) ([]Verse, error) {
	out := make([]Verse, len(editions))
	errs := make([]error, len(editions))

	sem := make(chan struct{}, batchParallelism)
	var wg sync.WaitGroup
	for i, edition := range editions {
		wg.Add(1)
		go func(i int, edition string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[i], errs[i] = s.VerseByRef(ctx, ref, edition)
		}(i, edition)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Random returns a uniformly random verse of the edition.
func (s *Service) Random(ctx context.Context, edition string) (Verse, error) {
	res, err := s.cat.Resolve(ctx, edition, catalogue.IntentAudio)
	if err != nil {
		return Verse{}, err
	}
	count, err := s.store.AyahCount(ctx, res.TextLookup.Identifier)
	if err != nil {
		return Verse{}, qerrors.Internal("store.AyahCount", err)
	}
	if count == 0 {
		return Verse{}, &qerrors.AyahNotFoundError{Edition: res.TextLookup.Identifier, Ayah: 0}
	}
	n := rand.Intn(count) + 1
	return s.fetch(ctx, res, Ref{Global: n})
}

// RandomByEditions returns one random verse shared across editions: the
// coordinate is drawn once against the first edition and reused.
func (s *Service) RandomByEditions(ctx context.Context, editions []string) ([]Verse, error) {
	first, err := s.Random(ctx, editions[0])
	if err != nil {
		return nil, err
	}
	ref := Ref{Surah: first.SurahNumber, InSurah: first.NumberInSurah}
	if len(editions) == 1 {
		return []Verse{first}, nil
	}
	rest, err := s.VerseByEditions(ctx, ref, editions[1:])
	if err != nil {
		return nil, err
	}
	return append([]Verse{first}, rest...), nil
}
