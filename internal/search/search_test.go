package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/quran"
	"github.com/quranhub/quranhub/internal/store/storetest"
)

func newService(st *storetest.Store) *Service {
	cat := catalogue.New(st)
	mapper := catalogue.NewMapper(st)
	return New(st, cat, mapper, quran.New(st, cat, mapper))
}

func TestSearchArabicFuzzy(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "العالمين", Options{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d; want 1", result.Count)
	}
	m := result.Matches[0]
	if m.SurahNumber != 1 || m.NumberInSurah != 2 {
		t.Errorf("hit = %d:%d; want 1:2", m.SurahNumber, m.NumberInSurah)
	}
	if m.Relevance != 90 {
		t.Errorf("relevance = %v; want 90 for a substring hit", m.Relevance)
	}
	// The response text comes from the caller's edition, not the clean
	// search edition.
	if m.Edition.Identifier != "quran-simple" {
		t.Errorf("edition = %s; want quran-simple", m.Edition.Identifier)
	}
	if !strings.Contains(m.Text, "ِ") {
		t.Errorf("text %q lost its diacritics; search edition leaked into the response", m.Text)
	}
}

func TestSearchCrossNarrationFanIn(t *testing.T) {
	s := newService(storetest.Fixture())

	// Hafs 1:2 is Warsh 1:1; the hit must land on the Warsh coordinate.
	result, err := s.Search(context.Background(), "العالمين", Options{Edition: "quran-warsh"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d; want 1", result.Count)
	}
	m := result.Matches[0]
	if m.SurahNumber != 1 || m.NumberInSurah != 1 {
		t.Errorf("hit = %d:%d; want 1:1 under warsh numbering", m.SurahNumber, m.NumberInSurah)
	}
	if m.Edition.Identifier != "quran-warsh" {
		t.Errorf("edition = %s; want quran-warsh", m.Edition.Identifier)
	}
}

func TestSearchCrossNarrationFanOut(t *testing.T) {
	s := newService(storetest.Fixture())

	// Hafs 1:7 splits into Warsh 1:6 and 1:7; one source hit becomes two
	// results sharing the source's rank.
	result, err := s.Search(context.Background(), "الضالين", Options{Edition: "quran-warsh"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("count = %d; want 2", result.Count)
	}
	if result.Matches[0].NumberInSurah != 6 || result.Matches[1].NumberInSurah != 7 {
		t.Errorf("hits = %d, %d; want 6, 7", result.Matches[0].NumberInSurah, result.Matches[1].NumberInSurah)
	}
	if result.Matches[0].Relevance != result.Matches[1].Relevance {
		t.Errorf("fanned-out hits diverge in relevance: %v vs %v",
			result.Matches[0].Relevance, result.Matches[1].Relevance)
	}
}

func TestSearchExactEnglish(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "Merciful", Options{Edition: "en.sahih", Exact: true})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("count = %d; want 2", result.Count)
	}
	if result.Matches[0].NumberInSurah != 1 || result.Matches[1].NumberInSurah != 3 {
		t.Errorf("hits = %d, %d; want 1, 3", result.Matches[0].NumberInSurah, result.Matches[1].NumberInSurah)
	}
	for _, m := range result.Matches {
		if m.Relevance != 0 || m.Similarity != 0 {
			t.Errorf("exact hit carries a similarity block: %+v", m)
		}
	}
}

func TestSearchEnglishFullPhrase(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "Guide us to the straight path", Options{Edition: "en.sahih"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d; want 1", result.Count)
	}
	if result.Matches[0].Relevance != 100 {
		t.Errorf("relevance = %v; want 100 for an exact-equal hit", result.Matches[0].Relevance)
	}
}

func TestSearchShortArabicKeywordRejectedByFuzzy(t *testing.T) {
	s := newService(storetest.Fixture())

	// "ال" is a substring of almost every verse; a fuzzy search for it
	// must come back empty, not fall through to substring matching.
	result, err := s.Search(context.Background(), "ال", Options{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 0 || len(result.Matches) != 0 {
		t.Errorf("count = %d; want an empty success for a two-letter fuzzy keyword", result.Count)
	}
	if result.Edition.Identifier != "quran-simple" {
		t.Errorf("edition = %s; want quran-simple in the empty envelope", result.Edition.Identifier)
	}

	// An explicit exact search is still allowed to match short keywords.
	exact, err := s.Search(context.Background(), "ال", Options{Exact: true})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if exact.Count == 0 {
		t.Error("exact search found nothing; substring matching must stay open to short keywords")
	}
}

func TestSearchSurahFilter(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "الله", Options{Surah: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d; want 1", result.Count)
	}
	if result.Matches[0].SurahNumber != 2 {
		t.Errorf("hit surah = %d; want 2", result.Matches[0].SurahNumber)
	}
}

func TestSearchLanguagePicksEdition(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "merciful", Options{Language: "en"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Edition.Identifier != "en.sahih" {
		t.Errorf("edition = %s; want en.sahih", result.Edition.Identifier)
	}
	if result.Count != 2 {
		t.Errorf("count = %d; want 2", result.Count)
	}
}

func TestSearchAudioEditionAttachesAudio(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.Search(context.Background(), "العالمين", Options{Edition: "ar.abdullahbasfar.hafs"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d; want 1", result.Count)
	}
	if result.Matches[0].Audio == "" {
		t.Error("audio URL missing on an audio-edition hit")
	}
}

func TestSearchUnknownEdition(t *testing.T) {
	s := newService(storetest.Fixture())
	_, err := s.Search(context.Background(), "mercy", Options{Edition: "xx.none"})
	if !errors.Is(err, qerrors.ErrEditionNotFound) {
		t.Errorf("error = %v; want ErrEditionNotFound", err)
	}
}

func TestSearchLimitOffset(t *testing.T) {
	s := newService(storetest.Fixture())

	all, err := s.Search(context.Background(), "الرحيم", Options{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if all.Count < 2 {
		t.Fatalf("count = %d; want at least 2", all.Count)
	}
	page, err := s.Search(context.Background(), "الرحيم", Options{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Count != 1 {
		t.Fatalf("paged count = %d; want 1", page.Count)
	}
	if page.Matches[0].Number != all.Matches[1].Number {
		t.Errorf("offset skipped to ayah %d; want %d", page.Matches[0].Number, all.Matches[1].Number)
	}
}
