// Package store defines the query interface the services are written
// against. The postgres subpackage implements it; storetest provides an
// in-memory fake for service tests.
//
// Implementations return the core/errors taxonomy for missing rows
// (ErrAyahNotFound, ErrNotFound) and raw driver errors otherwise; callers
// wrap the latter with errors.Internal.
package store

import (
	"context"

	"github.com/quranhub/quranhub/core/narration"
	"github.com/quranhub/quranhub/internal/model"
)

// Unit names a structural subdivision of the text.
type Unit string

const (
	UnitPage        Unit = "page"
	UnitJuz         Unit = "juz"
	UnitHizb        Unit = "hizb"
	UnitHizbQuarter Unit = "hizbQuarter"
	UnitManzil      Unit = "manzil"
	UnitRuku        Unit = "ruku"
)

// Max returns the highest valid number for the unit, or 0 for an unknown
// unit.
func (u Unit) Max() int {
	switch u {
	case UnitPage:
		return model.PageCount
	case UnitJuz:
		return model.JuzCount
	case UnitHizb:
		return model.HizbCount
	case UnitHizbQuarter:
		return model.HizbQuarterCount
	case UnitManzil:
		return model.ManzilCount
	case UnitRuku:
		return model.RukuCount
	}
	return 0
}

// EditionFilter narrows an edition listing. Zero values mean "any".
type EditionFilter struct {
	Language string
	Type     string
	Format   string
	Narrator string // narrator identifier an audio edition follows
}

// Lookup is the result of a by-identifier edition lookup: none, one, or
// many (duplicate identifiers cover e.g. a versebyverse and a surah audio
// edition).
type Lookup struct {
	editions []model.Edition
}

// NewLookup wraps the editions matching an identifier.
func NewLookup(editions []model.Edition) Lookup { return Lookup{editions: editions} }

// None reports an empty lookup.
func (l Lookup) None() bool { return len(l.editions) == 0 }

// One returns the single match, if exactly one edition matched.
func (l Lookup) One() (model.Edition, bool) {
	if len(l.editions) == 1 {
		return l.editions[0], true
	}
	return model.Edition{}, false
}

// Many returns all matches.
func (l Lookup) Many() []model.Edition { return l.editions }

// SearchCandidate is one verse accepted by a search query, with the
// trigram measures populated for fuzzy queries.
type SearchCandidate struct {
	Ayah           model.Ayah
	Similarity     float64
	WordSimilarity float64
}

// NarrationDifference is one annotated divergence between two narrations
// on a page, in the source narration's coordinates.
type NarrationDifference struct {
	Surah       int      `json:"surah"`
	SourceAyah  int      `json:"sourceAyah"`
	TargetAyahs []int    `json:"targetAyahs"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
}

// Store is the abstract query surface over the relational schema. All
// methods take the caller's context; storage queries are the only
// suspension points in the request path.
type Store interface {
	// Editions.
	Editions(ctx context.Context, f EditionFilter) ([]model.Edition, error)
	EditionByIdentifier(ctx context.Context, identifier string) (Lookup, error)
	EditionLanguages(ctx context.Context) ([]string, error)
	EditionTypes(ctx context.Context) ([]string, error)
	EditionFormats(ctx context.Context) ([]string, error)
	EditionNarrators(ctx context.Context) ([]string, error)
	ReciterByID(ctx context.Context, id int64) (model.Reciter, error)
	TafsirByID(ctx context.Context, id int64) (model.Tafsir, error)

	// Surahs and verses. Edition arguments are text-lookup edition
	// identifiers; ayah numbering follows that edition.
	Surahs(ctx context.Context) ([]model.Surah, error)
	SurahByNumber(ctx context.Context, number int) (model.Surah, error)
	AyahByNumber(ctx context.Context, edition string, number int) (model.Ayah, error)
	AyahBySurah(ctx context.Context, edition string, surah, inSurah int) (model.Ayah, error)
	AyahsBySurah(ctx context.Context, edition string, surah, limit, offset int) ([]model.Ayah, error)
	AyahsByUnit(ctx context.Context, edition string, unit Unit, number, limit, offset int) ([]model.Ayah, error)
	AllAyahs(ctx context.Context, edition string) ([]model.Ayah, error)
	AyahCount(ctx context.Context, edition string) (int, error)
	SajdaAyahs(ctx context.Context, edition string) ([]model.Ayah, error)
	UnitMetadata(ctx context.Context, unit Unit) ([]model.UnitMeta, error)

	// Narration numbering and differences.
	NarrationRows(ctx context.Context, surah int) ([]narration.Row, error)
	NarrationDifferences(ctx context.Context, source, target string, page int) ([]NarrationDifference, error)

	// Search. Keywords arrive already normalised.
	SearchExact(ctx context.Context, edition, keyword string, surah int) ([]SearchCandidate, error)
	SearchFuzzy(ctx context.Context, edition, keyword string, arabic bool, surah int) ([]SearchCandidate, error)

	// Words (Hafs-indexed).
	Word(ctx context.Context, surah, inSurah, position int) (model.Word, error)
	WordsForAyah(ctx context.Context, surah, inSurah int) ([]model.Word, error)

	// Relations (Hafs coordinates).
	AyahMatches(ctx context.Context, surah, inSurah int) ([]model.AyahMatch, error)
	MatchSpans(ctx context.Context, matchID int64) ([]model.MatchSpan, error)
	PhraseOccurrences(ctx context.Context, surah, inSurah int) ([]model.PhraseOccurrence, error)
	PhraseByID(ctx context.Context, id int64) (model.Phrase, error)
	Themes(ctx context.Context) ([]model.Theme, error)
	ThemesForAyah(ctx context.Context, surah, inSurah int) ([]model.Theme, error)

	// Layouts and fonts.
	MushafLayouts(ctx context.Context) ([]model.MushafLayout, error)
	MushafLines(ctx context.Context, layoutID int64, page int) ([]model.MushafLine, error)
	Fonts(ctx context.Context) ([]model.Font, error)
	FontFiles(ctx context.Context, fontID int64) ([]model.FontFile, error)
	FontPageFile(ctx context.Context, fontID int64, page int) (model.FontPageFile, error)

	// Ping verifies connectivity for the readiness probe.
	Ping(ctx context.Context) error
}
