// Package model defines the data model shared by the storage layer and
// the services: surahs, ayahs, editions, words, relations, and layout
// records. JSON tags match the public API field names.
package model

import "encoding/json"

// Edition formats.
const (
	FormatText  = "text"
	FormatAudio = "audio"
)

// Edition types.
const (
	TypeQuran           = "quran"
	TypeTranslation     = "translation"
	TypeTafsir          = "tafsir"
	TypeNarration       = "narration"
	TypeTransliteration = "transliteration"
	TypeVersebyverse    = "versebyverse"
	TypeSurah           = "surah"
)

// Structural constants of the canonical (Hafs) text.
const (
	SurahCount       = 114
	AyahCount        = 6236
	PageCount        = 604
	JuzCount         = 30
	HizbCount        = 60
	HizbQuarterCount = 240
	ManzilCount      = 7
	RukuCount        = 556
	SajdaCount       = 15
)

// Surah is one chapter's immutable metadata.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationOrder        int    `json:"revelationOrder,omitempty"`
}

// SajdahMark flags a prostration verse.
type SajdahMark struct {
	ID          int  `json:"id"`
	Recommended bool `json:"recommended"`
	Obligatory  bool `json:"obligatory"`
}

// Sajda serialises as false for ordinary verses and as the mark object for
// prostration verses, matching the public API shape.
type Sajda struct {
	Mark *SajdahMark
}

func (s Sajda) MarshalJSON() ([]byte, error) {
	if s.Mark == nil {
		return []byte("false"), nil
	}
	return json.Marshal(s.Mark)
}

func (s *Sajda) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		s.Mark = nil
		return nil
	}
	s.Mark = &SajdahMark{}
	return json.Unmarshal(data, s.Mark)
}

// Ayah is one verse row under a specific edition. Number is the global
// ayah number in that edition's numbering.
type Ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	SurahNumber   int    `json:"-"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Manzil        int    `json:"manzil"`
	Page          int    `json:"page"`
	Ruku          int    `json:"ruku"`
	Hizb          int    `json:"hizb"`
	HizbQuarter   int    `json:"hizbQuarter"`
	Sajda         Sajda  `json:"sajda"`
}

// Edition is one rendering of the text: an original script, a
// translation, a tafsir, a narration, or a per-reciter audio set.
type Edition struct {
	Identifier         string `json:"identifier"`
	Language           string `json:"language"`
	Name               string `json:"name"`
	EnglishName        string `json:"englishName"`
	Format             string `json:"format"`
	Type               string `json:"type"`
	Direction          string `json:"direction,omitempty"`
	NarratorIdentifier string `json:"narratorIdentifier,omitempty"`
	Bitrates           []int  `json:"-"`
	ReciterID          int64  `json:"-"`
	TafsirID           int64  `json:"-"`
}

// IsAudio reports whether the edition serves recorded recitation.
func (e Edition) IsAudio() bool { return e.Format == FormatAudio }

// Reciter is presentation metadata referenced by audio editions.
type Reciter struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Tafsir is presentation metadata referenced by tafsir editions.
type Tafsir struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Word is one word of the Hafs text with its typographic assets. Words
// are keyed (surah, ayah-in-surah, position), position starting at 1.
type Word struct {
	Surah       int    `json:"surah"`
	AyahInSurah int    `json:"ayah"`
	Position    int    `json:"position"`
	Text        string `json:"text"`
	LineNumber  int    `json:"lineNumber"`
	Page        int    `json:"page"`
	Tajweed     string `json:"tajweed,omitempty"`
}

// Phrase is a mutashabih phrase span in its source Hafs verse.
type Phrase struct {
	ID          int64
	SourceSurah int
	SourceAyah  int
	StartPos    int
	EndPos      int
}

// PhraseOccurrence is one member of a phrase's equivalence class.
type PhraseOccurrence struct {
	PhraseID    int64
	Surah       int
	AyahInSurah int
	StartPos    int
	EndPos      int
}

// AyahMatch is one directional row of the symmetric similar-verse
// relation, in Hafs coordinates.
type AyahMatch struct {
	ID               int64
	SourceSurah      int
	SourceAyah       int
	MatchedSurah     int
	MatchedAyah      int
	Score            float64
	Coverage         float64
	MatchedWordCount int
}

// MatchSpan is a word-span pair of an AyahMatch on the matched side.
type MatchSpan struct {
	MatchID      int64
	MatchedStart int
	MatchedEnd   int
}

// Theme is a named topic linked to ayahs in Hafs coordinates.
type Theme struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

// MushafLayout describes one printed page/line composition.
type MushafLayout struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LinesPerPage int    `json:"linesPerPage"`
	TotalPages   int    `json:"totalPages"`
}

// MushafLine is one line of a layout page with its word-id range.
type MushafLine struct {
	LayoutID    int64  `json:"-"`
	Page        int    `json:"page"`
	Line        int    `json:"line"`
	LineType    string `json:"lineType"`
	IsCentered  bool   `json:"isCentered"`
	SurahNumber int    `json:"surahNumber,omitempty"`
	FirstWordID int64  `json:"firstWordId,omitempty"`
	LastWordID  int64  `json:"lastWordId,omitempty"`
}

// Font and its downloadable files.
type Font struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// FontFile is one downloadable file of a font family.
type FontFile struct {
	FontID int64  `json:"-"`
	Format string `json:"format"`
	URL    string `json:"url"`
}

// FontPageFile is a per-page font file (page-segmented mushaf fonts).
type FontPageFile struct {
	FontID int64  `json:"-"`
	Page   int    `json:"page"`
	URL    string `json:"url"`
}

// UnitMeta summarises one structural unit for the metadata listings.
type UnitMeta struct {
	Number          int    `json:"number"`
	FirstPage       int    `json:"firstPage"`
	FirstAyahNumber int    `json:"firstAyahNumber"`
	FirstAyahText   string `json:"firstAyahText"`
	FirstSurah      Surah  `json:"firstSurah"`
}
