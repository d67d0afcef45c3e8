// Package quran implements the verse retrievers: single verses by
// reference, structural units (page, juz, hizb, quarter, manzil, ruku,
// sajdah), whole-text retrieval, word-level expansion, and the narration
// differences listing. Every retriever resolves its edition through the
// catalogue and queries storage under the text-lookup edition while
// describing results with the response edition.
package quran

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quranhub/quranhub/core/audio"
	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// Service bundles the retrievers over one store.
type Service struct {
	store  store.Store
	cat    *catalogue.Catalogue
	mapper *catalogue.Mapper
}

// New wires the retriever service.
func New(st store.Store, cat *catalogue.Catalogue, mapper *catalogue.Mapper) *Service {
	return &Service{store: st, cat: cat, mapper: mapper}
}

// Ref is a verse reference: either a global ayah number or a
// surah:ayah pair.
type Ref struct {
	Global  int
	Surah   int
	InSurah int
}

// ParseRef parses "262" or "2:255". The two coordinate systems share the
// validation: numbers must be positive integers.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if surah, inSurah, ok := strings.Cut(s, ":"); ok {
		sn, err1 := strconv.Atoi(surah)
		an, err2 := strconv.Atoi(inSurah)
		if err1 != nil || err2 != nil || sn < 1 || sn > model.SurahCount || an < 1 {
			return Ref{}, &qerrors.CoordinateError{Field: "reference", Value: s, Message: "want surah:ayah with surah 1..114"}
		}
		return Ref{Surah: sn, InSurah: an}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Ref{}, &qerrors.CoordinateError{Field: "reference", Value: s, Message: "want a global ayah number or surah:ayah"}
	}
	return Ref{Global: n}, nil
}

// Verse is the standard ayah envelope: the verse, its surah summary, the
// edition descriptor, and audio URLs for audio editions.
type Verse struct {
	model.Ayah
	Surah          model.Surah   `json:"surah"`
	Edition        model.Edition `json:"edition"`
	Audio          string        `json:"audio,omitempty"`
	AudioSecondary []string      `json:"audioSecondary,omitempty"`
	Words          []WordView    `json:"words,omitempty"`
}

// WordView is one expanded word on a page response.
type WordView struct {
	Text       string `json:"text"`
	Location   string `json:"location"`
	LineNumber int    `json:"lineNumber"`
	Page       int    `json:"page"`
}

// newVerse assembles the envelope and attaches audio when the response
// edition carries recordings.
func newVerse(a model.Ayah, su model.Surah, res catalogue.Resolved) Verse {
	v := Verse{Ayah: a, Surah: su, Edition: res.Response}
	if res.Response.IsAudio() {
		v.Audio, v.AudioSecondary = audio.AyahURLs(res.Response.Bitrates, res.Response.Identifier, a.Number)
	}
	return v
}

func location(surah, ayah, position int) string {
	return fmt.Sprintf("%d:%d:%d", surah, ayah, position)
}
