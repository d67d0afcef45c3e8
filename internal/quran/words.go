package quran

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
)

// wordImageBase is the CDN root for word glyph images.
const wordImageBase = "https://quranhub.b-cdn.net/quran/words"

// WordLocation addresses one word as surah:ayah:position.
type WordLocation struct {
	Surah    int
	Ayah     int
	Position int
}

// ParseLocation parses "1:1:2" into a word location.
func ParseLocation(s string) (WordLocation, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	bad := func() (WordLocation, error) {
		return WordLocation{}, &qerrors.CoordinateError{Field: "location", Value: s, Message: "want surah:ayah:position"}
	}
	if len(parts) != 3 {
		return bad()
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return bad()
		}
		nums[i] = n
	}
	if nums[0] > model.SurahCount {
		return bad()
	}
	return WordLocation{Surah: nums[0], Ayah: nums[1], Position: nums[2]}, nil
}

// Word loads the word at a location.
func (s *Service) Word(ctx context.Context, loc WordLocation) (model.Word, error) {
	w, err := s.store.Word(ctx, loc.Surah, loc.Ayah, loc.Position)
	return w, qerrors.Internal("store.Word", err)
}

// WordImage is a word's glyph image reference.
type WordImage struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	ImgURL   string `json:"img_url"`
}

// imageStyles maps the accepted image type parameter to its CDN path
// segment.
var imageStyles = map[string]string{
	"v1": "v1",
	"v2": "v2",
	"v4": "v4",
}

// WordImageURL composes the CDN image URL for a word in the given style.
// The word must exist; an unknown style is a validation error.
func (s *Service) WordImageURL(ctx context.Context, loc WordLocation, style string) (WordImage, error) {
	if style == "" {
		style = "v1"
	}
	segment, ok := imageStyles[style]
	if !ok {
		return WordImage{}, &qerrors.CoordinateError{Field: "type", Value: style, Message: "want v1, v2 or v4"}
	}
	w, err := s.Word(ctx, loc)
	if err != nil {
		return WordImage{}, err
	}
	return WordImage{
		Location: location(w.Surah, w.AyahInSurah, w.Position),
		Type:     style,
		ImgURL:   fmt.Sprintf("%s/%s/%d/%d/%d.png", wordImageBase, segment, w.Surah, w.AyahInSurah, w.Position),
	}, nil
}

// expandWords attaches word-level metadata to a page's verses. Line
// numbers come from the Hafs-indexed word table; verses of non-Hafs
// narrations are mapped back to Hafs first. When one Hafs verse splits
// across several narration verses, the later verses continue position
// numbering where the previous verse stopped; if the previous verse of
// the class is absent (offset paging cut the page), numbering restarts
// at the class head.
func (s *Service) expandWords(ctx context.Context, res catalogue.Resolved, verses []Verse) error {
	isHafs := s.mapper.IsHafs(res.TextLookup.Identifier)

	prevClass := ""
	prevFinal := 0
	for i := range verses {
		v := &verses[i]
		tokens := strings.Fields(v.Text)

		basePos := 0
		hafsList := []int{v.NumberInSurah}
		if !isHafs {
			var err error
			hafsList, err = s.mapper.ToHafs(ctx, res.TextLookup.Identifier, v.SurahNumber, v.NumberInSurah)
			if err != nil {
				return err
			}
			class := fmt.Sprintf("%d:%d", v.SurahNumber, hafsList[0])
			targets, err := s.mapper.Map(ctx, catalogue.DefaultTextEdition, res.TextLookup.Identifier, v.SurahNumber, hafsList[0])
			if err != nil {
				return err
			}
			if len(targets) > 1 && class == prevClass {
				basePos = prevFinal
			}
			prevClass = class
		}

		var hafsWords []model.Word
		for _, h := range hafsList {
			ws, err := s.store.WordsForAyah(ctx, v.SurahNumber, h)
			if err != nil {
				return qerrors.Internal("store.WordsForAyah", err)
			}
			hafsWords = append(hafsWords, ws...)
		}

		for j, tok := range tokens {
			view := WordView{
				Text:     tok,
				Location: location(v.SurahNumber, v.NumberInSurah, j+1),
				Page:     v.Page,
			}
			if run := basePos + j; run < len(hafsWords) {
				view.LineNumber = hafsWords[run].LineNumber
				view.Page = hafsWords[run].Page
			}
			v.Words = append(v.Words, view)
		}
		prevFinal = basePos + len(tokens)
	}
	return nil
}
