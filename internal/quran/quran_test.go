package quran

import (
	"context"
	"errors"
	"strings"
	"testing"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
	"github.com/quranhub/quranhub/internal/store/storetest"
)

func newService(st *storetest.Store) *Service {
	return New(st, catalogue.New(st), catalogue.NewMapper(st))
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		want    Ref
		wantErr bool
	}{
		{"262", Ref{Global: 262}, false},
		{"2:255", Ref{Surah: 2, InSurah: 255}, false},
		{" 1:1 ", Ref{Surah: 1, InSurah: 1}, false},
		{"0", Ref{}, true},
		{"-3", Ref{}, true},
		{"115:1", Ref{}, true},
		{"2:0", Ref{}, true},
		{"2:255:1", Ref{}, true},
		{"abc", Ref{}, true},
		{"", Ref{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRef(tt.in)
		if tt.wantErr {
			if !errors.Is(err, qerrors.ErrInvalidCoordinate) {
				t.Errorf("ParseRef(%q) error = %v; want ErrInvalidCoordinate", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRef(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
}

func TestVerseByRefTextEdition(t *testing.T) {
	s := newService(storetest.Fixture())

	v, err := s.VerseByRef(context.Background(), Ref{Surah: 2, InSurah: 255}, "quran-simple")
	if err != nil {
		t.Fatalf("VerseByRef() error = %v", err)
	}
	if v.Number != 262 {
		t.Errorf("Number = %d; want 262", v.Number)
	}
	if v.NumberInSurah != 255 || v.Surah.Number != 2 {
		t.Errorf("coordinate = %d:%d; want 2:255", v.Surah.Number, v.NumberInSurah)
	}
	if v.Edition.Identifier != "quran-simple" {
		t.Errorf("edition = %s; want quran-simple", v.Edition.Identifier)
	}
	if v.Sajda.Mark != nil {
		t.Errorf("sajda mark set on a non-sajdah verse")
	}
	if v.Audio != "" {
		t.Errorf("audio attached to a text edition")
	}
}

func TestVerseByRefAudioEditionGetsNarrationText(t *testing.T) {
	s := newService(storetest.Fixture())

	v, err := s.VerseByRef(context.Background(), Ref{Surah: 1, InSurah: 1}, "ar.abdullahbasfar.hafs")
	if err != nil {
		t.Fatalf("VerseByRef() error = %v", err)
	}
	if v.Text == "" {
		t.Error("text missing: audio edition must fall back to its narration text")
	}
	if v.Edition.Format != model.FormatAudio {
		t.Errorf("edition format = %s; want audio", v.Edition.Format)
	}
	if !strings.HasSuffix(v.Audio, "/ar.abdullahbasfar.hafs/1.mp3") {
		t.Errorf("audio = %q; want .../ar.abdullahbasfar.hafs/1.mp3", v.Audio)
	}
	if len(v.AudioSecondary) != 2 {
		t.Fatalf("audioSecondary len = %d; want 2", len(v.AudioSecondary))
	}
	for _, u := range v.AudioSecondary {
		if !strings.Contains(u, "/128/") && !strings.Contains(u, "/64/") {
			t.Errorf("secondary URL %q has unexpected bitrate", u)
		}
	}
}

func TestVerseByRefNotFound(t *testing.T) {
	s := newService(storetest.Fixture())
	_, err := s.VerseByRef(context.Background(), Ref{Global: 9999}, "quran-simple")
	if !errors.Is(err, qerrors.ErrAyahNotFound) {
		t.Errorf("error = %v; want ErrAyahNotFound", err)
	}
}

func TestVerseByEditionsPreservesOrder(t *testing.T) {
	s := newService(storetest.Fixture())

	editions := []string{"en.sahih", "quran-simple", "quran-simple-clean"}
	verses, err := s.VerseByEditions(context.Background(), Ref{Surah: 1, InSurah: 2}, editions)
	if err != nil {
		t.Fatalf("VerseByEditions() error = %v", err)
	}
	if len(verses) != len(editions) {
		t.Fatalf("len = %d; want %d", len(verses), len(editions))
	}
	for i, e := range editions {
		if verses[i].Edition.Identifier != e {
			t.Errorf("verses[%d].Edition = %s; want %s", i, verses[i].Edition.Identifier, e)
		}
	}
}

func TestVerseByEditionsUnknownEdition(t *testing.T) {
	s := newService(storetest.Fixture())
	_, err := s.VerseByEditions(context.Background(), Ref{Global: 1}, []string{"quran-simple", "xx.none"})
	if !errors.Is(err, qerrors.ErrEditionNotFound) {
		t.Errorf("error = %v; want ErrEditionNotFound", err)
	}
}

func TestRandomStaysInEdition(t *testing.T) {
	s := newService(storetest.Fixture())
	for i := 0; i < 20; i++ {
		v, err := s.Random(context.Background(), "quran-warsh")
		if err != nil {
			t.Fatalf("Random() error = %v", err)
		}
		if v.Surah.Number != v.SurahNumber {
			t.Errorf("surah summary %d does not match verse surah %d", v.Surah.Number, v.SurahNumber)
		}
		if v.Edition.Identifier != "quran-warsh" {
			t.Errorf("edition = %s; want quran-warsh", v.Edition.Identifier)
		}
	}
}

func TestByUnitPage(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.ByUnit(context.Background(), store.UnitPage, 1, "quran-simple", UnitOptions{})
	if err != nil {
		t.Fatalf("ByUnit() error = %v", err)
	}
	if len(result.Ayahs) != 7 {
		t.Fatalf("page 1 ayahs = %d; want 7", len(result.Ayahs))
	}
	if len(result.Surahs) != 1 || result.Surahs[0].Number != 1 {
		t.Errorf("surahs = %+v; want [surah 1]", result.Surahs)
	}
	if len(result.Hizbs) != 1 || result.Hizbs[0] != 1 {
		t.Errorf("hizbs = %v; want [1]", result.Hizbs)
	}
	if result.TopSurah == nil || result.TopSurah.Number != 1 {
		t.Errorf("topSurah = %+v; want surah 1", result.TopSurah)
	}
	for _, a := range result.Ayahs {
		if a.Page != 1 {
			t.Errorf("ayah %d has page %d; want 1", a.Number, a.Page)
		}
	}
}

func TestByUnitRangeValidation(t *testing.T) {
	s := newService(storetest.Fixture())

	tests := []struct {
		unit   store.Unit
		number int
	}{
		{store.UnitPage, 0},
		{store.UnitPage, 605},
		{store.UnitJuz, 31},
		{store.UnitHizb, 61},
		{store.UnitHizbQuarter, 241},
		{store.UnitManzil, 8},
		{store.UnitRuku, 557},
	}
	for _, tt := range tests {
		_, err := s.ByUnit(context.Background(), tt.unit, tt.number, "quran-simple", UnitOptions{})
		if !errors.Is(err, qerrors.ErrInvalidCoordinate) {
			t.Errorf("ByUnit(%s, %d) error = %v; want ErrInvalidCoordinate", tt.unit, tt.number, err)
		}
	}
}

func TestByUnitLimitOffset(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.ByUnit(context.Background(), store.UnitJuz, 1, "quran-simple", UnitOptions{Limit: 3, Offset: 2})
	if err != nil {
		t.Fatalf("ByUnit() error = %v", err)
	}
	if len(result.Ayahs) != 3 {
		t.Fatalf("len = %d; want 3", len(result.Ayahs))
	}
	if result.Ayahs[0].Number != 3 {
		t.Errorf("first ayah = %d; want 3", result.Ayahs[0].Number)
	}
}

func TestPageWordsHafs(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.ByUnit(context.Background(), store.UnitPage, 1, "quran-simple", UnitOptions{Words: true})
	if err != nil {
		t.Fatalf("ByUnit() error = %v", err)
	}
	first := result.Ayahs[0]
	if len(first.Words) != 4 {
		t.Fatalf("1:1 words = %d; want 4", len(first.Words))
	}
	if first.Words[0].Location != "1:1:1" || first.Words[3].Location != "1:1:4" {
		t.Errorf("locations = %s..%s; want 1:1:1..1:1:4", first.Words[0].Location, first.Words[3].Location)
	}
	if first.Words[0].LineNumber != 2 {
		t.Errorf("1:1:1 line = %d; want 2", first.Words[0].LineNumber)
	}
}

func TestPageWordsNarrationMapping(t *testing.T) {
	s := newService(storetest.Fixture())

	result, err := s.ByUnit(context.Background(), store.UnitPage, 1, "quran-warsh", UnitOptions{Words: true})
	if err != nil {
		t.Fatalf("ByUnit() error = %v", err)
	}
	if len(result.Ayahs) != 7 {
		t.Fatalf("warsh page 1 ayahs = %d; want 7", len(result.Ayahs))
	}

	// Warsh 1:6 and 1:7 share Hafs 1:7; the second continues position
	// numbering, so its line numbers come from the later words.
	v6, v7 := result.Ayahs[5], result.Ayahs[6]
	if len(v6.Words) != 4 || len(v7.Words) != 5 {
		t.Fatalf("word counts = %d, %d; want 4, 5", len(v6.Words), len(v7.Words))
	}
	if v6.Words[0].LineNumber != 7 {
		t.Errorf("warsh 1:6 first word line = %d; want 7", v6.Words[0].LineNumber)
	}
	if v7.Words[0].LineNumber != 8 {
		t.Errorf("warsh 1:7 first word line = %d; want 8 (continued positions)", v7.Words[0].LineNumber)
	}
	if v7.Words[0].Location != "1:7:1" {
		t.Errorf("warsh 1:7 first word location = %s; want 1:7:1", v7.Words[0].Location)
	}
}

func TestUnitMetadata(t *testing.T) {
	s := newService(storetest.Fixture())

	meta, err := s.UnitMetadata(context.Background(), store.UnitPage)
	if err != nil {
		t.Fatalf("UnitMetadata() error = %v", err)
	}
	if len(meta) == 0 {
		t.Fatal("no page metadata")
	}
	if meta[0].Number != 1 || meta[0].FirstAyahNumber != 1 || meta[0].FirstSurah.Number != 1 {
		t.Errorf("page 1 meta = %+v", meta[0])
	}
}

func TestSajdas(t *testing.T) {
	s := newService(storetest.Fixture())

	verses, err := s.Sajdas(context.Background(), "quran-simple")
	if err != nil {
		t.Fatalf("Sajdas() error = %v", err)
	}
	if len(verses) != 1 {
		t.Fatalf("len = %d; want 1", len(verses))
	}
	v := verses[0]
	if v.Sajda.Mark == nil || !v.Sajda.Mark.Obligatory {
		t.Errorf("sajda mark = %+v; want obligatory", v.Sajda.Mark)
	}
	if v.Surah.Number != 32 {
		t.Errorf("surah = %d; want 32", v.Surah.Number)
	}
}

func TestWholeQuran(t *testing.T) {
	s := newService(storetest.Fixture())

	surahs, err := s.WholeQuran(context.Background(), "quran-simple")
	if err != nil {
		t.Fatalf("WholeQuran() error = %v", err)
	}
	byNumber := map[int]SurahContent{}
	for _, sc := range surahs {
		byNumber[sc.Number] = sc
	}
	if len(byNumber[1].Ayahs) != 7 {
		t.Errorf("surah 1 ayahs = %d; want 7", len(byNumber[1].Ayahs))
	}
	if len(byNumber[2].Ayahs) != 1 {
		t.Errorf("surah 2 ayahs = %d; want 1", len(byNumber[2].Ayahs))
	}
}

func TestMeta(t *testing.T) {
	s := newService(storetest.Fixture())

	m, err := s.Meta(context.Background())
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if m.Surahs != 114 || m.Ayahs != 6236 || m.Pages != 604 || m.Rukus != 556 {
		t.Errorf("structural constants wrong: %+v", m)
	}
	if m.Editions != 8 || m.Languages != 2 {
		t.Errorf("editions/languages = %d/%d; want 8/2", m.Editions, m.Languages)
	}
}

func TestNarrationDifferencesValidation(t *testing.T) {
	st := storetest.Fixture()
	st.AddDifference("quran-warsh", "quran-warsh", 1, store.NarrationDifference{})
	s := newService(st)

	_, err := s.NarrationDifferences(context.Background(), 1, "quran-simple", []string{"quran-warsh"})
	if !errors.Is(err, qerrors.ErrInvalidNarrationEdition) {
		t.Errorf("non-narration source error = %v; want ErrInvalidNarrationEdition", err)
	}

	_, err = s.NarrationDifferences(context.Background(), 700, "quran-warsh", nil)
	if !errors.Is(err, qerrors.ErrInvalidCoordinate) {
		t.Errorf("page 700 error = %v; want ErrInvalidCoordinate", err)
	}
}

func TestNarrationDifferences(t *testing.T) {
	st := storetest.Fixture()
	// Ship a second narration so source != target.
	st.EditionList = append(st.EditionList, model.Edition{
		Identifier: "quran-qaloon", Language: "ar", EnglishName: "Qaloon",
		Format: model.FormatText, Type: model.TypeNarration, Direction: "rtl",
	})
	st.AddDifference("quran-warsh", "quran-qaloon", 1, store.NarrationDifference{
		Surah: 1, SourceAyah: 1, TargetAyahs: []int{1}, Kind: "numbering",
	})
	s := newService(st)

	result, err := s.NarrationDifferences(context.Background(), 1, "quran-warsh", []string{"quran-qaloon"})
	if err != nil {
		t.Fatalf("NarrationDifferences() error = %v", err)
	}
	if len(result.Targets) != 1 || len(result.Targets[0].Differences) != 1 {
		t.Fatalf("targets = %+v", result.Targets)
	}
	if result.SourceEdition.Identifier != "quran-warsh" {
		t.Errorf("source = %s; want quran-warsh", result.SourceEdition.Identifier)
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("1:1:2")
	if err != nil || loc != (WordLocation{Surah: 1, Ayah: 1, Position: 2}) {
		t.Errorf("ParseLocation(1:1:2) = %+v, %v", loc, err)
	}
	for _, bad := range []string{"", "1:1", "1:1:2:3", "0:1:1", "115:1:1", "1:0:1", "a:b:c"} {
		if _, err := ParseLocation(bad); !errors.Is(err, qerrors.ErrInvalidCoordinate) {
			t.Errorf("ParseLocation(%q) error = %v; want ErrInvalidCoordinate", bad, err)
		}
	}
}

func TestWordImageURL(t *testing.T) {
	s := newService(storetest.Fixture())
	loc := WordLocation{Surah: 1, Ayah: 1, Position: 2}

	img, err := s.WordImageURL(context.Background(), loc, "v4")
	if err != nil {
		t.Fatalf("WordImageURL() error = %v", err)
	}
	if img.ImgURL != "https://quranhub.b-cdn.net/quran/words/v4/1/1/2.png" {
		t.Errorf("img_url = %s", img.ImgURL)
	}

	if _, err := s.WordImageURL(context.Background(), loc, "v3"); !errors.Is(err, qerrors.ErrInvalidCoordinate) {
		t.Errorf("invalid type error = %v; want ErrInvalidCoordinate", err)
	}
	if _, err := s.WordImageURL(context.Background(), WordLocation{Surah: 1, Ayah: 1, Position: 99}, "v1"); !errors.Is(err, qerrors.ErrNotFound) {
		t.Errorf("missing word error = %v; want ErrNotFound", err)
	}
}

func TestAssets(t *testing.T) {
	s := newService(storetest.Fixture())
	ctx := context.Background()

	layouts, err := s.MushafLayouts(ctx)
	if err != nil || len(layouts) != 1 {
		t.Fatalf("MushafLayouts() = %v, %v", layouts, err)
	}
	lines, err := s.MushafPage(ctx, 1, 1)
	if err != nil || len(lines) != 2 {
		t.Fatalf("MushafPage() = %v, %v", lines, err)
	}
	if lines[0].Line != 1 || lines[1].Line != 2 {
		t.Errorf("lines out of order: %+v", lines)
	}
	if _, err := s.MushafPage(ctx, 9, 1); !errors.Is(err, qerrors.ErrNotFound) {
		t.Errorf("unknown layout error = %v; want ErrNotFound", err)
	}
	if _, err := s.MushafPage(ctx, 1, 9999); !errors.Is(err, qerrors.ErrNotFound) {
		t.Errorf("page out of range error = %v; want ErrNotFound", err)
	}

	if _, err := s.FontFiles(ctx, 1); err != nil {
		t.Errorf("FontFiles(1) error = %v", err)
	}
	if _, err := s.FontFiles(ctx, 42); !errors.Is(err, qerrors.ErrNotFound) {
		t.Errorf("FontFiles(42) error = %v; want ErrNotFound", err)
	}
	if _, err := s.FontPageFile(ctx, 1, 1); err != nil {
		t.Errorf("FontPageFile(1,1) error = %v", err)
	}
	if _, err := s.FontPageFile(ctx, 1, 2); !errors.Is(err, qerrors.ErrNotFound) {
		t.Errorf("FontPageFile(1,2) error = %v; want ErrNotFound", err)
	}
}
