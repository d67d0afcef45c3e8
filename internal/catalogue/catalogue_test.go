package catalogue

import (
	"context"
	"errors"
	"testing"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
	"github.com/quranhub/quranhub/internal/store/storetest"
)

func TestResolveTextEdition(t *testing.T) {
	c := New(storetest.Fixture())

	res, err := c.Resolve(context.Background(), "quran-simple", IntentText)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Response.Identifier != "quran-simple" {
		t.Errorf("response = %s; want quran-simple", res.Response.Identifier)
	}
	if res.TextLookup.Identifier != res.Response.Identifier {
		t.Errorf("text lookup %s != response %s for a text edition", res.TextLookup.Identifier, res.Response.Identifier)
	}
}

func TestResolveUnknownEdition(t *testing.T) {
	c := New(storetest.Fixture())

	_, err := c.Resolve(context.Background(), "xx.nothing", IntentText)
	if !errors.Is(err, qerrors.ErrEditionNotFound) {
		t.Errorf("Resolve(unknown) error = %v; want ErrEditionNotFound", err)
	}
}

func TestResolveAudioUsesNarrationSibling(t *testing.T) {
	c := New(storetest.Fixture())

	res, err := c.Resolve(context.Background(), "ar.sahlyahya.warsh", IntentAudio)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Response.Format != model.FormatAudio {
		t.Errorf("response format = %s; want audio", res.Response.Format)
	}
	if res.TextLookup.Identifier != "quran-warsh" {
		t.Errorf("text lookup = %s; want quran-warsh", res.TextLookup.Identifier)
	}
	if res.TextLookup.Format != model.FormatText {
		t.Errorf("text lookup format = %s; want text", res.TextLookup.Format)
	}
}

func TestResolveAudioMissingSiblingFallsBack(t *testing.T) {
	c := New(storetest.Fixture())

	res, err := c.Resolve(context.Background(), "ar.orphanaudio", IntentAudio)
	if err != nil {
		t.Fatalf("Resolve() error = %v; fallback must not fail", err)
	}
	if res.TextLookup.Identifier != DefaultTextEdition {
		t.Errorf("text lookup = %s; want %s", res.TextLookup.Identifier, DefaultTextEdition)
	}
}

func TestResolveDuplicateIdentifierCollapse(t *testing.T) {
	c := New(storetest.Fixture())

	tests := []struct {
		intent   Intent
		wantType string
	}{
		{IntentText, model.TypeVersebyverse},
		{IntentAudio, model.TypeVersebyverse},
		{IntentSurahAudio, model.TypeSurah},
	}
	for _, tt := range tests {
		res, err := c.Resolve(context.Background(), "ar.abdullahbasfar.hafs", tt.intent)
		if err != nil {
			t.Fatalf("Resolve(intent=%d) error = %v", tt.intent, err)
		}
		if res.Response.Type != tt.wantType {
			t.Errorf("intent %d: response type = %s; want %s", tt.intent, res.Response.Type, tt.wantType)
		}
		if res.TextLookup.Format != model.FormatText {
			t.Errorf("intent %d: text lookup format = %s; want text", tt.intent, res.TextLookup.Format)
		}
	}
}

func TestResolvedPairInvariant(t *testing.T) {
	c := New(storetest.Fixture())

	for _, id := range []string{"quran-simple", "en.sahih", "quran-warsh", "ar.abdullahbasfar.hafs", "ar.sahlyahya.warsh", "ar.orphanaudio"} {
		res, err := c.Resolve(context.Background(), id, IntentText)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", id, err)
		}
		if res.TextLookup.Format != model.FormatText {
			t.Errorf("%s: text lookup format = %s; want text", id, res.TextLookup.Format)
		}
		ok := res.TextLookup.Identifier == res.Response.Identifier ||
			res.TextLookup.Identifier == res.Response.NarratorIdentifier ||
			res.TextLookup.Identifier == DefaultTextEdition
		if !ok {
			t.Errorf("%s: text lookup %s is neither the response, its narrator, nor the default", id, res.TextLookup.Identifier)
		}
	}
}

func TestListFilters(t *testing.T) {
	c := New(storetest.Fixture())

	audio, err := c.List(context.Background(), store.EditionFilter{Format: model.FormatAudio})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, e := range audio {
		if e.Format != model.FormatAudio {
			t.Errorf("filter leak: got format %s", e.Format)
		}
	}

	byNarrator, err := c.List(context.Background(), store.EditionFilter{Narrator: "quran-warsh"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byNarrator) != 1 || byNarrator[0].Identifier != "ar.sahlyahya.warsh" {
		t.Errorf("narrator filter = %+v; want the warsh audio edition", byNarrator)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := New(storetest.Fixture())
	if _, err := c.Lookup(context.Background(), "nope"); !errors.Is(err, qerrors.ErrEditionNotFound) {
		t.Errorf("Lookup(nope) error = %v; want ErrEditionNotFound", err)
	}
}

func TestStorageErrorsBecomeInternal(t *testing.T) {
	st := storetest.Fixture()
	st.Err = errors.New("connection reset")
	c := New(st)

	if _, err := c.Resolve(context.Background(), "quran-simple", IntentText); !errors.Is(err, qerrors.ErrInternal) {
		t.Errorf("Resolve() with failing store = %v; want ErrInternal", err)
	}
	if _, err := c.Summarise(context.Background()); !errors.Is(err, qerrors.ErrInternal) {
		t.Errorf("Summarise() with failing store = %v; want ErrInternal", err)
	}
}

func TestMapper(t *testing.T) {
	m := NewMapper(storetest.Fixture())
	ctx := context.Background()

	got, err := m.Map(ctx, "quran-simple", "quran-warsh", 1, 7)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(got) != 2 || got[0] != 6 || got[1] != 7 {
		t.Errorf("Map(hafs->warsh, 1:7) = %v; want [6 7]", got)
	}

	// Surah absent from the table passes through.
	got, err = m.Map(ctx, "quran-simple", "quran-warsh", 2, 255)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(got) != 1 || got[0] != 255 {
		t.Errorf("Map(2:255) = %v; want [255]", got)
	}

	hafs, target, err := m.FromHafs(ctx, "quran-warsh", 1, 1)
	if err != nil {
		t.Fatalf("FromHafs() error = %v", err)
	}
	if len(hafs) != 2 || len(target) != 1 {
		t.Errorf("FromHafs(1:1) = %v, %v; want [1 2], [1]", hafs, target)
	}

	if !m.IsHafs("quran-simple") || m.IsHafs("quran-warsh") {
		t.Errorf("IsHafs misclassifies editions")
	}
}

func TestSummarise(t *testing.T) {
	c := New(storetest.Fixture())

	a, err := c.Summarise(context.Background())
	if err != nil {
		t.Fatalf("Summarise() error = %v", err)
	}
	if a.TotalEditions != 8 {
		t.Errorf("TotalEditions = %d; want 8", a.TotalEditions)
	}
	if a.ByFormat[model.FormatAudio] != 4 || a.ByFormat[model.FormatText] != 4 {
		t.Errorf("ByFormat = %v; want 4 audio, 4 text", a.ByFormat)
	}
	if a.UniqueReciters != 3 {
		t.Errorf("UniqueReciters = %d; want 3", a.UniqueReciters)
	}
	// 3 versebyverse editions with 3+1+1 bitrates and one surah edition
	// with 1 bitrate.
	want := (3+1+1)*model.AyahCount + 1*model.SurahCount
	if a.TotalAudioFiles != want {
		t.Errorf("TotalAudioFiles = %d; want %d", a.TotalAudioFiles, want)
	}
	if a.Bitrates.Min != 32 || a.Bitrates.Max != 192 {
		t.Errorf("Bitrates = %+v; want min 32 max 192", a.Bitrates)
	}
	if a.ByLanguage["en"].Text != 1 || a.ByLanguage["ar"].Audio != 4 {
		t.Errorf("ByLanguage = %v", a.ByLanguage)
	}
}
