package store

import (
	"testing"

	"github.com/quranhub/quranhub/internal/model"
)

func TestLookup(t *testing.T) {
	empty := NewLookup(nil)
	if !empty.None() {
		t.Error("empty lookup: None() = false")
	}
	if _, ok := empty.One(); ok {
		t.Error("empty lookup: One() reported a match")
	}

	single := NewLookup([]model.Edition{{Identifier: "quran-simple"}})
	e, ok := single.One()
	if !ok || e.Identifier != "quran-simple" {
		t.Errorf("One() = %v, %v; want the single match", e.Identifier, ok)
	}

	dup := NewLookup([]model.Edition{
		{Identifier: "ar.x", Type: model.TypeVersebyverse},
		{Identifier: "ar.x", Type: model.TypeSurah},
	})
	if _, ok := dup.One(); ok {
		t.Error("duplicate lookup: One() reported a single match")
	}
	if got := len(dup.Many()); got != 2 {
		t.Errorf("Many() len = %d; want 2", got)
	}
}
