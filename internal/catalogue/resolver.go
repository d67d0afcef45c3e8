package catalogue

import (
	"context"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/logging"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// Intent states what the caller needs from an edition, steering the
// collapse of duplicate identifiers.
type Intent int

const (
	// IntentText covers every text-bearing use, including audio editions
	// that need their narration's text.
	IntentText Intent = iota
	// IntentAudio prefers the verse-by-verse audio variant.
	IntentAudio
	// IntentSurahAudio prefers the whole-surah audio variant.
	IntentSurahAudio
)

// Resolved is the canonical edition pair: the edition the caller asked
// for, and the edition whose rows must be queried for verse text. For
// text editions the two coincide; for audio editions TextLookup is the
// narration's text sibling, or the default text edition when the sibling
// is missing.
type Resolved struct {
	Response   model.Edition
	TextLookup model.Edition
}

// Resolve turns an identifier into the canonical edition pair.
func (c *Catalogue) Resolve(ctx context.Context, identifier string, intent Intent) (Resolved, error) {
	lookup, err := c.store.EditionByIdentifier(ctx, identifier)
	if err != nil {
		return Resolved{}, qerrors.Internal("store.EditionByIdentifier", err)
	}
	if lookup.None() {
		return Resolved{}, &qerrors.EditionNotFoundError{Identifier: identifier}
	}

	response := collapse(lookup, intent)
	if !response.IsAudio() {
		return Resolved{Response: response, TextLookup: response}, nil
	}

	sibling, ok, err := c.textSibling(ctx, response.NarratorIdentifier)
	if err != nil {
		return Resolved{}, err
	}
	if !ok {
		logging.WarnContext(ctx, "audio edition has no text sibling, using default",
			"edition", response.Identifier,
			"narrator", response.NarratorIdentifier,
			"default", DefaultTextEdition)
		sibling, ok, err = c.textSibling(ctx, DefaultTextEdition)
		if err != nil {
			return Resolved{}, err
		}
		if !ok {
			// Default text edition absent from the catalogue; resolution
			// still must not fail, so synthesise its handle.
			sibling = model.Edition{
				Identifier: DefaultTextEdition,
				Language:   "ar",
				Format:     model.FormatText,
				Type:       model.TypeQuran,
			}
		}
	}
	return Resolved{Response: response, TextLookup: sibling}, nil
}

// collapse picks one record among duplicates sharing an identifier:
// versebyverse wins unless the sole intent is surah-level audio.
func collapse(lookup store.Lookup, intent Intent) model.Edition {
	if e, ok := lookup.One(); ok {
		return e
	}
	editions := lookup.Many()
	preferred := model.TypeVersebyverse
	if intent == IntentSurahAudio {
		preferred = model.TypeSurah
	}
	for _, e := range editions {
		if e.Type == preferred {
			return e
		}
	}
	return editions[0]
}

// textSibling finds the text edition with the given identifier.
func (c *Catalogue) textSibling(ctx context.Context, identifier string) (model.Edition, bool, error) {
	if identifier == "" {
		return model.Edition{}, false, nil
	}
	lookup, err := c.store.EditionByIdentifier(ctx, identifier)
	if err != nil {
		return model.Edition{}, false, qerrors.Internal("store.EditionByIdentifier", err)
	}
	for _, e := range lookup.Many() {
		if e.Format == model.FormatText {
			return e, true, nil
		}
	}
	return model.Edition{}, false, nil
}
