// Package catalogue is the source of truth for edition records: filtered
// listings, facet queries, analytics, and the resolver that turns an
// identifier into the (response, text-lookup) edition pair every
// retriever works with.
package catalogue

import (
	"context"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// DefaultTextEdition is the fallback text edition when an audio edition
// has no text sibling.
const DefaultTextEdition = "quran-simple"

// ArabicSearchEdition is the canonical clean-script edition Arabic
// search runs against.
const ArabicSearchEdition = "quran-simple-clean"

// Catalogue serves edition listings and lookups.
type Catalogue struct {
	store store.Store
}

// New returns a catalogue over the given store.
func New(st store.Store) *Catalogue {
	return &Catalogue{store: st}
}

// List returns the editions matching the filter.
func (c *Catalogue) List(ctx context.Context, f store.EditionFilter) ([]model.Edition, error) {
	editions, err := c.store.Editions(ctx, f)
	return editions, qerrors.Internal("store.Editions", err)
}

// Languages lists the distinct edition languages.
func (c *Catalogue) Languages(ctx context.Context) ([]string, error) {
	v, err := c.store.EditionLanguages(ctx)
	return v, qerrors.Internal("store.EditionLanguages", err)
}

// Types lists the distinct edition types.
func (c *Catalogue) Types(ctx context.Context) ([]string, error) {
	v, err := c.store.EditionTypes(ctx)
	return v, qerrors.Internal("store.EditionTypes", err)
}

// Formats lists the distinct edition formats.
func (c *Catalogue) Formats(ctx context.Context) ([]string, error) {
	v, err := c.store.EditionFormats(ctx)
	return v, qerrors.Internal("store.EditionFormats", err)
}

// Narrators lists the distinct narrator identifiers carried by audio
// editions.
func (c *Catalogue) Narrators(ctx context.Context) ([]string, error) {
	v, err := c.store.EditionNarrators(ctx)
	return v, qerrors.Internal("store.EditionNarrators", err)
}

// Lookup returns every edition sharing an identifier, unresolved.
// Consumers needing a single record go through Resolve.
func (c *Catalogue) Lookup(ctx context.Context, identifier string) ([]model.Edition, error) {
	lookup, err := c.store.EditionByIdentifier(ctx, identifier)
	if err != nil {
		return nil, qerrors.Internal("store.EditionByIdentifier", err)
	}
	if lookup.None() {
		return nil, &qerrors.EditionNotFoundError{Identifier: identifier}
	}
	return lookup.Many(), nil
}

// Reciter loads the presentation record behind an audio edition.
func (c *Catalogue) Reciter(ctx context.Context, id int64) (model.Reciter, error) {
	r, err := c.store.ReciterByID(ctx, id)
	return r, qerrors.Internal("store.ReciterByID", err)
}

// TafsirInfo loads the presentation record behind a tafsir edition.
func (c *Catalogue) TafsirInfo(ctx context.Context, id int64) (model.Tafsir, error) {
	t, err := c.store.TafsirByID(ctx, id)
	return t, qerrors.Internal("store.TafsirByID", err)
}
