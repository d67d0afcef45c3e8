package catalogue

import (
	"context"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/core/narration"
	"github.com/quranhub/quranhub/internal/store"
)

// Mapper translates verse numbers between narration numbering systems,
// loading each surah's equivalence-class rows from storage and delegating
// the matching to core/narration.
type Mapper struct {
	store store.Store
}

// NewMapper returns a mapper over the given store.
func NewMapper(st store.Store) *Mapper {
	return &Mapper{store: st}
}

// Map translates (surah, ayah) from the narration behind srcEdition to
// the narration behind dstEdition. Unknown surahs or ayahs pass through
// unchanged.
func (m *Mapper) Map(ctx context.Context, srcEdition, dstEdition string, surah, ayah int) ([]int, error) {
	src := narration.KeyForIdentifier(srcEdition)
	dst := narration.KeyForIdentifier(dstEdition)
	if src == dst {
		return []int{ayah}, nil
	}
	rows, err := m.store.NarrationRows(ctx, surah)
	if err != nil {
		return nil, qerrors.Internal("store.NarrationRows", err)
	}
	return narration.Map(rows, src, dst, ayah), nil
}

// FromHafs resolves the equivalence class of a Hafs verse in both the
// Hafs and the target edition's coordinates.
func (m *Mapper) FromHafs(ctx context.Context, edition string, surah, ayah int) (hafs, target []int, err error) {
	dst := narration.KeyForIdentifier(edition)
	if dst == narration.Hafs {
		return []int{ayah}, []int{ayah}, nil
	}
	rows, err := m.store.NarrationRows(ctx, surah)
	if err != nil {
		return nil, nil, qerrors.Internal("store.NarrationRows", err)
	}
	hafs, target = narration.FromHafs(rows, dst, ayah)
	return hafs, target, nil
}

// ToHafs translates (surah, ayah) from an edition's narration into Hafs
// coordinates.
func (m *Mapper) ToHafs(ctx context.Context, edition string, surah, ayah int) ([]int, error) {
	return m.Map(ctx, edition, DefaultTextEdition, surah, ayah)
}

// IsHafs reports whether an edition follows the canonical numbering.
func (m *Mapper) IsHafs(edition string) bool {
	return narration.KeyForIdentifier(edition) == narration.Hafs
}
