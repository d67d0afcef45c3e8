package quran

import (
	"context"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// DifferenceGroup holds one target narration's divergences from the
// source narration on a page.
type DifferenceGroup struct {
	TargetEdition model.Edition               `json:"targetEdition"`
	Differences   []store.NarrationDifference `json:"differences"`
}

// DifferencesResult is the narrations-differences envelope.
type DifferencesResult struct {
	Page          int               `json:"page"`
	SourceEdition model.Edition     `json:"sourceEdition"`
	Targets       []DifferenceGroup `json:"targets"`
}

// narrationEdition resolves an identifier and requires a narration-type
// text edition behind it.
func (s *Service) narrationEdition(ctx context.Context, identifier string) (model.Edition, error) {
	editions, err := s.cat.Lookup(ctx, identifier)
	if err != nil {
		return model.Edition{}, err
	}
	for _, e := range editions {
		if e.Type == model.TypeNarration && e.Format == model.FormatText {
			return e, nil
		}
	}
	return model.Edition{}, &qerrors.NarrationEditionError{Identifier: identifier, Type: editions[0].Type}
}

// NarrationDifferences lists the annotated divergences between a source
// narration and each target narration on one page. Source and targets
// must be narration editions.
func (s *Service) NarrationDifferences(ctx context.Context, page int, source string, targets []string) (DifferencesResult, error) {
	if page < 1 || page > model.PageCount {
		return DifferencesResult{}, &qerrors.CoordinateError{Field: "page", Value: fmt.Sprint(page), Message: "must be 1..604"}
	}
	src, err := s.narrationEdition(ctx, source)
	if err != nil {
		return DifferencesResult{}, err
	}

	result := DifferencesResult{Page: page, SourceEdition: src}
	for _, target := range targets {
		tgt, err := s.narrationEdition(ctx, target)
		if err != nil {
			return DifferencesResult{}, err
		}
		diffs, err := s.store.NarrationDifferences(ctx, src.Identifier, tgt.Identifier, page)
		if err != nil {
			return DifferencesResult{}, qerrors.Internal("store.NarrationDifferences", err)
		}
		result.Targets = append(result.Targets, DifferenceGroup{TargetEdition: tgt, Differences: diffs})
	}
	return result, nil
}
