package quran

import (
	"context"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
)

// MushafLayouts lists the known page/line layouts.
func (s *Service) MushafLayouts(ctx context.Context) ([]model.MushafLayout, error) {
	v, err := s.store.MushafLayouts(ctx)
	return v, qerrors.Internal("store.MushafLayouts", err)
}

// MushafPage returns one layout page's lines in order. Unknown layouts
// and out-of-range pages are not found.
func (s *Service) MushafPage(ctx context.Context, layoutID int64, page int) ([]model.MushafLine, error) {
	layouts, err := s.store.MushafLayouts(ctx)
	if err != nil {
		return nil, qerrors.Internal("store.MushafLayouts", err)
	}
	var layout *model.MushafLayout
	for i := range layouts {
		if layouts[i].ID == layoutID {
			layout = &layouts[i]
			break
		}
	}
	if layout == nil {
		return nil, &qerrors.NotFoundError{Resource: "mushaf layout", ID: fmt.Sprint(layoutID)}
	}
	if page < 1 || page > layout.TotalPages {
		return nil, &qerrors.NotFoundError{Resource: "mushaf page", ID: fmt.Sprintf("%d/%d", layoutID, page)}
	}
	lines, err := s.store.MushafLines(ctx, layoutID, page)
	return lines, qerrors.Internal("store.MushafLines", err)
}

// Fonts lists the font families.
func (s *Service) Fonts(ctx context.Context) ([]model.Font, error) {
	v, err := s.store.Fonts(ctx)
	return v, qerrors.Internal("store.Fonts", err)
}

// FontFiles lists a font's downloadable files; unknown fonts are not
// found.
func (s *Service) FontFiles(ctx context.Context, fontID int64) ([]model.FontFile, error) {
	files, err := s.store.FontFiles(ctx, fontID)
	if err != nil {
		return nil, qerrors.Internal("store.FontFiles", err)
	}
	if len(files) == 0 {
		return nil, &qerrors.NotFoundError{Resource: "font", ID: fmt.Sprint(fontID)}
	}
	return files, nil
}

// FontPageFile loads the per-page file of a page-segmented font.
func (s *Service) FontPageFile(ctx context.Context, fontID int64, page int) (model.FontPageFile, error) {
	f, err := s.store.FontPageFile(ctx, fontID, page)
	return f, qerrors.Internal("store.FontPageFile", err)
}
