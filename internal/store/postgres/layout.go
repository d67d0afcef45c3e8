package postgres

import (
	"context"
	"database/sql"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
)

// MushafLayouts lists the known page/line layouts.
func (s *Store) MushafLayouts(ctx context.Context) ([]model.MushafLayout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.name, l.lines_per_page, l.total_pages FROM mushaf_layout l ORDER BY l.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MushafLayout
	for rows.Next() {
		var l model.MushafLayout
		if err := rows.Scan(&l.ID, &l.Name, &l.LinesPerPage, &l.TotalPages); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// MushafLines lists one layout page's lines in order.
func (s *Store) MushafLines(ctx context.Context, layoutID int64, page int) ([]model.MushafLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ml.layout_id, ml.page, ml.line, ml.line_type, ml.is_centered,
			COALESCE(ml.surah_number, 0), COALESCE(ml.first_word_id, 0), COALESCE(ml.last_word_id, 0)
		 FROM mushaf_line ml
		 WHERE ml.layout_id = $1 AND ml.page = $2
		 ORDER BY ml.line`,
		layoutID, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MushafLine
	for rows.Next() {
		var l model.MushafLine
		err := rows.Scan(&l.LayoutID, &l.Page, &l.Line, &l.LineType, &l.IsCentered,
			&l.SurahNumber, &l.FirstWordID, &l.LastWordID)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Fonts lists the font families.
func (s *Store) Fonts(ctx context.Context) ([]model.Font, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.id, f.name, COALESCE(f.category, '') FROM font f ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Font
	for rows.Next() {
		var f model.Font
		if err := rows.Scan(&f.ID, &f.Name, &f.Category); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FontFiles lists a font's downloadable files.
func (s *Store) FontFiles(ctx context.Context, fontID int64) ([]model.FontFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ff.font_id, ff.format, ff.url FROM font_file ff WHERE ff.font_id = $1 ORDER BY ff.format`,
		fontID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FontFile
	for rows.Next() {
		var f model.FontFile
		if err := rows.Scan(&f.FontID, &f.Format, &f.URL); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FontPageFile loads the per-page file of a page-segmented font.
func (s *Store) FontPageFile(ctx context.Context, fontID int64, page int) (model.FontPageFile, error) {
	var f model.FontPageFile
	err := s.db.QueryRowContext(ctx,
		`SELECT fp.font_id, fp.page, fp.url FROM font_page_file fp WHERE fp.font_id = $1 AND fp.page = $2`,
		fontID, page).
		Scan(&f.FontID, &f.Page, &f.URL)
	if err == sql.ErrNoRows {
		return model.FontPageFile{}, &qerrors.NotFoundError{
			Resource: "font page",
			ID:       fmt.Sprintf("%d/%d", fontID, page),
		}
	}
	return f, err
}
