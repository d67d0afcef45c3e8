package postgres

import (
	"context"
	"database/sql"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

const editionColumns = `e.identifier, e.language, e.name, e.english_name, e.format, e.type,
	COALESCE(e.direction, ''), COALESCE(e.narrator_identifier, ''),
	array_to_string(e.bitrates, ','), COALESCE(e.reciter_id, 0), COALESCE(e.tafsir_id, 0)`

func scanEdition(row interface{ Scan(...any) error }) (model.Edition, error) {
	var e model.Edition
	var bitrates sql.NullString
	err := row.Scan(&e.Identifier, &e.Language, &e.Name, &e.EnglishName, &e.Format, &e.Type,
		&e.Direction, &e.NarratorIdentifier, &bitrates, &e.ReciterID, &e.TafsirID)
	if err != nil {
		return model.Edition{}, err
	}
	e.Bitrates, err = intArray(bitrates)
	return e, err
}

// Editions lists editions matching the filter, ordered by identifier.
func (s *Store) Editions(ctx context.Context, f store.EditionFilter) ([]model.Edition, error) {
	q := `SELECT ` + editionColumns + ` FROM edition e
		WHERE ($1 = '' OR e.language = $1)
		  AND ($2 = '' OR e.type = $2)
		  AND ($3 = '' OR e.format = $3)
		  AND ($4 = '' OR e.narrator_identifier = $4)
		ORDER BY e.identifier`
	rows, err := s.db.QueryContext(ctx, q, f.Language, f.Type, f.Format, f.Narrator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Edition
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EditionByIdentifier returns every edition sharing the identifier.
func (s *Store) EditionByIdentifier(ctx context.Context, identifier string) (store.Lookup, error) {
	q := `SELECT ` + editionColumns + ` FROM edition e WHERE e.identifier = $1 ORDER BY e.type`
	rows, err := s.db.QueryContext(ctx, q, identifier)
	if err != nil {
		return store.Lookup{}, err
	}
	defer rows.Close()

	var matches []model.Edition
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return store.Lookup{}, err
		}
		matches = append(matches, e)
	}
	return store.NewLookup(matches), rows.Err()
}

func (s *Store) distinctColumn(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// EditionLanguages lists the distinct language codes.
func (s *Store) EditionLanguages(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT language FROM edition ORDER BY language`)
}

// EditionTypes lists the distinct edition types.
func (s *Store) EditionTypes(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT type FROM edition ORDER BY type`)
}

// EditionFormats lists the distinct formats.
func (s *Store) EditionFormats(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT format FROM edition ORDER BY format`)
}

// EditionNarrators lists the distinct narrator identifiers of audio editions.
func (s *Store) EditionNarrators(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, `SELECT DISTINCT narrator_identifier FROM edition
		WHERE narrator_identifier IS NOT NULL AND narrator_identifier <> ''
		ORDER BY narrator_identifier`)
}

// ReciterByID loads one reciter record.
func (s *Store) ReciterByID(ctx context.Context, id int64) (model.Reciter, error) {
	var r model.Reciter
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, english_name, COALESCE(description, ''), COALESCE(image_url, '')
		 FROM reciter WHERE id = $1`, id).
		Scan(&r.ID, &r.Name, &r.EnglishName, &r.Description, &r.ImageURL)
	if err == sql.ErrNoRows {
		return model.Reciter{}, &qerrors.NotFoundError{Resource: "reciter"}
	}
	return r, err
}

// TafsirByID loads one tafsir record.
func (s *Store) TafsirByID(ctx context.Context, id int64) (model.Tafsir, error) {
	var t model.Tafsir
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, english_name, COALESCE(description, ''), COALESCE(image_url, '')
		 FROM tafsir WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.EnglishName, &t.Description, &t.ImageURL)
	if err == sql.ErrNoRows {
		return model.Tafsir{}, &qerrors.NotFoundError{Resource: "tafsir"}
	}
	return t, err
}
