package postgres

import (
	"context"
	"database/sql"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

const surahColumns = `s.number, s.name, s.english_name, s.english_translation,
	s.revelation_city, s.ayah_count, COALESCE(s.revelation_order, 0)`

const ayahColumns = `a.number, a.text, a.surah_number, a.number_in_surah,
	a.juz, a.manzil, a.page, a.ruku, a.hizb, a.hizb_quarter,
	sj.id, sj.recommended, sj.obligatory`

// ayahFrom joins the per-edition ayah rows with their optional sajdah mark.
const ayahFrom = ` FROM ayah a
	JOIN edition e ON e.id = a.edition_id
	LEFT JOIN sajda sj ON sj.id = a.sajda_id`

func scanSurah(row interface{ Scan(...any) error }) (model.Surah, error) {
	var su model.Surah
	err := row.Scan(&su.Number, &su.Name, &su.EnglishName, &su.EnglishNameTranslation,
		&su.RevelationType, &su.NumberOfAyahs, &su.RevelationOrder)
	return su, err
}

func scanAyah(row interface{ Scan(...any) error }) (model.Ayah, error) {
	var a model.Ayah
	var sajdaID sql.NullInt64
	var recommended, obligatory sql.NullBool
	err := row.Scan(&a.Number, &a.Text, &a.SurahNumber, &a.NumberInSurah,
		&a.Juz, &a.Manzil, &a.Page, &a.Ruku, &a.Hizb, &a.HizbQuarter,
		&sajdaID, &recommended, &obligatory)
	if err != nil {
		return model.Ayah{}, err
	}
	if sajdaID.Valid {
		a.Sajda.Mark = &model.SajdahMark{
			ID:          int(sajdaID.Int64),
			Recommended: recommended.Bool,
			Obligatory:  obligatory.Bool,
		}
	}
	return a, nil
}

// unitColumn maps a structural unit to its ayah back-reference column.
// Units outside the map never reach SQL.
func unitColumn(u store.Unit) (string, bool) {
	switch u {
	case store.UnitPage:
		return "page", true
	case store.UnitJuz:
		return "juz", true
	case store.UnitHizb:
		return "hizb", true
	case store.UnitHizbQuarter:
		return "hizb_quarter", true
	case store.UnitManzil:
		return "manzil", true
	case store.UnitRuku:
		return "ruku", true
	}
	return "", false
}

// Surahs lists all 114 surahs in order.
func (s *Store) Surahs(ctx context.Context) ([]model.Surah, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+surahColumns+` FROM surah s ORDER BY s.number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Surah
	for rows.Next() {
		su, err := scanSurah(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, su)
	}
	return out, rows.Err()
}

// SurahByNumber loads one surah's metadata.
func (s *Store) SurahByNumber(ctx context.Context, number int) (model.Surah, error) {
	su, err := scanSurah(s.db.QueryRowContext(ctx,
		`SELECT `+surahColumns+` FROM surah s WHERE s.number = $1`, number))
	if err == sql.ErrNoRows {
		return model.Surah{}, &qerrors.CoordinateError{Field: "surah", Value: fmt.Sprint(number), Message: "must be 1..114"}
	}
	return su, err
}

// AyahByNumber loads one verse by its edition-global number.
func (s *Store) AyahByNumber(ctx context.Context, edition string, number int) (model.Ayah, error) {
	a, err := scanAyah(s.db.QueryRowContext(ctx,
		`SELECT `+ayahColumns+ayahFrom+` WHERE e.identifier = $1 AND a.number = $2`,
		edition, number))
	if err == sql.ErrNoRows {
		return model.Ayah{}, &qerrors.AyahNotFoundError{Edition: edition, Ayah: number}
	}
	return a, err
}

// AyahBySurah loads one verse by (surah, ayah-in-surah).
func (s *Store) AyahBySurah(ctx context.Context, edition string, surah, inSurah int) (model.Ayah, error) {
	a, err := scanAyah(s.db.QueryRowContext(ctx,
		`SELECT `+ayahColumns+ayahFrom+` WHERE e.identifier = $1 AND a.surah_number = $2 AND a.number_in_surah = $3`,
		edition, surah, inSurah))
	if err == sql.ErrNoRows {
		return model.Ayah{}, &qerrors.AyahNotFoundError{Edition: edition, Surah: surah, Ayah: inSurah}
	}
	return a, err
}

func (s *Store) queryAyahs(ctx context.Context, q string, args ...any) ([]model.Ayah, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ayah
	for rows.Next() {
		a, err := scanAyah(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AyahsBySurah lists a surah's verses in order with optional paging.
func (s *Store) AyahsBySurah(ctx context.Context, edition string, surah, limit, offset int) ([]model.Ayah, error) {
	q := `SELECT ` + ayahColumns + ayahFrom + `
		WHERE e.identifier = $1 AND a.surah_number = $2
		ORDER BY a.number_in_surah
		LIMIT NULLIF($3, 0) OFFSET $4`
	return s.queryAyahs(ctx, q, edition, surah, limit, offset)
}

// AyahsByUnit lists the verses of one structural unit in reading order.
func (s *Store) AyahsByUnit(ctx context.Context, edition string, unit store.Unit, number, limit, offset int) ([]model.Ayah, error) {
	col, ok := unitColumn(unit)
	if !ok {
		return nil, &qerrors.CoordinateError{Field: string(unit), Message: "unknown structural unit"}
	}
	q := `SELECT ` + ayahColumns + ayahFrom + `
		WHERE e.identifier = $1 AND a.` + col + ` = $2
		ORDER BY a.number
		LIMIT NULLIF($3, 0) OFFSET $4`
	return s.queryAyahs(ctx, q, edition, number, limit, offset)
}

// AllAyahs streams the full text of an edition in order.
func (s *Store) AllAyahs(ctx context.Context, edition string) ([]model.Ayah, error) {
	q := `SELECT ` + ayahColumns + ayahFrom + ` WHERE e.identifier = $1 ORDER BY a.number`
	return s.queryAyahs(ctx, q, edition)
}

// AyahCount returns the number of verses under an edition's numbering.
func (s *Store) AyahCount(ctx context.Context, edition string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*)`+ayahFrom+` WHERE e.identifier = $1`, edition).Scan(&n)
	return n, err
}

// SajdaAyahs lists the prostration verses of an edition.
func (s *Store) SajdaAyahs(ctx context.Context, edition string) ([]model.Ayah, error) {
	q := `SELECT ` + ayahColumns + ayahFrom + `
		WHERE e.identifier = $1 AND a.sajda_id IS NOT NULL
		ORDER BY a.number`
	return s.queryAyahs(ctx, q, edition)
}

// UnitMetadata summarises every number of a unit by its first verse,
// computed over the canonical text edition.
func (s *Store) UnitMetadata(ctx context.Context, unit store.Unit) ([]model.UnitMeta, error) {
	col, ok := unitColumn(unit)
	if !ok {
		return nil, &qerrors.CoordinateError{Field: string(unit), Message: "unknown structural unit"}
	}
	q := `SELECT DISTINCT ON (a.` + col + `) a.` + col + `, a.page, a.number, a.text, ` + surahColumns + ayahFrom + `
		JOIN surah s ON s.number = a.surah_number
		WHERE e.identifier = 'quran-simple'
		ORDER BY a.` + col + `, a.number`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UnitMeta
	for rows.Next() {
		var m model.UnitMeta
		err := rows.Scan(&m.Number, &m.FirstPage, &m.FirstAyahNumber, &m.FirstAyahText,
			&m.FirstSurah.Number, &m.FirstSurah.Name, &m.FirstSurah.EnglishName,
			&m.FirstSurah.EnglishNameTranslation, &m.FirstSurah.RevelationType,
			&m.FirstSurah.NumberOfAyahs, &m.FirstSurah.RevelationOrder)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
