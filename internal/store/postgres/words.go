package postgres

import (
	"context"
	"database/sql"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
)

const wordColumns = `w.surah, w.ayah, w.position, w.text, w.line_number, w.page, COALESCE(w.tajweed, '')`

func scanWord(row interface{ Scan(...any) error }) (model.Word, error) {
	var w model.Word
	err := row.Scan(&w.Surah, &w.AyahInSurah, &w.Position, &w.Text, &w.LineNumber, &w.Page, &w.Tajweed)
	return w, err
}

// Word loads one word by its (surah, ayah, position) location.
func (s *Store) Word(ctx context.Context, surah, inSurah, position int) (model.Word, error) {
	w, err := scanWord(s.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM word w WHERE w.surah = $1 AND w.ayah = $2 AND w.position = $3`,
		surah, inSurah, position))
	if err == sql.ErrNoRows {
		return model.Word{}, &qerrors.NotFoundError{
			Resource: "word",
			ID:       fmt.Sprintf("%d:%d:%d", surah, inSurah, position),
		}
	}
	return w, err
}

// WordsForAyah lists a verse's words in position order.
func (s *Store) WordsForAyah(ctx context.Context, surah, inSurah int) ([]model.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM word w WHERE w.surah = $1 AND w.ayah = $2 ORDER BY w.position`,
		surah, inSurah)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
