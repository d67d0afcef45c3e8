package postgres

import (
	"context"
	"database/sql"
	"fmt"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/model"
)

// AyahMatches lists the similar-verse rows touching one Hafs verse, both
// directions of the symmetric relation.
func (s *Store) AyahMatches(ctx context.Context, surah, inSurah int) ([]model.AyahMatch, error) {
	q := `SELECT m.id, m.source_surah, m.source_ayah, m.matched_surah, m.matched_ayah,
		m.score, m.coverage, m.matched_word_count
	FROM quran_ayah_match m
	WHERE m.source_surah = $1 AND m.source_ayah = $2
	ORDER BY m.score DESC, m.id`
	rows, err := s.db.QueryContext(ctx, q, surah, inSurah)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AyahMatch
	for rows.Next() {
		var m model.AyahMatch
		err := rows.Scan(&m.ID, &m.SourceSurah, &m.SourceAyah, &m.MatchedSurah, &m.MatchedAyah,
			&m.Score, &m.Coverage, &m.MatchedWordCount)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MatchSpans lists a match's word spans on the matched side.
func (s *Store) MatchSpans(ctx context.Context, matchID int64) ([]model.MatchSpan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.match_id, sp.matched_start, sp.matched_end
		 FROM quran_ayah_match_span sp WHERE sp.match_id = $1 ORDER BY sp.matched_start`,
		matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSpan
	for rows.Next() {
		var sp model.MatchSpan
		if err := rows.Scan(&sp.MatchID, &sp.MatchedStart, &sp.MatchedEnd); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// PhraseOccurrences lists the mutashabih phrase occurrences on one Hafs
// verse.
func (s *Store) PhraseOccurrences(ctx context.Context, surah, inSurah int) ([]model.PhraseOccurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.phrase_id, o.surah, o.ayah, o.start_pos, o.end_pos
		 FROM quran_phrase_occurrence o
		 WHERE o.surah = $1 AND o.ayah = $2
		 ORDER BY o.start_pos`,
		surah, inSurah)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PhraseOccurrence
	for rows.Next() {
		var o model.PhraseOccurrence
		if err := rows.Scan(&o.PhraseID, &o.Surah, &o.AyahInSurah, &o.StartPos, &o.EndPos); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// PhraseByID loads one phrase record.
func (s *Store) PhraseByID(ctx context.Context, id int64) (model.Phrase, error) {
	var p model.Phrase
	err := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.source_surah, p.source_ayah, p.start_pos, p.end_pos
		 FROM quran_phrase p WHERE p.id = $1`, id).
		Scan(&p.ID, &p.SourceSurah, &p.SourceAyah, &p.StartPos, &p.EndPos)
	if err == sql.ErrNoRows {
		return model.Phrase{}, &qerrors.NotFoundError{Resource: "phrase", ID: fmt.Sprint(id)}
	}
	return p, err
}

func (s *Store) queryThemes(ctx context.Context, q string, args ...any) ([]model.Theme, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Theme
	for rows.Next() {
		var t model.Theme
		var keywords sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &keywords); err != nil {
			return nil, err
		}
		if keywords.Valid && keywords.String != "" {
			t.Keywords = splitKeywords(keywords.String)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Themes lists every theme.
func (s *Store) Themes(ctx context.Context) ([]model.Theme, error) {
	return s.queryThemes(ctx,
		`SELECT t.id, t.name, array_to_string(t.keywords, E'\x1f') FROM quran_theme t ORDER BY t.id`)
}

// ThemesForAyah lists the themes linked to one Hafs verse.
func (s *Store) ThemesForAyah(ctx context.Context, surah, inSurah int) ([]model.Theme, error) {
	return s.queryThemes(ctx,
		`SELECT t.id, t.name, array_to_string(t.keywords, E'\x1f')
		 FROM quran_theme t
		 JOIN quran_ayah_theme at ON at.theme_id = t.id
		 WHERE at.surah = $1 AND at.ayah = $2
		 ORDER BY t.id`,
		surah, inSurah)
}
