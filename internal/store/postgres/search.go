package postgres

import (
	"context"

	"github.com/quranhub/quranhub/internal/store"
)

// searchColumns adds the trigram measures next to the plain ayah columns.
// word_similarity is directional; the greater direction is reported.
const searchColumns = ayahColumns + `,
	similarity(a.text, $2),
	GREATEST(word_similarity($2, a.text), word_similarity(a.text, $2))`

func (s *Store) querySearch(ctx context.Context, q string, args ...any) ([]store.SearchCandidate, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.SearchCandidate
	for rows.Next() {
		var c store.SearchCandidate
		var sajdaID, recommended, obligatory any
		err := rows.Scan(&c.Ayah.Number, &c.Ayah.Text, &c.Ayah.SurahNumber, &c.Ayah.NumberInSurah,
			&c.Ayah.Juz, &c.Ayah.Manzil, &c.Ayah.Page, &c.Ayah.Ruku, &c.Ayah.Hizb, &c.Ayah.HizbQuarter,
			&sajdaID, &recommended, &obligatory,
			&c.Similarity, &c.WordSimilarity)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SearchExact finds verses containing the keyword as a case-insensitive
// substring. The keyword arrives already normalised.
func (s *Store) SearchExact(ctx context.Context, edition, keyword string, surah int) ([]store.SearchCandidate, error) {
	q := `SELECT ` + searchColumns + ayahFrom + `
		WHERE e.identifier = $1
		  AND a.text ILIKE '%' || $2 || '%'
		  AND ($3 = 0 OR a.surah_number = $3)
		ORDER BY a.number`
	return s.querySearch(ctx, q, edition, keyword, surah)
}

// SearchFuzzy finds typo-tolerant candidates. The Arabic branch leans on
// pg_trgm similarity in both directions; the other branch combines
// substring, simple-analyzer full-text search, and trigram similarity for
// keywords longer than three characters. Length gating for the Arabic
// branch happens in the service.
func (s *Store) SearchFuzzy(ctx context.Context, edition, keyword string, arabic bool, surah int) ([]store.SearchCandidate, error) {
	var cond string
	if arabic {
		cond = `(
			a.text ILIKE '%' || $2 || '%'
			OR similarity(a.text, $2) > 0.25
			OR word_similarity($2, a.text) > 0.35
			OR word_similarity(a.text, $2) > 0.35
			OR (a.text % $2 AND word_similarity($2, a.text) > 0.25)
		)`
	} else {
		cond = `(
			a.text ILIKE '%' || $2 || '%'
			OR to_tsvector('simple', a.text) @@ websearch_to_tsquery('simple', $2)
			OR (length($2) > 3 AND similarity(a.text, $2) > 0.35)
		)`
	}
	q := `SELECT ` + searchColumns + ayahFrom + `
		WHERE e.identifier = $1
		  AND ` + cond + `
		  AND ($3 = 0 OR a.surah_number = $3)
		ORDER BY a.number`
	return s.querySearch(ctx, q, edition, keyword, surah)
}
