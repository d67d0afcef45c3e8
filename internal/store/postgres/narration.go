package postgres

import (
	"context"
	"database/sql"

	"github.com/quranhub/quranhub/core/narration"
	"github.com/quranhub/quranhub/internal/store"
)

// NarrationRows loads the numbering equivalence classes of one surah in
// row order. Surahs numbered identically under all readings have no rows.
func (s *Store) NarrationRows(ctx context.Context, surah int) ([]narration.Row, error) {
	q := `SELECT surah,
		array_to_string(hafs, ','), array_to_string(warsh, ','),
		array_to_string(qaloon, ','), array_to_string(shuba, ','),
		array_to_string(qunbul, ','), array_to_string(albazzi, ','),
		array_to_string(alsusi, ','), array_to_string(aldouri, ',')
	FROM narrations_numbering
	WHERE surah = $1
	ORDER BY row_index`
	rows, err := s.db.QueryContext(ctx, q, surah)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []narration.Row
	for rows.Next() {
		var r narration.Row
		var lists [8]sql.NullString
		scanArgs := []any{&r.Surah}
		for i := range lists {
			scanArgs = append(scanArgs, &lists[i])
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		dests := []*[]int{&r.Hafs, &r.Warsh, &r.Qaloon, &r.Shuba, &r.Qunbul, &r.AlBazzi, &r.AlSusi, &r.AlDouri}
		for i, dst := range dests {
			if *dst, err = intArray(lists[i]); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// NarrationDifferences loads the annotated divergences between two
// narrations for the verses of one page, in source coordinates.
func (s *Store) NarrationDifferences(ctx context.Context, source, target string, page int) ([]store.NarrationDifference, error) {
	q := `SELECT d.surah, d.source_ayah, array_to_string(d.target_ayahs, ','),
		d.kind, COALESCE(d.description, '')
	FROM narrations_differences d
	WHERE d.source_edition = $1 AND d.target_edition = $2 AND d.page = $3
	ORDER BY d.surah, d.source_ayah`
	rows, err := s.db.QueryContext(ctx, q, source, target, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.NarrationDifference
	for rows.Next() {
		var d store.NarrationDifference
		var targets sql.NullString
		if err := rows.Scan(&d.Surah, &d.SourceAyah, &targets, &d.Kind, &d.Description); err != nil {
			return nil, err
		}
		if d.TargetAyahs, err = intArray(targets); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
