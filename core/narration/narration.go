// Package narration converts verse numbers between the ayah-numbering
// systems of the canonical readings. The readings share the same verse
// material but split and join it differently, so one source ayah may map
// to several target ayahs and vice versa.
//
// The conversion is table-driven: each surah has a list of rows, and each
// row holds the ayah numbers that constitute one equivalence class of
// verse material under every reading. Rows partition each reading's ayahs
// for the surah; surahs with identical numbering everywhere have no rows
// at all.
package narration

import "strings"

// Key identifies one of the eight supported readings.
type Key string

const (
	Hafs    Key = "hafs"
	Warsh   Key = "warsh"
	Qaloon  Key = "qaloon"
	Shuba   Key = "shuba"
	Qunbul  Key = "qunbul"
	AlBazzi Key = "albazzi"
	AlSusi  Key = "alsusi"
	AlDouri Key = "aldouri"
)

// Keys lists every supported reading in table-column order.
var Keys = []Key{Hafs, Warsh, Qaloon, Shuba, Qunbul, AlBazzi, AlSusi, AlDouri}

// Row is one equivalence class of verse material within a surah: for each
// reading, the ayah numbers (within the surah) that carry that material.
type Row struct {
	Surah   int
	Hafs    []int
	Warsh   []int
	Qaloon  []int
	Shuba   []int
	Qunbul  []int
	AlBazzi []int
	AlSusi  []int
	AlDouri []int
}

// List returns the row's ayah numbers under the given reading.
func (r Row) List(k Key) []int {
	switch k {
	case Hafs:
		return r.Hafs
	case Warsh:
		return r.Warsh
	case Qaloon:
		return r.Qaloon
	case Shuba:
		return r.Shuba
	case Qunbul:
		return r.Qunbul
	case AlBazzi:
		return r.AlBazzi
	case AlSusi:
		return r.AlSusi
	case AlDouri:
		return r.AlDouri
	}
	return nil
}

// KeyForIdentifier derives the reading behind a narration edition
// identifier, e.g. "quran-warsh" -> Warsh or "ar.abdullahbasfar.hafs" ->
// Hafs. Identifiers naming no known reading default to Hafs, the canonical
// numbering.
func KeyForIdentifier(identifier string) Key {
	id := strings.ToLower(identifier)
	for _, k := range Keys[1:] {
		if strings.Contains(id, string(k)) {
			return k
		}
	}
	return Hafs
}

// contains reports whether list holds n.
func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

// Map translates an ayah number from the src reading to the dst reading
// using the given surah's rows. Rows are scanned in order and the first
// row whose src list contains the ayah wins; the table partitions each
// reading's verses, so at most one row can match.
//
// Missing information is passthrough, never an error: with no rows for the
// surah, or no row containing the ayah, the verse is numbered identically
// in both readings and [ayah] is returned.
func Map(rows []Row, src, dst Key, ayah int) []int {
	if src == dst {
		return []int{ayah}
	}
	for _, row := range rows {
		if contains(row.List(src), ayah) {
			if out := row.List(dst); len(out) > 0 {
				return out
			}
			break
		}
	}
	return []int{ayah}
}

// FromHafs resolves the full equivalence class of a Hafs ayah in both
// coordinate systems at once: the Hafs side and the dst side. Used by
// word-level lookups that need to know how many source and target ayahs
// share the material (the 1:1, 1:N, N:1 and N:N cases).
func FromHafs(rows []Row, dst Key, ayah int) (hafs, target []int) {
	for _, row := range rows {
		if contains(row.Hafs, ayah) {
			h, t := row.Hafs, row.List(dst)
			if len(t) == 0 {
				t = []int{ayah}
			}
			return h, t
		}
	}
	return []int{ayah}, []int{ayah}
}
