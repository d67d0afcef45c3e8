package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/logging"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/quran"
	"github.com/quranhub/quranhub/internal/search"
	"github.com/quranhub/quranhub/internal/store"
)

// editionParam returns the edition path value, defaulting to the
// canonical text.
func editionParam(r *http.Request) string {
	if e := r.PathValue("edition"); e != "" {
		return e
	}
	return catalogue.DefaultTextEdition
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &qerrors.CoordinateError{Field: name, Value: v, Message: "must be a non-negative integer"}
	}
	return n, nil
}

// pathInt parses a required integer path value.
func pathInt(r *http.Request, name string) (int, error) {
	v := r.PathValue(name)
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, &qerrors.CoordinateError{Field: name, Value: v, Message: "must be a positive integer"}
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Editions.

func (s *Server) handleEditions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.EditionFilter{
		Language: q.Get("language"),
		Type:     q.Get("type"),
		Format:   q.Get("format"),
		Narrator: q.Get("narrator"),
	}
	editions, err := s.catalogue.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition")
	respond(w, editions)
}

func (s *Server) handleEditionLanguages(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalogue.Languages(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition")
	respond(w, v)
}

func (s *Server) handleEditionTypes(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalogue.Types(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition")
	respond(w, v)
}

func (s *Server) handleEditionFormats(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalogue.Formats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition")
	respond(w, v)
}

func (s *Server) handleEditionsByLanguage(w http.ResponseWriter, r *http.Request) {
	s.listEditions(w, r, store.EditionFilter{Language: r.PathValue("language")})
}

func (s *Server) handleEditionsByType(w http.ResponseWriter, r *http.Request) {
	s.listEditions(w, r, store.EditionFilter{Type: r.PathValue("type")})
}

func (s *Server) handleEditionsByFormat(w http.ResponseWriter, r *http.Request) {
	s.listEditions(w, r, store.EditionFilter{Format: r.PathValue("format")})
}

func (s *Server) handleEditionsByNarrator(w http.ResponseWriter, r *http.Request) {
	s.listEditions(w, r, store.EditionFilter{
		Narrator: r.PathValue("narrator"),
		Format:   model.FormatAudio,
	})
}

func (s *Server) listEditions(w http.ResponseWriter, r *http.Request, filter store.EditionFilter) {
	editions, err := s.catalogue.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition")
	respond(w, editions)
}

func (s *Server) handleEditionAnalytics(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalogue.Summarise(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition:analytics")
	respond(w, v)
}

func (s *Server) handleEditionByIdentifier(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")
	editions, err := s.catalogue.Lookup(r.Context(), identifier)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "edition:"+identifier)
	if len(editions) == 1 {
		respond(w, editions[0])
		return
	}
	respond(w, editions)
}

// Verses.

func (s *Server) handleAyah(w http.ResponseWriter, r *http.Request) {
	ref, err := quran.ParseRef(r.PathValue("ref"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	edition := editionParam(r)
	v, err := s.quran.VerseByRef(r.Context(), ref, edition)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "ayah:"+r.PathValue("ref")+":"+edition)
	respond(w, v)
}

func (s *Server) handleAyahEditions(w http.ResponseWriter, r *http.Request) {
	ref, err := quran.ParseRef(r.PathValue("ref"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	editions := splitList(r.PathValue("editions"))
	if len(editions) == 0 {
		respondError(w, r, &qerrors.CoordinateError{Field: "editions", Value: "", Message: "want a comma separated edition list"})
		return
	}
	verses, err := s.quran.VerseByEditions(r.Context(), ref, editions)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "ayah:"+r.PathValue("ref"))
	respond(w, verses)
}

func (s *Server) handleRandomAyah(w http.ResponseWriter, r *http.Request) {
	v, err := s.quran.Random(r.Context(), editionParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, v)
}

func (s *Server) handleRandomAyahEditions(w http.ResponseWriter, r *http.Request) {
	editions := splitList(r.PathValue("editions"))
	if len(editions) == 0 {
		respondError(w, r, &qerrors.CoordinateError{Field: "editions", Value: "", Message: "want a comma separated edition list"})
		return
	}
	verses, err := s.quran.RandomByEditions(r.Context(), editions)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, verses)
}

// Surahs and structural units.

func (s *Server) handleSurahs(w http.ResponseWriter, r *http.Request) {
	v, err := s.quran.Surahs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "surah")
	respond(w, v)
}

func (s *Server) handleSurah(w http.ResponseWriter, r *http.Request) {
	number, err := pathInt(r, "number")
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		respondError(w, r, err)
		return
	}
	edition := editionParam(r)
	v, err := s.quran.SurahByNumber(r.Context(), number, edition, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "surah:"+r.PathValue("number")+":"+edition)
	respond(w, v)
}

func (s *Server) handleUnit(unit store.Unit) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := pathInt(r, "number")
		if err != nil {
			respondError(w, r, err)
			return
		}
		opts := quran.UnitOptions{Words: r.URL.Query().Get("words") == "true"}
		if opts.Limit, err = queryInt(r, "limit"); err != nil {
			respondError(w, r, err)
			return
		}
		if opts.Offset, err = queryInt(r, "offset"); err != nil {
			respondError(w, r, err)
			return
		}
		edition := editionParam(r)
		v, err := s.quran.ByUnit(r.Context(), unit, number, edition, opts)
		if err != nil {
			respondError(w, r, err)
			return
		}
		cacheHeaders(w, string(unit)+":"+r.PathValue("number")+":"+edition)
		respond(w, v)
	}
}

func (s *Server) handleUnitMetadata(unit store.Unit) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := s.quran.UnitMetadata(r.Context(), unit)
		if err != nil {
			respondError(w, r, err)
			return
		}
		cacheHeaders(w, string(unit))
		respond(w, v)
	}
}

func (s *Server) handleSajda(w http.ResponseWriter, r *http.Request) {
	edition := editionParam(r)
	v, err := s.quran.Sajdas(r.Context(), edition)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "sajda:"+edition)
	respond(w, v)
}

func (s *Server) handleQuran(w http.ResponseWriter, r *http.Request) {
	edition := editionParam(r)
	v, err := s.quran.WholeQuran(r.Context(), edition)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "quran:"+edition)
	respond(w, v)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	v, err := s.quran.Meta(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "meta")
	respond(w, v)
}

// Search.

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := search.Options{
		Edition:  q.Get("editionIdentifier"),
		Language: q.Get("language"),
		Exact:    q.Get("exactSearch") == "true",
	}
	var err error
	if opts.Surah, err = queryInt(r, "surahNumber"); err != nil {
		respondError(w, r, err)
		return
	}
	if opts.Limit, err = queryInt(r, "limit"); err != nil {
		respondError(w, r, err)
		return
	}
	if opts.Offset, err = queryInt(r, "offset"); err != nil {
		respondError(w, r, err)
		return
	}
	result, err := s.search.Search(r.Context(), r.PathValue("keyword"), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "search:"+r.PathValue("keyword"))
	respond(w, result)
}

// Words.

func wordLocation(r *http.Request) (quran.WordLocation, error) {
	return quran.ParseLocation(r.URL.Query().Get("location"))
}

func (s *Server) handleWordTajweed(w http.ResponseWriter, r *http.Request) {
	loc, err := wordLocation(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	word, err := s.quran.Word(r.Context(), loc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "word")
	respond(w, map[string]interface{}{
		"location": r.URL.Query().Get("location"),
		"text":     word.Text,
		"tajweed":  word.Tajweed,
	})
}

func (s *Server) handleWordLine(w http.ResponseWriter, r *http.Request) {
	loc, err := wordLocation(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	word, err := s.quran.Word(r.Context(), loc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "word")
	respond(w, map[string]interface{}{
		"location":   r.URL.Query().Get("location"),
		"lineNumber": word.LineNumber,
		"page":       word.Page,
	})
}

func (s *Server) handleWordImage(w http.ResponseWriter, r *http.Request) {
	loc, err := wordLocation(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	img, err := s.quran.WordImageURL(r.Context(), loc, r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "word")
	respond(w, img)
}

// Relations.

func (s *Server) handleSimilarAyah(w http.ResponseWriter, r *http.Request) {
	surah, err := pathInt(r, "surah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	ayah, err := pathInt(r, "ayah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := s.relation.SimilarAyahs(r.Context(), surah, ayah, editionParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "similar-ayah")
	respond(w, v)
}

func (s *Server) handleMutashabihat(w http.ResponseWriter, r *http.Request) {
	surah, err := pathInt(r, "surah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	ayah, err := pathInt(r, "ayah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := s.relation.Mutashabihat(r.Context(), surah, ayah, editionParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "mutashabihat")
	respond(w, v)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	v, err := s.relation.Themes(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "ayah-theme")
	respond(w, v)
}

func (s *Server) handleAyahThemes(w http.ResponseWriter, r *http.Request) {
	surah, err := pathInt(r, "surah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	ayah, err := pathInt(r, "ayah")
	if err != nil {
		respondError(w, r, err)
		return
	}
	edition := r.URL.Query().Get("editionIdentifier")
	if edition == "" {
		edition = catalogue.DefaultTextEdition
	}
	v, err := s.relation.ThemesForAyah(r.Context(), surah, ayah, edition)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "ayah-theme")
	respond(w, v)
}

// Fonts and layouts.

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	v, err := s.quran.Fonts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "font")
	respond(w, v)
}

func (s *Server) handleFontFiles(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := s.quran.FontFiles(r.Context(), int64(id))
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "font")
	respond(w, v)
}

func (s *Server) handleFontPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := pathInt(r, "page")
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := s.quran.FontPageFile(r.Context(), int64(id), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "font")
	respond(w, v)
}

func (s *Server) handleMushafLayouts(w http.ResponseWriter, r *http.Request) {
	v, err := s.quran.MushafLayouts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "mushaf-layout")
	respond(w, v)
}

func (s *Server) handleMushafPage(w http.ResponseWriter, r *http.Request) {
	layout, err := pathInt(r, "layout")
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := pathInt(r, "page")
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := s.quran.MushafPage(r.Context(), int64(layout), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "mushaf-layout")
	respond(w, v)
}

// Narration differences.

func (s *Server) handleNarrationDifferences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(r, "pageNumber")
	if err != nil {
		respondError(w, r, err)
		return
	}
	source := q.Get("sourceNarrationEditionIdentifier")
	if source == "" {
		respondError(w, r, &qerrors.CoordinateError{Field: "sourceNarrationEditionIdentifier", Value: "", Message: "required"})
		return
	}
	targets := splitList(q.Get("targetNarrationsEditionsIdentifiers"))
	v, err := s.quran.NarrationDifferences(r.Context(), page, source, targets)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cacheHeaders(w, "narrations-differences")
	respond(w, v)
}

// Health probes.

func (s *Server) handleHealthStartup(w http.ResponseWriter, r *http.Request) {
	respond(w, map[string]string{"status": "started"})
}

func (s *Server) handleHealthLiveness(w http.ResponseWriter, r *http.Request) {
	respond(w, map[string]string{"status": "alive"})
}

func (s *Server) handleHealthReadiness(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		logging.ErrorContext(r.Context(), "readiness probe failed", "error", err)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(envelope{
			Code:   http.StatusServiceUnavailable,
			Status: statusError,
			Data:   "storage unreachable",
		})
		return
	}
	respond(w, map[string]string{"status": "ready"})
}
