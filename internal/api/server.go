// Package api provides the QuranHub REST API server: routing, the
// response envelope, CDN cache headers, the in-process response cache,
// and the health probes.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/quranhub/quranhub/internal/catalogue"
	"github.com/quranhub/quranhub/internal/logging"
	"github.com/quranhub/quranhub/internal/quran"
	"github.com/quranhub/quranhub/internal/relation"
	"github.com/quranhub/quranhub/internal/search"
	"github.com/quranhub/quranhub/internal/server"
	"github.com/quranhub/quranhub/internal/store"
)

// Config holds the server settings.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// Server owns the services behind the HTTP surface.
type Server struct {
	cfg       Config
	store     store.Store
	catalogue *catalogue.Catalogue
	quran     *quran.Service
	search    *search.Service
	relation  *relation.Service
	cache     *responseCache
}

// New wires the full service stack over one store.
func New(cfg Config, st store.Store) *Server {
	cat := catalogue.New(st)
	mapper := catalogue.NewMapper(st)
	verses := quran.New(st, cat, mapper)
	return &Server{
		cfg:       cfg,
		store:     st,
		catalogue: cat,
		quran:     verses,
		search:    search.New(st, cat, mapper, verses),
		relation:  relation.New(st, cat, mapper, verses),
		cache:     newResponseCache(),
	}
}

// Routes builds the route table.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/edition", s.handleEditions)
	mux.HandleFunc("GET /v1/edition/language", s.handleEditionLanguages)
	mux.HandleFunc("GET /v1/edition/language/{language}", s.handleEditionsByLanguage)
	mux.HandleFunc("GET /v1/edition/type", s.handleEditionTypes)
	mux.HandleFunc("GET /v1/edition/type/{type}", s.handleEditionsByType)
	mux.HandleFunc("GET /v1/edition/format", s.handleEditionFormats)
	mux.HandleFunc("GET /v1/edition/format/{format}", s.handleEditionsByFormat)
	mux.HandleFunc("GET /v1/edition/narrator/{narrator}", s.handleEditionsByNarrator)
	mux.HandleFunc("GET /v1/edition/analytics", s.handleEditionAnalytics)
	mux.HandleFunc("GET /v1/edition/{identifier}", s.handleEditionByIdentifier)

	mux.HandleFunc("GET /v1/ayah/random", s.handleRandomAyah)
	mux.HandleFunc("GET /v1/ayah/random/editions/{editions}", s.handleRandomAyahEditions)
	mux.HandleFunc("GET /v1/ayah/random/{edition}", s.handleRandomAyah)
	mux.HandleFunc("GET /v1/ayah/{ref}", s.handleAyah)
	mux.HandleFunc("GET /v1/ayah/{ref}/editions/{editions}", s.handleAyahEditions)
	mux.HandleFunc("GET /v1/ayah/{ref}/{edition}", s.handleAyah)

	mux.HandleFunc("GET /v1/surah", s.handleSurahs)
	mux.HandleFunc("GET /v1/surah/{number}", s.handleSurah)
	mux.HandleFunc("GET /v1/surah/{number}/{edition}", s.handleSurah)

	for path, unit := range map[string]store.Unit{
		"page": store.UnitPage, "juz": store.UnitJuz, "hizb": store.UnitHizb,
		"hizbQuarter": store.UnitHizbQuarter, "manzil": store.UnitManzil, "ruku": store.UnitRuku,
	} {
		mux.HandleFunc("GET /v1/"+path+"/metadata", s.handleUnitMetadata(unit))
		mux.HandleFunc("GET /v1/"+path+"/{number}", s.handleUnit(unit))
		mux.HandleFunc("GET /v1/"+path+"/{number}/{edition}", s.handleUnit(unit))
	}

	mux.HandleFunc("GET /v1/sajda", s.handleSajda)
	mux.HandleFunc("GET /v1/sajda/{edition}", s.handleSajda)
	mux.HandleFunc("GET /v1/quran", s.handleQuran)
	mux.HandleFunc("GET /v1/quran/{edition}", s.handleQuran)
	mux.HandleFunc("GET /v1/meta", s.handleMeta)

	mux.HandleFunc("GET /v1/search/{keyword}", s.handleSearch)

	mux.HandleFunc("GET /v1/word/tajweed", s.handleWordTajweed)
	mux.HandleFunc("GET /v1/word/line-number", s.handleWordLine)
	mux.HandleFunc("GET /v1/word/image", s.handleWordImage)

	mux.HandleFunc("GET /v1/similar-ayah/{surah}/{ayah}", s.handleSimilarAyah)
	mux.HandleFunc("GET /v1/similar-ayah/{surah}/{ayah}/{edition}", s.handleSimilarAyah)
	mux.HandleFunc("GET /v1/mutashabihat/{surah}/{ayah}", s.handleMutashabihat)
	mux.HandleFunc("GET /v1/mutashabihat/{surah}/{ayah}/{edition}", s.handleMutashabihat)
	mux.HandleFunc("GET /v1/ayah-theme/themes", s.handleThemes)
	mux.HandleFunc("GET /v1/ayah-theme/{surah}/{ayah}", s.handleAyahThemes)

	mux.HandleFunc("GET /v1/font", s.handleFonts)
	mux.HandleFunc("GET /v1/font/{id}/files", s.handleFontFiles)
	mux.HandleFunc("GET /v1/font/{id}/pages/{page}", s.handleFontPage)
	mux.HandleFunc("GET /v1/mushaf-layouts", s.handleMushafLayouts)
	mux.HandleFunc("GET /v1/mushaf-layouts/{layout}/page/{page}", s.handleMushafPage)

	mux.HandleFunc("GET /v1/narrations-differences/", s.handleNarrationDifferences)

	mux.HandleFunc("GET /health/startup", s.handleHealthStartup)
	mux.HandleFunc("GET /health/liveness", s.handleHealthLiveness)
	mux.HandleFunc("GET /health/readiness", s.handleHealthReadiness)

	return mux
}

// Handler assembles the middleware chain around the route table.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Routes()
	h = s.cache.middleware(h)
	h = server.CORSMiddleware(server.CORSConfig{AllowedOrigins: s.cfg.AllowedOrigins}, h)
	h = server.SecurityHeadersMiddleware(h)
	h = server.TimingMiddleware(h)
	h = logging.CombinedMiddleware(h)
	return h
}

// Start runs the server until it fails.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logging.ServerStartup(s.cfg.Port)
	return srv.ListenAndServe()
}
