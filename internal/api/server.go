// Package api serves page extraction and crawls over HTTP
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"squad-extractor/extractor"
	"squad-extractor/internal/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
)

// ExtractRequest is the body of POST /extract
type ExtractRequest struct {
	URL string `json:"url"`
}

// CrawlRequest is the body of POST /crawl
type CrawlRequest struct {
	Seed     string `json:"seed"`
	MaxPages int    `json:"max_pages"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Server holds the API server configuration.
// One extractor, and with it one KnownTeams registry, serves every request.
type Server struct {
	config       *types.Config
	logger       types.Logger
	fetcher      extractor.PageFetcher
	extractor    *extractor.Extractor
	crawlTimeout time.Duration
}

// NewServer creates a new API server
func NewServer(config *types.Config, logger types.Logger, fetcher extractor.PageFetcher) *Server {
	return &Server{
		config:       config,
		logger:       logger,
		fetcher:      fetcher,
		extractor:    extractor.NewExtractor(config, logger, nil),
		crawlTimeout: 10 * time.Minute,
	}
}

// Router builds the chi router with middleware and routes
func (s *Server) Router(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)
	r.Post("/extract", s.handleExtract)
	r.Post("/crawl", s.handleCrawl)

	return r
}

// handleExtract fetches and extracts a single page
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		s.sendError(w, "No url provided", http.StatusBadRequest)
		return
	}

	s.logger.Infof("API extract request for %s", req.URL)

	html, err := s.fetcher.GetPageContent(r.Context(), req.URL)
	if err != nil {
		s.logger.Warnf("Failed to fetch %s: %v", req.URL, err)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	result, err := s.extractor.Extract(html, req.URL)
	if err != nil {
		s.sendError(w, err.Error(), extractionStatus(err))
		return
	}

	s.sendJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// handleCrawl runs a crawl from the seed page and returns every record found
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Seed = strings.TrimSpace(req.Seed)
	if req.Seed == "" {
		s.sendError(w, "No seed provided", http.StatusBadRequest)
		return
	}
	if req.MaxPages < 0 {
		s.sendError(w, "max_pages must not be negative", http.StatusBadRequest)
		return
	}

	config := *s.config
	if req.MaxPages > 0 {
		config.MaxPages = req.MaxPages
	}

	s.logger.Infof("API crawl request from %s (max pages %d)", req.Seed, config.MaxPages)

	ctx, cancel := context.WithTimeout(r.Context(), s.crawlTimeout)
	defer cancel()

	crawler := extractor.NewCrawler(&config, s.logger, s.extractor, s.fetcher)
	result, err := crawler.Crawl(ctx, req.Seed)
	if err != nil {
		s.logger.Warnf("Crawl from %s stopped early: %v", req.Seed, err)
		s.sendJSON(w, http.StatusGatewayTimeout, APIResponse{Success: false, Data: result, Error: err.Error()})
		return
	}

	s.sendJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"known_teams": s.extractor.KnownTeams().Len(),
	})
}

// extractionStatus maps extraction errors to HTTP statuses
func extractionStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrUnrecognizedPage):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNoSeniorNationalTeam),
		errors.Is(err, types.ErrMalformedField),
		errors.Is(err, types.ErrUnknownMonth):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.sendJSON(w, statusCode, APIResponse{Success: false, Error: message})
}

func (s *Server) sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}
