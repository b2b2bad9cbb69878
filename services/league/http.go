package league

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type ServerOptions struct {
	// shared secret guarding the revalidation endpoint; empty disables
	// the check
	RevalidateToken string
	// host suffix upstream assets must match before the badge proxy
	// will fetch them
	UpstreamHostSuffix string
}

// Server exposes the league service as a small JSON API.
type Server struct {
	service *Service
	opts    ServerOptions
}

func NewServer(service *Service, opts ServerOptions) *Server {
	return &Server{service: service, opts: opts}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/league", s.handleLeague)
	r.Get("/api/player-stats", s.handlePlayerStats)
	r.Get("/api/match-details", s.handleMatchDetails)
	r.Get("/api/revalidate", s.handleRevalidate)
	r.Get("/api/badge-proxy", s.handleBadgeProxy)

	return r
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.Warn("failed to encode json response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLeague(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LeagueData(r.Context()))
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.AggregatedPlayerStats(r.Context()))
}

// upstreamUrlAllowed restricts proxied fetches to the tracked origin,
// nothing else should be reachable through this service.
func (s *Server) upstreamUrlAllowed(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if s.opts.UpstreamHostSuffix == "" {
		return true
	}
	return strings.HasSuffix(parsed.Hostname(), s.opts.UpstreamHostSuffix)
}

func (s *Server) handleMatchDetails(w http.ResponseWriter, r *http.Request) {
	detailUrl := r.URL.Query().Get("url")
	if detailUrl == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "URL is required"})
		return
	}
	if !s.upstreamUrlAllowed(detailUrl) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid url"})
		return
	}

	details := s.service.MatchDetails(r.Context(), detailUrl)
	if details == nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch details"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type revalidateResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	if s.opts.RevalidateToken != "" && r.URL.Query().Get("token") != s.opts.RevalidateToken {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
		return
	}

	s.service.Revalidate(r.Context())
	writeJSON(w, http.StatusOK, revalidateResponse{
		Revalidated: true,
		Now:         time.Now().UnixMilli(),
	})
}

// handleBadgeProxy streams upstream badge images through the scraping
// client, since the origin 403s direct browser requests for them.
func (s *Server) handleBadgeProxy(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}
	if !s.upstreamUrlAllowed(target) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid url"})
		return
	}

	body, contentType, err := s.service.extractor.Fetch(r.Context(), target)
	if err != nil {
		slog.WarnContext(r.Context(), "badge proxy fetch failed", "url", target, "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch"})
		return
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	if err != nil {
		slog.Warn("failed to write proxied image", "err", err)
	}
}
