// Package api provides the HTTP API for chart readings.
// GET endpoints are public (read-only computation and narrative).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/liunara/fourpillars/internal/chart"
	"github.com/liunara/fourpillars/internal/compat"
	"github.com/liunara/fourpillars/internal/luck"
	"github.com/liunara/fourpillars/internal/narrative"
	"github.com/liunara/fourpillars/internal/persistence"
	"github.com/liunara/fourpillars/internal/rarity"
)

// Server serves chart computations and readings over HTTP.
type Server struct {
	LLM      *narrative.Client
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	startedAt time.Time
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.startedAt = time.Now()

	// Rate limiters for narrative-consuming endpoints. Compatibility reports
	// fan out four generations per request, so they get the tighter budget.
	readingLimiter := NewRateLimiter(30, time.Hour)
	reportLimiter := NewRateLimiter(10, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/chart", s.handleChart)
	mux.HandleFunc("/api/v1/profile", RateLimitMiddleware(readingLimiter, s.handleProfile))
	mux.HandleFunc("/api/v1/luck-cycles", RateLimitMiddleware(readingLimiter, s.handleLuckCycles))
	mux.HandleFunc("/api/v1/compatibility", RateLimitMiddleware(reportLimiter, s.handleCompatibility))
	mux.HandleFunc("/api/v1/daily", RateLimitMiddleware(readingLimiter, s.handleDaily))
	mux.HandleFunc("/api/v1/readings", s.handleReadings)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/purge", s.adminOnly(s.handlePurge))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "narrative", s.LLM.Enabled())

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

// subject is one person's parsed birth data plus the computed chart.
type subject struct {
	analysis *chart.Analysis
	ctx      *chart.UserContext
}

// parseSubject reads birth data from query parameters. The suffix selects
// the parameter set ("" for single-subject endpoints, "_a"/"_b" for pairs).
// Accepted birth formats: "2006-01-02T15:04" (time known) or "2006-01-02"
// (time unknown); time_known<suffix>=false forces the hour to be ignored.
func parseSubject(q url.Values, suffix string) (*subject, error) {
	raw := q.Get("birth" + suffix)
	if raw == "" {
		return nil, fmt.Errorf("missing birth%s parameter", suffix)
	}

	var birth time.Time
	var timeKnown bool
	var err error
	if birth, err = time.Parse("2006-01-02T15:04", raw); err == nil {
		timeKnown = true
	} else if birth, err = time.Parse("2006-01-02", raw); err == nil {
		timeKnown = false
	} else {
		return nil, fmt.Errorf("birth%s must be 2006-01-02T15:04 or 2006-01-02, got %q", suffix, raw)
	}
	if q.Get("time_known"+suffix) == "false" {
		timeKnown = false
	}

	var sex chart.Sex
	switch q.Get("sex" + suffix) {
	case "male", "m":
		sex = chart.SexMale
	case "female", "f":
		sex = chart.SexFemale
	default:
		return nil, fmt.Errorf("sex%s must be male or female", suffix)
	}

	analysis, err := chart.Compute(birth, sex, timeKnown)
	if err != nil {
		return nil, err
	}
	return &subject{analysis: analysis, ctx: chart.NewUserContext(analysis)}, nil
}

func parseRelationship(q url.Values) compat.RelationshipType {
	switch q.Get("relationship") {
	case "romantic":
		return compat.Romantic
	case "colleague":
		return compat.Colleague
	case "family":
		return compat.Family
	case "friend":
		return compat.Friend
	default:
		return compat.Other
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":           "fourpillars",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"narrative":      s.LLM.Enabled(),
		"database":       s.DB != nil,
	})
}

// handleChart returns the deterministic chart only — no narrative, no rate
// limit. Useful for clients that render pillars themselves.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubject(r.URL.Query(), "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"analysis": sub.analysis,
		"context":  sub.ctx,
		"rarity":   rarity.EstimateFor(sub.ctx),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubject(r.URL.Query(), "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile := narrative.BuildProfile(s.LLM, sub.ctx)
	s.saveReading("profile", sub, profile)
	writeJSON(w, profile)
}

func (s *Server) handleLuckCycles(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubject(r.URL.Query(), "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reference := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		t, err := time.Parse("2006-01-02", at)
		if err != nil {
			http.Error(w, "at must be 2006-01-02", http.StatusBadRequest)
			return
		}
		reference = t
	}

	result, err := luck.LocateFromAnalysis(sub.analysis, reference)
	if err != nil {
		slog.Error("luck cycle resolution failed", "error", err)
		http.Error(w, "luck cycle resolution failed", http.StatusInternalServerError)
		return
	}

	view := narrative.BuildLuckReading(s.LLM, sub.ctx, result)
	s.saveReading("luck", sub, view)
	writeJSON(w, view)
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subA, err := parseSubject(q, "_a")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	subB, err := parseSubject(q, "_b")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rel := parseRelationship(q)

	report := narrative.BuildCompatibilityReport(r.Context(), s.LLM, subA.ctx, subB.ctx, rel)

	if s.DB != nil {
		_, err := s.DB.SaveReport(subA.analysis.Birth, subB.analysis.Birth, string(rel),
			report.Score.Overall, string(report.Score.Rating), report)
		if err != nil {
			slog.Warn("report save failed", "error", err)
		}
	}
	writeJSON(w, report)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subA, err := parseSubject(q, "_a")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	subB, err := parseSubject(q, "_b")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date := time.Now()
	if d := q.Get("date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			http.Error(w, "date must be 2006-01-02", http.StatusBadRequest)
			return
		}
		date = t
	}

	insight := narrative.BuildDailyInsight(s.LLM, subA.analysis, subA.ctx, subB.ctx, date)
	writeJSON(w, insight)
}

func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "profile"
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	rows, err := s.DB.RecentReadings(kind, limit)
	if err != nil {
		slog.Error("readings query failed", "error", err)
		http.Error(w, "readings query failed", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []persistence.Reading{}
	}
	writeJSON(w, rows)
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Days < 1 {
		http.Error(w, "days must be >= 1", http.StatusBadRequest)
		return
	}

	cutoff := time.Now().AddDate(0, 0, -req.Days)
	removed, err := s.DB.PurgeOlderThan(cutoff)
	if err != nil {
		slog.Error("purge failed", "error", err)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"removed": removed, "cutoff": cutoff.UTC().Format(time.RFC3339)})
}

// saveReading persists a reading payload; storage failures are logged, never
// surfaced to the client.
func (s *Server) saveReading(kind string, sub *subject, payload any) {
	if s.DB == nil {
		return
	}
	a := sub.analysis
	if _, err := s.DB.SaveReading(kind, a.Birth, int(a.Sex), a.TimeKnown, payload); err != nil {
		slog.Warn("reading save failed", "kind", kind, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
