package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/services/analyzer"
)

// Query bounds.
const (
	defaultDays  = 30
	minDays      = 1
	maxDays      = 365
	minThreshold = 0.1
	maxThreshold = 100.0
	maxHours     = 24 * 30
)

var errBadRequest = errors.New("bad request")

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days, err := intParam(q, "days", defaultDays, minDays, maxDays)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := models.PriceFilter{
		ProductID: strings.TrimSpace(q.Get("product_id")),
		Category:  strings.TrimSpace(q.Get("category")),
		Brand:     strings.TrimSpace(q.Get("brand")),
	}

	report, err := s.deps.Analyzer.Analyze(r.Context(), filter, days)
	switch {
	case errors.Is(err, analyzer.ErrNoData):
		s.respondNoData(w, "no price history for the requested filter")
	case err != nil:
		s.internalError(w, r, "failed to analyze price trends", err)
	default:
		s.respondWithJSON(w, http.StatusOK, report)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days, err := intParam(q, "days", defaultDays, minDays, maxDays)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// product_ids may be repeated or comma separated.
	var ids []string
	for _, raw := range q["product_ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "product_ids query parameter is required")
		return
	}

	comparison, err := s.deps.Analyzer.Compare(r.Context(), ids, days)
	if err != nil {
		s.internalError(w, r, "failed to compare products", err)
		return
	}
	if comparison.Summary == nil {
		s.respondNoData(w, "none of the products has price history in the window")
		return
	}

	s.respondWithJSON(w, http.StatusOK, comparison)
}

type alertsResponse struct {
	Alerts    []models.Alert `json:"alerts"`
	Count     int            `json:"count"`
	Threshold float64        `json:"threshold"`
	Hours     float64        `json:"lookback_hours"`
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	threshold, err := floatParam(q, "threshold", s.cfg.AlertThreshold, minThreshold, maxThreshold)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lookback := s.cfg.AlertLookback
	if q.Has("hours") {
		hours, perr := intParam(q, "hours", 0, 1, maxHours)
		if perr != nil {
			s.respondWithError(w, http.StatusBadRequest, perr.Error())
			return
		}
		lookback = time.Duration(hours) * time.Hour
	}

	alerts, err := s.deps.Alerts.Generate(r.Context(), threshold, lookback)
	if err != nil {
		s.internalError(w, r, "failed to generate alerts", err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, alertsResponse{
		Alerts:    alerts,
		Count:     len(alerts),
		Threshold: threshold,
		Hours:     lookback.Hours(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Stats.Stats(r.Context())
	if err != nil {
		s.internalError(w, r, "failed to load statistics", err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := map[string]string{"status": "healthy", "database": "healthy"}

	if s.deps.DB != nil {
		if err := s.deps.DB.Ping(ctx); err != nil {
			s.log.ErrorContext(ctx, "Health check failed for database", "error", err)
			healthStatus["status"] = "unhealthy"
			healthStatus["database"] = "unhealthy"
			s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
			return
		}
	}

	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func intParam(q url.Values, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s must be an integer between %d and %d", errBadRequest, name, lo, hi)
	}

	return n, nil
}

func floatParam(q url.Values, name string, def, lo, hi float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < lo || f > hi {
		return 0, fmt.Errorf("%w: %s must be a number between %g and %g", errBadRequest, name, lo, hi)
	}

	return f, nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.ErrorContext(r.Context(), msg, "path", r.URL.Path, "error", err)
	s.respondWithError(w, http.StatusInternalServerError, msg)
}

func (s *Server) respondNoData(w http.ResponseWriter, message string) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{"status": "no_data", "message": message})
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("Failed to encode response", "error", err)
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
