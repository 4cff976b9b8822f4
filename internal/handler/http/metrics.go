package http

import (
	"net/http"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/metrics"
	"github.com/biotrack-io/attendance-engine-go/internal/handler/http/response"
)

type MetricsHandler interface {
	// GetDailyMetrics returns the snapshot for a date
	GetDailyMetrics(w http.ResponseWriter, r *http.Request)
	// GetTEE returns the expected headcount for a date's weekday
	GetTEE(w http.ResponseWriter, r *http.Request)
	// GetBaseline returns the full per-weekday baseline
	GetBaseline(w http.ResponseWriter, r *http.Request)
}

type metricsHandlerImpl struct {
	metricsService metrics.Service
}

func NewMetricsHandler(metricsService metrics.Service) MetricsHandler {
	return &metricsHandlerImpl{metricsService: metricsService}
}

// parseDate parses YYYY-MM-DD format, defaults to today
func parseDate(date string) time.Time {
	now := time.Now().UTC()
	if date == "" {
		return now
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return now
	}
	return parsed
}

// GetDailyMetrics handles GET /metrics/daily
func (h *metricsHandlerImpl) GetDailyMetrics(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	result, err := h.metricsService.GetDailyMetrics(r.Context(), parseDate(date))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTEE handles GET /metrics/expected-headcount
func (h *metricsHandlerImpl) GetTEE(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	parsed := parseDate(date)

	result, err := h.metricsService.GetTEE(r.Context(), parsed)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"date":              parsed.Format("2006-01-02"),
		"expectedHeadcount": result,
	})
}

// GetBaseline handles GET /metrics/baseline
func (h *metricsHandlerImpl) GetBaseline(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.metricsService.GetBaseline(r.Context(), parseDate(date))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
