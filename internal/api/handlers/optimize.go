package handlers

import (
	"errors"
	"net/http"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/api/payload"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/metrics"
	"salestrail-route-service/internal/services"
)

type OptimizeHandler struct {
	Optimizer *services.RouteOptimizer
}

// Optimize validates the payload, runs the route engine and returns the visiting order.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	svcReq, err := payload.DecodeOptimizeRequest(body)
	if err != nil {
		writeServiceError(w, r, "optimize route", err)
		return
	}
	svcReq.Locale = r.Header.Get("Accept-Language")

	strategy := string(svcReq.Strategy)
	if strategy == "" {
		strategy = string(domain.StrategyDistance)
	}

	res, err := h.Optimizer.Optimize(r.Context(), svcReq)
	if err != nil {
		metrics.RouteOptimizations.WithLabelValues(strategy, optimizeOutcome(err)).Inc()
		writeServiceError(w, r, "optimize route", err)
		return
	}
	metrics.RouteOptimizations.WithLabelValues(strategy, "ok").Inc()

	writeJSON(w, r, http.StatusOK, dto.OptimizeRouteResponse{
		Order:   res.Order,
		Summary: res.Text,
	})
}

func optimizeOutcome(err error) string {
	var ve *domain.ValidationError
	var ge *domain.GeocodingError
	switch {
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &ge):
		return "geocode_error"
	}
	return "error"
}
