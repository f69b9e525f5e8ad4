// Package payload turns raw optimize request documents into service requests.
// The HTTP handler and routectl share it so both accept the same JSON.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/services"
	"strings"
	"time"
)

// StopLimit is the schema's hard ceiling on stops per request.
// Services may enforce a lower limit.
const StopLimit = 1000

// Accepted ISO-8601 variants for stop time windows. Zone-less values are UTC.
var stopTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DecodeOptimizeRequest validates body against the request schema, decodes it
// strictly and fills defaults. Every failure is a *domain.ValidationError.
func DecodeOptimizeRequest(body []byte) (services.OptimizeRouteRequest, error) {
	if problems := validateSchema(optimizeRequestSchema, body); len(problems) > 0 {
		return services.OptimizeRouteRequest{}, domain.NewValidationError("", "invalid request: %s", strings.Join(problems, "; "))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var req dto.OptimizeRouteRequest
	if err := dec.Decode(&req); err != nil {
		return services.OptimizeRouteRequest{}, domain.NewValidationError("", "invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return services.OptimizeRouteRequest{}, domain.NewValidationError("", "body must contain only one JSON object")
	}

	return ToOptimizeRequest(req)
}

// ToOptimizeRequest fills defaults and converts wire types to domain types.
func ToOptimizeRequest(req dto.OptimizeRouteRequest) (services.OptimizeRouteRequest, error) {
	out := services.OptimizeRouteRequest{
		Stops:    req.Stops,
		Strategy: domain.Strategy(req.Strategy),
		Unit:     domain.UnitPref(req.Unit),
		Weights:  MergeWeights(req.Weights),
	}

	if req.Origin != nil {
		out.Origin = &domain.GeoPoint{Lat: req.Origin.Lat, Lon: req.Origin.Lon}
	}
	if req.Constraints != nil {
		out.Constraints.MaxStops = req.Constraints.MaxStops
	}

	if len(req.StopMeta) > 0 {
		out.StopMeta = make([]domain.StopMeta, len(req.StopMeta))
		for i, m := range req.StopMeta {
			if m == nil {
				continue
			}
			meta, err := toStopMeta(i, m)
			if err != nil {
				return out, err
			}
			out.StopMeta[i] = meta
		}
	}

	return out, nil
}

// MergeWeights overlays the weights present in the request on the defaults.
func MergeWeights(in *dto.Weights) domain.WeightVector {
	w := domain.DefaultWeights()
	if in == nil {
		return w
	}

	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&w.Distance, in.Distance)
	set(&w.Time, in.Time)
	set(&w.Quality, in.Quality)
	set(&w.Weather, in.Weather)
	set(&w.Favorites, in.Favorites)
	return w
}

func toStopMeta(i int, m *dto.StopMetaItem) (domain.StopMeta, error) {
	meta := domain.StopMeta{
		QualityScore:    m.QualityScore,
		Favorite:        m.Favorite,
		WeatherGoodness: m.WeatherGoodness,
	}

	var err error
	if meta.StartTime, err = parseStopTime(m.StartTime); err != nil {
		return meta, domain.NewValidationError("stopMeta", "[%d].startTime: %v", i, err)
	}
	if meta.EndTime, err = parseStopTime(m.EndTime); err != nil {
		return meta, domain.NewValidationError("stopMeta", "[%d].endTime: %v", i, err)
	}
	return meta, nil
}

func parseStopTime(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range stopTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("not an ISO-8601 timestamp")
}
