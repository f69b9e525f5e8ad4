package handlers

import (
	"errors"
	"net/http"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
	"strings"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Geocode resolves a single zip code or free-form query.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	zip := strings.TrimSpace(r.URL.Query().Get("zip"))
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	address := zip
	if address == "" {
		address = q
	}
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "missing zip or q")
		return
	}

	p, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			writeError(w, r, http.StatusNotFound, "no geocode result")
			return
		}
		if errors.Is(err, domain.ErrGeocoderUpstream) {
			writeError(w, r, http.StatusBadGateway, "geocoding failed")
			return
		}
		writeServiceError(w, r, "geocode", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Lat: p.Lat,
		Lon: p.Lon,
		Raw: dto.GeocodeLabel{Label: domain.NormalizeAddress(address)},
	})
}
