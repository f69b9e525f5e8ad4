package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/obs"
	"salestrail-route-service/internal/services"
	"strings"
)

const (
	maxBodyBytes  = 1 << 20
	profileHeader = "X-Profile-Id"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to status codes; anything unknown is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *domain.ValidationError
	var ge *domain.GeocodingError

	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ge):
		log.Printf("req_id=%s %s geocoding failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusBadGateway, ge.Error())
	case services.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "not found")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// readBody reads a size-limited request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	return body, true
}

// decodeStrict decodes exactly one JSON object with no unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeStrict(w http.ResponseWriter, r *http.Request, body []byte, v any) bool {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// profileFrom returns the caller's profile namespace.
func profileFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := strings.TrimSpace(r.Header.Get(profileHeader))
	if p == "" {
		return services.DefaultProfile, true
	}
	if len(p) > 64 || strings.ContainsAny(p, ":*?[]\\ ") {
		writeError(w, r, http.StatusBadRequest, "invalid "+profileHeader+" header")
		return "", false
	}
	return p, true
}
