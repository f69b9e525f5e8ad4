package handlers

import (
	"encoding/json"
	"net/http"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/services"
)

type PreferenceHandler struct {
	Prefs *services.PreferenceStore
}

func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	prefs, err := h.Prefs.Load(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "load preferences", err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

// Put replaces the whole preferences document. Omitted fields take their defaults.
func (h *PreferenceHandler) Put(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	prefs := domain.DefaultPreferences()
	if !decodeStrict(w, r, body, &prefs) {
		return
	}

	if err := h.Prefs.Save(r.Context(), profile, prefs); err != nil {
		writeServiceError(w, r, "save preferences", err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

// Patch merges a partial document into the stored preferences.
func (h *PreferenceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var patch map[string]any
	if err := json.Unmarshal(body, &patch); err != nil || patch == nil {
		writeError(w, r, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	prefs, err := h.Prefs.Patch(r.Context(), profile, patch)
	if err != nil {
		writeServiceError(w, r, "patch preferences", err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}
