package handlers

import (
	"net/http"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/services"
)

// RouteHandler serves the saved route library.
type RouteHandler struct {
	Library *services.RouteLibrary
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	routes, err := h.Library.List(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "list routes", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListRoutesResponse{Routes: routes})
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	route, err := h.Library.Get(r.Context(), profile, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, route)
}

// Save creates or overwrites a route; a missing id is assigned.
func (h *RouteHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var route domain.SavedRoute
	if !decodeStrict(w, r, body, &route) {
		return
	}

	saved, err := h.Library.Save(r.Context(), profile, route)
	if err != nil {
		writeServiceError(w, r, "save route", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, saved)
}

func (h *RouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	if err := h.Library.Delete(r.Context(), profile, r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete route", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RouteHandler) Export(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	data, err := h.Library.Export(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "export routes", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="salestrail-routes.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *RouteHandler) Import(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	n, err := h.Library.Import(r.Context(), profile, body)
	if err != nil {
		writeServiceError(w, r, "import routes", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ImportRoutesResponse{Imported: n})
}
