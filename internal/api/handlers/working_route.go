package handlers

import (
	"net/http"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/services"
	"strconv"
)

type WorkingRouteHandler struct {
	Routes *services.WorkingRoutes
}

func (h *WorkingRouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	wr, err := h.Routes.Get(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "get working route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, wr)
}

func (h *WorkingRouteHandler) Put(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var wr domain.WorkingRoute
	if !decodeStrict(w, r, body, &wr) {
		return
	}
	if err := h.Routes.Set(r.Context(), profile, wr); err != nil {
		writeServiceError(w, r, "set working route", err)
		return
	}
	h.Get(w, r)
}

func (h *WorkingRouteHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var stop domain.RouteStop
	if !decodeStrict(w, r, body, &stop) {
		return
	}
	wr, err := h.Routes.AddStop(r.Context(), profile, stop)
	if err != nil {
		writeServiceError(w, r, "add stop", err)
		return
	}
	writeJSON(w, r, http.StatusOK, wr)
}

func (h *WorkingRouteHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	wr, err := h.Routes.RemoveStop(r.Context(), profile, index)
	if err != nil {
		writeServiceError(w, r, "remove stop", err)
		return
	}
	writeJSON(w, r, http.StatusOK, wr)
}

func (h *WorkingRouteHandler) MoveStop(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req dto.MoveStopRequest
	if !decodeStrict(w, r, body, &req) {
		return
	}
	wr, err := h.Routes.MoveStop(r.Context(), profile, index, req.Dir)
	if err != nil {
		writeServiceError(w, r, "move stop", err)
		return
	}
	writeJSON(w, r, http.StatusOK, wr)
}

func (h *WorkingRouteHandler) Select(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req dto.SelectStopRequest
	if !decodeStrict(w, r, body, &req) {
		return
	}
	wr, err := h.Routes.SetSelected(r.Context(), profile, req.Index)
	if err != nil {
		writeServiceError(w, r, "select stop", err)
		return
	}
	writeJSON(w, r, http.StatusOK, wr)
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}
