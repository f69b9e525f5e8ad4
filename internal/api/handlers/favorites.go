package handlers

import (
	"net/http"
	"salestrail-route-service/internal/api/dto"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/services"
)

type FavoriteHandler struct {
	Favorites *services.Favorites
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	favs, err := h.Favorites.List(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, "list favorites", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListFavoritesResponse{Favorites: favs, Count: len(favs)})
}

// Toggle flips a listing's favorite state. The body is optional.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var meta *domain.FavoriteMeta
	if len(body) > 0 {
		var req dto.ToggleFavoriteRequest
		if !decodeStrict(w, r, body, &req) {
			return
		}
		meta = &domain.FavoriteMeta{
			Title:       req.Title,
			URL:         req.URL,
			Description: req.Description,
			PubDate:     req.PubDate,
		}
	}

	id := r.PathValue("id")
	on, err := h.Favorites.Toggle(r.Context(), profile, id, meta)
	if err != nil {
		writeServiceError(w, r, "toggle favorite", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ToggleFavoriteResponse{ID: id, Favorited: on})
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	if err := h.Favorites.Remove(r.Context(), profile, r.PathValue("id")); err != nil {
		writeServiceError(w, r, "remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(w, r)
	if !ok {
		return
	}

	if err := h.Favorites.Clear(r.Context(), profile); err != nil {
		writeServiceError(w, r, "clear favorites", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
