package dto

import "salestrail-route-service/internal/domain"

type ListRoutesResponse struct {
	Routes []domain.SavedRoute `json:"routes"`
}

type ImportRoutesResponse struct {
	Imported int `json:"imported"`
}

type ListFavoritesResponse struct {
	Favorites []domain.Favorite `json:"favorites"`
	Count     int               `json:"count"`
}

// ToggleFavoriteRequest optionally carries the listing details to remember.
type ToggleFavoriteRequest struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	PubDate     *string `json:"pubDate"`
}

type ToggleFavoriteResponse struct {
	ID        string `json:"id"`
	Favorited bool   `json:"favorited"`
}

type MoveStopRequest struct {
	Dir int `json:"dir"`
}

type SelectStopRequest struct {
	Index *int `json:"index"`
}
