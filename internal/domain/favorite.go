package domain

import "time"

// Listing details captured when a sale is favorited.
type FavoriteMeta struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	PubDate     *string   `json:"pubDate,omitempty"`
	SavedAt     time.Time `json:"savedAt"`
}

type Favorite struct {
	ID string `json:"id"`
	FavoriteMeta
}
