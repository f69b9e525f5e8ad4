package domain

import "time"

// A curated stop with its resolved coordinates as the client last saw them.
type RouteStop struct {
	Label string  `json:"label"`
	Query string  `json:"query"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color,omitempty"`
}

// SavedRoute is a named, persisted list of stops.
type SavedRoute struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Stops     []RouteStop `json:"stops"`
	Notes     string      `json:"notes,omitempty"`
	Color     string      `json:"color,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
}

// WorkingRoute is the in-progress stop list the user is curating.
type WorkingRoute struct {
	Stops         []RouteStop `json:"stops"`
	SelectedIndex *int        `json:"selectedIndex"`
}
