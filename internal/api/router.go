package api

import (
	"net/http"
	"salestrail-route-service/internal/api/handlers"
	"salestrail-route-service/internal/platform/metrics"
	"salestrail-route-service/internal/ports"
	"salestrail-route-service/internal/services"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Optimizer *services.RouteOptimizer
	Geocoder  ports.Geocoder
	Store     ports.KVStore
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	optimize := &handlers.OptimizeHandler{Optimizer: deps.Optimizer}
	geocode := &handlers.GeocodeHandler{Geocoder: deps.Geocoder}
	routes := &handlers.RouteHandler{Library: services.NewRouteLibrary(deps.Store)}
	favorites := &handlers.FavoriteHandler{Favorites: services.NewFavorites(deps.Store)}
	prefs := &handlers.PreferenceHandler{Prefs: services.NewPreferenceStore(deps.Store)}
	working := &handlers.WorkingRouteHandler{Routes: services.NewWorkingRoutes(deps.Store)}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /optimize-route", optimize.Optimize)
	mux.HandleFunc("GET /geocode", geocode.Geocode)

	mux.HandleFunc("GET /routes", routes.List)
	mux.HandleFunc("POST /routes", routes.Save)
	mux.HandleFunc("GET /routes/export", routes.Export)
	mux.HandleFunc("POST /routes/import", routes.Import)
	mux.HandleFunc("GET /routes/{id}", routes.Get)
	mux.HandleFunc("DELETE /routes/{id}", routes.Delete)

	mux.HandleFunc("GET /favorites", favorites.List)
	mux.HandleFunc("DELETE /favorites", favorites.Clear)
	mux.HandleFunc("POST /favorites/{id}/toggle", favorites.Toggle)
	mux.HandleFunc("DELETE /favorites/{id}", favorites.Remove)

	mux.HandleFunc("GET /preferences", prefs.Get)
	mux.HandleFunc("PUT /preferences", prefs.Put)
	mux.HandleFunc("PATCH /preferences", prefs.Patch)

	mux.HandleFunc("GET /working-route", working.Get)
	mux.HandleFunc("PUT /working-route", working.Put)
	mux.HandleFunc("POST /working-route/stops", working.AddStop)
	mux.HandleFunc("DELETE /working-route/stops/{index}", working.RemoveStop)
	mux.HandleFunc("POST /working-route/stops/{index}/move", working.MoveStop)
	mux.HandleFunc("PUT /working-route/selected", working.Select)

	return requestIDMiddleware(loggingMiddleware(gzhttp.GzipHandler(mux)))
}
