package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"salestrail-route-service/internal/api"
	"salestrail-route-service/internal/app"
	"salestrail-route-service/internal/config"
	"salestrail-route-service/internal/platform/db"
	"salestrail-route-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (store, geocoder, cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_FILE", ""))
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers app.Closers
	defer func() {
		if err := closers.Close(); err != nil {
			log.Printf("shutdown: close resources: %v", err)
		}
	}()

	conns := map[db.Dialect]*sql.DB{}
	kv, err := app.OpenStore(ctx, cfg, conns, &closers)
	if err != nil {
		log.Fatal(err)
	}

	geocoder, err := app.BuildGeocoder(ctx, cfg, conns, &closers)
	if err != nil {
		log.Fatal(err)
	}

	optimizer := services.NewRouteOptimizer(geocoder)
	optimizer.MaxPasses = cfg.TwoOptMaxPasses
	optimizer.Concurrency = cfg.GeocodeConcurrency
	optimizer.StopLimit = cfg.MaxStops

	router := api.NewRouter(api.Deps{
		Optimizer: optimizer,
		Geocoder:  geocoder,
		Store:     kv,
	})

	// Timeouts leave room for cold-cache geocoding of every stop.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s store=%s geocoder=%s cache=%s", cfg.Port, cfg.Store, cfg.Geocoder, cfg.GeocodeCache)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server error: %v", err)
	}
}
