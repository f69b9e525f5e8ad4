package main

import (
	"encoding/json"
	"fmt"
	"os"
	"salestrail-route-service/internal/adapters/geocode"
	"salestrail-route-service/internal/api/payload"
	"salestrail-route-service/internal/services"

	"github.com/spf13/cobra"
)

type optimizeFlags struct {
	request  string
	geocodes string
	locale   string
	passes   int
	maxStops int
}

func newOptimizeCommand() *cobra.Command {
	f := &optimizeFlags{}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Order stops from a request file using a static geocode table",
		Long: `Run the route engine without network access.

The request file uses the same JSON shape as POST /optimize-route and is
validated the same way. Every stop must appear in the geocode table, a JSON
object of address -> {"lat","lon"}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.request, "request", "", "Path to the optimize request JSON")
	cmd.Flags().StringVar(&f.geocodes, "geocodes", "", "Path to the address -> coordinates JSON table")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Locale used when unit is auto (e.g. en-US)")
	cmd.Flags().IntVar(&f.passes, "max-passes", services.DefaultTwoOptPasses, "Upper bound on 2-opt passes")
	cmd.Flags().IntVar(&f.maxStops, "max-stops", services.DefaultStopLimit, "Largest accepted stop list")
	_ = cmd.MarkFlagRequired("request")
	_ = cmd.MarkFlagRequired("geocodes")

	return cmd
}

func runOptimize(cmd *cobra.Command, f *optimizeFlags) error {
	raw, err := os.ReadFile(f.request)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	req, err := payload.DecodeOptimizeRequest(raw)
	if err != nil {
		return fmt.Errorf("parsing request: %w", err)
	}
	req.Locale = f.locale

	geocoder, err := geocode.LoadStaticGeocoder(f.geocodes)
	if err != nil {
		return err
	}

	optimizer := services.NewRouteOptimizer(geocoder)
	optimizer.MaxPasses = f.passes
	optimizer.StopLimit = f.maxStops

	res, err := optimizer.Optimize(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"order":   res.Order,
		"summary": res.Text,
	})
}
