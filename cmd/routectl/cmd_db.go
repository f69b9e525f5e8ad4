package main

import (
	"fmt"
	"os"
	"salestrail-route-service/internal/adapters/store"
	"salestrail-route-service/internal/app"
	"salestrail-route-service/internal/platform/db"
	"salestrail-route-service/internal/services"

	"github.com/spf13/cobra"
)

type dbFlags struct {
	driver string
	dsn    string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "sqlite", "SQL driver (postgres or sqlite)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "Database URL (postgres) or file path (sqlite); defaults to DATABASE_URL / SQLITE_PATH")
}

func (f *dbFlags) resolve() (db.Dialect, string, error) {
	d, err := db.ParseDialect(f.driver)
	if err != nil {
		return "", "", err
	}

	dsn := f.dsn
	if dsn == "" && d == db.Postgres {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" && d == db.SQLite {
		dsn = os.Getenv("SQLITE_PATH")
	}
	if dsn == "" {
		return "", "", fmt.Errorf("--dsn is required for driver %s", d)
	}
	return d, dsn, nil
}

func newMigrateCommand() *cobra.Command {
	f := &dbFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the key-value and geocode cache tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, dsn, err := f.resolve()
			if err != nil {
				return err
			}

			conn, err := app.OpenSQL(cmd.Context(), d, dsn)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s).\n", d)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newSeedCommand() *cobra.Command {
	f := &dbFlags{}
	var file, profile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import saved routes from an export file",
		Long: `Import saved routes into a profile's route library.

The file has the shape produced by GET /routes/export: a JSON object keyed by
route id. Existing routes with the same id are overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, dsn, err := f.resolve()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading seed file: %w", err)
			}

			conn, err := app.OpenSQL(cmd.Context(), d, dsn)
			if err != nil {
				return err
			}
			defer conn.Close()

			kv, err := store.NewSQLStore(conn, d)
			if err != nil {
				return err
			}

			n, err := services.NewRouteLibrary(kv).Import(cmd.Context(), profile, data)
			if err != nil {
				return fmt.Errorf("seeding routes: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d routes into profile %q.\n", n, profile)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", "Path to a routes export JSON file")
	cmd.Flags().StringVar(&profile, "profile", services.DefaultProfile, "Profile to import into")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
