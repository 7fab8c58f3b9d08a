package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maplepath/api/config"
	"github.com/maplepath/api/internal/logger"
	"github.com/maplepath/api/internal/migrations"
	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/render"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/seed"
)

func main() {
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(log).ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "maplepath",
		Short:         "Operational commands for the MaplePath API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(log), newRenderCmd())
	return root
}

func openDB() (*sql.DB, error) {
	cfg := config.Load()
	if err := config.InitPostgres(cfg.PostgresURI); err != nil {
		return nil, err
	}
	return config.PostgresDB.DB()
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	step := func(use, short string, fn func(context.Context, *sql.DB) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := openDB()
				if err != nil {
					return err
				}
				defer db.Close()
				return fn(cmd.Context(), db)
			},
		}
	}

	cmd.AddCommand(
		step("up", "Apply all pending migrations", migrations.Up),
		step("down", "Roll back the latest migration", migrations.Down),
		step("status", "Print migration status", migrations.Status),
	)
	return cmd
}

func newSeedCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert the bundled industry reference data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seed.SeedIndustries(cmd.Context(), pgrepo.NewIndustryRepo(config.PostgresDB), log)
			if err != nil {
				return err
			}
			log.WithField("count", n).Info("industries seeded")
			return nil
		},
	}
}

// newRenderCmd renders a CV from a JSON file, for checking layouts without a
// database.
func newRenderCmd() *cobra.Command {
	var (
		format     string
		out        string
		engine     string
		chromePath string
	)

	cmd := &cobra.Command{
		Use:   "render <cv.json>",
		Short: "Render a stored-CV JSON document to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var cv models.UserCV
			if err := json.Unmarshal(b, &cv); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			r, err := render.NewRenderer(engine, chromePath)
			if err != nil {
				return err
			}
			pdf, err := render.RenderCV(cmd.Context(), r, &cv, format)
			if err != nil {
				return err
			}

			if out == "" {
				f, _ := render.LookupFormat(format)
				out = render.FileName(cv.FullName, f.Name)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", models.FormatCanadian, "layout: "+fmt.Sprint(render.FormatNames()))
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default CV_<name>_<format>.pdf)")
	cmd.Flags().StringVar(&engine, "engine", "fpdf", "fpdf or chromedp")
	cmd.Flags().StringVar(&chromePath, "chrome-path", "", "Chrome binary for the chromedp engine")
	return cmd
}
