package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/domain/categorization"
	importservice "github.com/spendlens/spendlens/internal/domain/import/service"
	"github.com/spendlens/spendlens/internal/domain/transactions"
	"github.com/spendlens/spendlens/pkg/db"
	"github.com/spendlens/spendlens/pkg/money"
)

func newImportCommand() *cobra.Command {
	var userFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <statement-file>",
		Short: "Import a CSV or XLSX bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("statement file: %w", err)
			}
			if info.Size() > cfg.Import.MaxFileSizeBytes {
				return fmt.Errorf("statement file exceeds %d bytes", cfg.Import.MaxFileSizeBytes)
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening statement file: %w", err)
			}
			defer file.Close()

			categorizer := categorization.NewCategorizer()

			if dryRun {
				svc := importservice.NewImportService(nil, categorizer, logger)
				candidates, err := svc.Preview(path, file)
				if err != nil {
					return err
				}
				for _, c := range candidates {
					amount := money.New(c.AmountCents, money.USD)
					fmt.Printf("%s  %-12s %4d%%  %-10s %s\n",
						c.Date.Format("2006-01-02"), c.Category, c.Confidence,
						amount.Display(), c.Description)
				}
				fmt.Printf("%d transactions parsed (not saved)\n", len(candidates))
				return nil
			}

			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user id: %w", err)
			}

			if cfg.Observability.MetricsEnabled {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				go func() {
					addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
					if err := http.ListenAndServe(addr, mux); err != nil {
						logger.Warn("metrics server stopped", "error", err)
					}
				}()
			}

			database, err := db.New(db.Config{
				DSN:             cfg.Database.DSN(),
				MaxConns:        int32(cfg.Database.MaxConns),
				MinConns:        int32(cfg.Database.MinConns),
				MaxConnLifetime: cfg.Database.MaxConnLifetime,
				MaxConnIdleTime: 10 * time.Minute,
			}, logger)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.RunMigrations(); err != nil {
				return err
			}

			repo := transactions.NewRepository(database.Pool)
			svc := importservice.NewImportService(repo, categorizer, logger)

			result, err := svc.ImportFile(cmd.Context(), userID, path, file)
			if err != nil {
				return err
			}

			for _, skipped := range result.Skipped {
				fmt.Fprintf(os.Stderr, "row %d skipped: %s\n", skipped.Row, skipped.Reason)
			}
			fmt.Printf("imported %d of %d rows (%s to %s)\n",
				result.RowsImported, result.RowsTotal,
				result.EarliestDate.Format("2006-01-02"), result.LatestDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "owner user id (required unless --dry-run)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and categorize without saving")

	return cmd
}
