package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spendlens/spendlens/internal/domain/categorization"
	importservice "github.com/spendlens/spendlens/internal/domain/import/service"
	"github.com/spendlens/spendlens/internal/domain/transactions"
	"github.com/spendlens/spendlens/pkg/db"
	"github.com/spendlens/spendlens/pkg/money"
)

func newCategorizeCommand() *cobra.Command {
	var merchant string

	cmd := &cobra.Command{
		Use:   "categorize <description>",
		Short: "Categorize a single transaction description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categorizer := categorization.NewCategorizer()

			category := categorizer.Categorize(args[0], merchant)
			confidence := categorizer.Confidence(args[0], merchant, category)

			fmt.Printf("%s (%d%% confidence)\n", category, confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name, if known")

	return cmd
}

func newSimilarCommand() *cobra.Command {
	var userFlag string
	var merchant string

	cmd := &cobra.Command{
		Use:   "similar <description>",
		Short: "Find a user's stored transactions similar to a description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user id: %w", err)
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

			repo := transactions.NewRepository(database.Pool)
			svc := importservice.NewImportService(repo, categorization.NewCategorizer(), logger)

			similar, err := svc.SuggestSimilar(cmd.Context(), userID, args[0], merchant)
			if err != nil {
				return err
			}

			if len(similar) == 0 {
				fmt.Println("no similar transactions found")
				return nil
			}
			for _, tx := range similar {
				amount := money.New(tx.AmountCents, money.USD)
				fmt.Printf("%s  %-12s %-10s %s\n",
					tx.Date.Format("2006-01-02"), tx.Category, amount.Display(), tx.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "owner user id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name, if known")

	return cmd
}
