package cmd

import (
	"context"
	"fmt"
	"os"

	"bom-merger/core/config"
	"bom-merger/core/database"
	"bom-merger/core/logger"
	"bom-merger/core/reconcile"
	"bom-merger/core/storage"
	"bom-merger/feature/mapping"
	"bom-merger/feature/reconciliation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runsCmd is the parent command for stored reconciliation runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect reconciliation runs stored by the server",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent runs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, logg := runServiceFromConfig()
		runs, err := svc.List(cmd.Context())
		if err != nil {
			logg.Fatal("Failed to list runs", zap.Error(err))
		}
		for _, r := range runs {
			exported := ""
			if r.ReportKey != "" {
				exported = "exported"
			}
			fmt.Printf("%s  %s  %-30s %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name, exported)
		}
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "View the review status of a run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runShow(cmd.Context(), args[0])
	},
}

func init() {
	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	RootCmd.AddCommand(runsCmd)
}

// runServiceFromConfig builds the reconciliation service the way the server
// does. Storage is optional here since show and list only read the database.
func runServiceFromConfig() (*reconciliation.Service, *zap.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	repo := reconciliation.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logg.Fatal("Failed to migrate database", zap.Error(err))
	}

	var store storage.Client
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Optional storage client failed", zap.Error(err))
	} else {
		store = client
	}

	profiles := mapping.NewService(mapping.NewRepository(db), cfg.Mapping, logg)
	return reconciliation.NewService(repo, profiles, store, cfg.Storage.Bucket, logg), logg
}

func runShow(ctx context.Context, id string) {
	svc, logg := runServiceFromConfig()

	view, err := svc.Get(ctx, id)
	if err != nil {
		logg.Fatal("Failed to load run", zap.String("id", id), zap.Error(err))
	}
	s := view.Summary

	fmt.Println("\n--- Reconciliation Run ---")
	fmt.Printf("ID:             %s\n", view.ID)
	fmt.Printf("Name:           %s\n", view.Name)
	fmt.Printf("Profile:        %s\n", view.Profile)
	fmt.Printf("Parts File:     %s\n", view.PartsFile)
	fmt.Printf("Placement File: %s\n", view.PlacementFile)
	fmt.Printf("Created:        %s\n", view.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println("--------------------------")
	fmt.Printf("Records:        %d\n", s.TotalRecords)
	fmt.Printf("Matched:        %d\n", s.Matched)
	fmt.Printf("Parts Only:     %d\n", s.PartsOnly)
	fmt.Printf("Placement Only: %d (%d suppressed)\n", s.PlacementOnly, s.PlacementOnly-s.PlacementErrors)
	fmt.Printf("Top / Bottom:   %d / %d (%d unknown)\n", s.Top, s.Bottom, s.UnknownLayer)
	fmt.Printf("Duplicates:     %d\n", s.Duplicates)

	status, statusColor := "READY", "\033[32m" // Green
	if !view.Exportable {
		status, statusColor = "BLOCKED", "\033[31m" // Red
	} else if s.PartsWarnings > 0 {
		status, statusColor = "WARNING", "\033[33m" // Yellow
	}
	resetColor := "\033[0m"

	fmt.Printf("Export:         %s%s%s\n", statusColor, status, resetColor)
	if view.ReportKey != "" {
		fmt.Printf("Report:         %s\n", view.ReportKey)
	}

	var issues []reconcile.Record
	for _, rec := range view.Records {
		if rec.Status == reconcile.StatusPlacementOnly && !rec.Suppressed {
			issues = append(issues, rec)
		}
	}
	if len(issues) > 0 {
		fmt.Println("\nPlacement without part:")
		for _, rec := range issues {
			fmt.Printf("- %s (%s)\n", rec.Designator, rec.Layer)
		}
	}
	fmt.Println("--------------------------")
}
