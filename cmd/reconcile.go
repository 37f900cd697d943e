package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"bom-merger/core/config"
	"bom-merger/core/logger"
	"bom-merger/core/reconcile"
	"bom-merger/feature/mapping"
	"bom-merger/feature/report"
	"bom-merger/feature/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	partsPath     string
	placementPath string
	outPath       string
	profileName   string
	delimiterFlag string
	suppressFlags []string
	yesConfirm    bool
)

// ErrUnresolvedPlacements is returned when placement records without a part
// remain unsuppressed and the workbook would be incomplete.
var ErrUnresolvedPlacements = errors.New("unresolved placement records")

// reconcileCmd joins a parts table with a placement table and writes the production workbook.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a parts list with placement data and write the production workbook",
	Long: `Reconcile a parts list (BOM) with pick-and-place data by reference designator.

Reports matched designators, parts without placement and placement without parts.
The workbook is only written once every placement without a part is suppressed,
either automatically (fiducials, test points, mounting holes) or with --suppress.

Examples:
  # Reconcile with the configured default mapping
  reconcile --parts bom.xlsx --placement pnp.csv

  # Use a stored mapping profile and suppress jumpers
  reconcile --parts bom.csv --placement pnp.txt --profile altium --suppress JP

  # Overwrite an existing workbook without asking
  reconcile --parts bom.csv --placement pnp.csv --out build/production.xlsx --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&partsPath, "parts", "", "Parts table (.csv, .txt or .xlsx)")
	reconcileCmd.Flags().StringVar(&placementPath, "placement", "", "Placement table (.csv, .txt or .xlsx)")
	reconcileCmd.Flags().StringVarP(&outPath, "out", "o", "production.xlsx", "Output workbook")
	reconcileCmd.Flags().StringVar(&profileName, "profile", "", "Stored mapping profile (requires the database)")
	reconcileCmd.Flags().StringVar(&delimiterFlag, "delimiter", "", "Designator delimiter: comma, semicolon, space or auto")
	reconcileCmd.Flags().StringSliceVar(&suppressFlags, "suppress", nil, "Designator prefix to mark do-not-place (repeatable)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Overwrite the output without asking")
	_ = reconcileCmd.MarkFlagRequired("parts")
	_ = reconcileCmd.MarkFlagRequired("placement")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	m, opts, err := resolveMapping(ctx, cfg, l)
	if err != nil {
		return err
	}
	if delimiterFlag != "" {
		if opts.Delimiter, err = reconcile.ParseDelimiter(delimiterFlag); err != nil {
			return err
		}
	}

	parts, err := tables.ReadFile(partsPath)
	if err != nil {
		return fmt.Errorf("failed to read parts table: %w", err)
	}
	placements, err := tables.ReadFile(placementPath)
	if err != nil {
		return fmt.Errorf("failed to read placement table: %w", err)
	}
	l.Info("Tables loaded",
		zap.String("parts", partsPath),
		zap.Int("parts_rows", len(parts.Rows)),
		zap.String("placement", placementPath),
		zap.Int("placement_rows", len(placements.Rows)),
	)

	result, err := reconcile.Reconcile(parts, placements, m, opts)
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}

	for _, pattern := range suppressFlags {
		n := reconcile.SuppressMatching(result.Records, pattern)
		l.Info("Suppressed by prefix", zap.String("pattern", pattern), zap.Int("count", n))
	}

	summary := reconcile.Summarize(result.Records)
	summary.Duplicates = len(result.Duplicates)
	printReconcileReport(l, result.Records, summary)

	if !summary.Exportable() {
		return fmt.Errorf("%w: %d placement records have no part, suppress them with --suppress", ErrUnresolvedPlacements, summary.PlacementErrors)
	}

	if _, err := os.Stat(outPath); err == nil && !confirmOverwrite(outPath) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := report.WriteXLSX(f, report.Build(result.Records)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	l.Info("Production workbook written", zap.String("path", outPath))
	return nil
}

// resolveMapping returns the configured default mapping, or the stored
// profile named by --profile.
func resolveMapping(ctx context.Context, cfg *config.Config, l *zap.Logger) (reconcile.Mapping, reconcile.Options, error) {
	if profileName == "" {
		opts, err := cfg.Mapping.Options()
		return cfg.Mapping.Mapping(), opts, err
	}

	svc, err := openMappingService(cfg, l)
	if err != nil {
		return reconcile.Mapping{}, reconcile.Options{}, err
	}
	m, opts, err := svc.Resolve(ctx, profileName)
	if errors.Is(err, mapping.ErrNotFound) {
		return m, opts, fmt.Errorf("mapping profile %q does not exist", profileName)
	}
	return m, opts, err
}

// printReconcileReport prints the reconciliation counters and a sample of open issues.
func printReconcileReport(l *zap.Logger, records []reconcile.Record, s reconcile.Summary) {
	l.Info("Reconciliation report",
		zap.Int("total_records", s.TotalRecords),
		zap.Int("matched", s.Matched),
		zap.Int("parts_only", s.PartsOnly),
		zap.Int("placement_only", s.PlacementOnly),
		zap.Int("suppressed", s.Suppressed),
		zap.Int("duplicates", s.Duplicates),
	)
	l.Info("Layers",
		zap.Int("top", s.Top),
		zap.Int("bottom", s.Bottom),
		zap.Int("unknown", s.UnknownLayer),
	)

	var errs, warns []string
	for _, rec := range records {
		switch {
		case rec.Status == reconcile.StatusPlacementOnly && !rec.Suppressed:
			errs = append(errs, rec.Designator)
		case rec.Status == reconcile.StatusPartsOnly:
			warns = append(warns, rec.Designator)
		}
	}
	logSample(l.Error, "Placement without part", errs)
	logSample(l.Warn, "Part without placement", warns)
}

// logSample logs at most five designators and the number left out.
func logSample(log func(string, ...zap.Field), msg string, designators []string) {
	if len(designators) == 0 {
		return
	}
	maxShow := min(5, len(designators))
	log(msg,
		zap.Strings("designators", designators[:maxShow]),
		zap.Int("not_shown", len(designators)-maxShow),
	)
}

// confirmOverwrite prompts the user for confirmation or uses --yes flag.
func confirmOverwrite(path string) bool {
	if yesConfirm {
		return true
	}

	fmt.Printf("\n%s exists. Type 'yes' to overwrite: ", path)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
