package cmd

import (
	"fmt"
	"os"

	"bom-merger/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bom-merger",
	Short: "PCB BOM and placement reconciliation",
	Long: `BOM Merger joins a parts list with pick-and-place data by reference designator.
It flags parts without placement and placement without parts, and renders the
production workbook once every issue has been reviewed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
