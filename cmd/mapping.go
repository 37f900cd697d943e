package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bom-merger/core/config"
	"bom-merger/core/database"
	"bom-merger/core/logger"
	"bom-merger/feature/mapping"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	profileFile string
	fromConfig  bool
)

// mappingCmd is the parent command for mapping profile operations.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage stored column mapping profiles",
}

var mappingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := mappingServiceFromConfig()
		if err != nil {
			return err
		}
		profiles, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No stored profiles. The configured defaults apply.")
			return nil
		}
		for _, p := range profiles {
			fmt.Printf("%-20s %-12s updated %s\n", p.Name, p.Mapping.PartsDesignator, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var mappingShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile (default when no name is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := mappingServiceFromConfig()
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		p, stored, err := svc.Get(cmd.Context(), name)
		if err != nil {
			return err
		}
		printProfile(p, stored)
		return nil
	},
}

var mappingSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Store a profile from a JSON file or from the current configuration",
	Long: `Store a profile from a JSON file holding {"mapping": {...}, "delimiter": "...", "suppress_prefixes": [...]},
or snapshot the configured defaults with --from-config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		svc, err := openMappingService(cfg, l)
		if err != nil {
			return err
		}

		req, err := profileRequest(cfg.Mapping)
		if err != nil {
			return err
		}
		p, err := svc.Save(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		printProfile(*p, true)
		return nil
	},
}

var mappingDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := mappingServiceFromConfig()
		if err != nil {
			return err
		}
		return svc.Delete(cmd.Context(), args[0])
	},
}

func init() {
	mappingSaveCmd.Flags().StringVarP(&profileFile, "file", "f", "", "JSON profile file")
	mappingSaveCmd.Flags().BoolVar(&fromConfig, "from-config", false, "Store the configured default mapping")
	mappingSaveCmd.MarkFlagsMutuallyExclusive("file", "from-config")
	mappingSaveCmd.MarkFlagsOneRequired("file", "from-config")

	mappingCmd.AddCommand(mappingListCmd, mappingShowCmd, mappingSaveCmd, mappingDeleteCmd)
	RootCmd.AddCommand(mappingCmd)
}

func mappingServiceFromConfig() (*mapping.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return openMappingService(cfg, l)
}

// openMappingService connects to the database and prepares the profile table.
func openMappingService(cfg *config.Config, l *zap.Logger) (*mapping.Service, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := mapping.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate mapping profiles: %w", err)
	}
	return mapping.NewService(repo, cfg.Mapping, l), nil
}

func profileRequest(defaults config.MappingConfig) (mapping.ProfileRequest, error) {
	if fromConfig {
		return mapping.ProfileRequest{
			Mapping:          defaults.Mapping(),
			Delimiter:        defaults.Delimiter,
			SuppressPrefixes: config.ParsePrefixes(defaults.SuppressPrefixes),
		}, nil
	}

	data, err := os.ReadFile(profileFile)
	if err != nil {
		return mapping.ProfileRequest{}, err
	}
	var req mapping.ProfileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mapping.ProfileRequest{}, fmt.Errorf("invalid profile file %s: %w", profileFile, err)
	}
	return req, nil
}

func printProfile(p mapping.Profile, stored bool) {
	source := "stored"
	if !stored {
		source = "configuration"
	}
	prefixes := "defaults"
	if list := p.Prefixes(); list != nil {
		prefixes = strings.Join(list, ", ")
		if prefixes == "" {
			prefixes = "none"
		}
	}
	m := p.Mapping

	fmt.Println("\n--- Mapping Profile ---")
	fmt.Printf("Name:                 %s (%s)\n", p.Name, source)
	fmt.Printf("Delimiter:            %s\n", p.Delimiter)
	fmt.Printf("Suppress Prefixes:    %s\n", prefixes)
	fmt.Println("-----------------------")
	fmt.Printf("Parts Designator:     %s\n", m.PartsDesignator)
	fmt.Printf("Placement Designator: %s\n", m.PlacementDesignator)
	fmt.Printf("Layer:                %s\n", m.Layer)
	fmt.Printf("Mid X / Mid Y:        %s / %s\n", m.X, m.Y)
	fmt.Printf("Rotation:             %s\n", m.Rotation)
	fmt.Printf("Part Number:          %s\n", m.PartNumber)
	fmt.Printf("Description:          %s\n", m.Description)
	fmt.Printf("Value:                %s\n", m.Value)
	fmt.Printf("Footprint:            %s\n", m.Footprint)
	fmt.Printf("Quantity:             %s\n", m.Quantity)
	fmt.Printf("Manufacturer:         %s\n", m.Manufacturer)
	fmt.Printf("Remark:               %s\n", m.Remark)
	fmt.Println("-----------------------")
}
