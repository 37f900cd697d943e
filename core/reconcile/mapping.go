package reconcile

// Mapping resolves logical fields to source column names.
// Only the two designator columns are required; every other field may be left
// empty, in which case the corresponding record attribute stays empty.
type Mapping struct {
	// PartsDesignator is the parts-table column holding one or many designators.
	PartsDesignator string `json:"parts_designator" mapstructure:"parts_designator" validate:"required"`
	// PlacementDesignator is the placement-table column holding one designator.
	PlacementDesignator string `json:"placement_designator" mapstructure:"placement_designator" validate:"required"`

	// Placement side.
	Layer    string `json:"layer" mapstructure:"layer"`
	X        string `json:"x" mapstructure:"x"`
	Y        string `json:"y" mapstructure:"y"`
	Rotation string `json:"rotation" mapstructure:"rotation"`

	// Parts side.
	PartNumber   string `json:"part_number" mapstructure:"part_number"`
	Description  string `json:"description" mapstructure:"description"`
	Value        string `json:"value" mapstructure:"value"`
	Footprint    string `json:"footprint" mapstructure:"footprint"`
	Quantity     string `json:"quantity" mapstructure:"quantity"`
	Remark       string `json:"remark" mapstructure:"remark"`
	Manufacturer string `json:"manufacturer" mapstructure:"manufacturer"`
}

// Validate checks that both designator fields are mapped and that the mapped
// columns exist in their tables. It returns a *ConfigError on the first problem.
func (m Mapping) Validate(parts, placements Table) error {
	if err := m.validateKeys(); err != nil {
		return err
	}
	if !parts.HasColumn(m.PartsDesignator) {
		return &ConfigError{Field: "parts_designator", Table: "parts", Column: m.PartsDesignator}
	}
	if !placements.HasColumn(m.PlacementDesignator) {
		return &ConfigError{Field: "placement_designator", Table: "placement", Column: m.PlacementDesignator}
	}
	return nil
}

func (m Mapping) validateKeys() error {
	if m.PartsDesignator == "" {
		return &ConfigError{Field: "parts_designator", Table: "parts"}
	}
	if m.PlacementDesignator == "" {
		return &ConfigError{Field: "placement_designator", Table: "placement"}
	}
	return nil
}
