package config

import (
	"strings"

	"bom-merger/core/reconcile"
)

// MappingConfig holds the default column mapping applied when a request or
// CLI invocation does not name a saved profile.
type MappingConfig struct {
	PartsDesignator     string `mapstructure:"parts_designator" default:"Ref Des"`
	PlacementDesignator string `mapstructure:"placement_designator" default:"Designator"`
	Layer               string `mapstructure:"layer" default:"Layer"`
	X                   string `mapstructure:"x" default:"Mid X"`
	Y                   string `mapstructure:"y" default:"Mid Y"`
	Rotation            string `mapstructure:"rotation" default:"Rotation"`
	PartNumber          string `mapstructure:"part_number" default:"Part Number"`
	Description         string `mapstructure:"description" default:"Description"`
	Value               string `mapstructure:"value" default:"Value"`
	Footprint           string `mapstructure:"footprint" default:"Footprint"`
	Quantity            string `mapstructure:"quantity" default:"Qty"`
	Remark              string `mapstructure:"remark" default:""`
	Manufacturer        string `mapstructure:"manufacturer" default:"Manufacturer"`

	// Delimiter separates designators in the parts table (comma, semicolon, space, auto).
	Delimiter string `mapstructure:"delimiter" default:"comma"`
	// SuppressPrefixes is a comma-separated list of designator prefixes
	// auto-suppressed when they only appear in the placement table.
	// "none" disables auto-suppression.
	SuppressPrefixes string `mapstructure:"suppress_prefixes" default:"FID,TP,MH"`
}

// Mapping returns the configured column mapping.
func (c MappingConfig) Mapping() reconcile.Mapping {
	return reconcile.Mapping{
		PartsDesignator:     c.PartsDesignator,
		PlacementDesignator: c.PlacementDesignator,
		Layer:               c.Layer,
		X:                   c.X,
		Y:                   c.Y,
		Rotation:            c.Rotation,
		PartNumber:          c.PartNumber,
		Description:         c.Description,
		Value:               c.Value,
		Footprint:           c.Footprint,
		Quantity:            c.Quantity,
		Remark:              c.Remark,
		Manufacturer:        c.Manufacturer,
	}
}

// Options returns the reconciliation options derived from the delimiter and
// suppression settings.
func (c MappingConfig) Options() (reconcile.Options, error) {
	delim, err := reconcile.ParseDelimiter(c.Delimiter)
	if err != nil {
		return reconcile.Options{}, err
	}
	return reconcile.Options{
		Delimiter:        delim,
		SuppressPrefixes: ParsePrefixes(c.SuppressPrefixes),
	}, nil
}

// ParsePrefixes splits a comma-separated prefix list. "none" yields an empty,
// non-nil slice, which disables auto-suppression.
func ParsePrefixes(s string) []string {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return []string{}
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
