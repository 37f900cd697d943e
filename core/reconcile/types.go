package reconcile

// Row is a single table row keyed by column name.
type Row map[string]string

// Get returns the value stored under column.
// An empty column name (unmapped field) or an absent column yields "".
func (r Row) Get(column string) string {
	if column == "" {
		return ""
	}
	return r[column]
}

// Clone returns a copy of the row that can be modified independently.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered list of rows sharing a header.
type Table struct {
	// Columns is the header in source order.
	Columns []string `json:"columns"`

	// Rows holds the data rows in source order.
	Rows []Row `json:"rows"`
}

// HasColumn reports whether the table carries the named column.
// When no header was recorded, the rows themselves are inspected.
func (t Table) HasColumn(name string) bool {
	if name == "" {
		return false
	}
	if len(t.Columns) > 0 {
		for _, c := range t.Columns {
			if c == name {
				return true
			}
		}
		return false
	}
	for _, row := range t.Rows {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// Status is the outcome of joining a designator across both tables.
type Status string

const (
	// StatusMatched means the designator exists in both the parts and placement tables.
	StatusMatched Status = "MATCHED"
	// StatusPlacementOnly means the designator has a placement but no part.
	StatusPlacementOnly Status = "PLACEMENT_ONLY"
	// StatusPartsOnly means the designator has a part but no placement.
	StatusPartsOnly Status = "PARTS_ONLY"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusMatched, StatusPlacementOnly, StatusPartsOnly:
		return true
	default:
		return false
	}
}

// Layer is the board side a placement sits on.
type Layer string

const (
	LayerTop     Layer = "Top"
	LayerBottom  Layer = "Bottom"
	LayerUnknown Layer = "Unknown"
)

// NoSourceOrder marks a record that has no row in the parts table.
// It sorts after every real source order.
const NoSourceOrder = -1

// NormalizedRow is a parts row carrying exactly one canonical designator.
type NormalizedRow struct {
	// Row is a copy of the original row with the designator column rewritten.
	Row Row

	// SourceIndex is the 0-based position of the original row before explosion.
	SourceIndex int
}

// Record is the reconciled view of one designator.
// Placement attributes are only set when Status is MATCHED or PLACEMENT_ONLY;
// parts attributes only when Status is MATCHED or PARTS_ONLY.
type Record struct {
	// Designator is the canonical (upper-cased, trimmed) join key.
	Designator string `json:"designator"`

	// Status describes which tables contributed to this record.
	Status Status `json:"status"`

	// Suppressed marks the record as non-actionable. Reviewers may change it.
	Suppressed bool `json:"is_suppressed"`

	// LayerRaw is the side label exactly as found in the placement table.
	LayerRaw string `json:"layer_raw,omitempty"`
	// Layer is the classified side.
	Layer Layer `json:"layer,omitempty"`
	// X, Y and Rotation are nil when absent or not numeric.
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`

	PartNumber   string `json:"part_number,omitempty"`
	Description  string `json:"description,omitempty"`
	Value        string `json:"value,omitempty"`
	Footprint    string `json:"footprint,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	// Remark is free text. Reviewers may change it.
	Remark string `json:"remark,omitempty"`

	// SourceOrder is the parts-table position of the contributing row, or NoSourceOrder.
	SourceOrder int `json:"source_order"`
}

// HasPlacement reports whether the record carries placement attributes.
func (r Record) HasPlacement() bool {
	return r.Status == StatusMatched || r.Status == StatusPlacementOnly
}

// HasParts reports whether the record carries parts attributes.
func (r Record) HasParts() bool {
	return r.Status == StatusMatched || r.Status == StatusPartsOnly
}

// Line is one consolidated production BOM line.
type Line struct {
	PartNumber   string `json:"part_number"`
	Description  string `json:"description"`
	Value        string `json:"value,omitempty"`
	Footprint    string `json:"footprint,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`

	// Designators is the sorted list of contributing designators.
	Designators []string `json:"designators"`

	// Location is Designators joined with ", ".
	Location string `json:"location"`

	// Quantity is always len(Designators).
	Quantity int `json:"quantity"`

	// SourceOrder is the smallest SourceOrder among the members.
	SourceOrder int `json:"source_order"`
}

// Options tunes a reconciliation run.
type Options struct {
	// Delimiter separates designators inside a parts cell.
	Delimiter Delimiter

	// SuppressPrefixes lists designator prefixes that are suppressed by default when
	// placement-only. Nil selects DefaultSuppressPrefixes; an empty slice disables the rule.
	SuppressPrefixes []string
}

// DefaultOptions returns comma-delimited parsing with the default suppression prefixes.
func DefaultOptions() Options {
	return Options{
		Delimiter:        DelimiterComma,
		SuppressPrefixes: DefaultSuppressPrefixes,
	}
}

// Result is the output of a full reconciliation run.
type Result struct {
	// Records holds one record per designator.
	Records []Record `json:"records"`

	// Duplicates lists designators that appeared more than once on the same side
	// after normalization and panel resolution. Only the first occurrence was joined.
	Duplicates []string `json:"duplicates,omitempty"`

	// Summary provides aggregate counts over Records.
	Summary Summary `json:"summary"`
}
