package reconcile

// Summary provides aggregate statistics for a reconciled record set.
type Summary struct {
	// TotalRecords is the number of unique designators.
	TotalRecords int `json:"total_records"`

	// Matched counts records present in both tables.
	Matched int `json:"matched"`

	// PlacementOnly counts records with a placement but no part.
	PlacementOnly int `json:"placement_only"`

	// PartsOnly counts records with a part but no placement.
	PartsOnly int `json:"parts_only"`

	// Suppressed counts records currently flagged as non-actionable.
	Suppressed int `json:"suppressed"`

	// PlacementErrors counts placement-only records that are not suppressed.
	// These block export until a reviewer resolves them.
	PlacementErrors int `json:"placement_errors"`

	// PartsWarnings counts parts-only records. They do not block export.
	PartsWarnings int `json:"parts_warnings"`

	// Top, Bottom and UnknownLayer count placement-bearing records per side.
	Top          int `json:"top"`
	Bottom       int `json:"bottom"`
	UnknownLayer int `json:"unknown_layer"`

	// Duplicates counts extra same-side rows ignored by the join.
	Duplicates int `json:"duplicates"`
}

// Exportable reports whether production documents may be generated,
// i.e. every placement without a part has been suppressed.
func (s Summary) Exportable() bool {
	return s.PlacementErrors == 0
}

// Summarize counts records by status, suppression and layer.
// It reads the live Suppressed flags, so it must be re-run after reviewer edits.
func Summarize(records []Record) Summary {
	var s Summary
	s.TotalRecords = len(records)

	for _, rec := range records {
		switch rec.Status {
		case StatusMatched:
			s.Matched++
		case StatusPlacementOnly:
			s.PlacementOnly++
			if !rec.Suppressed {
				s.PlacementErrors++
			}
		case StatusPartsOnly:
			s.PartsOnly++
			s.PartsWarnings++
		}

		if rec.Suppressed {
			s.Suppressed++
		}

		if rec.HasPlacement() {
			switch rec.Layer {
			case LayerTop:
				s.Top++
			case LayerBottom:
				s.Bottom++
			default:
				s.UnknownLayer++
			}
		}
	}

	return s
}
