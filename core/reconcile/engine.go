package reconcile

import (
	"strings"

	"bom-merger/core/utils"
)

// Reconcile runs the full pipeline over two raw tables: mapping validation,
// designator normalization, panel resolution, the outer join, auto-suppression
// and summary counts. A *ConfigError is returned before any row is processed
// when the mapping cannot drive the join.
func Reconcile(parts, placements Table, m Mapping, opts Options) (*Result, error) {
	if err := m.Validate(parts, placements); err != nil {
		return nil, err
	}

	delim := opts.Delimiter
	if delim == "" {
		delim = DelimiterComma
	}
	prefixes := opts.SuppressPrefixes
	if prefixes == nil {
		prefixes = DefaultSuppressPrefixes
	}

	normalized := NormalizeDesignators(parts.Rows, m.PartsDesignator, delim)
	resolved := ResolvePanels(placements.Rows, m.PlacementDesignator, m.Y, m.X)

	records, duplicates, err := Merge(normalized, resolved, m)
	if err != nil {
		return nil, err
	}
	records = ApplyAutoSuppression(records, prefixes)

	summary := Summarize(records)
	summary.Duplicates = len(duplicates)

	return &Result{
		Records:    records,
		Duplicates: duplicates,
		Summary:    summary,
	}, nil
}

// Merge performs the full outer join between normalized parts rows and resolved
// placement rows on the canonical designator.
//
// Records come back in placement order, followed by parts-only records in
// normalized order. Rows with a blank designator carry nothing to join and are
// skipped. If a designator occurs twice on the same side only the first row is
// joined; such designators are returned in the second value, once per extra row.
// Every record starts unsuppressed.
func Merge(parts []NormalizedRow, placements []Row, m Mapping) ([]Record, []string, error) {
	if err := m.validateKeys(); err != nil {
		return nil, nil, err
	}

	var duplicates []string

	partsByKey := make(map[string]int, len(parts))
	for i, p := range parts {
		key := CanonicalDesignator(p.Row.Get(m.PartsDesignator))
		if key == "" {
			continue
		}
		if _, dup := partsByKey[key]; dup {
			duplicates = append(duplicates, key)
			continue
		}
		partsByKey[key] = i
	}

	records := make([]Record, 0, len(parts)+len(placements))
	joined := make(map[string]struct{}, len(placements))

	for _, row := range placements {
		key := CanonicalDesignator(row.Get(m.PlacementDesignator))
		if key == "" {
			continue
		}
		if _, dup := joined[key]; dup {
			duplicates = append(duplicates, key)
			continue
		}
		joined[key] = struct{}{}

		rec := Record{
			Designator:  key,
			Status:      StatusPlacementOnly,
			SourceOrder: NoSourceOrder,
		}
		applyPlacement(&rec, row, m)

		if idx, ok := partsByKey[key]; ok {
			rec.Status = StatusMatched
			applyParts(&rec, parts[idx], m)
		}
		records = append(records, rec)
	}

	for i, p := range parts {
		key := CanonicalDesignator(p.Row.Get(m.PartsDesignator))
		if key == "" || partsByKey[key] != i {
			continue
		}
		if _, ok := joined[key]; ok {
			continue
		}
		rec := Record{
			Designator: key,
			Status:     StatusPartsOnly,
		}
		applyParts(&rec, p, m)
		records = append(records, rec)
	}

	return records, duplicates, nil
}

func applyPlacement(rec *Record, row Row, m Mapping) {
	rec.LayerRaw = strings.TrimSpace(row.Get(m.Layer))
	rec.Layer = ClassifyLayer(rec.LayerRaw)
	rec.X = utils.ParseFloatPtr(row.Get(m.X))
	rec.Y = utils.ParseFloatPtr(row.Get(m.Y))
	rec.Rotation = utils.ParseFloatPtr(row.Get(m.Rotation))
}

func applyParts(rec *Record, p NormalizedRow, m Mapping) {
	rec.PartNumber = strings.TrimSpace(p.Row.Get(m.PartNumber))
	rec.Description = strings.TrimSpace(p.Row.Get(m.Description))
	rec.Value = strings.TrimSpace(p.Row.Get(m.Value))
	rec.Footprint = strings.TrimSpace(p.Row.Get(m.Footprint))
	rec.Quantity = strings.TrimSpace(p.Row.Get(m.Quantity))
	rec.Manufacturer = strings.TrimSpace(p.Row.Get(m.Manufacturer))
	rec.Remark = strings.TrimSpace(p.Row.Get(m.Remark))
	rec.SourceOrder = p.SourceIndex
}
