package reconcile

// LayerPartition splits a record set into the views used by production documents.
type LayerPartition struct {
	// Top holds placement-bearing records that are not on the bottom side.
	// Unknown sides are assembled from the top by convention.
	Top []Record
	// Bottom holds placement-bearing records classified as bottom.
	Bottom []Record
	// Parts holds every record that has a part (MATCHED and PARTS_ONLY).
	Parts []Record
	// Placements holds every record that has a placement (MATCHED and PLACEMENT_ONLY).
	Placements []Record
}

// PartitionByLayer builds the layer and status views of records.
// Suppressed records are excluded from every view.
func PartitionByLayer(records []Record) LayerPartition {
	var p LayerPartition
	for _, rec := range records {
		if rec.Suppressed {
			continue
		}
		if rec.HasParts() {
			p.Parts = append(p.Parts, rec)
		}
		if !rec.HasPlacement() {
			continue
		}
		p.Placements = append(p.Placements, rec)
		if rec.Layer == LayerBottom {
			p.Bottom = append(p.Bottom, rec)
		} else {
			p.Top = append(p.Top, rec)
		}
	}
	return p
}

// FilterLayer returns the placement-bearing records on layer. LayerTop also
// includes records whose side is unknown, matching PartitionByLayer.
func FilterLayer(records []Record, layer Layer) []Record {
	p := PartitionByLayer(records)
	switch layer {
	case LayerBottom:
		return p.Bottom
	case LayerTop:
		return p.Top
	default:
		var out []Record
		for _, rec := range p.Placements {
			if rec.Layer == LayerUnknown {
				out = append(out, rec)
			}
		}
		return out
	}
}
