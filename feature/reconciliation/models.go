package reconciliation

import (
	"time"

	"bom-merger/core/reconcile"
)

// Run is a persisted reconciliation: its inputs, the mapping used and the
// reviewed record set.
type Run struct {
	ID            string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name          string            `gorm:"column:name;size:255" json:"name"`
	Profile       string            `gorm:"column:profile;size:64" json:"profile"`
	PartsFile     string            `gorm:"column:parts_file;size:255" json:"parts_file"`
	PlacementFile string            `gorm:"column:placement_file;size:255" json:"placement_file"`
	Mapping       reconcile.Mapping `gorm:"column:mapping;serializer:json;type:text" json:"mapping"`
	Delimiter     string            `gorm:"column:delimiter;size:16" json:"delimiter"`
	Duplicates    []string          `gorm:"column:duplicates;serializer:json;type:text" json:"duplicates"`
	ReportKey     string            `gorm:"column:report_key;size:255" json:"report_key,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Records []RecordModel `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "reconcile_runs"
}

// RecordModel is the row form of a reconcile.Record.
type RecordModel struct {
	ID           uint     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string   `gorm:"column:run_id;size:36;index:idx_run_designator,priority:1"`
	Position     int      `gorm:"column:position"`
	Designator   string   `gorm:"column:designator;size:64;index:idx_run_designator,priority:2"`
	Status       string   `gorm:"column:status;size:16"`
	Suppressed   bool     `gorm:"column:is_suppressed"`
	LayerRaw     string   `gorm:"column:layer_raw;size:64"`
	Layer        string   `gorm:"column:layer;size:16"`
	X            *float64 `gorm:"column:x"`
	Y            *float64 `gorm:"column:y"`
	Rotation     *float64 `gorm:"column:rotation"`
	PartNumber   string   `gorm:"column:part_number;size:255"`
	Description  string   `gorm:"column:description;type:text"`
	Value        string   `gorm:"column:value;size:255"`
	Footprint    string   `gorm:"column:footprint;size:255"`
	Quantity     string   `gorm:"column:quantity;size:32"`
	Manufacturer string   `gorm:"column:manufacturer;size:255"`
	Remark       string   `gorm:"column:remark;type:text"`
	SourceOrder  int      `gorm:"column:source_order"`
}

// TableName overrides the table name.
func (RecordModel) TableName() string {
	return "reconcile_records"
}

func newRecordModel(runID string, position int, r reconcile.Record) RecordModel {
	return RecordModel{
		RunID:        runID,
		Position:     position,
		Designator:   r.Designator,
		Status:       string(r.Status),
		Suppressed:   r.Suppressed,
		LayerRaw:     r.LayerRaw,
		Layer:        string(r.Layer),
		X:            r.X,
		Y:            r.Y,
		Rotation:     r.Rotation,
		PartNumber:   r.PartNumber,
		Description:  r.Description,
		Value:        r.Value,
		Footprint:    r.Footprint,
		Quantity:     r.Quantity,
		Manufacturer: r.Manufacturer,
		Remark:       r.Remark,
		SourceOrder:  r.SourceOrder,
	}
}

// ToRecord converts the row back to a reconcile.Record.
func (m RecordModel) ToRecord() reconcile.Record {
	return reconcile.Record{
		Designator:   m.Designator,
		Status:       reconcile.Status(m.Status),
		Suppressed:   m.Suppressed,
		LayerRaw:     m.LayerRaw,
		Layer:        reconcile.Layer(m.Layer),
		X:            m.X,
		Y:            m.Y,
		Rotation:     m.Rotation,
		PartNumber:   m.PartNumber,
		Description:  m.Description,
		Value:        m.Value,
		Footprint:    m.Footprint,
		Quantity:     m.Quantity,
		Manufacturer: m.Manufacturer,
		Remark:       m.Remark,
		SourceOrder:  m.SourceOrder,
	}
}

// RunView is the API representation of a run with its live summary.
type RunView struct {
	Run
	Records    []reconcile.Record `json:"records,omitempty"`
	Summary    reconcile.Summary  `json:"summary"`
	Exportable bool               `json:"exportable"`
}

func newRunView(run Run, withRecords bool) RunView {
	records := make([]reconcile.Record, 0, len(run.Records))
	for _, m := range run.Records {
		records = append(records, m.ToRecord())
	}

	summary := reconcile.Summarize(records)
	summary.Duplicates = len(run.Duplicates)

	view := RunView{Run: run, Summary: summary, Exportable: summary.Exportable()}
	if withRecords {
		view.Records = records
	}
	return view
}

// RunSummary is a run listed without its records.
type RunSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Profile   string    `json:"profile"`
	ReportKey string    `json:"report_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordPatch is the body of PATCH /runs/:id/records/:designator.
type RecordPatch struct {
	Suppressed *bool   `json:"is_suppressed"`
	Remark     *string `json:"remark" validate:"omitempty,max=1024"`
}

// SuppressRequest is the body of POST /runs/:id/suppress.
type SuppressRequest struct {
	Pattern string `json:"pattern" validate:"required,max=64"`
}

// ObjectRequest is the JSON body of POST /reconcile naming inputs already in storage.
type ObjectRequest struct {
	Name         string             `json:"name" validate:"max=255"`
	Profile      string             `json:"profile" validate:"max=64"`
	Mapping      *reconcile.Mapping `json:"mapping"`
	Delimiter    string             `json:"delimiter" validate:"omitempty,oneof=comma semicolon space auto"`
	PartsKey     string             `json:"parts_key" validate:"required"`
	PlacementKey string             `json:"placement_key" validate:"required"`
}
