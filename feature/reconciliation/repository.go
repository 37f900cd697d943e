package reconciliation

import (
	"context"
	"errors"

	"bom-merger/core/database"
	"bom-merger/core/reconcile"

	"gorm.io/gorm"
)

const insertBatchSize = 500

var (
	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrRecordNotFound is returned when a run has no record for a designator.
	ErrRecordNotFound = errors.New("record not found")
)

var (
	runColumns    = []string{"id", "name", "mapping", "duplicates", "report_key", "created_at"}
	recordColumns = []string{"run_id", "position", "designator", "status", "is_suppressed", "source_order"}
)

// Repository persists runs and their records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the run tables and checks their columns.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Run{}, &RecordModel{}); err != nil {
		return err
	}
	if err := database.VerifyColumns(r.db, Run{}.TableName(), runColumns); err != nil {
		return err
	}
	return database.VerifyColumns(r.db, RecordModel{}.TableName(), recordColumns)
}

// Create stores run together with records, in merge order.
func (r *Repository) Create(ctx context.Context, run *Run, records []reconcile.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Records").Create(run).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]RecordModel, 0, len(records))
		for i, rec := range records {
			rows = append(rows, newRecordModel(run.ID, i, rec))
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// Get loads a run with its records in merge order.
func (r *Repository) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns the most recent runs without records.
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// UpdateRecord applies patch to the record of designator in run id.
func (r *Repository) UpdateRecord(ctx context.Context, id, designator string, patch RecordPatch) (*RecordModel, error) {
	var rec RecordModel
	err := r.db.WithContext(ctx).Where("run_id = ? AND designator = ?", id, designator).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Suppressed != nil {
		updates["is_suppressed"] = *patch.Suppressed
		rec.Suppressed = *patch.Suppressed
	}
	if patch.Remark != nil {
		updates["remark"] = *patch.Remark
		rec.Remark = *patch.Remark
	}
	if len(updates) == 0 {
		return &rec, nil
	}

	if err := r.db.WithContext(ctx).Model(&RecordModel{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkSuppressed flags the records of designators in run id as suppressed.
func (r *Repository) MarkSuppressed(ctx context.Context, id string, designators []string) error {
	if len(designators) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&RecordModel{}).
		Where("run_id = ? AND designator IN ?", id, designators).
		Update("is_suppressed", true).Error
}

// SetReportKey records the storage key of the exported workbook.
func (r *Repository) SetReportKey(ctx context.Context, id, key string) error {
	return r.db.WithContext(ctx).Model(&Run{}).Where("id = ?", id).Update("report_key", key).Error
}

// Delete removes run id and its records.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&RecordModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Run{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRunNotFound
		}
		return nil
	})
}
