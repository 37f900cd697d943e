package mapping

import (
	"context"
	"errors"

	"bom-merger/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no profile has the requested name.
var ErrNotFound = errors.New("mapping profile not found")

var profileColumns = []string{
	"name", "parts_designator", "placement_designator", "delimiter", "suppress_prefixes",
}

// Repository persists profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the profile table and checks its columns.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Profile{}); err != nil {
		return err
	}
	return database.VerifyColumns(r.db, Profile{}.TableName(), profileColumns)
}

// Get returns the profile called name.
func (r *Repository) Get(ctx context.Context, name string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every profile ordered by name.
func (r *Repository) List(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if err := r.db.WithContext(ctx).Order("name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save inserts p or replaces the stored profile with the same name.
func (r *Repository) Save(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(p).Error
}

// Delete removes the profile called name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
