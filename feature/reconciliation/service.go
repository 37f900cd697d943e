package reconciliation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"bom-merger/core/reconcile"
	"bom-merger/core/storage"
	"bom-merger/core/validation"
	"bom-merger/feature/report"
	"bom-merger/feature/tables"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const listLimit = 50

var (
	// ErrNotExportable is returned when unsuppressed placement errors remain.
	ErrNotExportable = errors.New("run has unresolved placement errors")
	// ErrInvalidLayer is returned for a layer filter that names no board side.
	ErrInvalidLayer = errors.New("invalid layer")
	// ErrStorageDisabled is returned for operations that need object storage.
	ErrStorageDisabled = errors.New("object storage is not configured")
)

// ProfileResolver looks up a saved column mapping by name.
type ProfileResolver interface {
	Resolve(ctx context.Context, name string) (reconcile.Mapping, reconcile.Options, error)
}

// Input is an uploaded table.
type Input struct {
	Name string
	Data []byte
}

// CreateRequest describes a new run. Mapping, when set, replaces the profile's
// mapping; Delimiter, when set, replaces the profile's delimiter.
type CreateRequest struct {
	Name      string
	Profile   string
	Mapping   *reconcile.Mapping
	Delimiter string
	Parts     Input
	Placement Input
}

// Service runs reconciliations and manages their review.
type Service struct {
	repo      *Repository
	profiles  ProfileResolver
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	validator *validation.Validator
}

// NewService creates a reconciliation service. client may be nil, in which
// case inputs are not archived and export is unavailable.
func NewService(repo *Repository, profiles ProfileResolver, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		profiles:  profiles,
		client:    client,
		bucket:    bucket,
		logger:    logger,
		validator: validation.New(),
	}
}

// Create reconciles the uploaded tables and stores the run.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*RunView, error) {
	m, opts, err := s.profiles.Resolve(ctx, req.Profile)
	if err != nil {
		return nil, err
	}
	if req.Mapping != nil {
		m = *req.Mapping
	}
	if req.Delimiter != "" {
		if opts.Delimiter, err = reconcile.ParseDelimiter(req.Delimiter); err != nil {
			return nil, err
		}
	}

	parts, err := tables.Read(bytes.NewReader(req.Parts.Data), req.Parts.Name)
	if err != nil {
		return nil, fmt.Errorf("parts table: %w", err)
	}
	placements, err := tables.Read(bytes.NewReader(req.Placement.Data), req.Placement.Name)
	if err != nil {
		return nil, fmt.Errorf("placement table: %w", err)
	}

	result, err := reconcile.Reconcile(parts, placements, m, opts)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Profile:       req.Profile,
		PartsFile:     path.Base(req.Parts.Name),
		PlacementFile: path.Base(req.Placement.Name),
		Mapping:       m,
		Delimiter:     string(opts.Delimiter),
		Duplicates:    result.Duplicates,
	}
	if run.Name == "" {
		run.Name = run.PartsFile
	}

	if s.client != nil {
		for _, in := range []Input{req.Parts, req.Placement} {
			key := storage.InputKey(run.ID, in.Name)
			if err := storage.Upload(ctx, s.client, s.bucket, key, in.Data, ""); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.Create(ctx, run, result.Records); err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	s.logger.Info("Reconciliation completed",
		zap.String("run_id", run.ID),
		zap.Int("records", result.Summary.TotalRecords),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("placement_errors", result.Summary.PlacementErrors),
		zap.Int("parts_warnings", result.Summary.PartsWarnings),
		zap.Int("duplicates", result.Summary.Duplicates),
	)

	return s.Get(ctx, run.ID)
}

// CreateFromStorage reconciles tables already uploaded to the bucket.
func (s *Service) CreateFromStorage(ctx context.Context, req ObjectRequest) (*RunView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	parts, err := storage.Download(ctx, s.client, s.bucket, req.PartsKey)
	if err != nil {
		return nil, err
	}
	placement, err := storage.Download(ctx, s.client, s.bucket, req.PlacementKey)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, CreateRequest{
		Name:      req.Name,
		Profile:   req.Profile,
		Mapping:   req.Mapping,
		Delimiter: req.Delimiter,
		Parts:     Input{Name: req.PartsKey, Data: parts},
		Placement: Input{Name: req.PlacementKey, Data: placement},
	})
}

// Get returns a run with its records and live summary.
func (s *Service) Get(ctx context.Context, id string) (*RunView, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newRunView(*run, true)
	return &view, nil
}

// List returns the most recent runs.
func (s *Service) List(ctx context.Context) ([]RunSummary, error) {
	runs, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunSummary{ID: r.ID, Name: r.Name, Profile: r.Profile, ReportKey: r.ReportKey, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

// UpdateRecord applies a reviewer edit to one record.
func (s *Service) UpdateRecord(ctx context.Context, id, designator string, patch RecordPatch) (*reconcile.Record, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	m, err := s.repo.UpdateRecord(ctx, id, reconcile.CanonicalDesignator(designator), patch)
	if err != nil {
		return nil, err
	}

	rec := m.ToRecord()
	s.logger.Info("Record updated",
		zap.String("run_id", id),
		zap.String("designator", rec.Designator),
		zap.Bool("is_suppressed", rec.Suppressed),
	)
	return &rec, nil
}

// Suppress suppresses every active placement-only record matching pattern
// and returns how many were changed.
func (s *Service) Suppress(ctx context.Context, id string, req SuppressRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	records := newRunView(*run, true).Records
	before := make([]bool, len(records))
	for i, r := range records {
		before[i] = r.Suppressed
	}

	count := reconcile.SuppressMatching(records, req.Pattern)

	var changed []string
	for i, r := range records {
		if r.Suppressed && !before[i] {
			changed = append(changed, r.Designator)
		}
	}
	if err := s.repo.MarkSuppressed(ctx, id, changed); err != nil {
		return 0, err
	}

	s.logger.Info("Bulk suppression applied",
		zap.String("run_id", id),
		zap.String("pattern", req.Pattern),
		zap.Int("count", count),
	)
	return count, nil
}

// BOM aggregates the run's records into production lines. layer restricts
// the lines to one board side ("top" or "bottom"); "" keeps every part.
func (s *Service) BOM(ctx context.Context, id, layer string) ([]reconcile.Line, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	records := view.Records
	if layer != "" {
		side := reconcile.ClassifyLayer(layer)
		if side == reconcile.LayerUnknown {
			return nil, fmt.Errorf("%w: unknown layer %q", ErrInvalidLayer, layer)
		}
		records = reconcile.FilterLayer(records, side)
	}
	return reconcile.Aggregate(records), nil
}

// Export renders the production workbook, uploads it and returns its key.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}

	view, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !view.Exportable {
		return "", fmt.Errorf("%w: %d placement errors", ErrNotExportable, view.Summary.PlacementErrors)
	}

	data, err := report.RenderXLSX(view.Records)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	key := storage.ReportKey(id)
	if err := storage.Upload(ctx, s.client, s.bucket, key, data, storage.XLSXContentType); err != nil {
		return "", err
	}
	if err := s.repo.SetReportKey(ctx, id, key); err != nil {
		return "", err
	}

	s.logger.Info("Report exported", zap.String("run_id", id), zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// Report downloads the exported workbook of run id.
func (s *Service) Report(ctx context.Context, id string) ([]byte, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.ReportKey == "" || s.client == nil {
		return nil, storage.ErrObjectNotFound
	}
	return storage.Download(ctx, s.client, s.bucket, run.ReportKey)
}

// Delete removes run id, its archived inputs and its report.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.client == nil {
		return nil
	}

	removed, err := storage.RemovePrefix(ctx, s.client, s.bucket, storage.InputPrefix(id))
	if err != nil {
		s.logger.Warn("Failed to remove run inputs", zap.String("run_id", id), zap.Error(err))
	}
	if err := storage.Remove(ctx, s.client, s.bucket, storage.ReportKey(id)); err != nil {
		s.logger.Warn("Failed to remove run report", zap.String("run_id", id), zap.Error(err))
	}

	s.logger.Info("Run deleted", zap.String("run_id", id), zap.Int("objects_removed", removed))
	return nil
}
