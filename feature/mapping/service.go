package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bom-merger/core/config"
	"bom-merger/core/reconcile"
	"bom-merger/core/validation"

	"go.uber.org/zap"
)

const maxNameLength = 64

// ErrInvalidName is returned for empty or overlong profile names.
var ErrInvalidName = errors.New("invalid profile name")

// Service manages mapping profiles.
type Service struct {
	repo      *Repository
	defaults  config.MappingConfig
	validator *validation.Validator
	logger    *zap.Logger
}

// NewService creates a profile service. defaults backs the "default" profile
// until one is saved.
func NewService(repo *Repository, defaults config.MappingConfig, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		defaults:  defaults,
		validator: validation.New(),
		logger:    logger,
	}
}

// Get returns the named profile and whether it is stored. An empty name
// selects DefaultProfile, which falls back to the configured defaults.
func (s *Service) Get(ctx context.Context, name string) (Profile, bool, error) {
	name = profileName(name)
	p, err := s.repo.Get(ctx, name)
	if err == nil {
		return *p, true, nil
	}
	if errors.Is(err, ErrNotFound) && name == DefaultProfile {
		return ProfileFromConfig(s.defaults), false, nil
	}
	return Profile{}, false, err
}

// Resolve returns the mapping and options of the named profile.
func (s *Service) Resolve(ctx context.Context, name string) (reconcile.Mapping, reconcile.Options, error) {
	p, _, err := s.Get(ctx, name)
	if err != nil {
		return reconcile.Mapping{}, reconcile.Options{}, err
	}
	opts, err := p.Options()
	if err != nil {
		return reconcile.Mapping{}, reconcile.Options{}, err
	}
	return p.Mapping, opts, nil
}

// List returns every stored profile.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

// Save validates req and stores it under name, replacing any previous profile.
func (s *Service) Save(ctx context.Context, name string, req ProfileRequest) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var prefixes []string
	if req.SuppressPrefixes != nil {
		prefixes = make([]string, 0, len(req.SuppressPrefixes))
		for _, p := range req.SuppressPrefixes {
			prefixes = append(prefixes, strings.ToUpper(strings.TrimSpace(p)))
		}
	}

	p := &Profile{
		Name:             name,
		Mapping:          req.Mapping,
		Delimiter:        strings.ToLower(req.Delimiter),
		SuppressPrefixes: encodePrefixes(prefixes),
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile %s: %w", name, err)
	}

	s.logger.Info("Mapping profile saved",
		zap.String("profile", name),
		zap.String("parts_designator", p.Mapping.PartsDesignator),
		zap.String("placement_designator", p.Mapping.PlacementDesignator),
	)
	return p, nil
}

// Delete removes the named profile.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, profileName(name)); err != nil {
		return err
	}
	s.logger.Info("Mapping profile deleted", zap.String("profile", name))
	return nil
}

func profileName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultProfile
	}
	return name
}
