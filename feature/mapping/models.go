package mapping

import (
	"strings"
	"time"

	"bom-merger/core/config"
	"bom-merger/core/reconcile"
)

// DefaultProfile is the profile name used when a request does not name one.
const DefaultProfile = "default"

// Profile is a saved column mapping.
type Profile struct {
	Name             string            `gorm:"column:name;primaryKey;size:64" json:"name"`
	Mapping          reconcile.Mapping `gorm:"embedded" json:"mapping"`
	Delimiter        string            `gorm:"column:delimiter;size:16" json:"delimiter"`
	SuppressPrefixes string            `gorm:"column:suppress_prefixes;size:255" json:"-"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TableName overrides the table name.
func (Profile) TableName() string {
	return "mapping_profiles"
}

// Options returns the reconciliation options stored with the profile.
func (p Profile) Options() (reconcile.Options, error) {
	delim, err := reconcile.ParseDelimiter(p.Delimiter)
	if err != nil {
		return reconcile.Options{}, err
	}
	return reconcile.Options{
		Delimiter:        delim,
		SuppressPrefixes: config.ParsePrefixes(p.SuppressPrefixes),
	}, nil
}

// Prefixes returns the stored suppression prefixes. nil means the defaults
// apply; an empty slice means auto-suppression is disabled.
func (p Profile) Prefixes() []string {
	return config.ParsePrefixes(p.SuppressPrefixes)
}

// encodePrefixes is the inverse of config.ParsePrefixes.
func encodePrefixes(prefixes []string) string {
	if prefixes == nil {
		return ""
	}
	if len(prefixes) == 0 {
		return "none"
	}
	return strings.Join(prefixes, ",")
}

// ProfileFromConfig builds the fallback profile from configuration.
func ProfileFromConfig(cfg config.MappingConfig) Profile {
	return Profile{
		Name:             DefaultProfile,
		Mapping:          cfg.Mapping(),
		Delimiter:        cfg.Delimiter,
		SuppressPrefixes: cfg.SuppressPrefixes,
	}
}

// ProfileRequest is the body of PUT /mappings/:name.
type ProfileRequest struct {
	Mapping          reconcile.Mapping `json:"mapping"`
	Delimiter        string            `json:"delimiter" validate:"omitempty,oneof=comma semicolon space auto"`
	SuppressPrefixes []string          `json:"suppress_prefixes" validate:"omitempty,dive,alphanum,max=16"`
}

// ProfileResponse is the JSON view of a profile.
type ProfileResponse struct {
	Profile
	SuppressPrefixes []string `json:"suppress_prefixes"`
	Stored           bool     `json:"stored"`
}

func newResponse(p Profile, stored bool) ProfileResponse {
	return ProfileResponse{Profile: p, SuppressPrefixes: p.Prefixes(), Stored: stored}
}
