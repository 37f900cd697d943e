package config

import (
	"os"
	"path/filepath"
	"testing"

	"bom-merger/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 32, cfg.Server.BodyLimitMB)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "bom-merger", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Ref Des", cfg.Mapping.PartsDesignator)
	assert.Equal(t, "Designator", cfg.Mapping.PlacementDesignator)
	assert.Equal(t, "FID,TP,MH", cfg.Mapping.SuppressPrefixes)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("MAPPING_PARTS_DESIGNATOR", "Reference")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "Reference", cfg.Mapping.PartsDesignator)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "LOG_LEVEL=debug\nMAPPING_DELIMITER=auto\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("MAPPING_DELIMITER")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Mapping.Delimiter)
}

func TestMappingConfig_Options(t *testing.T) {
	tests := []struct {
		name     string
		cfg      MappingConfig
		delim    reconcile.Delimiter
		prefixes []string
		wantErr  bool
	}{
		{"Defaults", MappingConfig{Delimiter: "comma", SuppressPrefixes: "FID,TP,MH"}, reconcile.DelimiterComma, []string{"FID", "TP", "MH"}, false},
		{"SpacedLowercase", MappingConfig{Delimiter: ";", SuppressPrefixes: " fid , logo "}, reconcile.DelimiterSemicolon, []string{"FID", "LOGO"}, false},
		{"Disabled", MappingConfig{Delimiter: "auto", SuppressPrefixes: "none"}, reconcile.DelimiterAuto, []string{}, false},
		{"EmptyMeansDefaults", MappingConfig{}, reconcile.DelimiterComma, nil, false},
		{"BadDelimiter", MappingConfig{Delimiter: "pipe"}, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.Options()
			if tt.wantErr {
				assert.ErrorIs(t, err, reconcile.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.delim, opts.Delimiter)
			assert.Equal(t, tt.prefixes, opts.SuppressPrefixes)
		})
	}
}

func TestMappingConfig_Mapping(t *testing.T) {
	m := MappingConfig{PartsDesignator: "Ref Des", PlacementDesignator: "Designator", Y: "Mid Y"}.Mapping()
	assert.Equal(t, "Ref Des", m.PartsDesignator)
	assert.Equal(t, "Designator", m.PlacementDesignator)
	assert.Equal(t, "Mid Y", m.Y)
	assert.Empty(t, m.X)
}
