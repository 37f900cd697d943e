package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "reconciliation", enabled: true}
	disabled := &stubFeature{name: "mapping", enabled: false}

	m := NewManager(nil)
	m.Register(enabled)
	m.Register(disabled)
	require.Len(t, m.Features(), 2)

	require.NoError(t, m.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := &stubFeature{name: "broken", enabled: true, err: errors.New("boom")}
	after := &stubFeature{name: "after", enabled: true}

	m := NewManager(nil)
	m.Register(failing)
	m.Register(after)

	err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken: boom")
	assert.False(t, after.loaded)
}
