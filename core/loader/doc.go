// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and loads every enabled
// one with LoadAll. The start command registers the reconciliation and
// mapping features.
package loader
