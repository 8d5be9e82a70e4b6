// Package loader registers HTTP features on the Fiber router.
//
// A feature bundles a service with its handler and exposes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.Register collects features in order and Manager.LoadAll mounts the
// enabled ones, stopping at the first route registration error. The server
// registers "collection" and "integrity"; the CLI builds the same services
// directly without going through the manager.
package loader
