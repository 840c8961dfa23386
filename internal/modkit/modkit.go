// Package modkit provides module wiring and core deps
package modkit

import (
	phttp "skyvault/internal/platform/net/http"
)

// Module is the common surface for service modules that can mount routes
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)

	// Name returns the module name
	Name() string

	// Prefix returns the module route prefix, may be empty for root mounts
	Prefix() string
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
