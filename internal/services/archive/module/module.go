// Package module wires the archive service into the API using modkit
package module

import (
	"skyvault/internal/modkit"
	"skyvault/internal/modkit/httpkit"
	"skyvault/internal/services/archive/domain"
	archivehttp "skyvault/internal/services/archive/http"
	"skyvault/internal/services/archive/repo"
	"skyvault/internal/services/archive/service"
)

// Ports exposed by the archive module
type Ports struct {
	Query   domain.QueryPort
	Archive domain.ArchivePort
}

// Module implements the archive service module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *service.Service
}

// New constructs a new archive module
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("archive")}, opts...)...)

	svc, err := service.New(deps.PG, repo.NewPG(), FromConfig(deps.Cfg))
	if err != nil {
		return nil, err
	}
	return &Module{deps: deps, built: b, svc: svc}, nil
}

// Service exposes the underlying service for sibling modules
func (m *Module) Service() *service.Service { return m.svc }

// Ports returns the module's exposed ports
func (m *Module) Ports() Ports { return Ports{Query: m.svc, Archive: m.svc} }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Prefix satisfies modkit.Module. Empty, the endpoint paths are a wire
// contract at the server root
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	archivehttp.Register(r, m.svc)
	m.built.Register(r)
}
