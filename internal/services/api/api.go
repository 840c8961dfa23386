// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"skyvault/internal/platform/config"
	"skyvault/internal/platform/logger"
	phttp "skyvault/internal/platform/net/http"
	"skyvault/internal/platform/store"

	"skyvault/internal/core/version"
	"skyvault/internal/modkit"
	"skyvault/internal/modkit/httpkit"
	"skyvault/internal/modkit/swaggerkit"

	archivemod "skyvault/internal/services/archive/module"
	"skyvault/internal/services/pages"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	archive, err := archivemod.New(deps)
	if err != nil {
		return err
	}

	mods := []modkit.Module{
		archive,
		pages.New(deps, archive.Ports().Query),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// endpoint paths are a wire contract with the calendar UI, so every
	// module mounts at the server root under the common stack
	httpkit.MountUnder(r, "", httpkit.CommonStack(), func(root httpkit.Router) {
		httpkit.Get(root, "/version", func(*http.Request) (any, error) {
			return version.Info("skyvault-api"), nil
		})
		for _, m := range mods {
			httpkit.MountUnder(root, m.Prefix(), nil, m.MountRoutes)
		}
	})
	return nil
}
