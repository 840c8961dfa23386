package modkit

import (
	"skyvault/internal/modkit/repokit"
	"skyvault/internal/platform/config"
	"skyvault/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
