// Package autoload initializes the global logger from LOG_* environment
// variables as an import side effect.
package autoload

import (
	configx "github.com/coverwise/advisor-agent/pkg/config"
	logx "github.com/coverwise/advisor-agent/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
