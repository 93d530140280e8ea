package config_fx

import (
	"carebridge/internal/config"

	"go.uber.org/fx"
)

var Module = fx.Provide(config.Load)
