package db_fx

import (
	"carebridge/internal/config"
	"carebridge/internal/infra"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg.Database.Driver, cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.CloseDatabase(db, log)
	}))
	return db, nil
}
