package link_fx

import (
	"carebridge/internal/repositories"
	"carebridge/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideLinkService, provideLinkRepo)

func provideLinkRepo(db *gorm.DB) repositories.LinkRepository {
	return repositories.NewLinkRepository(db)
}

func provideLinkService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	linkRepo repositories.LinkRepository,
	checkinRepo repositories.CheckinRepository,
	log *zap.Logger,
) services.LinkServiceInterface {
	return services.NewLinkService(db, accountRepo, linkRepo, checkinRepo, log.Named("links"))
}
