package session_fx

import (
	"carebridge/internal/repositories"
	"carebridge/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideSessionService, provideSessionRepo)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideSessionService(
	sessionRepo repositories.SessionRepository,
	linkRepo repositories.LinkRepository,
	log *zap.Logger,
) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, linkRepo, log.Named("sessions"))
}
