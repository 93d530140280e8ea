package continuity_fx

import (
	"carebridge/internal/repositories"
	"carebridge/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideContinuityService, provideCheckinRepo, provideGoalRepo)

func provideCheckinRepo(db *gorm.DB) repositories.CheckinRepository {
	return repositories.NewCheckinRepository(db)
}

func provideGoalRepo(db *gorm.DB) repositories.GoalRepository {
	return repositories.NewGoalRepository(db)
}

func provideContinuityService(
	checkinRepo repositories.CheckinRepository,
	goalRepo repositories.GoalRepository,
	sessionRepo repositories.SessionRepository,
	linkRepo repositories.LinkRepository,
	log *zap.Logger,
) services.ContinuityServiceInterface {
	return services.NewContinuityService(checkinRepo, goalRepo, sessionRepo, linkRepo, log.Named("continuity"))
}
