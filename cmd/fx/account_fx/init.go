package account_fx

import (
	"carebridge/internal/config"
	"carebridge/internal/repositories"
	"carebridge/internal/services"
	"carebridge/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenManager, provideHasher)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenManager(cfg config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideHasher(cfg config.Config) utils.PasswordHasher {
	return utils.NewBcryptHasher(cfg.Auth.BcryptCost)
}

func provideAccountService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	linkService services.LinkServiceInterface,
	hasher utils.PasswordHasher,
	tokens *utils.TokenManager,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(db, accountRepo, linkService, hasher, tokens, log)
}
