package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carebridge/internal/infra"
	"carebridge/internal/models/db_models"
	"carebridge/internal/models/request_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/repositories"
	"carebridge/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, request request_models.SignUpRequest) (*response_models.SignUpResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	Me(ctx context.Context, accountID uint) (*response_models.AccountResponse, error)
}

type AccountService struct {
	db          *gorm.DB
	accountRepo repositories.AccountRepository
	linkService LinkServiceInterface
	hasher      utils.PasswordHasher
	tokens      *utils.TokenManager
	log         *zap.Logger
}

func NewAccountService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	linkService LinkServiceInterface,
	hasher utils.PasswordHasher,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		db:          db,
		accountRepo: accountRepo,
		linkService: linkService,
		hasher:      hasher,
		tokens:      tokens,
		log:         log,
	}
}

// SignUp creates the account and, for clients, links every pending invite
// for the email in the same transaction.
// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

func (a *AccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) (*response_models.SignUpResponse, error) {
	email := utils.NormalizeEmail(request.Email)
	name := strings.TrimSpace(request.Name)
	role := db_models.Role(request.Role)

	verr := &utils.ValidationError{}
	if !utils.IsValidEmail(email) {
		verr.Add("email", "must be a valid email")
	}
	if len(name) < 2 {
		verr.Add("name", "must be at least 2")
	}
	if !role.Valid() {
		verr.Add("role", "must be one of: therapist, client")
	}
	// bcrypt rejects longer input; the binding tag counts runes, not bytes
	if len(request.Password) > MaxPasswordBytes {
		verr.Add("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := a.hasher.Hash(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		Role:         role,
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	var linked int64
	err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := a.accountRepo.WithTx(tx).Insert(ctx, account); err != nil {
			if infra.IsDuplicateKey(err) {
				return utils.ErrEmailAlreadyExists
			}
			return fmt.Errorf("%w: insert account: %v", utils.ErrDatabaseError, err)
		}
		n, err := a.linkService.AutoLinkOnSignup(ctx, tx, account)
		if err != nil {
			return err
		}
		linked = n
		return nil
	})
	if err != nil {
		if !errors.Is(err, utils.ErrEmailAlreadyExists) && !errors.Is(err, utils.ErrWriteConflict) {
			a.log.Error("signup failed", zap.String("role", string(role)), zap.Error(err))
		}
		return nil, err
	}

	auth, err := a.issue(account)
	if err != nil {
		return nil, err
	}

	a.log.Info("account created",
		zap.Uint("account_id", account.ID),
		zap.String("role", string(role)),
		zap.Int64("linked_invites", linked),
	)
	return &response_models.SignUpResponse{AuthResponse: *auth, LinkedInvites: linked}, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, utils.NormalizeEmail(request.Email))
	if err != nil {
		a.log.Error("login lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: find account: %v", utils.ErrDatabaseError, err)
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := a.hasher.Compare(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.issue(account)
}

func (a *AccountService) Me(ctx context.Context, accountID uint) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: find account: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	resp := response_models.NewAccountResponse(account)
	return &resp, nil
}

func (a *AccountService) issue(account *db_models.Account) (*response_models.AuthResponse, error) {
	token, expires, err := a.tokens.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &response_models.AuthResponse{
		Token:     token,
		ExpiresAt: expires,
		Account:   response_models.NewAccountResponse(account),
	}, nil
}
