package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"carebridge/internal/infra"
	dbm "carebridge/internal/models/db_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/repositories"
	"carebridge/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LinkServiceInterface interface {
	CreateLinkOrInvite(ctx context.Context, therapistID uint, email, name string) (response_models.ClientEntry, error)
	AutoLinkOnSignup(ctx context.Context, tx *gorm.DB, account *dbm.Account) (int64, error)
	UpdateLinkStatus(ctx context.Context, therapistID uint, ref string, status string) (response_models.ClientEntry, error)
	RemoveLink(ctx context.Context, therapistID uint, ref string) error
	ListClients(ctx context.Context, therapistID uint) ([]response_models.ClientEntry, error)
	ListClientCheckins(ctx context.Context, therapistID uint, ref string, limit int) ([]response_models.CheckinResponse, error)
}

type LinkService struct {
	db          *gorm.DB
	accountRepo repositories.AccountRepository
	linkRepo    repositories.LinkRepository
	checkinRepo repositories.CheckinRepository
	log         *zap.Logger
}

func NewLinkService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	linkRepo repositories.LinkRepository,
	checkinRepo repositories.CheckinRepository,
	log *zap.Logger,
) LinkServiceInterface {
	return &LinkService{
		db:          db,
		accountRepo: accountRepo,
		linkRepo:    linkRepo,
		checkinRepo: checkinRepo,
		log:         log,
	}
}

func (s *LinkService) CreateLinkOrInvite(ctx context.Context, therapistID uint, email, name string) (response_models.ClientEntry, error) {
	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("email", "must be a valid email")
	}
	name = strings.TrimSpace(name)

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.dbError("find account by email", err)
	}

	if account == nil {
		return s.createInvite(ctx, therapistID, email, name)
	}
	if account.Role != dbm.RoleClient {
		return nil, utils.ErrEmailBelongsToTherapist
	}
	return s.createActiveLink(ctx, therapistID, account, name)
}

func (s *LinkService) createInvite(ctx context.Context, therapistID uint, email, name string) (response_models.ClientEntry, error) {
	pending, err := s.linkRepo.FindPendingInvite(ctx, therapistID, email)
	if err != nil {
		return nil, s.dbError("find pending invite", err)
	}
	if pending != nil {
		return nil, utils.ErrInviteExists
	}

	link := &dbm.Link{
		TherapistID: therapistID,
		Email:       email,
		Name:        name,
		Status:      dbm.LinkInvited,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		if infra.IsDuplicateKey(err) {
			return nil, utils.ErrInviteExists
		}
		return nil, s.dbError("create invite", err)
	}

	s.log.Info("invite created", zap.Uint("therapist_id", therapistID), zap.Uint("invite_id", link.ID))
	return response_models.NewClientEntry(link), nil
}

func (s *LinkService) createActiveLink(ctx context.Context, therapistID uint, client *dbm.Account, name string) (response_models.ClientEntry, error) {
	if name == "" {
		name = client.Name
	}
	linkedAt := time.Now().UTC()
	link := &dbm.Link{
		TherapistID:     therapistID,
		ClientAccountID: &client.ID,
		Email:           client.Email,
		Name:            name,
		Status:          dbm.LinkActive,
		LinkedAt:        &linkedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := s.linkRepo.WithTx(tx)

		existing, err := links.FindByPair(ctx, therapistID, client.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return utils.ErrAlreadyLinked
		}
		if _, err := links.DeletePendingInvites(ctx, therapistID, client.Email); err != nil {
			return err
		}
		return links.Create(ctx, link)
	})
	if err != nil {
		if errors.Is(err, utils.ErrAlreadyLinked) || infra.IsDuplicateKey(err) {
			return nil, utils.ErrAlreadyLinked
		}
		return nil, s.dbError("create link", err)
	}

	link.Client = client
	s.log.Info("client linked",
		zap.Uint("therapist_id", therapistID),
		zap.Uint("client_id", client.ID),
	)
	return response_models.NewClientEntry(link), nil
}

// AutoLinkOnSignup activates every pending invite addressed to the new
// account's email. It must run inside the signup transaction.
func (s *LinkService) AutoLinkOnSignup(ctx context.Context, tx *gorm.DB, account *dbm.Account) (int64, error) {
	if account.Role != dbm.RoleClient {
		return 0, nil
	}

	linked, err := s.linkRepo.WithTx(tx).ActivatePendingInvites(ctx, account.Email, account.ID)
	if err != nil {
		if infra.IsDuplicateKey(err) {
			return 0, utils.ErrWriteConflict
		}
		return 0, s.dbError("activate pending invites", err)
	}
	if linked > 0 {
		s.log.Info("pending invites linked on signup",
			zap.Uint("client_id", account.ID),
			zap.Int64("linked", linked),
		)
	}
	return linked, nil
}

func (s *LinkService) UpdateLinkStatus(ctx context.Context, therapistID uint, ref string, status string) (response_models.ClientEntry, error) {
	clientRef, err := parseRef(ref)
	if err != nil {
		return nil, err
	}
	if clientRef.IsInvite() {
		return nil, utils.ErrInvalidOperationOnInvite
	}

	next := dbm.LinkStatus(status)
	if next != dbm.LinkActive && next != dbm.LinkPaused {
		return nil, utils.NewValidationError("status", "must be one of: active, paused")
	}

	affected, err := s.linkRepo.UpdateStatus(ctx, therapistID, clientRef.ID, next)
	if err != nil {
		return nil, s.dbError("update link status", err)
	}
	if affected == 0 {
		return nil, utils.ErrNotFound
	}

	link, err := s.linkRepo.FindByPair(ctx, therapistID, clientRef.ID)
	if err != nil {
		return nil, s.dbError("reload link", err)
	}
	if link == nil {
		return nil, utils.ErrNotFound
	}
	return response_models.NewClientEntry(link), nil
}

func (s *LinkService) RemoveLink(ctx context.Context, therapistID uint, ref string) error {
	clientRef, err := parseRef(ref)
	if err != nil {
		return err
	}

	var affected int64
	if clientRef.IsInvite() {
		affected, err = s.linkRepo.DeleteInvite(ctx, therapistID, clientRef.ID)
	} else {
		affected, err = s.linkRepo.DeleteLinked(ctx, therapistID, clientRef.ID)
	}
	if err != nil {
		return s.dbError("remove link", err)
	}
	if affected == 0 {
		return utils.ErrNotFound
	}

	s.log.Info("link removed",
		zap.Uint("therapist_id", therapistID),
		zap.String("ref", clientRef.String()),
	)
	return nil
}

// ListClients returns linked clients first, ordered by name, then pending
// invites, newest first.
func (s *LinkService) ListClients(ctx context.Context, therapistID uint) ([]response_models.ClientEntry, error) {
	links, err := s.linkRepo.ListByTherapist(ctx, therapistID)
	if err != nil {
		return nil, s.dbError("list links", err)
	}

	var linked []response_models.LinkedEntry
	var invites []response_models.ClientEntry
	for i := range links {
		switch entry := response_models.NewClientEntry(&links[i]).(type) {
		case response_models.LinkedEntry:
			linked = append(linked, entry)
		case response_models.InviteEntry:
			invites = append(invites, entry)
		}
	}
	slices.SortStableFunc(linked, func(a, b response_models.LinkedEntry) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.AccountID, b.AccountID),
		)
	})

	entries := make([]response_models.ClientEntry, 0, len(links))
	for _, e := range linked {
		entries = append(entries, e)
	}
	return append(entries, invites...), nil
}

// ListClientCheckins returns the linked client's check-ins attributed to this
// therapist. Check-ins belonging to another therapist are never visible.
func (s *LinkService) ListClientCheckins(ctx context.Context, therapistID uint, ref string, limit int) ([]response_models.CheckinResponse, error) {
	clientRef, err := parseRef(ref)
	if err != nil {
		return nil, err
	}
	if clientRef.IsInvite() {
		return nil, utils.ErrInvalidOperationOnInvite
	}

	link, err := s.linkRepo.FindByPair(ctx, therapistID, clientRef.ID)
	if err != nil {
		return nil, s.dbError("find link", err)
	}
	if link == nil {
		return nil, utils.ErrNotFound
	}

	checkins, err := s.checkinRepo.ListByClientAndTherapist(ctx, clientRef.ID, therapistID, normalizeLimit(limit))
	if err != nil {
		return nil, s.dbError("list client checkins", err)
	}
	return response_models.NewCheckinResponses(checkins), nil
}

func (s *LinkService) dbError(op string, err error) error {
	s.log.Error("link storage failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}

func parseRef(ref string) (response_models.ClientRef, error) {
	clientRef, err := response_models.ParseClientRef(ref)
	if err != nil {
		return clientRef, utils.NewValidationError("clientId", err.Error())
	}
	return clientRef, nil
}
