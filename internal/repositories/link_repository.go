package repositories

import (
	"context"
	"errors"
	"time"

	dbm "carebridge/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepository interface {
	WithTx(tx *gorm.DB) LinkRepository
	Create(ctx context.Context, link *dbm.Link) error
	FindByPair(ctx context.Context, therapistID, clientID uint) (*dbm.Link, error)
	FindPendingInvite(ctx context.Context, therapistID uint, email string) (*dbm.Link, error)
	FindLatestActiveForClient(ctx context.Context, clientID uint) (*dbm.Link, error)
	ListByTherapist(ctx context.Context, therapistID uint) ([]dbm.Link, error)

	// ActivatePendingInvites is the invite→link transition: one conditional
	// bulk update, never read-then-write.
	ActivatePendingInvites(ctx context.Context, email string, clientID uint) (int64, error)
	DeletePendingInvites(ctx context.Context, therapistID uint, email string) (int64, error)
	UpdateStatus(ctx context.Context, therapistID, clientID uint, status dbm.LinkStatus) (int64, error)
	DeleteInvite(ctx context.Context, therapistID, inviteID uint) (int64, error)
	DeleteLinked(ctx context.Context, therapistID, clientID uint) (int64, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) WithTx(tx *gorm.DB) LinkRepository {
	return &linkRepository{db: tx}
}

func (r *linkRepository) Create(ctx context.Context, link *dbm.Link) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

func (r *linkRepository) FindByPair(ctx context.Context, therapistID, clientID uint) (*dbm.Link, error) {
	var link dbm.Link
	err := r.db.WithContext(ctx).
		Where("therapist_id = ? AND client_account_id = ?", therapistID, clientID).
		First(&link).Error
	return firstOrNil(&link, err)
}

func (r *linkRepository) FindPendingInvite(ctx context.Context, therapistID uint, email string) (*dbm.Link, error) {
	var link dbm.Link
	err := r.db.WithContext(ctx).
		Where("therapist_id = ? AND email = ? AND client_account_id IS NULL AND status = ?",
			therapistID, email, dbm.LinkInvited).
		First(&link).Error
	return firstOrNil(&link, err)
}

func (r *linkRepository) FindLatestActiveForClient(ctx context.Context, clientID uint) (*dbm.Link, error) {
	var link dbm.Link
	err := r.db.WithContext(ctx).
		Preload("Therapist").
		Where("client_account_id = ? AND status = ?", clientID, dbm.LinkActive).
		Order("updated_at DESC, id DESC").
		First(&link).Error
	return firstOrNil(&link, err)
}

func (r *linkRepository) ListByTherapist(ctx context.Context, therapistID uint) ([]dbm.Link, error) {
	var links []dbm.Link
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("therapist_id = ?", therapistID).
		Order("created_at DESC, id DESC").
		Find(&links).Error
	return links, err
}

func (r *linkRepository) ActivatePendingInvites(ctx context.Context, email string, clientID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Link{}).
		Where("email = ? AND client_account_id IS NULL AND status = ?", email, dbm.LinkInvited).
		Updates(map[string]interface{}{
			"status":            dbm.LinkActive,
			"client_account_id": clientID,
			"linked_at":         time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *linkRepository) DeletePendingInvites(ctx context.Context, therapistID uint, email string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("therapist_id = ? AND email = ? AND client_account_id IS NULL AND status = ?",
			therapistID, email, dbm.LinkInvited).
		Delete(&dbm.Link{})
	return res.RowsAffected, res.Error
}

func (r *linkRepository) UpdateStatus(ctx context.Context, therapistID, clientID uint, status dbm.LinkStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Link{}).
		Where("therapist_id = ? AND client_account_id = ?", therapistID, clientID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *linkRepository) DeleteInvite(ctx context.Context, therapistID, inviteID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND therapist_id = ? AND client_account_id IS NULL AND status = ?",
			inviteID, therapistID, dbm.LinkInvited).
		Delete(&dbm.Link{})
	return res.RowsAffected, res.Error
}

func (r *linkRepository) DeleteLinked(ctx context.Context, therapistID, clientID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("therapist_id = ? AND client_account_id = ?", therapistID, clientID).
		Delete(&dbm.Link{})
	return res.RowsAffected, res.Error
}

func firstOrNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
