package repositories

import (
	"context"

	dbm "carebridge/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepository interface {
	Create(ctx context.Context, checkin *dbm.CheckIn) error
	RecentByType(ctx context.Context, clientID uint, checkinType dbm.CheckinType, limit int) ([]dbm.CheckIn, error)
	Latest(ctx context.Context, clientID uint) (*dbm.CheckIn, error)
	ListByClient(ctx context.Context, clientID uint, limit int) ([]dbm.CheckIn, error)
	ListByClientAndTherapist(ctx context.Context, clientID, therapistID uint, limit int) ([]dbm.CheckIn, error)
}

type checkinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(ctx context.Context, checkin *dbm.CheckIn) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(checkin).Error
}

func (r *checkinRepository) RecentByType(ctx context.Context, clientID uint, checkinType dbm.CheckinType, limit int) ([]dbm.CheckIn, error) {
	var checkins []dbm.CheckIn
	err := r.db.WithContext(ctx).
		Where("client_account_id = ? AND type = ?", clientID, checkinType).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}

func (r *checkinRepository) Latest(ctx context.Context, clientID uint) (*dbm.CheckIn, error) {
	var checkin dbm.CheckIn
	err := r.db.WithContext(ctx).
		Where("client_account_id = ?", clientID).
		Order("created_at DESC, id DESC").
		First(&checkin).Error
	return firstOrNil(&checkin, err)
}

func (r *checkinRepository) ListByClient(ctx context.Context, clientID uint, limit int) ([]dbm.CheckIn, error) {
	var checkins []dbm.CheckIn
	err := r.db.WithContext(ctx).
		Where("client_account_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}

// ListByClientAndTherapist returns only the check-ins attributed to the therapist.
func (r *checkinRepository) ListByClientAndTherapist(ctx context.Context, clientID, therapistID uint, limit int) ([]dbm.CheckIn, error) {
	var checkins []dbm.CheckIn
	err := r.db.WithContext(ctx).
		Where("client_account_id = ? AND therapist_id = ?", clientID, therapistID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}
