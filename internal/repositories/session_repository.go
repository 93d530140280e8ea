package repositories

import (
	"context"
	"time"

	dbm "carebridge/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionFilter struct {
	Status   *dbm.SessionStatus
	ClientID *uint
	From     *time.Time
	To       *time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, session *dbm.Session) error
	Save(ctx context.Context, session *dbm.Session) error
	FindOwned(ctx context.Context, therapistID, sessionID uint) (*dbm.Session, error)
	FindForClient(ctx context.Context, clientID, sessionID uint) (*dbm.Session, error)
	ListByTherapist(ctx context.Context, therapistID uint, filter SessionFilter) ([]dbm.Session, error)
	ListByClient(ctx context.Context, clientID uint, from *time.Time) ([]dbm.Session, error)
	NextScheduledForClient(ctx context.Context, clientID uint, now time.Time) (*dbm.Session, error)
	DeleteWithNotes(ctx context.Context, therapistID, sessionID uint) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *dbm.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
}

func (r *sessionRepository) Save(ctx context.Context, session *dbm.Session) error {
	return r.db.WithContext(ctx).
		Model(session).
		Select("starts_at", "duration_min", "status", "type", "notes_preview", "updated_at").
		Updates(session).Error
}

func (r *sessionRepository) FindOwned(ctx context.Context, therapistID, sessionID uint) (*dbm.Session, error) {
	var session dbm.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND therapist_id = ?", sessionID, therapistID).
		First(&session).Error
	return firstOrNil(&session, err)
}

func (r *sessionRepository) FindForClient(ctx context.Context, clientID, sessionID uint) (*dbm.Session, error) {
	var session dbm.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_account_id = ?", sessionID, clientID).
		First(&session).Error
	return firstOrNil(&session, err)
}

func (r *sessionRepository) ListByTherapist(ctx context.Context, therapistID uint, filter SessionFilter) ([]dbm.Session, error) {
	q := r.db.WithContext(ctx).
		Preload("Client").
		Where("therapist_id = ?", therapistID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		q = q.Where("client_account_id = ?", *filter.ClientID)
	}
	if filter.From != nil {
		q = q.Where("starts_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("starts_at < ?", filter.To.UTC())
	}

	var sessions []dbm.Session
	err := q.Order("starts_at ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) ListByClient(ctx context.Context, clientID uint, from *time.Time) ([]dbm.Session, error) {
	q := r.db.WithContext(ctx).
		Preload("Therapist").
		Where("client_account_id = ?", clientID)
	if from != nil {
		q = q.Where("starts_at >= ?", from.UTC())
	}

	var sessions []dbm.Session
	err := q.Order("starts_at ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) NextScheduledForClient(ctx context.Context, clientID uint, now time.Time) (*dbm.Session, error) {
	var session dbm.Session
	err := r.db.WithContext(ctx).
		Preload("Therapist").
		Where("client_account_id = ? AND status = ? AND starts_at >= ?", clientID, dbm.SessionScheduled, now.UTC()).
		Order("starts_at ASC, id ASC").
		First(&session).Error
	return firstOrNil(&session, err)
}

func (r *sessionRepository) DeleteWithNotes(ctx context.Context, therapistID, sessionID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ? AND therapist_id = ?", sessionID, therapistID).
			Delete(&dbm.Note{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND therapist_id = ?", sessionID, therapistID).Delete(&dbm.Session{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
