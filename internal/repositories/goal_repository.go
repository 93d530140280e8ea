package repositories

import (
	"context"
	"time"

	dbm "carebridge/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *dbm.Goal) error
	Save(ctx context.Context, goal *dbm.Goal) error
	FindOwned(ctx context.Context, clientID, goalID uint) (*dbm.Goal, error)
	ListByClient(ctx context.Context, clientID uint, status *dbm.GoalStatus) ([]dbm.Goal, error)
	LatestActive(ctx context.Context, clientID uint) (*dbm.Goal, error)
	LatestUpdate(ctx context.Context, goalID uint) (*dbm.GoalUpdate, error)
	AddUpdate(ctx context.Context, goal *dbm.Goal, update *dbm.GoalUpdate) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *dbm.Goal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(goal).Error
}

func (r *goalRepository) Save(ctx context.Context, goal *dbm.Goal) error {
	return r.db.WithContext(ctx).
		Model(goal).
		Select("title", "status", "updated_at").
		Updates(goal).Error
}

func (r *goalRepository) FindOwned(ctx context.Context, clientID, goalID uint) (*dbm.Goal, error) {
	var goal dbm.Goal
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_account_id = ?", goalID, clientID).
		First(&goal).Error
	return firstOrNil(&goal, err)
}

func (r *goalRepository) ListByClient(ctx context.Context, clientID uint, status *dbm.GoalStatus) ([]dbm.Goal, error) {
	q := r.db.WithContext(ctx).Where("client_account_id = ?", clientID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var goals []dbm.Goal
	err := q.Order("updated_at DESC, id DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepository) LatestActive(ctx context.Context, clientID uint) (*dbm.Goal, error) {
	var goal dbm.Goal
	err := r.db.WithContext(ctx).
		Where("client_account_id = ? AND status = ?", clientID, dbm.GoalActive).
		Order("updated_at DESC, id DESC").
		First(&goal).Error
	return firstOrNil(&goal, err)
}

func (r *goalRepository) LatestUpdate(ctx context.Context, goalID uint) (*dbm.GoalUpdate, error) {
	var update dbm.GoalUpdate
	err := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC, id DESC").
		First(&update).Error
	return firstOrNil(&update, err)
}

// AddUpdate appends the update and bumps the goal's updated_at in one transaction.
func (r *goalRepository) AddUpdate(ctx context.Context, goal *dbm.Goal, update *dbm.GoalUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update.GoalID = goal.ID
		if update.CreatedAt.IsZero() {
			update.CreatedAt = time.Now().UTC()
		}
		if err := tx.Create(update).Error; err != nil {
			return err
		}
		goal.UpdatedAt = update.CreatedAt
		return tx.Model(&dbm.Goal{}).
			Where("id = ?", goal.ID).
			UpdateColumn("updated_at", goal.UpdatedAt).Error
	})
}
