package repositories

import (
	"context"

	dbm "carebridge/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteRepository scopes every query by the (session, therapist) pair.
type NoteRepository interface {
	Create(ctx context.Context, note *dbm.Note) error
	ListBySession(ctx context.Context, sessionID, therapistID uint) ([]dbm.Note, error)
	FindOwned(ctx context.Context, noteID, sessionID, therapistID uint) (*dbm.Note, error)
	UpdateContent(ctx context.Context, noteID, sessionID, therapistID uint, content string) (int64, error)
	Delete(ctx context.Context, noteID, sessionID, therapistID uint) (int64, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *dbm.Note) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(note).Error
}

func (r *noteRepository) ListBySession(ctx context.Context, sessionID, therapistID uint) ([]dbm.Note, error) {
	var notes []dbm.Note
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND therapist_id = ?", sessionID, therapistID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error
	return notes, err
}

func (r *noteRepository) FindOwned(ctx context.Context, noteID, sessionID, therapistID uint) (*dbm.Note, error) {
	var note dbm.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ? AND therapist_id = ?", noteID, sessionID, therapistID).
		First(&note).Error
	return firstOrNil(&note, err)
}

func (r *noteRepository) UpdateContent(ctx context.Context, noteID, sessionID, therapistID uint, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Note{}).
		Where("id = ? AND session_id = ? AND therapist_id = ?", noteID, sessionID, therapistID).
		Update("content", content)
	return res.RowsAffected, res.Error
}

func (r *noteRepository) Delete(ctx context.Context, noteID, sessionID, therapistID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ? AND therapist_id = ?", noteID, sessionID, therapistID).
		Delete(&dbm.Note{})
	return res.RowsAffected, res.Error
}
