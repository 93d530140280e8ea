package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	dbm "carebridge/internal/models/db_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/repositories"
	"carebridge/pkg/utils"

	"go.uber.org/zap"
)

const MaxNoteLength = 20000

// NoteServiceInterface addresses every note through its (session, therapist)
// pair. A session owned by someone else is reported as not found.
type NoteServiceInterface interface {
	ListNotes(ctx context.Context, therapistID, sessionID uint) ([]response_models.NoteResponse, error)
	CreateNote(ctx context.Context, therapistID, sessionID uint, content string) (*response_models.NoteResponse, error)
	GetNote(ctx context.Context, therapistID, sessionID, noteID uint) (*response_models.NoteResponse, error)
	UpdateNote(ctx context.Context, therapistID, sessionID, noteID uint, content string) (*response_models.NoteResponse, error)
	DeleteNote(ctx context.Context, therapistID, sessionID, noteID uint) error
}

type NoteService struct {
	sessionRepo repositories.SessionRepository
	noteRepo    repositories.NoteRepository
	log         *zap.Logger
}

func NewNoteService(
	sessionRepo repositories.SessionRepository,
	noteRepo repositories.NoteRepository,
	log *zap.Logger,
) NoteServiceInterface {
	return &NoteService{
		sessionRepo: sessionRepo,
		noteRepo:    noteRepo,
		log:         log,
	}
}

func (n *NoteService) ListNotes(ctx context.Context, therapistID, sessionID uint) ([]response_models.NoteResponse, error) {
	if err := n.requireSession(ctx, therapistID, sessionID); err != nil {
		return nil, err
	}
	notes, err := n.noteRepo.ListBySession(ctx, sessionID, therapistID)
	if err != nil {
		return nil, n.dbError("list notes", err)
	}
	return response_models.NewNoteResponses(notes), nil
}

func (n *NoteService) CreateNote(ctx context.Context, therapistID, sessionID uint, content string) (*response_models.NoteResponse, error) {
	content, err := cleanNoteContent(content)
	if err != nil {
		return nil, err
	}
	if err := n.requireSession(ctx, therapistID, sessionID); err != nil {
		return nil, err
	}

	note := &dbm.Note{
		SessionID:   sessionID,
		TherapistID: therapistID,
		Content:     content,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		return nil, n.dbError("create note", err)
	}
	resp := response_models.NewNoteResponse(note)
	return &resp, nil
}

func (n *NoteService) GetNote(ctx context.Context, therapistID, sessionID, noteID uint) (*response_models.NoteResponse, error) {
	note, err := n.noteRepo.FindOwned(ctx, noteID, sessionID, therapistID)
	if err != nil {
		return nil, n.dbError("find note", err)
	}
	if note == nil {
		return nil, utils.ErrNotFound
	}
	resp := response_models.NewNoteResponse(note)
	return &resp, nil
}

func (n *NoteService) UpdateNote(ctx context.Context, therapistID, sessionID, noteID uint, content string) (*response_models.NoteResponse, error) {
	content, err := cleanNoteContent(content)
	if err != nil {
		return nil, err
	}

	affected, err := n.noteRepo.UpdateContent(ctx, noteID, sessionID, therapistID, content)
	if err != nil {
		return nil, n.dbError("update note", err)
	}
	if affected == 0 {
		return nil, utils.ErrNotFound
	}
	return n.GetNote(ctx, therapistID, sessionID, noteID)
}

func (n *NoteService) DeleteNote(ctx context.Context, therapistID, sessionID, noteID uint) error {
	affected, err := n.noteRepo.Delete(ctx, noteID, sessionID, therapistID)
	if err != nil {
		return n.dbError("delete note", err)
	}
	if affected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (n *NoteService) requireSession(ctx context.Context, therapistID, sessionID uint) error {
	session, err := n.sessionRepo.FindOwned(ctx, therapistID, sessionID)
	if err != nil {
		return n.dbError("find session", err)
	}
	if session == nil {
		return utils.ErrNotFound
	}
	return nil
}

func (n *NoteService) dbError(op string, err error) error {
	// note content is never logged
	n.log.Error("note storage failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}

func cleanNoteContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", utils.NewValidationError("content", "is required")
	}
	if utf8.RuneCountInString(content) > MaxNoteLength {
		return "", utils.NewValidationError("content", fmt.Sprintf("must be at most %d", MaxNoteLength))
	}
	return content, nil
}
