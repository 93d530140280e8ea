package note_fx

import (
	"carebridge/internal/repositories"
	"carebridge/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideNoteService, provideNoteRepo)

func provideNoteRepo(db *gorm.DB) repositories.NoteRepository {
	return repositories.NewNoteRepository(db)
}

func provideNoteService(
	sessionRepo repositories.SessionRepository,
	noteRepo repositories.NoteRepository,
	log *zap.Logger,
) services.NoteServiceInterface {
	return services.NewNoteService(sessionRepo, noteRepo, log.Named("notes"))
}
