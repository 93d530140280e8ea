package services

import (
	"strconv"
	"testing"
	"time"

	"carebridge/internal/repositories"
	"carebridge/internal/testutil"

	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	accounts   *AccountService
	links      *LinkService
	sessions   *SessionService
	notes      *NoteService
	continuity *ContinuityService
}

// newTestEnv wires every service against a fresh in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zaptest.NewLogger(t)

	accountRepo := repositories.NewAccountRepository(db)
	linkRepo := repositories.NewLinkRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	checkinRepo := repositories.NewCheckinRepository(db)
	goalRepo := repositories.NewGoalRepository(db)

	links := NewLinkService(db, accountRepo, linkRepo, checkinRepo, log).(*LinkService)
	return &testEnv{
		db:         db,
		accounts:   NewAccountService(db, accountRepo, links, testutil.TestHasher(), testutil.TestTokens(), log).(*AccountService),
		links:      links,
		sessions:   NewSessionService(sessionRepo, linkRepo, log).(*SessionService),
		notes:      NewNoteService(sessionRepo, noteRepo, log).(*NoteService),
		continuity: NewContinuityService(checkinRepo, goalRepo, sessionRepo, linkRepo, log).(*ContinuityService),
	}
}

// freezeTime pins the clock of the time-aware services.
func (e *testEnv) freezeTime(now time.Time) {
	clock := func() time.Time { return now }
	e.sessions.now = clock
	e.continuity.now = clock
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
