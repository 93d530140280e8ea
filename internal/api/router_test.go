package api_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"carebridge/internal/api"
	"carebridge/internal/api/controllers"
	"carebridge/internal/config"
	"carebridge/internal/repositories"
	"carebridge/internal/services"
	"carebridge/internal/testutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the real router, services and repositories against sqlite.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zaptest.NewLogger(t)
	tokens := testutil.TestTokens()

	accountRepo := repositories.NewAccountRepository(db)
	linkRepo := repositories.NewLinkRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	checkinRepo := repositories.NewCheckinRepository(db)
	goalRepo := repositories.NewGoalRepository(db)

	linkService := services.NewLinkService(db, accountRepo, linkRepo, checkinRepo, log)
	sessionService := services.NewSessionService(sessionRepo, linkRepo, log)
	continuityService := services.NewContinuityService(checkinRepo, goalRepo, sessionRepo, linkRepo, log)

	var cfg config.Config
	return api.NewRouter(cfg, log, tokens, api.Controllers{
		Account: controllers.NewAccountController(
			services.NewAccountService(db, accountRepo, linkService, testutil.TestHasher(), tokens, log)),
		Client:  controllers.NewClientController(linkService),
		Session: controllers.NewSessionController(sessionService),
		Note:    controllers.NewNoteController(services.NewNoteService(sessionRepo, noteRepo, log)),
		Portal:  controllers.NewClientPortalController(continuityService, sessionService),
	})
}

type session struct {
	token string
	id    uint
}

func (s session) path(suffix string) string {
	return "/therapists/" + idStr(s.id) + suffix
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func do(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var headers map[string]string
	if token != "" {
		headers = testutil.BearerHeader(token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

func signUp(t *testing.T, r *gin.Engine, role, name, email string) session {
	t.Helper()

	w := do(r, http.MethodPost, "/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": testutil.TestPassword,
		"role":     role,
	}, "")
	testutil.AssertStatus(t, w, http.StatusCreated)

	var data struct {
		Token   string `json:"token"`
		Account struct {
			ID uint `json:"id"`
		} `json:"account"`
	}
	testutil.DecodeData(t, w, &data)
	return session{token: data.Token, id: data.Account.ID}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", nil, "")
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("X-Trace-ID") == "" {
		t.Error("Expected a trace id header")
	}
}

func TestCareFlow(t *testing.T) {
	r := newTestRouter(t)

	therapist := signUp(t, r, "therapist", "Dr. Rivera", "rivera@example.com")

	w := do(r, http.MethodPost, therapist.path("/clients"), map[string]string{"email": "Sam@Example.com", "name": "Sam"}, therapist.token)
	testutil.AssertStatus(t, w, http.StatusCreated)

	client := signUp(t, r, "client", "Sam Lee", "sam@example.com")

	w = do(r, http.MethodGet, therapist.path("/clients"), nil, therapist.token)
	testutil.AssertStatus(t, w, http.StatusOK)
	var entries []struct {
		Kind      string `json:"kind"`
		AccountID uint   `json:"account_id"`
		Status    string `json:"status"`
	}
	testutil.DecodeData(t, w, &entries)
	if len(entries) != 1 || entries[0].Kind != "linked" || entries[0].AccountID != client.id || entries[0].Status != "active" {
		t.Fatalf("Expected the invite to be claimed on signup, got %+v", entries)
	}

	w = do(r, http.MethodPost, therapist.path("/sessions"), map[string]interface{}{
		"client_id": client.id,
		"starts_at": "2030-01-07T10:00:00Z",
		"type":      "video",
	}, therapist.token)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created struct {
		ID          uint   `json:"id"`
		DurationMin int    `json:"duration_min"`
		Status      string `json:"status"`
	}
	testutil.DecodeData(t, w, &created)
	if created.DurationMin != 50 || created.Status != "scheduled" {
		t.Errorf("Unexpected session %+v", created)
	}
	sessionPath := "/sessions/" + idStr(created.ID)

	w = do(r, http.MethodPost, therapist.path(sessionPath+"/notes"), map[string]string{"content": "intake notes"}, therapist.token)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var note struct {
		ID uint `json:"id"`
	}
	testutil.DecodeData(t, w, &note)
	notePath := sessionPath + "/notes/" + idStr(note.ID)

	// another therapist cannot reach the session through either path
	other := signUp(t, r, "therapist", "Dr. Chen", "chen@example.com")
	testutil.AssertStatus(t, do(r, http.MethodGet, other.path(sessionPath), nil, other.token), http.StatusNotFound)
	testutil.AssertStatus(t, do(r, http.MethodGet, other.path(notePath), nil, other.token), http.StatusNotFound)
	testutil.AssertStatus(t, do(r, http.MethodGet, therapist.path(sessionPath), nil, other.token), http.StatusForbidden)
	testutil.AssertStatus(t, do(r, http.MethodGet, therapist.path(notePath), nil, other.token), http.StatusForbidden)

	// clients never reach therapist routes
	testutil.AssertStatus(t, do(r, http.MethodGet, therapist.path("/sessions"), nil, client.token), http.StatusForbidden)

	w = do(r, http.MethodGet, therapist.path(notePath), nil, therapist.token)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(r, http.MethodPost, "/client/checkins", map[string]interface{}{"mood": 7}, client.token)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do(r, http.MethodGet, "/client/today", nil, client.token)
	testutil.AssertStatus(t, w, http.StatusOK)
	var today struct {
		Date           string `json:"date"`
		Prompt         string `json:"prompt"`
		Streak         int    `json:"streak"`
		CheckedInToday bool   `json:"checked_in_today"`
		NextSession    *struct {
			ID uint `json:"id"`
		} `json:"next_session"`
		Therapist *struct {
			ID uint `json:"id"`
		} `json:"therapist"`
	}
	testutil.DecodeData(t, w, &today)
	if today.Prompt == "" || today.Streak != 1 || !today.CheckedInToday {
		t.Errorf("Unexpected today summary %+v", today)
	}
	if today.NextSession == nil || today.NextSession.ID != created.ID {
		t.Errorf("Expected next session %d, got %+v", created.ID, today.NextSession)
	}
	if today.Therapist == nil || today.Therapist.ID != therapist.id {
		t.Errorf("Expected therapist %d, got %+v", therapist.id, today.Therapist)
	}

	w = do(r, http.MethodGet, "/client/sessions?upcoming=true", nil, client.token)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertStatus(t, do(r, http.MethodDelete, therapist.path(sessionPath), nil, therapist.token), http.StatusNoContent)
	testutil.AssertStatus(t, do(r, http.MethodGet, therapist.path(notePath), nil, therapist.token), http.StatusNotFound)
}

func TestAuthFailures(t *testing.T) {
	r := newTestRouter(t)
	signUp(t, r, "client", "Ada", "ada@example.com")

	testutil.AssertStatus(t, do(r, http.MethodGet, "/me", nil, ""), http.StatusUnauthorized)
	testutil.AssertStatus(t, do(r, http.MethodGet, "/me", nil, "garbage"), http.StatusUnauthorized)

	w := do(r, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong-password"}, "")
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = do(r, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ada", "email": "ADA@example.com", "password": testutil.TestPassword, "role": "client",
	}, "")
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = do(r, http.MethodPost, "/auth/signup", map[string]string{"name": "A"}, "")
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if env := testutil.DecodeEnvelope(t, w); len(env.Errors) == 0 {
		t.Error("Expected field issues for an incomplete signup")
	}
}
