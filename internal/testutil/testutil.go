package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carebridge/internal/config"
	"carebridge/internal/infra"
	"carebridge/internal/models/db_models"
	"carebridge/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TestJWTSecret = "test-secret-at-least-16-bytes"
	TestPassword  = "correct-horse-battery"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := infra.OpenDatabase(config.DriverSQLite, dsn, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestTokens() *utils.TokenManager {
	return utils.NewTokenManager(TestJWTSecret, time.Hour)
}

// TestHasher uses the minimum bcrypt cost so tests stay fast.
func TestHasher() utils.PasswordHasher {
	return utils.NewBcryptHasher(bcrypt.MinCost)
}

// CreateTestAccount inserts an account whose password is TestPassword.
func CreateTestAccount(t *testing.T, db *gorm.DB, role db_models.Role, name, email string) *db_models.Account {
	t.Helper()

	hash, err := TestHasher().Hash(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	account := &db_models.Account{
		Role:         role,
		Name:         name,
		Email:        utils.NormalizeEmail(email),
		PasswordHash: hash,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account
}

// CreateTestLink links a client account to a therapist with the given status.
func CreateTestLink(t *testing.T, db *gorm.DB, therapist, client *db_models.Account, status db_models.LinkStatus) *db_models.Link {
	t.Helper()

	linkedAt := time.Now().UTC()
	link := &db_models.Link{
		TherapistID:     therapist.ID,
		ClientAccountID: &client.ID,
		Email:           client.Email,
		Name:            client.Name,
		Status:          status,
		LinkedAt:        &linkedAt,
	}
	if err := db.Omit("Therapist", "Client").Create(link).Error; err != nil {
		t.Fatalf("Failed to create test link: %v", err)
	}
	return link
}

func CreateTestSession(t *testing.T, db *gorm.DB, therapistID, clientID uint, startsAt time.Time, status db_models.SessionStatus) *db_models.Session {
	t.Helper()

	session := &db_models.Session{
		TherapistID:     therapistID,
		ClientAccountID: clientID,
		StartsAt:        startsAt.UTC(),
		DurationMin:     50,
		Status:          status,
		Type:            db_models.SessionInPerson,
	}
	if err := db.Omit("Therapist", "Client", "Notes").Create(session).Error; err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return session
}

// CreateTestCheckin stores a check-in at an explicit time.
func CreateTestCheckin(t *testing.T, db *gorm.DB, clientID uint, kind db_models.CheckinType, at time.Time) *db_models.CheckIn {
	t.Helper()

	checkin := &db_models.CheckIn{
		ClientAccountID: clientID,
		Type:            kind,
		Mood:            5,
		CreatedAt:       at.UTC(),
	}
	if err := db.Omit("Client", "Session").Create(checkin).Error; err != nil {
		t.Fatalf("Failed to create test checkin: %v", err)
	}
	return checkin
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// Envelope mirrors utils.APIResponse with the payload left undecoded.
type Envelope struct {
	Status  string             `json:"status"`
	Code    int                `json:"code"`
	Message string             `json:"message"`
	TraceID string             `json:"trace_id"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldIssue `json:"errors"`
}

// AssertStatus fails the test when the recorder holds a different status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return env
}

// DecodeData unmarshals the envelope's data field into out.
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) Envelope {
	t.Helper()

	env := DecodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("Failed to decode data %q: %v", string(env.Data), err)
	}
	return env
}
