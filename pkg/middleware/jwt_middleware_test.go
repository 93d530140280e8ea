package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter(tokens TokenVerifier) *gin.Engine {
	r := gin.New()
	g := r.Group("/therapists/:id", Authenticate(tokens), RequireRole("therapist"), RequireSameSubject("id"))
	g.GET("/ping", func(c *gin.Context) {
		identity, _ := IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"account_id": identity.AccountID})
	})
	return r
}

func TestGuardChain(t *testing.T) {
	tokens := utils.NewTokenManager("middleware-test-secret", time.Hour)
	therapistToken, _, _ := tokens.CreateToken(5, "therapist")
	clientToken, _, _ := tokens.CreateToken(5, "client")

	testCases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"NoHeader", "/therapists/5/ping", "", http.StatusUnauthorized},
		{"NotBearer", "/therapists/5/ping", "Token " + therapistToken, http.StatusUnauthorized},
		{"EmptyBearer", "/therapists/5/ping", "Bearer ", http.StatusUnauthorized},
		{"BadToken", "/therapists/5/ping", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"WrongRole", "/therapists/5/ping", "Bearer " + clientToken, http.StatusForbidden},
		{"OtherSubject", "/therapists/6/ping", "Bearer " + therapistToken, http.StatusForbidden},
		{"NonNumericSubject", "/therapists/me/ping", "Bearer " + therapistToken, http.StatusForbidden},
		{"Allowed", "/therapists/5/ping", "Bearer " + therapistToken, http.StatusOK},
	}

	r := guardedRouter(tokens)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("Expected status %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestParseBearer(t *testing.T) {
	if _, err := ParseBearer("bearer abc"); !errors.Is(err, utils.ErrMissingOrMalformedToken) {
		t.Errorf("Expected lowercase scheme to be rejected, got %v", err)
	}
	token, err := ParseBearer("Bearer abc")
	if err != nil || token != "abc" {
		t.Errorf("Expected abc, got %q (%v)", token, err)
	}
}

func TestCheckRole(t *testing.T) {
	id := utils.Identity{AccountID: 1, Role: "client"}
	if err := CheckRole(id, "therapist"); !errors.Is(err, utils.ErrForbiddenRole) {
		t.Errorf("Expected ErrForbiddenRole, got %v", err)
	}
	if err := CheckRole(id, "therapist", "client"); err != nil {
		t.Errorf("Expected client to be allowed, got %v", err)
	}
}

func TestCheckSameSubject(t *testing.T) {
	id := utils.Identity{AccountID: 12, Role: "therapist"}
	for _, raw := range []string{"13", "", "-12", "12abc"} {
		if err := CheckSameSubject(id, raw); !errors.Is(err, utils.ErrForbiddenOwner) {
			t.Errorf("Expected %q to be rejected, got %v", raw, err)
		}
	}
	if err := CheckSameSubject(id, "12"); err != nil {
		t.Errorf("Expected matching subject to pass, got %v", err)
	}
}
