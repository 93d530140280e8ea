package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"carebridge/internal/continuity"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func setTestEnv(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:apptest?mode=memory&cache=shared")
	t.Setenv("JWT_SECRET", "app-test-secret-0123456789")
	t.Setenv("LOG_LEVEL", "error")
}

func TestAppStartsAndStops(t *testing.T) {
	setTestEnv(t)

	var engine *gin.Engine
	app := fxtest.New(t, appOptions(), fx.Populate(&engine))
	app.RequireStart()
	defer app.RequireStop()

	if engine == nil {
		t.Fatal("Expected the router to be built")
	}
	if len(engine.Routes()) == 0 {
		t.Error("Expected routes to be registered")
	}
}

func TestPromptCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"prompt", "--date", "2024-05-10"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("prompt failed: %v", err)
	}

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	want := "2024-05-10  " + continuity.PromptFor(day)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPromptCommandRejectsBadDate(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"prompt", "--date", "10/05/2024"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected an error for a malformed date")
	}
}
