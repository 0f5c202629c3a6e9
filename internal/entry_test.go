package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Weesdome/Boardhub/internal/boardservice"
)

func testApp(t *testing.T) *application {
	t.Helper()
	cfg := validConfig()
	cfg.SQLite.Driver = "sqlite"
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "boardhub.db")
	cfg.Archive.Backend = ArchiveBackendFS
	cfg.Archive.Path = filepath.Join(t.TempDir(), "archive")
	app, err := newApplication([]Option{WithConfig(cfg), WithVersion("test")})
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestNewApplication_RequiresConfig(t *testing.T) {
	if _, err := newApplication(nil); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestHandler_HealthAndAPI(t *testing.T) {
	app := testApp(t)
	var logs bytes.Buffer
	svc, db, err := app.openService(context.Background(), newLogger(app.config.App, &logs))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	h := newHandler(app.config, svc, db)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boards", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("/api/boards without session = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/csrf", nil))
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body["csrfToken"] == "" {
		t.Errorf("csrf = %d %s", w.Code, w.Body.String())
	}

	if !strings.Contains(logs.String(), "Store opened") {
		t.Errorf("startup log missing: %s", logs.String())
	}
}

func TestRunImport(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	svc, db, err := app.openService(ctx, newLogger(app.config.App, &bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, boardservice.RegisterInput{Email: "cli@example.com", Name: "CLI", Password: "secret123"}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	outline := filepath.Join(t.TempDir(), "plan.md")
	if err := os.WriteFile(outline, []byte("# Plan\n## Now\n- First\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := []Option{WithConfig(app.config)}
	if err := RunImport(ctx, "cli@example.com", outline, opts...); err != nil {
		t.Fatal(err)
	}
	if err := RunImport(ctx, "ghost@example.com", outline, opts...); err == nil {
		t.Error("import for unknown user should fail")
	}
	if err := RunImport(ctx, "cli@example.com", filepath.Join(t.TempDir(), "missing.md"), opts...); err == nil {
		t.Error("import of a missing file should fail")
	}

	svc, db, err = app.openService(ctx, newLogger(app.config.App, &bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	sess, _ := svc.SessionFor(ctx, "cli@example.com")
	boards, err := svc.ListBoards(ctx, sess.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 1 || boards[0].Title != "Plan" {
		t.Errorf("boards = %+v", boards)
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := validConfig().App
	cfg.LogFormat = LogFormatText
	newLogger(cfg, &buf).Info("hello", "k", "v")
	out := buf.String()
	if !strings.Contains(out, "hello") || strings.HasPrefix(out, "{") {
		t.Errorf("text log = %q", out)
	}

	buf.Reset()
	cfg.LogFormat = LogFormatJSON
	newLogger(cfg, &buf).Info("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("json log = %q", buf.String())
	}
}
