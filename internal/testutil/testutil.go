// Package testutil provides shared test helpers for databases, services and
// accounts.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Weesdome/Boardhub/internal/archive"
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/store"
)

// TestDB opens a temporary SQLite database on the pure-Go driver. It is
// closed when the test ends.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.DriverPureGo, filepath.Join(t.TempDir(), "boardhub-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestArchiver returns an Archiver over a temporary directory.
func TestArchiver(t *testing.T) *archive.Archiver {
	t.Helper()
	p, err := archive.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return archive.New(p)
}

// TestService builds a Service over a fresh database.
func TestService(t *testing.T, opts ...boardservice.Option) *boardservice.Service {
	t.Helper()
	db := TestDB(t)
	return boardservice.New(db, db, opts...)
}

// Register creates an account and returns its session.
func Register(t *testing.T, svc *boardservice.Service, email string) *models.Session {
	t.Helper()
	sess, err := svc.Register(context.Background(), boardservice.RegisterInput{
		Email:    email,
		Name:     "Test User",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return sess
}
