package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ksokolovskiy/ks-buy-bot/core/logger"
)

func TestMain(m *testing.M) {
	// Component loggers must exist before Connect is exercised.
	if err := logger.InitLogger(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestConnectCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "bot.db")

	db, err := Connect(Config{Path: path})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file to exist: %v", err)
	}
}

func TestConnectReopenPreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.db")

	db, err := Connect(Config{Path: path})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (k, v) VALUES ('user:1', 'count=1')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// New handle, same path: contents must survive the restart boundary.
	reopened, err := Connect(Config{Path: path})
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	defer reopened.Close()

	var got string
	if err := reopened.Get(&got, `SELECT v FROM kv WHERE k = 'user:1'`); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "count=1" {
		t.Fatalf("got %q, want %q", got, "count=1")
	}
}

func TestConnectCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.db")
	db, err := Connect(Config{Path: path})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestConnectUnwritablePath(t *testing.T) {
	// A regular file in place of the parent directory makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	_, err := Connect(Config{Path: filepath.Join(blocker, "bot.db")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
