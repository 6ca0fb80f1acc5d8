package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"camcheck/internal/engine"
	"camcheck/internal/errors"
)

func tempUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(time.Hour)
	path := tempUpload(t)

	results := []engine.Result{{RuleName: "Rule 1: Header Validation", Status: engine.StatusPass}}
	sess := store.Create("quotes.xlsx", path, engine.ValidatorQuoteWin, results)

	if sess.ID == "" {
		t.Fatal("expected a session ID")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Filename != "quotes.xlsx" || len(got.Results) != 1 {
		t.Errorf("unexpected session state: %+v", got)
	}

	if err := store.Delete(sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("upload file should be removed on delete")
	}
	if _, err := store.Get(sess.ID); errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(time.Hour)
	if _, err := store.Get("no-such-id"); errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if err := store.Delete("no-such-id"); errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestStoreSweep(t *testing.T) {
	store := NewStore(time.Nanosecond)
	path := tempUpload(t)
	sess := store.Create("old.xlsx", path, engine.ValidatorBOM, nil)

	time.Sleep(2 * time.Millisecond)
	if n := store.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := store.Get(sess.ID); err == nil {
		t.Error("expected swept session to be gone")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("upload file should be removed on sweep")
	}
}

func TestSetAnnotatedPath(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create("a.xlsx", tempUpload(t), engine.ValidatorBOM, nil)

	if err := store.SetAnnotatedPath(sess.ID, "/tmp/a.annotated.xlsx"); err != nil {
		t.Fatalf("SetAnnotatedPath: %v", err)
	}
	got, _ := store.Get(sess.ID)
	if got.AnnotatedPath != "/tmp/a.annotated.xlsx" {
		t.Errorf("annotated path not stored: %q", got.AnnotatedPath)
	}
}
