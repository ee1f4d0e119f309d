// internal/history/store_test.go
package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i, stmt := range []string{"SELECT 1", "SELECT 2", "SELECT 3"} {
		e := &Entry{
			Target:     "sqlite|/tmp/a.db",
			Statement:  stmt,
			ExecutedAt: base.Add(time.Duration(i) * time.Second),
			DurationMs: 5,
			RowCount:   1,
			Status:     "success",
		}
		if err := s.Add(e); err != nil {
			t.Fatalf("add: %v", err)
		}
		if e.ID == 0 {
			t.Fatal("add did not backfill the id")
		}
	}

	entries, err := s.List("sqlite|/tmp/a.db", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Statement != "SELECT 3" {
		t.Errorf("newest first, got %q", entries[0].Statement)
	}

	// another target's history is separate
	other, _ := s.List("sqlite|/tmp/b.db", 10)
	if len(other) != 0 {
		t.Errorf("foreign target has %d entries", len(other))
	}
}

func TestSearchAndCount(t *testing.T) {
	s := openTestStore(t)
	target := "mysql|u@127.0.0.1:3306/app"

	stmts := []string{"SELECT * FROM users", "DELETE FROM users", "SELECT * FROM orders"}
	for _, stmt := range stmts {
		s.Add(&Entry{Target: target, Statement: stmt, ExecutedAt: time.Now(), Status: "success"})
	}

	found, err := s.Search(target, "users", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("search found %d, want 2", len(found))
	}

	n, err := s.Count(target)
	if err != nil || n != 3 {
		t.Fatalf("count = %d (%v), want 3", n, err)
	}
}

func TestErrorEntries(t *testing.T) {
	s := openTestStore(t)
	e := &Entry{
		Target:     "sqlite|/tmp/a.db",
		Statement:  "SELEC nonsense",
		ExecutedAt: time.Now(),
		Status:     "error",
		ErrorText:  "near \"SELEC\": syntax error",
	}
	if err := s.Add(e); err != nil {
		t.Fatalf("add: %v", err)
	}

	entries, _ := s.List("sqlite|/tmp/a.db", 1)
	if len(entries) != 1 || entries[0].Succeeded() {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].ErrorText == "" {
		t.Error("error text lost")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	e := &Entry{Target: "t", Statement: "SELECT 1", ExecutedAt: time.Now(), Status: "success"}
	s.Add(e)
	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := s.Count("t"); n != 0 {
		t.Fatalf("count after delete = %d", n)
	}
}
