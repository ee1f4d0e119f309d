// internal/db/split_test.go
package db

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitStatementsSemicolons(t *testing.T) {
	got := SplitStatements("SELECT 1; SELECT 2;  ; SELECT 3")
	want := []string{"SELECT 1", "SELECT 2", "SELECT 3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitStatementsQuotedSemicolon(t *testing.T) {
	got := SplitStatements(`SELECT 'a;b'; SELECT "x;y"`)
	want := []string{`SELECT 'a;b'`, `SELECT "x;y"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitStatementsBlankLineBoundary(t *testing.T) {
	text := "SELECT *\nFROM users\n\nSELECT count(*)\nFROM orders"
	got := SplitStatements(text)
	if len(got) != 2 {
		t.Fatalf("got %d statements %v, want 2", len(got), got)
	}
	if !strings.HasPrefix(got[1], "SELECT count(*)") {
		t.Errorf("second statement = %q", got[1])
	}
}

func TestSplitStatementsEmpty(t *testing.T) {
	if got := SplitStatements("  \n \n ;; \n"); got != nil {
		t.Errorf("got %v, want none", got)
	}
}

func TestStatementAt(t *testing.T) {
	text := "SELECT 1;\nSELECT 2;"
	cases := []struct {
		offset int
		want   string
	}{
		{0, "SELECT 1"},
		{4, "SELECT 1"},
		{8, "SELECT 1"}, // just past the text, before the terminator
		{10, "SELECT 2"},
		{15, "SELECT 2"},
	}
	for _, c := range cases {
		if got := StatementAt(text, c.offset); got != c.want {
			t.Errorf("StatementAt(%d) = %q, want %q", c.offset, got, c.want)
		}
	}
}

func TestStatementAtBlankLineSeparated(t *testing.T) {
	text := "SELECT a\nFROM t\n\nDELETE FROM t"
	if got := StatementAt(text, 3); got != "SELECT a\nFROM t" {
		t.Errorf("first span = %q", got)
	}
	if got := StatementAt(text, len(text)-1); got != "DELETE FROM t" {
		t.Errorf("second span = %q", got)
	}
}

func TestStatementAtOutOfRangeClamped(t *testing.T) {
	if got := StatementAt("SELECT 1", 999); got != "SELECT 1" {
		t.Errorf("clamped offset = %q", got)
	}
	if got := StatementAt("SELECT 1", -5); got != "SELECT 1" {
		t.Errorf("negative offset = %q", got)
	}
}
