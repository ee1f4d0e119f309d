// internal/registry/registry_test.go
package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/db"
)

func tempDBFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	// connecting requires an existing file; an empty one is a valid database
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("seed db file: %v", err)
	}
	return path
}

func sqliteProfile(name, path string) config.Profile {
	return config.Profile{Name: name, Kind: config.KindSQLite, Path: path}
}

func TestOpenRejectsDuplicateTarget(t *testing.T) {
	r := New()
	path := tempDBFile(t)
	defer r.CloseAll()

	first, err := r.Open(sqliteProfile("a", path))
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	// same file under a different profile name is the same target
	_, err = r.Open(sqliteProfile("b", path))
	if !errors.Is(err, ErrDuplicateConnection) {
		t.Fatalf("second open err = %v, want ErrDuplicateConnection", err)
	}

	if got := len(r.List()); got != 1 {
		t.Fatalf("registry holds %d connections, want 1", got)
	}
	if c, ok := r.Get(first.ID); !ok || c != first {
		t.Fatal("surviving connection is not the first handle")
	}
}

func TestNormalizationTreatsLocalhostAs127(t *testing.T) {
	a := config.Profile{Kind: config.KindMySQL, Host: "localhost", User: "u", Database: "d"}
	b := config.Profile{Kind: config.KindMySQL, Host: "127.0.0.1", Port: 3306, User: "u", Database: "d"}
	if a.TargetKey() != b.TargetKey() {
		t.Errorf("keys differ: %q vs %q", a.TargetKey(), b.TargetKey())
	}
	c := config.Profile{Kind: config.KindMariaDB, Host: "127.0.0.1", Port: 3306, User: "u", Database: "d"}
	if a.TargetKey() == c.TargetKey() {
		t.Error("mariadb and mysql targets must not collide")
	}
}

func TestCloseMarksHandleClosed(t *testing.T) {
	r := New()
	conn, err := r.Open(sqliteProfile("a", tempDBFile(t)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := r.Close(conn.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !conn.Closed() {
		t.Fatal("handle should report closed")
	}
	if _, err := conn.Execute(context.Background(), "SELECT 1"); !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("execute after close err = %v, want ErrConnectionClosed", err)
	}
	if _, ok := r.Get(conn.ID); ok {
		t.Fatal("closed connection still registered")
	}

	// reopening the same target now succeeds
	again, err := r.Open(sqliteProfile("a", conn.Profile.Path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	r.Close(again.ID)
}

func TestTestLeavesNoEntry(t *testing.T) {
	r := New()
	path := tempDBFile(t)

	if err := r.Test(context.Background(), sqliteProfile("a", path)); err != nil {
		t.Fatalf("test: %v", err)
	}
	if got := len(r.List()); got != 0 {
		t.Fatalf("registry holds %d connections after Test, want 0", got)
	}

	err := r.Test(context.Background(), sqliteProfile("bad", filepath.Join(t.TempDir(), "missing.db")))
	if err == nil {
		t.Fatal("expected test failure for missing file")
	}
	var ce *db.ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectError, got %T", err)
	}
	if got := len(r.List()); got != 0 {
		t.Fatalf("failed Test left %d entries", got)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	r := New()
	_, err := r.Open(config.Profile{Name: "x", Kind: "oracle"})
	if err == nil {
		t.Fatal("expected error for unknown backend kind")
	}
}

// stallDriver blocks inside Execute until released, to pin a connection's
// statement mutex from a test.
type stallDriver struct {
	entered chan struct{}
	release chan struct{}
	closed  chan struct{}
}

func newStallDriver() *stallDriver {
	return &stallDriver{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		closed:  make(chan struct{}),
	}
}

func (d *stallDriver) Connect(db.ConnectParams) error { return nil }
func (d *stallDriver) Close() error                   { close(d.closed); return nil }
func (d *stallDriver) Ping(context.Context) error     { return nil }
func (d *stallDriver) Kind() db.Kind                  { return db.SQLite }

func (d *stallDriver) ListSchemas(context.Context) ([]string, error)       { return nil, nil }
func (d *stallDriver) UseSchema(context.Context, string) error             { return nil }
func (d *stallDriver) ClearSchemaContext(context.Context) error            { return nil }
func (d *stallDriver) ListTables(context.Context) ([]string, error)        { return nil, nil }
func (d *stallDriver) TableColumns(context.Context, string) ([]db.Column, error) {
	return nil, nil
}
func (d *stallDriver) FetchRows(context.Context, string, int) (*db.Result, error) {
	return &db.Result{}, nil
}

func (d *stallDriver) Execute(context.Context, string, ...interface{}) (*db.Result, error) {
	close(d.entered)
	<-d.release
	return &db.Result{}, nil
}

func TestCloseDoesNotWaitForInFlightStatement(t *testing.T) {
	drv := newStallDriver()
	conn := &Conn{ID: "stall", driver: drv}

	r := New()
	r.conns[conn.ID] = conn
	r.order = append(r.order, conn.ID)

	inFlight := make(chan error, 1)
	go func() {
		_, err := conn.Execute(context.Background(), "SELECT 1")
		inFlight <- err
	}()
	<-drv.entered // the statement mutex is now held

	closed := make(chan error, 1)
	go func() { closed <- r.Close(conn.ID) }()

	select {
	case err := <-closed:
		if err != nil {
			t.Fatalf("close: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked behind the running statement")
	}

	if !conn.Closed() {
		t.Fatal("handle should report closed")
	}
	if _, ok := r.Get(conn.ID); ok {
		t.Fatal("closed connection still registered")
	}
	// a request queued while the statement was running is turned away
	if _, err := conn.FetchRows(context.Background(), "t", 10); !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("queued fetch err = %v, want ErrConnectionClosed", err)
	}

	// the in-flight statement still completes once the driver unblocks
	close(drv.release)
	if err := <-inFlight; err != nil {
		t.Fatalf("in-flight execute: %v", err)
	}
	<-drv.closed
}

func TestExecuteQueuesBehindBusyConnection(t *testing.T) {
	r := New()
	conn, err := r.Open(sqliteProfile("a", tempDBFile(t)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.CloseAll()

	ctx := context.Background()
	if _, err := conn.Execute(ctx, "CREATE TABLE t (n INTEGER)"); err != nil {
		t.Fatalf("create: %v", err)
	}

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func(n int) {
			_, err := conn.Execute(ctx, "INSERT INTO t (n) VALUES (?)", n)
			done <- err
		}(i)
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent execute: %v", err)
		}
	}

	res, err := conn.Execute(ctx, "SELECT count(*) FROM t")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if res.Rows[0][0].String() != "2" {
		t.Fatalf("count = %s, want 2", res.Rows[0][0].String())
	}
}
