// internal/registry/registry.go

// Package registry owns the set of live backend connections. It is the sole
// mutator of that set; panes hold only connection handles and must tolerate
// a handle being closed underneath them.
package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/db"
)

var (
	// ErrDuplicateConnection reports a second open for the same normalized
	// (kind, target). The caller should reuse the existing handle.
	ErrDuplicateConnection = errors.New("connection already open for this target")

	// ErrConnectionClosed reports work attempted on a closed handle
	ErrConnectionClosed = errors.New("connection closed")
)

// Conn is a live backend handle. Execute and the metadata calls are
// serialized by a mutex so at most one statement is outstanding per
// connection; a second request queues behind the first. The closed flag
// lives outside that mutex so Close never queues behind a running
// statement: the flag flips immediately and the in-flight result is
// discarded by the caller.
type Conn struct {
	ID      string
	Profile config.Profile

	driver db.Driver

	mu     sync.Mutex // serializes statements, held for their full duration
	closed atomic.Bool
}

// Kind returns the backend kind
func (c *Conn) Kind() db.Kind { return db.Kind(c.Profile.Kind) }

// Closed reports whether the handle has been torn down. Results that arrive
// for a closed handle must be discarded, not applied.
func (c *Conn) Closed() bool {
	return c.closed.Load()
}

func (c *Conn) acquire() (db.Driver, func(), error) {
	if c.closed.Load() {
		return nil, nil, ErrConnectionClosed
	}
	c.mu.Lock()
	// the handle may have closed while this request was queued
	if c.closed.Load() {
		c.mu.Unlock()
		return nil, nil, ErrConnectionClosed
	}
	return c.driver, c.mu.Unlock, nil
}

// Execute runs one statement on the connection
func (c *Conn) Execute(ctx context.Context, stmt string, args ...interface{}) (*db.Result, error) {
	drv, release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return drv.Execute(ctx, stmt, args...)
}

// FetchRows fetches up to limit rows from a table
func (c *Conn) FetchRows(ctx context.Context, table string, limit int) (*db.Result, error) {
	drv, release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return drv.FetchRows(ctx, table, limit)
}

// ListSchemas lists the connection's schemas
func (c *Conn) ListSchemas(ctx context.Context) ([]string, error) {
	drv, release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return drv.ListSchemas(ctx)
}

// UseSchema switches the active schema
func (c *Conn) UseSchema(ctx context.Context, name string) error {
	drv, release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()
	return drv.UseSchema(ctx, name)
}

// ClearSchemaContext resets to no active schema
func (c *Conn) ClearSchemaContext(ctx context.Context) error {
	drv, release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()
	return drv.ClearSchemaContext(ctx)
}

// ListTables lists tables in the active schema
func (c *Conn) ListTables(ctx context.Context) ([]string, error) {
	drv, release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return drv.ListTables(ctx)
}

// TableColumns returns column metadata for a table
func (c *Conn) TableColumns(ctx context.Context, table string) ([]db.Column, error) {
	drv, release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return drv.TableColumns(ctx, table)
}

// Registry holds at most one live connection per normalized (kind, target)
type Registry struct {
	mu    sync.Mutex
	conns map[string]*Conn // key: normalized identity
	order []string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Open connects to the profile's backend and registers the handle.
// A live connection for the same normalized identity fails the open with
// ErrDuplicateConnection.
func (r *Registry) Open(profile config.Profile) (*Conn, error) {
	id := profile.TargetKey()

	r.mu.Lock()
	if _, ok := r.conns[id]; ok {
		r.mu.Unlock()
		return nil, ErrDuplicateConnection
	}
	r.mu.Unlock()

	driver, err := connect(profile)
	if err != nil {
		return nil, err
	}

	conn := &Conn{ID: id, Profile: profile, driver: driver}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; ok {
		// lost the race to a concurrent open of the same target
		driver.Close()
		return nil, ErrDuplicateConnection
	}
	r.conns[id] = conn
	r.order = append(r.order, id)
	return conn, nil
}

// Close flags a connection closed and removes it from the registry without
// waiting for an in-flight statement: the caller's update loop must never
// block on database I/O. Queued requests observe the flag and report
// ErrConnectionClosed; the running statement's result is discarded by the
// caller. sql.DB tolerates Close racing a running query.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	conn, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
		for i, o := range r.order {
			if o == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if !ok {
		return ErrConnectionClosed
	}

	conn.closed.Store(true)
	return conn.driver.Close()
}

// CloseAll tears down every live connection
func (r *Registry) CloseAll() {
	for _, c := range r.List() {
		r.Close(c.ID)
	}
}

// Test opens a connection, does a lightweight round trip, and closes it.
// It never leaves an entry in the registry.
func (r *Registry) Test(ctx context.Context, profile config.Profile) error {
	driver, err := connect(profile)
	if err != nil {
		return err
	}
	defer driver.Close()

	if err := driver.Ping(ctx); err != nil {
		return db.WrapConnectionError(err)
	}
	if _, err := driver.ListSchemas(ctx); err != nil {
		return db.WrapConnectionError(err)
	}
	return nil
}

// Get returns a live connection by identity
func (r *Registry) Get(id string) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// List returns live connections in open order
func (r *Registry) List() []*Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Conn, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.conns[id])
	}
	return out
}

func connect(profile config.Profile) (db.Driver, error) {
	driver, err := db.NewDriver(db.Kind(profile.Kind))
	if err != nil {
		return nil, db.WrapConnectionError(err)
	}

	params := db.ConnectParams{
		Path:     profile.Path,
		Host:     profile.Host,
		Port:     profile.Port,
		User:     profile.User,
		Password: profile.Password,
		Database: profile.Database,
	}
	if params.Port == 0 && profile.Kind != string(db.SQLite) {
		params.Port = 3306
	}
	if profile.SSHHost != "" {
		params.SSH = &db.SSHConfig{
			Host:     profile.SSHHost,
			Port:     profile.SSHPort,
			User:     profile.SSHUser,
			Password: profile.SSHPassword,
			KeyPath:  profile.SSHKeyPath,
		}
	}

	if err := driver.Connect(params); err != nil {
		return nil, err
	}
	return driver, nil
}
