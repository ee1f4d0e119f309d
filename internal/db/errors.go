// internal/db/errors.go
package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ConnectClass classifies connection failures for the status line
type ConnectClass int

const (
	ConnectFailed ConnectClass = iota
	ConnectAuth
	ConnectUnreachable
	ConnectNotFound
	ConnectBadDSN
)

func (c ConnectClass) String() string {
	switch c {
	case ConnectAuth:
		return "authentication failed"
	case ConnectUnreachable:
		return "host unreachable"
	case ConnectNotFound:
		return "not found"
	case ConnectBadDSN:
		return "malformed connection string"
	default:
		return "connection failed"
	}
}

// ConnectError wraps backend connection failures with a classified cause
type ConnectError struct {
	Class      ConnectClass
	Underlying error
}

func (e *ConnectError) Error() string {
	if e.Underlying == nil {
		return e.Class.String()
	}
	return fmt.Sprintf("%s: %v", e.Class, e.Underlying)
}

func (e *ConnectError) Unwrap() error { return e.Underlying }

// QueryError wraps statement execution failures. The backend message is
// preserved verbatim for the status line.
type QueryError struct {
	Underlying error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Underlying)
}

func (e *QueryError) Unwrap() error { return e.Underlying }

// SchemaSwitchError reports a failed use-schema operation. The prior schema
// context is left unchanged by the driver.
type SchemaSwitchError struct {
	Schema     string
	Underlying error
}

func (e *SchemaSwitchError) Error() string {
	return fmt.Sprintf("cannot switch to schema %q: %v", e.Schema, e.Underlying)
}

func (e *SchemaSwitchError) Unwrap() error { return e.Underlying }

// WrapConnectionError classifies and wraps a connection failure
func WrapConnectionError(err error) error {
	if err == nil {
		return &ConnectError{Class: ConnectFailed}
	}
	var already *ConnectError
	if errors.As(err, &already) {
		return err
	}
	return &ConnectError{Class: classifyConnect(err), Underlying: err}
}

// WrapQueryError wraps a statement failure
func WrapQueryError(err error) error {
	if err == nil {
		return &QueryError{Underlying: errors.New("empty statement")}
	}
	var already *QueryError
	if errors.As(err, &already) {
		return err
	}
	return &QueryError{Underlying: err}
}

func classifyConnect(err error) ConnectClass {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1044, 1045: // access denied
			return ConnectAuth
		case 1049: // unknown database
			return ConnectNotFound
		}
		return ConnectFailed
	}
	if errors.Is(err, os.ErrNotExist) {
		return ConnectNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "authentication"):
		return ConnectAuth
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "network is unreachable"):
		return ConnectUnreachable
	case strings.Contains(msg, "no such file"), strings.Contains(msg, "unable to open database"):
		return ConnectNotFound
	case strings.Contains(msg, "invalid dsn"), strings.Contains(msg, "parse"):
		return ConnectBadDSN
	default:
		return ConnectFailed
	}
}
