// Package backend talks to the hosted auth and row store used by the
// auth-test page. The simulation core never depends on it.
package backend

import (
	"context"
	"fmt"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Filter is an equality condition on one column.
type Filter struct {
	Column string
	Value  string
}

type Order struct {
	Column    string
	Ascending bool
}

// Query selects rows from a table. Single expects exactly one row.
type Query struct {
	Select  string
	Filters []Filter
	Order   *Order
	Single  bool
}

// Client is the capability set the auth-test flows need.
type Client interface {
	// GetSession returns the current session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	QueryTable(ctx context.Context, table string, q Query) ([]map[string]any, error)
	InsertRow(ctx context.Context, table string, record map[string]any) error
}

type ErrorKind string

const (
	KindNetwork ErrorKind = "network"
	KindAuth    ErrorKind = "auth"
	KindPolicy  ErrorKind = "policy"
	KindRemote  ErrorKind = "remote"
)

// Error is a classified backend failure. Message is the remote text.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}
