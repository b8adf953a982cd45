package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const noSession = "No session."

// Result is one status line of the auth-test page.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func failure(prefix string, err error) Result {
	msg := err.Error()
	var be *Error
	if errors.As(err, &be) {
		msg = be.Message
	}
	return Result{Message: fmt.Sprintf("❌ %s error: %s", prefix, msg)}
}

// AuthTester runs the four scratch flows against a Client. Failures become
// status lines; nothing is returned as an error.
type AuthTester struct {
	client Client
	now    func() time.Time
}

func NewAuthTester(c Client) *AuthTester {
	return &AuthTester{client: c, now: time.Now}
}

func (a *AuthTester) userID(ctx context.Context) string {
	sess, err := a.client.GetSession(ctx)
	if err != nil || sess == nil {
		return ""
	}
	return sess.User.ID
}

func (a *AuthTester) SignUp(ctx context.Context, email, password string) Result {
	user, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return failure("Signup", err)
	}
	return Result{OK: true, Message: fmt.Sprintf("✅ Signup ok. user=%s", user.ID)}
}

func (a *AuthTester) CheckProfile(ctx context.Context) Result {
	uid := a.userID(ctx)
	if uid == "" {
		return Result{Message: noSession}
	}
	rows, err := a.client.QueryTable(ctx, "user_profiles", Query{
		Select:  "id,email,subscription_tier",
		Filters: []Filter{{Column: "id", Value: uid}},
		Single:  true,
	})
	if err != nil {
		return failure("Profile", err)
	}
	var row map[string]any
	if len(rows) > 0 {
		row = rows[0]
	}
	data, _ := json.Marshal(row)
	return Result{OK: true, Message: fmt.Sprintf("✅ Profile ok: %s", data)}
}

func (a *AuthTester) InsertSignal(ctx context.Context) Result {
	uid := a.userID(ctx)
	if uid == "" {
		return Result{Message: noSession}
	}
	err := a.client.InsertRow(ctx, "signals", map[string]any{
		"user_id":    uid,
		"symbol":     "AAPL",
		"date":       a.now().UTC().Format("2006-01-02"),
		"signal":     "buy",
		"confidence": 0.8,
	})
	if err != nil {
		return failure("Insert", err)
	}
	return Result{OK: true, Message: "✅ Inserted signal."}
}

func (a *AuthTester) ListMySignals(ctx context.Context) Result {
	uid := a.userID(ctx)
	if uid == "" {
		return Result{Message: noSession}
	}
	rows, err := a.client.QueryTable(ctx, "signals", Query{
		Select:  "id,symbol,date,signal,confidence",
		Filters: []Filter{{Column: "user_id", Value: uid}},
		Order:   &Order{Column: "date"},
	})
	if err != nil {
		return failure("List", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	data, _ := json.Marshal(rows)
	return Result{OK: true, Message: fmt.Sprintf("📊 My signals: %s", data)}
}
