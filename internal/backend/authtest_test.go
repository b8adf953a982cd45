package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	session  *Session
	err      error
	rows     []map[string]any
	inserted map[string]any
	query    Query
}

func (s *stubClient) GetSession(ctx context.Context) (*Session, error) { return s.session, nil }

func (s *stubClient) SignUp(ctx context.Context, email, password string) (*User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &User{ID: "u1", Email: email}, nil
}

func (s *stubClient) QueryTable(ctx context.Context, table string, q Query) ([]map[string]any, error) {
	s.query = q
	return s.rows, s.err
}

func (s *stubClient) InsertRow(ctx context.Context, table string, record map[string]any) error {
	s.inserted = record
	return s.err
}

func TestAuthTester(t *testing.T) {
	ctx := context.Background()
	signedIn := &Session{AccessToken: "tok", User: User{ID: "u1"}}

	t.Run("signup", func(t *testing.T) {
		res := NewAuthTester(&stubClient{}).SignUp(ctx, "a@example.com", "pw")
		assert.True(t, res.OK)
		assert.Equal(t, "✅ Signup ok. user=u1", res.Message)

		res = NewAuthTester(&stubClient{err: &Error{Kind: KindAuth, Status: 400, Message: "weak password"}}).SignUp(ctx, "a", "b")
		assert.False(t, res.OK)
		assert.Equal(t, "❌ Signup error: weak password", res.Message)
	})

	t.Run("no session", func(t *testing.T) {
		a := NewAuthTester(&stubClient{})
		for _, res := range []Result{a.CheckProfile(ctx), a.InsertSignal(ctx), a.ListMySignals(ctx)} {
			assert.False(t, res.OK)
			assert.Equal(t, "No session.", res.Message)
		}
	})

	t.Run("check profile", func(t *testing.T) {
		c := &stubClient{session: signedIn, rows: []map[string]any{{"id": "u1", "subscription_tier": "pro"}}}
		res := NewAuthTester(c).CheckProfile(ctx)
		assert.True(t, res.OK)
		assert.Equal(t, `✅ Profile ok: {"id":"u1","subscription_tier":"pro"}`, res.Message)
		assert.True(t, c.query.Single)
		assert.Equal(t, []Filter{{Column: "id", Value: "u1"}}, c.query.Filters)
	})

	t.Run("insert signal", func(t *testing.T) {
		c := &stubClient{session: signedIn}
		a := NewAuthTester(c)
		a.now = func() time.Time { return time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC) }
		res := a.InsertSignal(ctx)
		assert.True(t, res.OK)
		assert.Equal(t, "✅ Inserted signal.", res.Message)
		require.NotNil(t, c.inserted)
		assert.Equal(t, "u1", c.inserted["user_id"])
		assert.Equal(t, "AAPL", c.inserted["symbol"])
		assert.Equal(t, "2024-03-05", c.inserted["date"])
		assert.Equal(t, "buy", c.inserted["signal"])
		assert.Equal(t, 0.8, c.inserted["confidence"])
	})

	t.Run("insert denied", func(t *testing.T) {
		c := &stubClient{session: signedIn, err: &Error{Kind: KindPolicy, Status: 403, Message: "denied"}}
		res := NewAuthTester(c).InsertSignal(ctx)
		assert.False(t, res.OK)
		assert.Equal(t, "❌ Insert error: denied", res.Message)
	})

	t.Run("list signals", func(t *testing.T) {
		c := &stubClient{session: signedIn}
		res := NewAuthTester(c).ListMySignals(ctx)
		assert.True(t, res.OK)
		assert.Equal(t, "📊 My signals: []", res.Message)
		require.NotNil(t, c.query.Order)
		assert.False(t, c.query.Order.Ascending)
	})
}
