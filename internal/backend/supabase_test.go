package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingai-demo/internal/config"
)

type fakeRemote struct {
	denyInsert bool
	inserted   []map[string]any
}

func (f *fakeRemote) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":400,"msg":"User already registered"}`))
			return
		}
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","expires_in":3600,"user":{"id":"u1","email":"` + body["email"] + `"}}`))
	})
	mux.HandleFunc("/rest/v1/user_profiles", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.u1", r.URL.Query().Get("id"))
		assert.Equal(t, "id,email,subscription_tier", r.URL.Query().Get("select"))
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"a@example.com","subscription_tier":"free"}`))
	})
	mux.HandleFunc("/rest/v1/signals", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			if f.denyInsert {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"code":"42501","message":"new row violates row-level security policy for table \"signals\""}`))
				return
			}
			var rows []map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
			f.inserted = append(f.inserted, rows...)
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			assert.Equal(t, "date.desc", r.URL.Query().Get("order"))
			assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
			json.NewEncoder(w).Encode(f.inserted)
		}
	})
	return mux
}

func newTestSupabase(t *testing.T, remote *fakeRemote) *Supabase {
	t.Helper()
	srv := httptest.NewServer(remote.handler(t))
	t.Cleanup(srv.Close)
	return NewSupabase(config.BackendConfig{URL: srv.URL + "/", AnonKey: "anon", Timeout: 5 * time.Second})
}

func TestSupabase(t *testing.T) {
	ctx := WithVisitor(context.Background(), "visitor-a")

	t.Run("signed out by default", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		sess, err := s.GetSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("signup stores session", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		user, err := s.SignUp(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		sess, err := s.GetSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "tok", sess.AccessToken)
		assert.Equal(t, "u1", sess.User.ID)
	})

	t.Run("sessions belong to one visitor", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		_, err := s.SignUp(ctx, "a@example.com", "secret")
		require.NoError(t, err)

		other, err := s.GetSession(WithVisitor(context.Background(), "visitor-b"))
		require.NoError(t, err)
		assert.Nil(t, other)

		anonymous, err := s.GetSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, anonymous)

		mine, err := s.GetSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, mine)
		assert.Equal(t, "u1", mine.User.ID)
	})

	t.Run("signup without a visitor keeps no session", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		_, err := s.SignUp(context.Background(), "a@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, 0, s.sessions.ItemCount())
	})

	t.Run("expired session reads as signed out", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		_, err := s.SignUp(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		sess, err := s.GetSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("signup error is auth", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		_, err := s.SignUp(ctx, "taken@example.com", "secret")
		var be *Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, KindAuth, be.Kind)
		assert.Equal(t, http.StatusBadRequest, be.Status)
		assert.Equal(t, "User already registered", be.Message)
	})

	t.Run("single row query", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{})
		_, err := s.SignUp(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		rows, err := s.QueryTable(ctx, "user_profiles", Query{
			Select:  "id,email,subscription_tier",
			Filters: []Filter{{Column: "id", Value: "u1"}},
			Single:  true,
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "free", rows[0]["subscription_tier"])
	})

	t.Run("insert then list", func(t *testing.T) {
		remote := &fakeRemote{}
		s := newTestSupabase(t, remote)
		_, err := s.SignUp(ctx, "a@example.com", "secret")
		require.NoError(t, err)
		require.NoError(t, s.InsertRow(ctx, "signals", map[string]any{"user_id": "u1", "symbol": "AAPL"}))
		rows, err := s.QueryTable(ctx, "signals", Query{
			Filters: []Filter{{Column: "user_id", Value: "u1"}},
			Order:   &Order{Column: "date"},
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "AAPL", rows[0]["symbol"])
	})

	t.Run("row level security is policy", func(t *testing.T) {
		s := newTestSupabase(t, &fakeRemote{denyInsert: true})
		err := s.InsertRow(ctx, "signals", map[string]any{"symbol": "AAPL"})
		var be *Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, KindPolicy, be.Kind)
		assert.Contains(t, be.Message, "row-level security")
	})

	t.Run("unreachable host is network", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		s := NewSupabase(config.BackendConfig{URL: url, AnonKey: "anon", Timeout: time.Second})
		_, err := s.SignUp(ctx, "a@example.com", "secret")
		var be *Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, KindNetwork, be.Kind)
	})
}
