package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/monitoring"
)

// rowLevelSecurity is the Postgres code for an insufficient-privilege denial.
const rowLevelSecurity = "42501"

// sessionTTL bounds how long a session without expires_in is kept.
const sessionTTL = time.Hour

// Supabase implements Client over the GoTrue and PostgREST HTTP APIs.
// Like a browser client it remembers the session obtained by SignUp, but per
// visitor: the id carried by WithVisitor keys the session. A context without
// a visitor is always signed out.
type Supabase struct {
	http     *resty.Client
	anonKey  string
	now      func() time.Time
	sessions *cache.Cache
}

func NewSupabase(cfg config.BackendConfig) *Supabase {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Accept", "application/json")
	return &Supabase{
		http:     c,
		anonKey:  cfg.AnonKey,
		now:      time.Now,
		sessions: cache.New(sessionTTL, 10*time.Minute),
	}
}

func (s *Supabase) GetSession(ctx context.Context) (*Session, error) {
	visitor := VisitorFrom(ctx)
	if visitor == "" {
		return nil, nil
	}
	v, ok := s.sessions.Get(visitor)
	if !ok {
		return nil, nil
	}
	sess := v.(Session)
	if sess.Expired(s.now()) {
		s.sessions.Delete(visitor)
		return nil, nil
	}
	return &sess, nil
}

type signUpResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
	ID           string `json:"id"`
	Email        string `json:"email"`
}

func (s *Supabase) SignUp(ctx context.Context, email, password string) (*User, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.anonKey).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/v1/signup")
	if err := s.check("signup", resp, err, KindAuth); err != nil {
		return nil, err
	}

	var out signUpResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("SignUp: failed to decode response: %w", err)
	}

	// Without email confirmation the response carries a session; otherwise
	// it is the bare user.
	user := out.User
	if user == nil {
		user = &User{ID: out.ID, Email: out.Email}
	}
	if visitor := VisitorFrom(ctx); visitor != "" && out.AccessToken != "" {
		sess := Session{
			AccessToken:  out.AccessToken,
			RefreshToken: out.RefreshToken,
			User:         *user,
		}
		ttl := cache.DefaultExpiration
		if out.ExpiresIn > 0 {
			ttl = time.Duration(out.ExpiresIn) * time.Second
			sess.ExpiresAt = s.now().Add(ttl)
		}
		s.sessions.Set(visitor, sess, ttl)
	}
	log.Infof("Supabase: signed up user %s", user.ID)
	return user, nil
}

func (s *Supabase) QueryTable(ctx context.Context, table string, q Query) ([]map[string]any, error) {
	req := s.authorized(ctx)
	if q.Select != "" {
		req.SetQueryParam("select", q.Select)
	}
	for _, f := range q.Filters {
		req.SetQueryParam(f.Column, "eq."+f.Value)
	}
	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		req.SetQueryParam("order", q.Order.Column+"."+dir)
	}
	if q.Single {
		req.SetHeader("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := req.Get("/rest/v1/" + table)
	if err := s.check("query", resp, err, KindPolicy); err != nil {
		return nil, err
	}

	if q.Single {
		var row map[string]any
		if err := json.Unmarshal(resp.Body(), &row); err != nil {
			return nil, fmt.Errorf("QueryTable: failed to decode row: %w", err)
		}
		return []map[string]any{row}, nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("QueryTable: failed to decode rows: %w", err)
	}
	return rows, nil
}

func (s *Supabase) InsertRow(ctx context.Context, table string, record map[string]any) error {
	resp, err := s.authorized(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody([]map[string]any{record}).
		Post("/rest/v1/" + table)
	return s.check("insert", resp, err, KindPolicy)
}

// authorized uses the visitor's session token when signed in so row-level
// policies see the user; otherwise the anon key.
func (s *Supabase) authorized(ctx context.Context) *resty.Request {
	token := s.anonKey
	if sess, _ := s.GetSession(ctx); sess != nil {
		token = sess.AccessToken
	}
	return s.http.R().SetContext(ctx).SetHeader("Authorization", "Bearer "+token)
}

type remoteError struct {
	Code             any    `json:"code"`
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (r remoteError) text() string {
	for _, s := range []string{r.Message, r.Msg, r.ErrorDescription, r.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// check classifies transport failures and non-2xx responses. fallback is
// the kind used for 4xx responses that are not obviously auth or policy.
func (s *Supabase) check(op string, resp *resty.Response, err error, fallback ErrorKind) error {
	if err != nil {
		monitoring.BackendRequests.WithLabelValues(op, string(KindNetwork)).Inc()
		log.WithError(err).Warnf("Supabase: %s failed", op)
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	if !resp.IsError() {
		monitoring.BackendRequests.WithLabelValues(op, "ok").Inc()
		return nil
	}

	var body remoteError
	_ = json.Unmarshal(resp.Body(), &body)
	msg := body.text()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	kind := fallback
	switch {
	case fmt.Sprint(body.Code) == rowLevelSecurity || resp.StatusCode() == http.StatusForbidden:
		kind = KindPolicy
	case resp.StatusCode() == http.StatusUnauthorized:
		kind = KindAuth
	case resp.StatusCode() >= http.StatusInternalServerError:
		kind = KindRemote
	}

	monitoring.BackendRequests.WithLabelValues(op, string(kind)).Inc()
	log.Warnf("Supabase: %s returned %d: %s", op, resp.StatusCode(), msg)
	return &Error{Kind: kind, Status: resp.StatusCode(), Message: msg}
}
