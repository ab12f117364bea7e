package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/middleware"
)

const testSecret = "test-secret"

// env wires the handlers to in-memory repositories behind the real router, so
// tests exercise routing, middleware and handlers together.
type env struct {
	router http.Handler
	state  *memState
	now    time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := &memState{}
	app := &handlers.App{
		Logger:      zerolog.Nop(),
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
		Users:       &memUsers{s: state},
		Fundraisers: &memFundraisers{s: state},
		Pledges:     &memPledges{s: state},
		Comments:    &memComments{s: state},
		Contacts:    &memContacts{s: state},
		Now:         func() time.Time { return now },
	}
	router := httpapi.NewRouter(app, zerolog.Nop(), httpapi.Options{
		JWTSecret:       testSecret,
		DefaultLocale:   "en",
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: 1000,
	})
	return &env{router: router, state: state, now: now}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	return e.doRaw(t, method, path, token, rd)
}

func (e *env) doRaw(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["detail"]
}

func (e *env) seedUser(t *testing.T, username string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    e.now,
	}
	e.state.users = append(e.state.users, u)
	return u
}

func (e *env) seedUserWithPassword(t *testing.T, username, password string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := e.seedUser(t, username)
	e.state.users[len(e.state.users)-1].PasswordHash = string(hash)
	u.PasswordHash = string(hash)
	return u
}

func (e *env) token(t *testing.T, u domain.User) string {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, u.ID, u.Username, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (e *env) seedFundraiser(t *testing.T, owner domain.User, goal int64, isOpen bool, deadline *time.Time) domain.Fundraiser {
	t.Helper()
	f := domain.Fundraiser{
		ID:        uuid.NewString(),
		Title:     "Fundraiser by " + owner.Username,
		Goal:      goal,
		IsOpen:    isOpen,
		Deadline:  deadline,
		OwnerID:   owner.ID,
		CreatedAt: e.now,
	}
	e.state.fundraisers = append(e.state.fundraisers, f)
	return f
}

func (e *env) seedPledge(t *testing.T, f domain.Fundraiser, supporter domain.User, amount int64, anonymous bool) domain.Pledge {
	t.Helper()
	p := domain.Pledge{
		ID:           uuid.NewString(),
		FundraiserID: f.ID,
		SupporterID:  supporter.ID,
		Amount:       amount,
		Anonymous:    anonymous,
		CreatedAt:    e.now,
	}
	e.state.pledges = append(e.state.pledges, p)
	return p
}

func (e *env) seedComment(t *testing.T, f domain.Fundraiser, author domain.User, parentID *string, content string) domain.Comment {
	t.Helper()
	c := domain.Comment{
		ID:           uuid.NewString(),
		FundraiserID: f.ID,
		AuthorID:     author.ID,
		ParentID:     parentID,
		Content:      content,
		CreatedAt:    e.now,
	}
	e.state.comments = append(e.state.comments, c)
	return c
}

func (e *env) fundraiser(t *testing.T, id string) domain.Fundraiser {
	t.Helper()
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	for _, f := range e.state.fundraisers {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("fundraiser %s not in store", id)
	return domain.Fundraiser{}
}

func hoursFromNow(e *env, h int) *time.Time {
	d := e.now.Add(time.Duration(h) * time.Hour)
	return &d
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/v1/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestInvalidBearerToken(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/fundraisers", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(detailOf(t, rec), "invalid or expired token") {
		t.Fatalf("unexpected detail")
	}
}
