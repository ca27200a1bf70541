package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/config"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/db"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/llm"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/server/ratelimit"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// fakeDB is an in-memory DBClient.
type fakeDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resumes map[uuid.UUID]*db.Resume
	clock   time.Time
	pingErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:   make(map[uuid.UUID]*db.User),
		resumes: make(map[uuid.UUID]*db.Resume),
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so list ordering is stable.
func (f *fakeDB) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return uuid.Nil, db.ErrDuplicateEmail
		}
	}
	now := f.tick()
	u := &db.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeDB) SaveResume(_ context.Context, userID uuid.UUID, title, templateID string, data []byte) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	r := &db.Resume{
		ID: uuid.New(), UserID: userID, Title: title, TemplateID: templateID,
		Data: append(json.RawMessage(nil), data...), CreatedAt: now, UpdatedAt: now,
	}
	f.resumes[r.ID] = r
	cp := *r
	return &cp, nil
}

func (f *fakeDB) UpdateResume(_ context.Context, id, userID uuid.UUID, title, templateID string, data []byte) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return nil, db.ErrNotFound
	}
	r.Title, r.TemplateID = title, templateID
	r.Data = append(json.RawMessage(nil), data...)
	r.UpdatedAt = f.tick()
	cp := *r
	return &cp, nil
}

func (f *fakeDB) GetResume(_ context.Context, id, userID uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeDB) ListResumes(_ context.Context, userID uuid.UUID) ([]db.ResumeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.ResumeSummary{}
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeDB) DeleteResume(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok || r.UserID != userID {
		return db.ErrNotFound
	}
	delete(f.resumes, id)
	return nil
}

// fakeLLM replays one canned response for every prompt.
type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

// fakeCapturer records the markup it was asked to print.
type fakeCapturer struct {
	markup string
	err    error
}

func (f *fakeCapturer) PDF(_ context.Context, markup string) ([]byte, error) {
	f.markup = markup
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

var errFake = errors.New("fake failure")

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWT:      config.JWTConfig{Secret: testSecret, ExpirationHours: 1},
		Password: config.PasswordConfig{BcryptCost: bcrypt.MinCost},
	}
}

// newTestServer builds a server with rate limiting off.
func newTestServer(t *testing.T, deps Dependencies) *Server {
	t.Helper()
	s, err := New(Config{
		Auth:      testAuthConfig(),
		RateLimit: &ratelimit.Config{Enabled: false},
	}, deps)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

// do sends a request through the full middleware chain. body may be nil, a
// string sent verbatim, or any value encoded as JSON.
func do(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into T.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// registerUser creates an account and returns its token.
func registerUser(t *testing.T, s *Server, email string) (string, types.User) {
	t.Helper()
	w := do(t, s, http.MethodPost, "/auth/register", types.RegisterRequest{
		Name: "Asha Rao", Email: email, Password: "correct-horse",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[types.AuthResponse](t, w)
	require.NotNil(t, resp.User)
	return resp.Token, *resp.User
}
