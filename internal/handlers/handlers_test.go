package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"landing-api/internal/auth"
	"landing-api/internal/config"
	"landing-api/internal/db"
	"landing-api/internal/models"
)

// fakeStore is an in-memory Store used by the handler tests. Setting
// failWith makes every method return that error.
type fakeStore struct {
	posts       map[string]models.BlogPost
	users       map[string]models.User
	submissions []models.ContactSubmission
	failWith    error
	now         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: make(map[string]models.BlogPost),
		users: make(map[string]models.User),
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeStore) authorFor(userID string) *models.Author {
	for _, u := range f.users {
		if u.ID == userID {
			return &models.Author{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
		}
	}
	return &models.Author{ID: userID, Username: "unknown"}
}

func (f *fakeStore) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	posts := make([]models.BlogPost, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (f *fakeStore) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, title, content, excerpt, authorID string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	now := f.tick()
	p := models.BlogPost{
		ID:        fmt.Sprintf("post-%d", len(f.posts)+1),
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		AuthorID:  authorID,
		Author:    f.authorFor(authorID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.posts[p.ID] = p
	return &p, nil
}

func (f *fakeStore) UpdatePost(ctx context.Context, id, title, content, excerpt string) (*models.BlogPost, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	p.Title = title
	p.Content = content
	p.Excerpt = excerpt
	p.UpdatedAt = f.tick()
	f.posts[id] = p
	return &p, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakeStore) CreateContactSubmission(ctx context.Context, name, email, message string) (*models.ContactSubmission, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	sub := models.ContactSubmission{
		ID:        fmt.Sprintf("contact-%d", len(f.submissions)+1),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: f.tick(),
	}
	f.submissions = append(f.submissions, sub)
	return &sub, nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeStore) UpsertUserPassword(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[username]
	if !ok {
		u = models.User{
			ID:        fmt.Sprintf("user-%d", len(f.users)+1),
			Username:  username,
			CreatedAt: f.tick(),
		}
	}
	u.PasswordHash = passwordHash
	f.users[username] = u
	return &u, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.failWith
}

func (f *fakeStore) Counts(ctx context.Context) (int, int, error) {
	if f.failWith != nil {
		return 0, 0, f.failWith
	}
	return len(f.users), len(f.posts), nil
}

func (f *fakeStore) Initialize(ctx context.Context, adminPasswordHash string) (bool, int, error) {
	if f.failWith != nil {
		return false, 0, f.failWith
	}
	if _, ok := f.users[db.AdminUsername]; ok {
		return false, 0, nil
	}
	admin, _ := f.UpsertUserPassword(ctx, db.AdminUsername, adminPasswordHash)
	_, _ = f.CreatePost(ctx, "Welcome", "Sample content one", "First sample", admin.ID)
	_, _ = f.CreatePost(ctx, "Second post", "Sample content two", "Second sample", admin.ID)
	return true, 2, nil
}

// addUser seeds a user whose password is the given plain text.
func (f *fakeStore) addUser(t *testing.T, username, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := f.UpsertUserPassword(context.Background(), username, string(hash))
	require.NoError(t, err)
	return *u
}

var errStore = errors.New("store blew up")

type testApp struct {
	store    *fakeStore
	sessions *auth.Sessions
	router   http.Handler
}

func newTestApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	store := newFakeStore()
	sessions := auth.NewSessions("test-secret", time.Hour)
	logger := zap.NewNop()

	blogHandler := NewBlogHandler(store, logger)
	contactHandler := NewContactHandler(store, logger)
	authHandler := NewAuthHandler(store, sessions, logger)
	opsHandler := NewOpsHandler(store, cfg, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", contactHandler.Submit)
		r.Get("/blog", blogHandler.List)
		r.Get("/blog/{id}", blogHandler.GetByID)
		r.Group(func(r chi.Router) {
			r.Use(sessions.Require)
			r.Post("/blog", blogHandler.Create)
			r.Put("/blog/{id}", blogHandler.Update)
			r.Delete("/blog/{id}", blogHandler.Delete)
		})
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})
		r.Get("/health", opsHandler.Health)
		r.Post("/init-db", opsHandler.InitDB)
		r.Post("/reset-admin", opsHandler.ResetAdmin)
	})

	return &testApp{store: store, sessions: sessions, router: r}
}

func devConfig() config.Config {
	return config.Config{Environment: "development", AdminPassword: "admin123"}
}

func (a *testApp) request(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie issues a valid session for the given user.
func (a *testApp) sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}
