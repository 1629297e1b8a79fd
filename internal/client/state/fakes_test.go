package state

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/session"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/stretchr/testify/require"
)

// remote is an in-memory stand-in for the hack-or-snooze API.
type remote struct {
	mu sync.Mutex

	users   map[string]*models.User // by token
	stories []models.Story

	loginErr    error
	lookupErr   error
	fetchErr    error
	favoriteErr error
	deleteErr   error
	addErr      error

	// fetchGate, when set, blocks FetchAll until closed.
	fetchGate  chan struct{}
	fetchCalls int
	favCalls   int
	deleted    []string
	nextID     int
}

func newRemote() *remote {
	return &remote{users: map[string]*models.User{}}
}

func (r *remote) addUser(token string, u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.LoginToken = token
	r.users[token] = u
}

func (r *remote) Login(ctx context.Context, username, password string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loginErr != nil {
		return nil, r.loginErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, client.ErrUnauthorized
}

func (r *remote) Create(ctx context.Context, f models.SignupFields) (*models.User, error) {
	u := &models.User{Username: f.Username, Name: f.Name}
	r.addUser("tok-"+f.Username, u)
	return u.Clone(), nil
}

func (r *remote) GetByToken(ctx context.Context, token, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	u, ok := r.users[token]
	if !ok || u.Username != username {
		return nil, nil
	}
	return u.Clone(), nil
}

func (r *remote) SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favCalls++
	return r.favoriteErr
}

func (r *remote) DeleteStory(ctx context.Context, user *models.User, storyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, storyID)
	return nil
}

func (r *remote) FetchAll(ctx context.Context) ([]models.Story, error) {
	r.mu.Lock()
	gate := r.fetchGate
	r.fetchCalls++
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return append([]models.Story(nil), r.stories...), nil
}

func (r *remote) AddStory(ctx context.Context, user *models.User, f models.StoryFields) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.nextID++
	s := models.Story{ID: "new-" + strconv.Itoa(r.nextID), Title: f.Title, Author: f.Author, URL: f.URL, Username: user.Username}
	r.stories = append([]models.Story{s}, r.stories...)
	return &s, nil
}

func (r *remote) Ping(ctx context.Context) error { return nil }
func (r *remote) Close() error                   { return nil }

type answer bool

func (a answer) Confirm(ctx context.Context, prompt string) (bool, error) { return bool(a), nil }

type harness struct {
	ctrl   *Controller
	remote *remote
	store  *session.Store
	db     *sql.DB
}

func newHarness(t *testing.T, confirm Confirmer) *harness {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := newRemote()
	r.stories = []models.Story{
		{ID: "s1", Title: "One", URL: "https://a.example", Username: "ann"},
		{ID: "s2", Title: "Two", URL: "https://b.example", Username: "bob"},
		{ID: "s3", Title: "Three", URL: "https://c.example", Username: "bob"},
	}
	store := session.NewStore(db, logging.Discard())
	ctrl := NewController(
		services.NewAuthService(r, store),
		services.NewStoryService(r),
		confirm,
		logging.Discard(),
	)
	return &harness{ctrl: ctrl, remote: r, store: store, db: db}
}

func (h *harness) bob() *models.User {
	return &models.User{
		Username:   "bob",
		Name:       "Bob",
		Favorites:  []models.Story{{ID: "s1", Title: "One"}},
		OwnStories: []models.Story{{ID: "s2", Title: "Two"}, {ID: "s3", Title: "Three"}},
	}
}

func (h *harness) persist(t *testing.T, token, username string) {
	t.Helper()
	require.NoError(t, h.store.Save(context.Background(), models.Session{Token: token, Username: username}))
}

func ids(stories []models.Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}
