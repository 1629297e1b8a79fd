package services

import (
	"context"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginRet *models.User
	LoginErr error

	CreateRet *models.User
	CreateErr error

	GetByTokenRet *models.User
	GetByTokenErr error

	SetFavoriteErr error
	DeleteErr      error

	FetchAllRet []models.Story
	FetchAllErr error

	AddStoryRet *models.Story
	AddStoryErr error

	PingErr  error
	CloseErr error

	LastLoginUser, LastLoginPassword string
	LastCreate                       models.SignupFields
	LastTokenLookup                  [2]string
	LastFavorite                     struct {
		StoryID string
		Add     bool
	}
	LastDeleted   string
	LastAddFields models.StoryFields
	Calls         int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	f.Calls++
	f.LastLoginUser, f.LastLoginPassword = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Create(ctx context.Context, fields models.SignupFields) (*models.User, error) {
	f.Calls++
	f.LastCreate = fields
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) GetByToken(ctx context.Context, token, username string) (*models.User, error) {
	f.Calls++
	f.LastTokenLookup = [2]string{token, username}
	return f.GetByTokenRet, f.GetByTokenErr
}

func (f *fakeClient) SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error {
	f.Calls++
	f.LastFavorite.StoryID, f.LastFavorite.Add = storyID, add
	return f.SetFavoriteErr
}

func (f *fakeClient) DeleteStory(ctx context.Context, user *models.User, storyID string) error {
	f.Calls++
	f.LastDeleted = storyID
	return f.DeleteErr
}

func (f *fakeClient) FetchAll(ctx context.Context) ([]models.Story, error) {
	f.Calls++
	return f.FetchAllRet, f.FetchAllErr
}

func (f *fakeClient) AddStory(ctx context.Context, user *models.User, fields models.StoryFields) (*models.Story, error) {
	f.Calls++
	f.LastAddFields = fields
	return f.AddStoryRet, f.AddStoryErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }
func (f *fakeClient) Close() error                   { return f.CloseErr }

type fakeStore struct {
	sess    models.Session
	has     bool
	SaveErr error
	cleared bool
}

func (s *fakeStore) Load(ctx context.Context) (models.Session, bool) { return s.sess, s.has }

func (s *fakeStore) Save(ctx context.Context, sess models.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.sess, s.has = sess, true
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.sess, s.has, s.cleared = models.Session{}, false, true
	return nil
}
