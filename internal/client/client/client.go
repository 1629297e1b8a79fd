package client

import (
	"context"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

// UserAPI is the remote user service.
type UserAPI interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Create(ctx context.Context, fields models.SignupFields) (*models.User, error)
	// GetByToken returns (nil, nil) when the token is rejected.
	GetByToken(ctx context.Context, token, username string) (*models.User, error)
	SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error
	DeleteStory(ctx context.Context, user *models.User, storyID string) error
}

// StoryAPI is the remote story list service.
type StoryAPI interface {
	FetchAll(ctx context.Context) ([]models.Story, error)
	AddStory(ctx context.Context, user *models.User, fields models.StoryFields) (*models.Story, error)
}

type Client interface {
	UserAPI
	StoryAPI
	Ping(ctx context.Context) error
	Close() error
}
