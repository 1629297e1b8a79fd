package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

type StoryService interface {
	FetchAll(ctx context.Context) ([]models.Story, error)
	Submit(ctx context.Context, user *models.User, fields models.StoryFields) (*models.Story, error)
	SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error
	Delete(ctx context.Context, user *models.User, storyID string) error
}

type storyService struct {
	users     client.UserAPI
	stories   client.StoryAPI
	validator *fieldValidator
}

func NewStoryService(c client.Client) StoryService {
	return &storyService{users: c, stories: c, validator: newFieldValidator()}
}

func (s *storyService) FetchAll(ctx context.Context) ([]models.Story, error) {
	stories, err := s.stories.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching stories: %w", err)
	}
	return stories, nil
}

func (s *storyService) Submit(ctx context.Context, user *models.User, fields models.StoryFields) (*models.Story, error) {
	fields.Author = strings.TrimSpace(fields.Author)
	fields.Title = strings.TrimSpace(fields.Title)
	fields.URL = strings.TrimSpace(fields.URL)
	if err := s.validator.Validate(fields); err != nil {
		return nil, err
	}

	story, err := s.stories.AddStory(ctx, user, fields)
	if err != nil {
		return nil, fmt.Errorf("error adding story: %w", err)
	}
	return story, nil
}

func (s *storyService) SetFavorite(ctx context.Context, user *models.User, storyID string, add bool) error {
	if err := s.users.SetFavorite(ctx, user, storyID, add); err != nil {
		return fmt.Errorf("error updating favorite %s: %w", storyID, err)
	}
	return nil
}

func (s *storyService) Delete(ctx context.Context, user *models.User, storyID string) error {
	if err := s.users.DeleteStory(ctx, user, storyID); err != nil {
		return fmt.Errorf("error deleting story %s: %w", storyID, err)
	}
	return nil
}
