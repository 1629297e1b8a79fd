package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAll(t *testing.T) {
	fc := &fakeClient{FetchAllRet: []models.Story{{ID: "1"}, {ID: "2"}}}
	got, err := NewStoryService(fc).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	fc = &fakeClient{FetchAllErr: client.ErrUnavailable}
	_, err = NewStoryService(fc).FetchAll(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestSubmit_TrimsAndValidates(t *testing.T) {
	fc := &fakeClient{AddStoryRet: &models.Story{ID: "new"}}

	s, err := NewStoryService(fc).Submit(context.Background(), bob(),
		models.StoryFields{Author: " Ann ", Title: " Go 2 ", URL: " https://go.dev/blog "})
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)
	assert.Equal(t, models.StoryFields{Author: "Ann", Title: "Go 2", URL: "https://go.dev/blog"}, fc.LastAddFields)
}

func TestSubmit_InvalidURLNeverReachesRemote(t *testing.T) {
	fc := &fakeClient{}

	_, err := NewStoryService(fc).Submit(context.Background(), bob(),
		models.StoryFields{Author: "Ann", Title: "Go", URL: "not a url"})

	var ve *client.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "url must be a valid URL", ve.Fields["url"])
	assert.Zero(t, fc.Calls)
}

func TestSubmit_RemoteErrorWrapped(t *testing.T) {
	fc := &fakeClient{AddStoryErr: client.ErrUnauthorized}

	_, err := NewStoryService(fc).Submit(context.Background(), bob(),
		models.StoryFields{Author: "Ann", Title: "Go", URL: "https://go.dev"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "error adding story")
}

func TestSetFavoriteAndDelete_Delegate(t *testing.T) {
	fc := &fakeClient{}
	svc := NewStoryService(fc)

	require.NoError(t, svc.SetFavorite(context.Background(), bob(), "s1", true))
	assert.Equal(t, "s1", fc.LastFavorite.StoryID)
	assert.True(t, fc.LastFavorite.Add)

	require.NoError(t, svc.Delete(context.Background(), bob(), "s2"))
	assert.Equal(t, "s2", fc.LastDeleted)

	fc.DeleteErr = client.ErrNotFound
	err := svc.Delete(context.Background(), bob(), "s3")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "s3")
}
