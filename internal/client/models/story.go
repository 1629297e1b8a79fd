// Package models defines the domain values shared by the client layers:
// stories, users, sessions and story collections.
package models

import (
	"strings"
	"time"
)

// Story is a submitted link. Stories are immutable once fetched; whether a
// story is a favorite is derived from User.Favorites.
type Story struct {
	ID        string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// HostName returns the host part of the story URL without scheme, port,
// path or a leading "www.".
func (s Story) HostName() string {
	host := s.URL
	if _, rest, ok := strings.Cut(host, "://"); ok {
		host = rest
	}
	host, _, _ = strings.Cut(host, "/")
	host, _, _ = strings.Cut(host, "?")
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}

// StoryFields is the submit-story form.
type StoryFields struct {
	Author string `json:"author" validate:"required,max=100"`
	Title  string `json:"title" validate:"required,max=200"`
	URL    string `json:"url" validate:"required,url"`
}

// IndexOf returns the position of the story with the given id, or -1.
func IndexOf(stories []Story, id string) int {
	for i, s := range stories {
		if s.ID == id {
			return i
		}
	}
	return -1
}
