package models

import "time"

// User is the logged-in account. The API identifies users by username.
type User struct {
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	Favorites  []Story   `json:"favorites"`
	OwnStories []Story   `json:"stories"`
	LoginToken string    `json:"-"`
}

func (u *User) IsFavorite(storyID string) bool {
	return IndexOf(u.Favorites, storyID) >= 0
}

func (u *User) IsOwn(storyID string) bool {
	return IndexOf(u.OwnStories, storyID) >= 0
}

// AddFavorite appends s unless it is already a favorite.
func (u *User) AddFavorite(s Story) {
	if u.IsFavorite(s.ID) {
		return
	}
	u.Favorites = append(u.Favorites, s)
}

// RemoveFavorite drops the story with the given id and reports whether it was present.
func (u *User) RemoveFavorite(storyID string) (Story, bool) {
	i := IndexOf(u.Favorites, storyID)
	if i < 0 {
		return Story{}, false
	}
	s := u.Favorites[i]
	u.Favorites = append(u.Favorites[:i:i], u.Favorites[i+1:]...)
	return s, true
}

// RemoveOwn drops one of the user's own stories.
func (u *User) RemoveOwn(storyID string) bool {
	i := IndexOf(u.OwnStories, storyID)
	if i < 0 {
		return false
	}
	u.OwnStories = append(u.OwnStories[:i:i], u.OwnStories[i+1:]...)
	return true
}

// Session returns the credential pair to persist for this user.
func (u *User) Session() Session {
	return Session{Token: u.LoginToken, Username: u.Username}
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupFields is the create-account form.
type SignupFields struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,alphanum,max=50"`
	Password string `json:"password" validate:"required,min=4"`
}

// Session is the persisted credential pair. Both fields are set or neither is.
type Session struct {
	Token    string
	Username string
}

func (s Session) Valid() bool {
	return s.Token != "" && s.Username != ""
}

// Clone returns a copy whose slices do not alias u's.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]Story(nil), u.Favorites...)
	c.OwnStories = append([]Story(nil), u.OwnStories...)
	return &c
}
