// Package services contains the application services of the client.
// This file defines the authentication service: login, signup, rehydration
// from the persisted session, and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

// ErrNoSession is returned by Rehydrate when nothing is persisted.
var ErrNoSession = errors.New("no persisted session")

// SessionStore is the persisted token/username pair (see package session).
type SessionStore interface {
	Load(ctx context.Context) (models.Session, bool)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations.
//
// Contract:
//   - Login / Signup: validate the form, call the remote user service and
//     persist the resulting session.
//   - Rehydrate: rebuild the user from the persisted session. ErrNoSession
//     when nothing is stored, client.ErrStaleToken when the token is rejected.
//   - Logout: remove the persisted session.
//   - Ping / Close: liveness check and resource release of the remote client.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Signup(ctx context.Context, fields models.SignupFields) (*models.User, error)
	Rehydrate(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client    client.Client
	store     SessionStore
	validator *fieldValidator
}

func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store, validator: newFieldValidator()}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := a.validator.Validate(creds); err != nil {
		return nil, err
	}

	user, err := a.client.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Save(ctx, user.Session()); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

func (a *authService) Signup(ctx context.Context, fields models.SignupFields) (*models.User, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Username = strings.TrimSpace(fields.Username)
	if err := a.validator.Validate(fields); err != nil {
		return nil, err
	}

	user, err := a.client.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	if err := a.store.Save(ctx, user.Session()); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

func (a *authService) Rehydrate(ctx context.Context) (*models.User, error) {
	sess, ok := a.store.Load(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	user, err := a.client.GetByToken(ctx, sess.Token, sess.Username)
	if err != nil {
		return nil, fmt.Errorf("user lookup error: %w", err)
	}
	if user == nil {
		return nil, client.ErrStaleToken
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
