// Package session persists the login token and username between runs.
//
// The pair is written and removed in a single transaction, so the store
// never holds one field without the other. Anything unreadable or
// inconsistent is reported as "no session": the store fails open to
// logged out.
package session

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hackorsnooze/internal/dbx"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

var ErrIncompleteSession = errors.New("session requires both token and username")

type Store struct {
	db     *sql.DB
	log    logging.Logger
	parser *jwt.Parser
	now    func() time.Time
	repo   func(dbx.DBTX) metadata.Repository
}

func sqliteRepo(db dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(db) }

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:     db,
		log:    log.With("component", "session"),
		parser: jwt.NewParser(),
		now:    time.Now,
		repo:   sqliteRepo,
	}
}

// Load returns the persisted session, or false when there is none or it
// cannot be trusted.
func (s *Store) Load(ctx context.Context) (models.Session, bool) {
	repo := s.repo(s.db)

	token, okToken, err := repo.Get(ctx, keyToken)
	if err != nil {
		s.log.Warn(ctx, "reading session token failed", "error", err)
		return models.Session{}, false
	}
	username, okUser, err := repo.Get(ctx, keyUsername)
	if err != nil {
		s.log.Warn(ctx, "reading session username failed", "error", err)
		return models.Session{}, false
	}

	sess := models.Session{Token: token, Username: username}
	if !okToken || !okUser || !sess.Valid() {
		return models.Session{}, false
	}
	if !s.consistent(ctx, sess) {
		return models.Session{}, false
	}
	return sess, true
}

// consistent inspects JWT-shaped tokens without verifying the signature:
// the token must decode, must not be expired and its username claim, when
// present, must match. Opaque tokens are accepted as they are.
func (s *Store) consistent(ctx context.Context, sess models.Session) bool {
	if strings.Count(sess.Token, ".") != 2 {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(sess.Token, claims); err != nil {
		s.log.Warn(ctx, "discarding malformed session token", "error", err)
		return false
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(s.now()) {
		s.log.Info(ctx, "persisted session token has expired", "username", sess.Username)
		return false
	}
	if name, ok := claims["username"].(string); ok && name != sess.Username {
		s.log.Warn(ctx, "session token belongs to another user", "stored", sess.Username, "claim", name)
		return false
	}
	return true
}

func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if !sess.Valid() {
		return ErrIncompleteSession
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyToken, sess.Token); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, sess.Username)
	})
}

// Clear removes both fields. Resetting in-memory state afterwards is the
// caller's job.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, keyToken, keyUsername)
	})
}
