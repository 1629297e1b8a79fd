// Package client talks to the remote hack-or-snooze API and bootstraps the
// local session database.
//
// # Overview
//
//  1. A transport-agnostic contract (Client = UserAPI + StoryAPI + Ping/Close)
//     describing the remote calls the view-state layer makes.
//  2. HTTPClient, the JSON-over-HTTP implementation. Every request carries an
//     X-Request-ID, waits on a client-side rate limiter and maps HTTP status
//     codes onto sentinel errors.
//  3. InitDatabase / RunMigrations, which open the SQLite file holding the
//     persisted session and apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match conditions with errors.Is: ErrUnauthorized, ErrValidation
// (also carried by *ValidationError), ErrUnavailable, ErrStaleToken and
// ErrNotFound.
package client
