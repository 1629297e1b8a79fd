package state

import "errors"

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrBusy        = errors.New("another operation is in progress")
	ErrCancelled   = errors.New("cancelled")
	ErrNotOwner    = errors.New("story does not belong to the current user")
)
