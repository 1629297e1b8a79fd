package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized: bad credentials or a rejected token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation: the remote side or the local validator rejected submitted fields.
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable: the remote call failed or timed out.
	ErrUnavailable = errors.New("server unavailable")
	// ErrStaleToken: the persisted token was rejected during rehydration.
	ErrStaleToken = errors.New("stale token")
	ErrNotFound   = errors.New("not found")
)

// ValidationError carries per-field messages. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
