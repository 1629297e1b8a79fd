// Package nav maps navigation targets to view-state controller operations.
package nav

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

// Target is a navigation destination.
type Target int

const (
	Home Target = iota
	Favorites
	MyStories
	Submit
	Profile
	Login
	Logout
)

var targetNames = map[Target]string{
	Home:      "home",
	Favorites: "favorites",
	MyStories: "mine",
	Submit:    "submit",
	Profile:   "profile",
	Login:     "login",
	Logout:    "logout",
}

var targetAliases = map[string]Target{
	"all":        Home,
	"home":       Home,
	"favorites":  Favorites,
	"favourites": Favorites,
	"mine":       MyStories,
	"my-stories": MyStories,
	"submit":     Submit,
	"profile":    Profile,
	"login":      Login,
	"logout":     Logout,
}

var ErrUnknownTarget = errors.New("unknown navigation target")

func (t Target) String() string {
	if s, ok := targetNames[t]; ok {
		return s
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// ParseTarget resolves a command word to a target.
func ParseTarget(s string) (Target, error) {
	t, ok := targetAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
	return t, nil
}

// Controller is the part of the view-state controller the dispatcher drives.
type Controller interface {
	SwitchCollection(ctx context.Context, kind models.CollectionKind) error
	RefreshUser(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowLoginForms()
	ToggleSubmit() (bool, error)
	ToggleProfile() (bool, error)
	HideOverlays()
}

type handler func(ctx context.Context) error

// Dispatcher routes targets through a fixed table of handlers.
type Dispatcher struct {
	ctrl     Controller
	log      logging.Logger
	handlers map[Target]handler
}

func NewDispatcher(ctrl Controller, log logging.Logger) *Dispatcher {
	d := &Dispatcher{ctrl: ctrl, log: log.With("component", "nav")}
	d.handlers = map[Target]handler{
		Home:      d.home,
		Favorites: d.userCollection(models.CollectionFavorites),
		MyStories: d.userCollection(models.CollectionMine),
		Submit:    d.submit,
		Profile:   d.profile,
		Login:     d.login,
		Logout:    d.ctrl.Logout,
	}
	return d
}

// Navigate runs the handler registered for t.
func (d *Dispatcher) Navigate(ctx context.Context, t Target) error {
	h, ok := d.handlers[t]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, t)
	}
	d.log.Debug(ctx, "navigate", "target", t.String())
	return h(ctx)
}

func (d *Dispatcher) home(ctx context.Context) error {
	d.ctrl.HideOverlays()
	return d.ctrl.SwitchCollection(ctx, models.CollectionAll)
}

// userCollection refreshes the user before showing one of their lists.
// A failed refresh is logged and the last known user is shown.
func (d *Dispatcher) userCollection(kind models.CollectionKind) handler {
	return func(ctx context.Context) error {
		d.ctrl.HideOverlays()
		if err := d.ctrl.RefreshUser(ctx); err != nil {
			d.log.Warn(ctx, "user refresh failed", "collection", kind.String(), "error", err)
		}
		return d.ctrl.SwitchCollection(ctx, kind)
	}
}

func (d *Dispatcher) submit(ctx context.Context) error {
	_, err := d.ctrl.ToggleSubmit()
	return err
}

func (d *Dispatcher) profile(ctx context.Context) error {
	_, err := d.ctrl.ToggleProfile()
	return err
}

func (d *Dispatcher) login(ctx context.Context) error {
	d.ctrl.ShowLoginForms()
	return nil
}
