// Package state holds the view-state controller: the current user, the
// active story collection and which panels are visible.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Controller owns the session-scoped state of the client.
//
// Mutations are guarded per resource (session, collection, favorites): a
// call that overlaps another mutation of the same resource fails with
// ErrBusy instead of waiting.
type Controller struct {
	auth    services.AuthService
	stories services.StoryService
	confirm Confirmer
	log     logging.Logger

	mu      sync.RWMutex
	user    *models.User
	all     []models.Story
	active  models.StoryCollection
	view    models.View
	pending map[string]bool

	sessionSlot    *semaphore.Weighted
	collectionSlot *semaphore.Weighted
	favoritesSlot  *semaphore.Weighted
	fetches        singleflight.Group
}

func NewController(auth services.AuthService, stories services.StoryService, confirm Confirmer, log logging.Logger) *Controller {
	c := &Controller{
		auth:           auth,
		stories:        stories,
		confirm:        confirm,
		log:            log.With("component", "state"),
		sessionSlot:    semaphore.NewWeighted(1),
		collectionSlot: semaphore.NewWeighted(1),
		favoritesSlot:  semaphore.NewWeighted(1),
	}
	c.reset()
	return c
}

// reset puts every in-memory field back to its startup value.
func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.all = nil
	c.active = models.StoryCollection{Kind: models.CollectionAll}
	c.view = models.View{Main: models.PanelAll}
	c.pending = make(map[string]bool)
}

func acquire(slot *semaphore.Weighted) (func(), error) {
	if !slot.TryAcquire(1) {
		return nil, ErrBusy
	}
	return func() { slot.Release(1) }, nil
}

// Initialize restores the persisted session, if any, and loads the All
// collection. A failed restore leaves the client logged out and is only
// logged; a failed fetch is returned.
func (c *Controller) Initialize(ctx context.Context) error {
	release, err := acquire(c.sessionSlot)
	if err != nil {
		return err
	}
	defer release()
	return c.initialize(ctx)
}

func (c *Controller) initialize(ctx context.Context) error {
	c.restoreUser(ctx)
	return c.SwitchCollection(ctx, models.CollectionAll)
}

// restoreUser rebuilds currentUser from the persisted session.
func (c *Controller) restoreUser(ctx context.Context) {
	user, err := c.auth.Rehydrate(ctx)
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()

	switch {
	case err == nil:
		c.log.Info(ctx, "session restored", "username", user.Username)
	case errors.Is(err, services.ErrNoSession):
		c.log.Debug(ctx, "no persisted session")
	default:
		c.log.Warn(ctx, "session restore failed", "error", err)
	}
}

// RefreshUser re-reads the current user from the remote service. A
// rejected token logs the user out in memory; other failures keep the
// user as is and are returned.
func (c *Controller) RefreshUser(ctx context.Context) error {
	release, err := acquire(c.sessionSlot)
	if err != nil {
		return err
	}
	defer release()

	user, err := c.auth.Rehydrate(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) || errors.Is(err, client.ErrStaleToken) {
			c.mu.Lock()
			c.user = nil
			c.mu.Unlock()
		}
		return fmt.Errorf("refresh user: %w", err)
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return nil
}

func (c *Controller) Login(ctx context.Context, username, password string) error {
	release, err := acquire(c.sessionSlot)
	if err != nil {
		return err
	}
	defer release()

	user, err := c.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	c.loggedIn(ctx, user)
	return c.SwitchCollection(ctx, models.CollectionAll)
}

func (c *Controller) Signup(ctx context.Context, fields models.SignupFields) error {
	release, err := acquire(c.sessionSlot)
	if err != nil {
		return err
	}
	defer release()

	user, err := c.auth.Signup(ctx, fields)
	if err != nil {
		return err
	}
	c.loggedIn(ctx, user)
	return c.SwitchCollection(ctx, models.CollectionAll)
}

func (c *Controller) loggedIn(ctx context.Context, user *models.User) {
	c.mu.Lock()
	c.user = user
	c.pending = make(map[string]bool)
	c.view.Main = models.PanelAll
	c.mu.Unlock()
	c.log.Info(ctx, "logged in", "username", user.Username)
}

// Logout removes the persisted session and reloads the client.
func (c *Controller) Logout(ctx context.Context) error {
	release, err := acquire(c.sessionSlot)
	if err != nil {
		return err
	}
	defer release()

	if err := c.auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.reset()
	c.log.Info(ctx, "logged out")
	return c.initialize(ctx)
}

// SwitchCollection makes kind the active collection and shows its panel.
// All is fetched from the remote service; Favorites and Mine are copied
// from the current user.
func (c *Controller) SwitchCollection(ctx context.Context, kind models.CollectionKind) error {
	release, err := acquire(c.collectionSlot)
	if err != nil {
		return err
	}
	defer release()

	if kind == models.CollectionAll {
		stories, err := c.fetchAll(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.all = stories
		c.active = models.StoryCollection{Kind: kind, Stories: append([]models.Story(nil), stories...)}
		c.view.Main = models.PanelAll
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return ErrNotLoggedIn
	}

	var src []models.Story
	switch kind {
	case models.CollectionFavorites:
		src = c.user.Favorites
	case models.CollectionMine:
		src = c.user.OwnStories
	default:
		return fmt.Errorf("unknown collection %s", kind)
	}
	c.active = models.StoryCollection{Kind: kind, Stories: append([]models.Story(nil), src...)}
	c.view.Main = models.PanelFor(kind)
	return nil
}

// fetchAll coalesces concurrent list requests into one remote call.
func (c *Controller) fetchAll(ctx context.Context) ([]models.Story, error) {
	v, err, shared := c.fetches.Do("all", func() (any, error) {
		return c.stories.FetchAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug(ctx, "story list fetch shared")
	}
	return v.([]models.Story), nil
}

// SubmitStory adds a story and prepends it to the All list. Favorites and
// Mine are left alone until they are next loaded.
func (c *Controller) SubmitStory(ctx context.Context, fields models.StoryFields) (*models.Story, error) {
	user, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	release, err := acquire(c.collectionSlot)
	if err != nil {
		return nil, err
	}
	defer release()

	story, err := c.stories.Submit(ctx, user, fields)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = append([]models.Story{*story}, c.all...)
	if c.active.Kind == models.CollectionAll {
		c.active.Stories = append([]models.Story{*story}, c.active.Stories...)
	}
	c.view.SubmitOpen = false
	return story, nil
}

// ToggleFavorite flips the favorite state of a story. The change is
// visible at once and marked pending; if the remote call fails it is
// undone and the error returned.
func (c *Controller) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	release, err := acquire(c.favoritesSlot)
	if err != nil {
		return false, err
	}
	defer release()

	c.mu.Lock()
	user := c.user
	if user == nil {
		c.mu.Unlock()
		return false, ErrNotLoggedIn
	}
	before := append([]models.Story(nil), user.Favorites...)
	add := !user.IsFavorite(storyID)
	if add {
		story, ok := c.lookupLocked(storyID)
		if !ok {
			c.mu.Unlock()
			return false, fmt.Errorf("story %s: %w", storyID, client.ErrNotFound)
		}
		user.AddFavorite(story)
	} else {
		user.RemoveFavorite(storyID)
	}
	c.pending[storyID] = true
	c.mu.Unlock()

	err = c.stories.SetFavorite(ctx, user, storyID, add)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, storyID)
	if err != nil {
		if c.user == user {
			user.Favorites = before
		}
		c.log.Error(ctx, "favorite update failed, reverted", "story", storyID, "error", err)
		return !add, err
	}
	return add, nil
}

// lookupLocked finds a story among everything currently loaded.
func (c *Controller) lookupLocked(id string) (models.Story, bool) {
	for _, list := range [][]models.Story{c.active.Stories, c.all, c.user.OwnStories} {
		if i := models.IndexOf(list, id); i >= 0 {
			return list[i], true
		}
	}
	return models.Story{}, false
}

// DeleteStory removes one of the user's own stories after confirmation.
// Only the Mine collection and the user's own stories change; All and
// Favorites keep the story until they are next loaded.
func (c *Controller) DeleteStory(ctx context.Context, storyID string) error {
	user, err := c.requireUser()
	if err != nil {
		return err
	}
	if !user.IsOwn(storyID) {
		return ErrNotOwner
	}
	release, err := acquire(c.collectionSlot)
	if err != nil {
		return err
	}
	defer release()

	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete story %s?", storyID))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrCancelled
	}

	if err := c.stories.Delete(ctx, user, storyID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active.Kind == models.CollectionMine {
		if i := models.IndexOf(c.active.Stories, storyID); i >= 0 {
			c.active.Stories = append(c.active.Stories[:i:i], c.active.Stories[i+1:]...)
		}
	}
	if c.user != nil {
		c.user.RemoveOwn(storyID)
	}
	return nil
}

// requireUser returns a snapshot of the current user.
func (c *Controller) requireUser() (*models.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil, ErrNotLoggedIn
	}
	return c.user.Clone(), nil
}

func (c *Controller) CurrentUser() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.Clone()
}

func (c *Controller) IsLoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

func (c *Controller) Active() models.StoryCollection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active.Clone()
}

func (c *Controller) View() models.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *Controller) IsPending(storyID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending[storyID]
}

// ShowLoginForms replaces the story list with the login and signup forms.
func (c *Controller) ShowLoginForms() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Main = models.PanelLoginForms
}

// ToggleSubmit opens or closes the submit form and reports its new state.
func (c *Controller) ToggleSubmit() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return false, ErrNotLoggedIn
	}
	c.view.SubmitOpen = !c.view.SubmitOpen
	return c.view.SubmitOpen, nil
}

func (c *Controller) ToggleProfile() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return false, ErrNotLoggedIn
	}
	c.view.ProfileOpen = !c.view.ProfileOpen
	return c.view.ProfileOpen, nil
}

// CloseSubmit closes the submit form, leaving the profile box as it is.
func (c *Controller) CloseSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SubmitOpen = false
}

func (c *Controller) HideOverlays() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SubmitOpen = false
	c.view.ProfileOpen = false
}
