package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/nav"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/state"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/view"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

// Navigate runs a navigation target and redraws the screen.
func (a *App) Navigate(ctx context.Context, t nav.Target) error {
	err := a.nav.Navigate(ctx, t)
	if err != nil {
		a.report(ctx, err)
	}
	a.show(ctx)
	return err
}

// Login shows the account forms and signs in with the entered credentials.
func (a *App) Login(ctx context.Context) error {
	if err := a.nav.Navigate(ctx, nav.Login); err != nil {
		return a.fail(ctx, err)
	}
	a.show(ctx)

	username, err := getSimpleText(a.reader, "Username", stdout())
	if err != nil {
		return a.fail(ctx, err)
	}
	password, err := getPassword(a.reader, stdout())
	if err != nil {
		return a.fail(ctx, err)
	}
	defer common.WipeByteArray(password)

	if err := a.ctrl.Login(ctx, username, string(password)); err != nil {
		return a.fail(ctx, err)
	}
	a.printer.Success("Welcome back, %s!", username)
	a.show(ctx)
	return nil
}

// Signup shows the account forms and creates a new account.
func (a *App) Signup(ctx context.Context) error {
	if err := a.nav.Navigate(ctx, nav.Login); err != nil {
		return a.fail(ctx, err)
	}
	a.show(ctx)

	name, err := getSimpleText(a.reader, "Name", stdout())
	if err != nil {
		return a.fail(ctx, err)
	}
	username, err := getSimpleText(a.reader, "Username", stdout())
	if err != nil {
		return a.fail(ctx, err)
	}
	password, err := getPassword(a.reader, stdout())
	if err != nil {
		return a.fail(ctx, err)
	}
	defer common.WipeByteArray(password)

	fields := models.SignupFields{Name: name, Username: username, Password: string(password)}
	if err := a.ctrl.Signup(ctx, fields); err != nil {
		return a.fail(ctx, err)
	}
	a.printer.Success("Account %s created.", username)
	a.show(ctx)
	return nil
}

// Submit toggles the submit form. When the form opens the story fields are
// prompted and the story is added. A failed submission closes the form, so
// the next submit prompts again.
func (a *App) Submit(ctx context.Context) (err error) {
	if err := a.nav.Navigate(ctx, nav.Submit); err != nil {
		return a.fail(ctx, err)
	}
	if !a.ctrl.View().SubmitOpen {
		a.show(ctx)
		return nil
	}
	defer func() {
		if err != nil {
			a.ctrl.CloseSubmit()
		}
	}()

	var fields models.StoryFields
	if fields.Author, err = getSimpleText(a.reader, "Author", stdout()); err != nil {
		return a.fail(ctx, err)
	}
	if fields.Title, err = getSimpleText(a.reader, "Title", stdout()); err != nil {
		return a.fail(ctx, err)
	}
	if fields.URL, err = getSimpleText(a.reader, "URL", stdout()); err != nil {
		return a.fail(ctx, err)
	}

	story, err := a.ctrl.SubmitStory(ctx, fields)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printer.Success("Story %s added.", story.ID)
	a.show(ctx)
	return nil
}

// Star toggles the favorite state of a story.
func (a *App) Star(ctx context.Context, storyID string) error {
	on, err := a.ctrl.ToggleFavorite(ctx, storyID)
	if err != nil {
		return a.fail(ctx, err)
	}
	if on {
		a.printer.Success("Added %s to favorites.", storyID)
	} else {
		a.printer.Success("Removed %s from favorites.", storyID)
	}
	a.show(ctx)
	return nil
}

// Delete removes one of the user's stories after confirmation.
func (a *App) Delete(ctx context.Context, storyID string) error {
	if err := a.ctrl.DeleteStory(ctx, storyID); err != nil {
		return a.fail(ctx, err)
	}
	a.printer.Success("Story %s deleted.", storyID)
	a.show(ctx)
	return nil
}

func (a *App) show(ctx context.Context) {
	err := a.printer.Render(view.Screen{
		View:    a.ctrl.View(),
		Active:  a.ctrl.Active(),
		User:    a.ctrl.CurrentUser(),
		Pending: a.ctrl.IsPending,
	})
	if err != nil {
		a.log.Error(ctx, "screen render failed", "error", err)
		a.printer.Error("Could not draw the story list: %v", err)
	}
}

func (a *App) fail(ctx context.Context, err error) error {
	a.report(ctx, err)
	return err
}

// report logs err and prints a short message for the user.
func (a *App) report(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err)

	var ve *client.ValidationError
	switch {
	case errors.Is(err, state.ErrCancelled):
		a.printer.Info("Cancelled.")
	case errors.Is(err, state.ErrNotLoggedIn):
		a.printer.Warning("You need to log in first.")
	case errors.Is(err, state.ErrBusy):
		a.printer.Warning("Another operation is still running, try again.")
	case errors.Is(err, state.ErrNotOwner):
		a.printer.Warning("You can only delete your own stories.")
	case errors.As(err, &ve):
		if ve.Message != "" {
			a.printer.Error("%s", ve.Message)
		}
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.printer.Error("%s", ve.Fields[k])
		}
	case errors.Is(err, client.ErrUnauthorized):
		a.printer.Error("Invalid username or password.")
	case errors.Is(err, client.ErrNotFound):
		a.printer.Error("Not found: %v", err)
	case errors.Is(err, client.ErrUnavailable):
		a.log.Error(ctx, "remote service unavailable", "error", err)
		a.printer.Error("The service is unavailable, try again later.")
	default:
		a.log.Error(ctx, "unexpected error", "error", err)
		a.printer.Error("%v", err)
	}
}
