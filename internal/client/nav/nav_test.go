package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/state"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	calls      []string
	loggedIn   bool
	refreshErr error
	view       models.View
}

func (f *fakeController) SwitchCollection(ctx context.Context, kind models.CollectionKind) error {
	f.calls = append(f.calls, "switch:"+kind.String())
	if kind != models.CollectionAll && !f.loggedIn {
		return state.ErrNotLoggedIn
	}
	f.view.Main = models.PanelFor(kind)
	return nil
}

func (f *fakeController) RefreshUser(ctx context.Context) error {
	f.calls = append(f.calls, "refresh")
	return f.refreshErr
}

func (f *fakeController) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	f.view = models.View{Main: models.PanelAll}
	return nil
}

func (f *fakeController) ShowLoginForms() {
	f.calls = append(f.calls, "login-forms")
	f.view.Main = models.PanelLoginForms
}

func (f *fakeController) ToggleSubmit() (bool, error) {
	f.calls = append(f.calls, "toggle-submit")
	if !f.loggedIn {
		return false, state.ErrNotLoggedIn
	}
	f.view.SubmitOpen = !f.view.SubmitOpen
	return f.view.SubmitOpen, nil
}

func (f *fakeController) ToggleProfile() (bool, error) {
	f.calls = append(f.calls, "toggle-profile")
	if !f.loggedIn {
		return false, state.ErrNotLoggedIn
	}
	f.view.ProfileOpen = !f.view.ProfileOpen
	return f.view.ProfileOpen, nil
}

func (f *fakeController) HideOverlays() {
	f.calls = append(f.calls, "hide")
	f.view.SubmitOpen, f.view.ProfileOpen = false, false
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"all", Home},
		{"Home", Home},
		{" favorites ", Favorites},
		{"mine", MyStories},
		{"submit", Submit},
		{"profile", Profile},
		{"login", Login},
		{"logout", Logout},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTarget("settings")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestNavigate_CallSequences(t *testing.T) {
	tests := []struct {
		target Target
		want   []string
	}{
		{Home, []string{"hide", "switch:all"}},
		{Favorites, []string{"hide", "refresh", "switch:favorites"}},
		{MyStories, []string{"hide", "refresh", "switch:mine"}},
		{Submit, []string{"toggle-submit"}},
		{Profile, []string{"toggle-profile"}},
		{Login, []string{"login-forms"}},
		{Logout, []string{"logout"}},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			fc := &fakeController{loggedIn: true}
			d := NewDispatcher(fc, logging.Discard())

			require.NoError(t, d.Navigate(context.Background(), tt.target))
			assert.Equal(t, tt.want, fc.calls)
		})
	}
}

func TestNavigate_OverlaysAreIndependentOfMainPanel(t *testing.T) {
	fc := &fakeController{loggedIn: true}
	d := NewDispatcher(fc, logging.Discard())
	ctx := context.Background()

	require.NoError(t, d.Navigate(ctx, Submit))
	require.NoError(t, d.Navigate(ctx, Profile))
	assert.Equal(t, models.View{Main: models.PanelAll, SubmitOpen: true, ProfileOpen: true}, fc.view)

	require.NoError(t, d.Navigate(ctx, Favorites))
	assert.Equal(t, models.View{Main: models.PanelFavorites}, fc.view)

	require.NoError(t, d.Navigate(ctx, Login))
	assert.Equal(t, models.PanelLoginForms, fc.view.Main)
}

func TestNavigate_RefreshFailureStillSwitches(t *testing.T) {
	fc := &fakeController{loggedIn: true, refreshErr: errors.New("offline")}
	d := NewDispatcher(fc, logging.Discard())

	require.NoError(t, d.Navigate(context.Background(), MyStories))
	assert.Equal(t, models.PanelMine, fc.view.Main)
}

func TestNavigate_LoggedOut(t *testing.T) {
	fc := &fakeController{}
	d := NewDispatcher(fc, logging.Discard())
	ctx := context.Background()

	require.ErrorIs(t, d.Navigate(ctx, Favorites), state.ErrNotLoggedIn)
	require.ErrorIs(t, d.Navigate(ctx, Submit), state.ErrNotLoggedIn)
	require.ErrorIs(t, d.Navigate(ctx, Profile), state.ErrNotLoggedIn)
	require.NoError(t, d.Navigate(ctx, Home))
}

func TestNavigate_UnknownTarget(t *testing.T) {
	d := NewDispatcher(&fakeController{}, logging.Discard())
	require.ErrorIs(t, d.Navigate(context.Background(), Target(99)), ErrUnknownTarget)
}

var _ Controller = (*state.Controller)(nil)
