package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/nav"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Navigate(ctx context.Context, t nav.Target) error {
	f.calls = append(f.calls, "nav:"+t.String())
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Submit(ctx context.Context) error {
	f.calls = append(f.calls, "submit")
	return nil
}
func (f *fakeExec) Star(ctx context.Context, id string) error {
	f.calls = append(f.calls, "star:"+id)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		var parts []string
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	input := strings.Join([]string{
		"help",
		"login",
		"all",
		"HOME",
		"favorites",
		"mine",
		"profile",
		"submit",
		"star s1",
		"delete s2",
		"signup",
		"logout",
		"exit",
		"all",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "> " }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"nav:home",
		"nav:home",
		"nav:favorites",
		"nav:mine",
		"nav:profile",
		"submit",
		"star:s1",
		"delete:s2",
		"signup",
		"nav:logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("star\ndelete\nfoobar\n\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *printed, "Usage: star <id>")
	assert.Contains(t, *printed, "Usage: delete <id>")
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("mine")))

	assert.Equal(t, []string{"nav:mine"}, exec.calls)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	printed := silence(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))

	assert.Contains(t, (*printed)[0], "login")
	assert.Contains(t, (*printed)[2], "logout")
}
