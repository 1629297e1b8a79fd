// Package view renders the client state to the terminal.
package view

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const profileDateLayout = "January 2, 2006"

// Printer writes screens and status messages to out.
type Printer struct {
	out       io.Writer
	useColors bool
	policy    *bluemonday.Policy
	table     func(w io.Writer, header []string, rows [][]string) error
}

func NewPrinter(out io.Writer, useColors bool) *Printer {
	return &Printer{out: out, useColors: useColors, policy: bluemonday.StrictPolicy(), table: writeTable}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// clean strips markup from remote text and collapses whitespace.
func (p *Printer) clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(p.policy.Sanitize(s))), " ")
}

func (p *Printer) Info(format string, args ...any) {
	p.paint(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.paint(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...any) {
	p.paint(color.FgYellow).Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.paint(color.FgRed, color.Bold).Fprintf(p.out, "Error: "+format+"\n", args...)
}

// Screen is everything the renderer needs for one frame.
type Screen struct {
	View   models.View
	Active models.StoryCollection
	User   *models.User
	// Pending reports favorites whose remote update is still in flight.
	Pending func(storyID string) bool
}

// Render draws the main panel followed by any open overlays.
func (p *Printer) Render(s Screen) error {
	if s.View.ProfileOpen && s.User != nil {
		p.Profile(s.User)
	}
	if s.View.SubmitOpen {
		p.Info("Submit a new story (author, title, url).")
	}

	if s.View.Main == models.PanelLoginForms {
		p.LoginForms()
		return nil
	}
	return p.Stories(s.Active, s.User, s.Pending)
}

func (p *Printer) LoginForms() {
	p.paint(color.Bold).Fprintln(p.out, "Login")
	fmt.Fprintln(p.out, "  type `login` to sign in with an existing account")
	p.paint(color.Bold).Fprintln(p.out, "Create Account")
	fmt.Fprintln(p.out, "  type `signup` to create a new account")
}

func emptyMessage(k models.CollectionKind) string {
	switch k {
	case models.CollectionFavorites:
		return "No favorites added!"
	case models.CollectionMine:
		return "No stories added by user yet!"
	default:
		return "No stories yet."
	}
}

// Stories prints a collection as a table. The star column appears only
// when a user is logged in; the Mine panel adds a delete marker.
func (p *Printer) Stories(c models.StoryCollection, user *models.User, pending func(string) bool) error {
	if len(c.Stories) == 0 {
		p.Warning(emptyMessage(c.Kind))
		return nil
	}

	loggedIn := user != nil
	deletable := loggedIn && c.Kind == models.CollectionMine

	var header []string
	if loggedIn {
		header = append(header, "")
	}
	header = append(header, "Title", "Host", "Author", "Posted By", "ID")
	if deletable {
		header = append(header, "")
	}

	rows := make([][]string, 0, len(c.Stories))
	for _, s := range c.Stories {
		var row []string
		if loggedIn {
			row = append(row, p.star(user, s.ID, pending))
		}
		row = append(row,
			p.paint(color.Bold).Sprint(p.clean(s.Title)),
			p.paint(color.Faint).Sprint(s.HostName()),
			"by "+p.clean(s.Author),
			"posted by "+p.clean(s.Username),
			s.ID,
		)
		if deletable {
			row = append(row, p.paint(color.FgRed).Sprint("del"))
		}
		rows = append(rows, row)
	}

	if err := p.table(p.out, header, rows); err != nil {
		return fmt.Errorf("render %s stories: %w", c.Kind, err)
	}
	return nil
}

func (p *Printer) star(user *models.User, id string, pending func(string) bool) string {
	switch {
	case pending != nil && pending(id):
		return "?"
	case user.IsFavorite(id):
		return p.paint(color.FgYellow).Sprint("*")
	default:
		return " "
	}
}

// Profile prints the user's account details.
func (p *Printer) Profile(u *models.User) {
	p.paint(color.Bold).Fprintln(p.out, "User Profile Info")
	fmt.Fprintf(p.out, "Name: %s\n", p.clean(u.Name))
	fmt.Fprintf(p.out, "Username: %s\n", u.Username)
	created := "unknown"
	if !u.CreatedAt.IsZero() {
		created = u.CreatedAt.Format(profileDateLayout)
	}
	fmt.Fprintf(p.out, "Account Created: %s\n", created)
}

// Prompt returns the REPL prompt for the given user and connection mode.
func (p *Printer) Prompt(username string, online bool) string {
	if username == "" {
		username = "guest"
	}
	mode := p.paint(color.FgGreen).Sprint("online")
	if !online {
		mode = p.paint(color.FgRed).Sprint("offline")
	}
	return fmt.Sprintf("(%s %s)> ", username, mode)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := newTable(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}
