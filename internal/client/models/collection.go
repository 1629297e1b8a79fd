package models

import "fmt"

// CollectionKind names the source of a story collection.
type CollectionKind int

const (
	CollectionAll CollectionKind = iota
	CollectionFavorites
	CollectionMine
)

func (k CollectionKind) String() string {
	switch k {
	case CollectionAll:
		return "all"
	case CollectionFavorites:
		return "favorites"
	case CollectionMine:
		return "mine"
	default:
		return fmt.Sprintf("collection(%d)", int(k))
	}
}

// StoryCollection is an ordered list of stories tagged with its source.
type StoryCollection struct {
	Kind    CollectionKind
	Stories []Story
}

// Clone returns a copy whose slice does not alias c.Stories.
func (c StoryCollection) Clone() StoryCollection {
	return StoryCollection{Kind: c.Kind, Stories: append([]Story(nil), c.Stories...)}
}

// Panel is the main content area of the screen. Exactly one is visible.
type Panel int

const (
	PanelAll Panel = iota
	PanelFavorites
	PanelMine
	PanelLoginForms
)

func (p Panel) String() string {
	switch p {
	case PanelAll:
		return "all-stories"
	case PanelFavorites:
		return "favorited-stories"
	case PanelMine:
		return "my-stories"
	case PanelLoginForms:
		return "login-forms"
	default:
		return fmt.Sprintf("panel(%d)", int(p))
	}
}

// PanelFor maps a collection to the panel that shows it.
func PanelFor(k CollectionKind) Panel {
	switch k {
	case CollectionFavorites:
		return PanelFavorites
	case CollectionMine:
		return PanelMine
	default:
		return PanelAll
	}
}

// View describes what is on screen: one main panel plus two independent
// overlays (the submit form and the profile box).
type View struct {
	Main        Panel
	SubmitOpen  bool
	ProfileOpen bool
}
