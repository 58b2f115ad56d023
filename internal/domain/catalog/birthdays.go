package catalog

import (
	"context"

	apperrors "github.com/yanqian/funzone-site/pkg/errors"
)

// MenuVisibility controls whether a birthday menu is published or shared
// on request.
type MenuVisibility string

const (
	MenuShown   MenuVisibility = "shown"
	MenuContact MenuVisibility = "contact"
)

type BirthdayHighlight struct {
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type MenuSection struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// Vibe is the party theme suggested for a branch.
type Vibe struct {
	Icon  string `json:"icon" yaml:"icon"`
	Label string `json:"label" yaml:"label"`
}

// BirthdayContent is the birthday page of one branch.
type BirthdayContent struct {
	IntroTitle       string              `json:"introTitle" yaml:"introTitle"`
	IntroDescription string              `json:"introDescription" yaml:"introDescription"`
	Highlights       []BirthdayHighlight `json:"highlights" yaml:"highlights"`
	MenuSections     []MenuSection       `json:"menuSections,omitempty" yaml:"menuSections"`
	MenuVisibility   MenuVisibility      `json:"menuVisibility" yaml:"menuVisibility"`
	Notes            []string            `json:"notes,omitempty" yaml:"notes"`
	Vibe             Vibe                `json:"vibe" yaml:"vibe"`
}

// BirthdayCatalog holds per-branch pages keyed by branch slug. Default
// fills in branches without a page of their own; its intro is derived
// from the branch.
type BirthdayCatalog struct {
	Default  BirthdayContent            `json:"default" yaml:"default"`
	Branches map[string]BirthdayContent `json:"branches" yaml:"branches"`
}

// BirthdayBranch is one entry of the birthday branch picker.
type BirthdayBranch struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// BirthdayPage is the resolved birthday content for a branch.
type BirthdayPage struct {
	Branch   string          `json:"branch"`
	Title    string          `json:"title"`
	Content  BirthdayContent `json:"content"`
	Listing  Listing         `json:"-"`
	ShowMenu bool            `json:"showMenu"`
}

// BookingMessage is the WhatsApp text used to ask about a party.
func (p BirthdayPage) BookingMessage() string {
	return "Hi! I'd like to ask about birthday parties at " + p.Title + "."
}

func (s *service) BirthdayBranches(ctx context.Context) ([]BirthdayBranch, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BirthdayBranch, 0, len(branches))
	for _, b := range branches {
		if !b.HasBirthdays {
			continue
		}
		label := b.City
		if b.Type == BranchTypeSports {
			label = "Sports Zone"
		}
		out = append(out, BirthdayBranch{Slug: b.Slug, Label: label})
	}
	return out, nil
}

func (s *service) Birthdays(ctx context.Context, ref string) (BirthdayPage, error) {
	b, err := s.resolve(ctx, ref)
	if err != nil {
		return BirthdayPage{}, err
	}
	if !b.HasBirthdays {
		return BirthdayPage{}, apperrors.Wrap("not_found", "branch does not host birthdays: "+b.Slug, nil)
	}
	cat, err := s.repo.Birthdays(ctx)
	if err != nil {
		s.logger.Error("load birthday content failed", "error", err)
		return BirthdayPage{}, apperrors.Wrap("catalog_error", "failed to load birthday content", err)
	}

	content, ok := cat.Branches[b.Slug]
	if !ok {
		content = cat.Default
		content.IntroTitle = b.City + " Birthdays"
		content.IntroDescription = b.ShortDescription
	}
	if content.MenuVisibility == "" {
		content.MenuVisibility = MenuContact
	}
	if content.Vibe.Label == "" {
		content.Vibe = Vibe{Icon: "sparkles", Label: "Party Time"}
	}

	page := BirthdayPage{
		Branch:   b.Slug,
		Title:    birthdayTitle(b),
		Content:  content,
		Listing:  newListing(b, s.now()),
		ShowMenu: content.MenuVisibility == MenuShown && len(content.MenuSections) > 0,
	}
	if !page.ShowMenu {
		page.Content.MenuSections = nil
	}
	return page, nil
}

func birthdayTitle(b Branch) string {
	if b.Type == BranchTypeSports {
		return b.Name
	}
	return b.City + " Branch"
}
