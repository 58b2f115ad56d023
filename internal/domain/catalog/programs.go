package catalog

import (
	"context"
	"strings"

	apperrors "github.com/yanqian/funzone-site/pkg/errors"
)

// ProgramTone colors a program feature card.
type ProgramTone string

const (
	ToneOrange  ProgramTone = "orange"
	ToneGreen   ProgramTone = "green"
	TonePurple  ProgramTone = "purple"
	TonePrimary ProgramTone = "primary"
)

// Program is a seasonal or year-round structured program (summer colony,
// sports academy).
type Program struct {
	Slug             string               `json:"slug" yaml:"slug"`
	Title            string               `json:"title" yaml:"title"`
	Subtitle         string               `json:"subtitle" yaml:"subtitle"`
	Badges           ProgramBadges        `json:"badges" yaml:"badges"`
	Hero             Image                `json:"hero" yaml:"hero"`
	Breadcrumbs      []Breadcrumb         `json:"breadcrumbs" yaml:"breadcrumbs"`
	Stats            []ProgramStat        `json:"stats" yaml:"stats"`
	About            ProgramAbout         `json:"about" yaml:"about"`
	Included         []ProgramFeature     `json:"included" yaml:"included"`
	Schedule         ProgramSchedule      `json:"schedule" yaml:"schedule"`
	Register         ProgramRegistration  `json:"register" yaml:"register"`
	Safety           TitledList           `json:"safety" yaml:"safety"`
	RegistrationInfo RegistrationGuidance `json:"registrationInfo" yaml:"registrationInfo"`
}

type ProgramBadges struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

type Image struct {
	Src string `json:"src" yaml:"src"`
	Alt string `json:"alt" yaml:"alt"`
}

// Breadcrumb is one navigation step; the last one has no Href.
type Breadcrumb struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href"`
}

type ProgramStat struct {
	Icon  string `json:"icon" yaml:"icon"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type ProgramAbout struct {
	Title      string   `json:"title" yaml:"title"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
	Quote      string   `json:"quote,omitempty" yaml:"quote"`
}

type ProgramFeature struct {
	Icon        string      `json:"icon" yaml:"icon"`
	Tone        ProgramTone `json:"tone" yaml:"tone"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
}

type ProgramSchedule struct {
	Title string         `json:"title" yaml:"title"`
	Items []ScheduleSlot `json:"items" yaml:"items"`
}

// ScheduleSlot is a free-form time ("08:00 AM", "Mon") and what happens.
type ScheduleSlot struct {
	Time  string `json:"time" yaml:"time"`
	Label string `json:"label" yaml:"label"`
}

type ProgramRegistration struct {
	Title      string          `json:"title" yaml:"title"`
	Note       string          `json:"note" yaml:"note"`
	Pricing    ProgramPricing  `json:"pricing" yaml:"pricing"`
	Fields     []RegisterField `json:"fields" yaml:"fields"`
	CTA        string          `json:"cta" yaml:"cta"`
	Disclaimer string          `json:"disclaimer" yaml:"disclaimer"`
}

type ProgramPricing struct {
	WeeklyFee      string `json:"weeklyFee" yaml:"weeklyFee"`
	MonthlyPass    Price  `json:"monthlyPass" yaml:"monthlyPass"`
	Transportation string `json:"transportation,omitempty" yaml:"transportation"`
}

// Price shows Current, struck through against Original when discounted.
type Price struct {
	Current  string `json:"current" yaml:"current"`
	Original string `json:"original,omitempty" yaml:"original"`
}

type RegisterField struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Type        string `json:"type" yaml:"type"`
}

type TitledList struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

type RegistrationGuidance struct {
	Title          string   `json:"title" yaml:"title"`
	DocumentsTitle string   `json:"documentsTitle" yaml:"documentsTitle"`
	Documents      []string `json:"documents" yaml:"documents"`
	PaymentTitle   string   `json:"paymentTitle" yaml:"paymentTitle"`
	PaymentText    string   `json:"paymentText" yaml:"paymentText"`
	PaymentIcons   []string `json:"paymentIcons" yaml:"paymentIcons"`
}

func (s *service) ListPrograms(ctx context.Context) ([]Program, error) {
	return s.programs(ctx)
}

func (s *service) GetProgram(ctx context.Context, slug string) (Program, error) {
	programs, err := s.programs(ctx)
	if err != nil {
		return Program{}, err
	}
	normalized := strings.ToLower(strings.TrimSpace(slug))
	for _, p := range programs {
		if p.Slug == normalized {
			return p, nil
		}
	}
	return Program{}, apperrors.Wrap("not_found", "program not found: "+slug, nil)
}

func (s *service) programs(ctx context.Context) ([]Program, error) {
	programs, err := s.repo.Programs(ctx)
	if err != nil {
		s.logger.Error("load programs failed", "error", err)
		return nil, apperrors.Wrap("catalog_error", "failed to load programs", err)
	}
	return programs, nil
}
