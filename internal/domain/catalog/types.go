package catalog

import (
	"time"

	"github.com/yanqian/funzone-site/internal/domain/hours"
)

// BranchType separates the kids playgrounds from the sports park.
type BranchType string

const (
	BranchTypePlayground BranchType = "playground"
	BranchTypeSports     BranchType = "sports"
)

// DisplayName is the human label used on branch cards.
func (t BranchType) DisplayName() string {
	if t == BranchTypeSports {
		return "Sports Park"
	}
	return "Kids Playground"
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Branch is one physical venue.
type Branch struct {
	ID               string               `json:"id" yaml:"id"`
	Slug             string               `json:"slug" yaml:"slug"`
	Name             string               `json:"name" yaml:"name"`
	City             string               `json:"city" yaml:"city"`
	Type             BranchType           `json:"type" yaml:"type"`
	ShortDescription string               `json:"shortDescription" yaml:"shortDescription"`
	AgeRange         string               `json:"ageRange" yaml:"ageRange"`
	Hours            hours.WeeklySchedule `json:"hours" yaml:"hours"`
	Phone            string               `json:"phone" yaml:"phone"`
	WhatsApp         string               `json:"whatsapp" yaml:"whatsapp"`
	AddressText      string               `json:"addressText" yaml:"addressText"`
	Coordinates      Coordinates          `json:"coordinates" yaml:"coordinates"`
	Activities       []string             `json:"activities" yaml:"activities"`
	Gallery          []string             `json:"gallery" yaml:"gallery"`
	HasBirthdays     bool                 `json:"hasBirthdays" yaml:"hasBirthdays"`
	Tags             []string             `json:"tags" yaml:"tags"`
}

// EnergyLevel grades how active an activity is.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// AgeRange is an inclusive age span. A nil Max means no upper bound.
type AgeRange struct {
	Min int  `json:"min" yaml:"min"`
	Max *int `json:"max" yaml:"max"`
}

// Activity is something visitors can do at one or more branches.
type Activity struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Category    string      `json:"category" yaml:"category"`
	IconName    string      `json:"iconName" yaml:"iconName"`
	Description string      `json:"description" yaml:"description"`
	AgeRange    AgeRange    `json:"ageRange" yaml:"ageRange"`
	EnergyLevel EnergyLevel `json:"energyLevel" yaml:"energyLevel"`
	AvailableAt []string    `json:"availableAt" yaml:"availableAt"`
}

// Neighborhood is a curated shortcut ("Near Beirut", "Sports training").
// Empty Cities or Type means no restriction on that field.
type Neighborhood struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Cities      []string   `json:"cities,omitempty" yaml:"cities"`
	Type        BranchType `json:"type,omitempty" yaml:"type"`
}

// Matches reports whether the branch belongs to the neighborhood.
func (n Neighborhood) Matches(b Branch) bool {
	if n.Type != "" && b.Type != n.Type {
		return false
	}
	if len(n.Cities) == 0 {
		return true
	}
	for _, city := range n.Cities {
		if city == b.City {
			return true
		}
	}
	return false
}

// Catalog is the full static content set.
type Catalog struct {
	Branches      []Branch        `yaml:"branches"`
	Activities    []Activity      `yaml:"activities"`
	Neighborhoods []Neighborhood  `yaml:"neighborhoods"`
	Programs      []Program       `yaml:"programs"`
	Birthdays     BirthdayCatalog `yaml:"birthdays"`
}

// Listing is a branch decorated with its live status.
type Listing struct {
	Branch
	TypeLabel    string       `json:"typeLabel"`
	HoursSummary string       `json:"hoursSummary"`
	Status       hours.Status `json:"status"`
}

// NeighborhoodCount pairs a neighborhood with how many branches it covers.
type NeighborhoodCount struct {
	Neighborhood
	Count int `json:"count"`
}

// StatusReport is the open state of one branch at one instant.
type StatusReport struct {
	Branch string       `json:"branch"`
	At     time.Time    `json:"at"`
	Status hours.Status `json:"status"`
}
