package contact

import (
	"context"
	"strings"
)

// Channel is an outbound contact method.
type Channel string

const (
	ChannelPhone      Channel = "phone"
	ChannelWhatsApp   Channel = "whatsapp"
	ChannelEmail      Channel = "email"
	ChannelDirections Channel = "directions"
)

// ParseChannel normalizes a user supplied channel name.
func ParseChannel(value string) (Channel, bool) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(value))); c {
	case ChannelPhone, ChannelWhatsApp, ChannelEmail, ChannelDirections:
		return c, true
	case "call", "tel":
		return ChannelPhone, true
	case "maps":
		return ChannelDirections, true
	default:
		return "", false
	}
}

// Request asks for a contact redirect.
type Request struct {
	Branch  string `json:"-"`
	Channel string `json:"channel"`
	Message string `json:"message"`
}

// Redirect is the resolved outbound link.
type Redirect struct {
	Branch  string  `json:"branch"`
	Channel Channel `json:"channel"`
	Href    string  `json:"href"`
}

// ClickStat counts contact clicks for one branch and channel.
type ClickStat struct {
	Branch  string  `json:"branch"`
	Channel Channel `json:"channel"`
	Count   int64   `json:"count"`
}

// Store tracks contact click counters.
type Store interface {
	IncrementClick(ctx context.Context, branch string, channel Channel) error
	TopClicks(ctx context.Context, limit int) ([]ClickStat, error)
}
