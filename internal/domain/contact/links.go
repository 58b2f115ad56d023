package contact

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
)

var (
	nonDialChars = regexp.MustCompile(`[^\d+]`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Links holds every outbound contact href for one branch.
type Links struct {
	Phone      string `json:"phone"`
	WhatsApp   string `json:"whatsapp"`
	Email      string `json:"email,omitempty"`
	Directions string `json:"directions"`
}

// Href returns the link for channel.
func (l Links) Href(channel Channel) (string, bool) {
	var href string
	switch channel {
	case ChannelPhone:
		href = l.Phone
	case ChannelWhatsApp:
		href = l.WhatsApp
	case ChannelEmail:
		href = l.Email
	case ChannelDirections:
		href = l.Directions
	}
	return href, href != ""
}

// TelHref keeps digits and "+" only.
func TelHref(phone string) string {
	return "tel:" + nonDialChars.ReplaceAllString(phone, "")
}

// WhatsAppHref builds a wa.me link, with a prefilled text when message is set.
func WhatsAppHref(phone, message string) string {
	base := "https://wa.me/" + nonDigits.ReplaceAllString(phone, "")
	if message == "" {
		return base
	}
	return base + "?text=" + encodeComponent(message)
}

// DirectionsHref opens Google Maps directions to the coordinates.
func DirectionsHref(lat, lng float64) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// MailtoHref returns a mailto link, or "" when address is empty.
func MailtoHref(address string) string {
	if address == "" {
		return ""
	}
	return "mailto:" + address
}

// BranchLinks builds the links for b. An empty emailDomain disables email.
func BranchLinks(b catalog.Branch, message, emailDomain string) Links {
	whatsapp := b.WhatsApp
	if whatsapp == "" {
		whatsapp = b.Phone
	}
	var email string
	if emailDomain != "" && b.Slug != "" {
		email = b.Slug + "@" + emailDomain
	}
	return Links{
		Phone:      TelHref(b.Phone),
		WhatsApp:   WhatsAppHref(whatsapp, message),
		Email:      MailtoHref(email),
		Directions: DirectionsHref(b.Coordinates.Lat, b.Coordinates.Lng),
	}
}

// encodeComponent percent-encodes spaces as %20 rather than "+".
func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
