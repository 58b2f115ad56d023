package contact

import "strings"

const branchPlaceholder = "{branch}"

// Config controls link generation and trending.
type Config struct {
	DefaultMessage string
	EmailDomain    string
	TopChannels    int
}

func (c Config) message(branchName string) string {
	template := c.DefaultMessage
	if template == "" {
		template = "Hi! I'd like to ask about {branch}."
	}
	return strings.ReplaceAll(template, branchPlaceholder, branchName)
}

func (c Config) topChannels() int {
	if c.TopChannels <= 0 {
		return 10
	}
	return c.TopChannels
}
