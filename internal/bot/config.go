package bot

import "strings"

// Config represents the configuration for the bot
type Config struct {
	// SiteURL is linked from reminders
	SiteURL string
	// UpdateTimeout is the long polling timeout in seconds
	UpdateTimeout int
	// Debug logs every request to the Bot API
	Debug bool
}

// DefaultConfig returns the default bot configuration
func DefaultConfig(siteURL string) Config {
	return Config{
		SiteURL:       strings.TrimRight(siteURL, "/"),
		UpdateTimeout: 60,
	}
}

func (c Config) flashcardsURL() string {
	if c.SiteURL == "" {
		return ""
	}
	return c.SiteURL + "/flashcards"
}
