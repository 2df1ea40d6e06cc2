package model

import "time"

// Mode selects where reminder targets come from.
type Mode string

const (
	// ModeGuild keeps one channel/role pair per server in the timer table.
	ModeGuild Mode = "guild"
	// ModeStatic uses a single channel/role pair from the environment.
	ModeStatic Mode = "static"
)

// Config is the runtime configuration assembled by the config package.
type Config struct {
	BotToken      string
	Mode          Mode
	ChannelID     string
	RoleID        string
	DBPath        string
	CommandPrefix string
	Interval      time.Duration
	LogLevel      string
	LogWebhookURL string
}

// Static reports whether the bot runs with a fixed channel/role pair.
func (c *Config) Static() bool {
	return c.Mode == ModeStatic
}
