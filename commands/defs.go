package commands

import (
	"fmt"
	"strings"
)

const (
	CommandSetTimer = "set_timer"
	CommandStart    = "start"
	CommandStop     = "stop"
	CommandStatus   = "status"
	CommandHelp     = "help"
)

// Definition describes a text command for the help message.
type Definition struct {
	Name        string
	Usage       string
	Description string
	// AdminOnly commands need the Administrator permission in guild mode.
	AdminOnly bool
}

var Definitions = []Definition{
	{Name: CommandSetTimer, Usage: "<#channel> <@role>", Description: "Set where this server's World Boss reminder is posted and which role it pings.", AdminOnly: true},
	{Name: CommandStart, Description: "Start the reminder timer.", AdminOnly: true},
	{Name: CommandStop, Description: "Stop the reminder timer.", AdminOnly: true},
	{Name: CommandStatus, Description: "Show the timer state and this server's settings.", AdminOnly: true},
	{Name: CommandHelp, Description: "Show this message."},
}

// Lookup returns the definition of a command name.
func Lookup(name string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// UsageOf renders the invocation of a command with the given prefix.
func UsageOf(prefix, name string) string {
	def, ok := Lookup(name)
	if !ok || def.Usage == "" {
		return fmt.Sprintf("`%s%s`", prefix, name)
	}
	return fmt.Sprintf("`%s%s %s`", prefix, name, def.Usage)
}

// HelpText lists every command.
func HelpText(prefix string) string {
	var b strings.Builder
	b.WriteString("**World Boss timer commands**\n")
	for _, def := range Definitions {
		fmt.Fprintf(&b, "%s: %s\n", UsageOf(prefix, def.Name), def.Description)
	}
	return b.String()
}
