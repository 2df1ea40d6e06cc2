package tasks

import (
	"fmt"

	"worldboss-bot/model"
	"worldboss-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Outcome classifies one reminder delivery.
type Outcome int

const (
	OutcomeSent Outcome = iota
	// OutcomeUnresolved means the destination channel could not be resolved.
	OutcomeUnresolved
	// OutcomeFailed covers rejected sends and anything unexpected.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Delivery is the result of sending the reminder to one target.
type Delivery struct {
	Target  model.ServerTimerConfig
	Outcome Outcome
	Err     error
}

// WorldBossMessage builds the reminder. Only the configured role may be
// pinged by it.
func WorldBossMessage(roleID string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("%s World Boss in 10 minutes ⏰!", utils.RoleMention(roleID)),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Roles: []string{roleID},
		},
	}
}

// SendWorldBossReminder resolves the target channel and posts the reminder.
// It never panics on a bad target; the failure is reported in the Delivery.
func SendWorldBossReminder(rt model.Runtime, target model.ServerTimerConfig) Delivery {
	d := Delivery{Target: target}

	channel, err := rt.ResolveChannel(target.ChannelID)
	if err != nil || channel == nil {
		if err == nil {
			err = fmt.Errorf("channel %s not found", target.ChannelID)
		}
		d.Outcome = OutcomeUnresolved
		d.Err = fmt.Errorf("could not resolve channel %s: %w", target.ChannelID, err)
		return d
	}

	if _, err := rt.SendMessage(channel.ID, WorldBossMessage(target.RoleID)); err != nil {
		d.Outcome = OutcomeFailed
		d.Err = fmt.Errorf("could not send reminder to channel %s: %w", channel.ID, err)
		return d
	}

	d.Outcome = OutcomeSent
	return d
}
