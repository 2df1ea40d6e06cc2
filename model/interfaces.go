package model

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Runtime is the slice of the Discord session the bot logic needs.
// It is passed explicitly to the scheduler and the command layer so both can
// run against a fake in tests.
type Runtime interface {
	// ResolveChannel looks the channel up in the local cache first and falls
	// back to fetching it.
	ResolveChannel(channelID string) (*discordgo.Channel, error)
	SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	MemberPermissions(userID, channelID string) (int64, error)
}

// TargetSource provides the reminder destinations read on every tick.
type TargetSource interface {
	ListTargets(ctx context.Context) ([]ServerTimerConfig, error)
}

