package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// SessionRuntime implements model.Runtime on a live discordgo session.
type SessionRuntime struct {
	s *discordgo.Session
}

// NewSessionRuntime wraps a discordgo session.
func NewSessionRuntime(s *discordgo.Session) *SessionRuntime {
	return &SessionRuntime{s: s}
}

func (r *SessionRuntime) ResolveChannel(channelID string) (*discordgo.Channel, error) {
	if r.s.State != nil {
		if ch, err := r.s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	log.Debug().Str("channel_id", channelID).Msg("Channel is not cached, fetching it")

	ch, err := r.s.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch channel %s: %w", channelID, err)
	}
	return ch, nil
}

func (r *SessionRuntime) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return r.s.ChannelMessageSendComplex(channelID, data)
}

func (r *SessionRuntime) MemberPermissions(userID, channelID string) (int64, error) {
	return r.s.UserChannelPermissions(userID, channelID)
}
