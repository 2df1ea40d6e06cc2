package utils

import (
	"worldboss-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// SendReply answers a command in the channel it came from. Mentions in the
// reply are rendered but never ping anyone.
func SendReply(rt model.Runtime, m *discordgo.Message, content string) {
	_, err := rt.SendMessage(m.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Reference:       m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
	})
	if err != nil {
		log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("Error sending reply")
	}
}

// SendErrorReply sends a reply prefixed with the error marker.
func SendErrorReply(rt model.Runtime, m *discordgo.Message, message string) {
	SendReply(rt, m, "❌ "+message)
}
