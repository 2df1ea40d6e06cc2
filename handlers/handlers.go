package handlers

import (
	"context"

	"worldboss-bot/bot"
	"worldboss-bot/commands"
	"worldboss-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Register installs the command table and, when the bot has a live session,
// the Discord event handlers.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	if b.Session != nil {
		addHandlers(b)
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Logged in")
		b.HandleReady(context.Background())
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}
		HandleMessage(b, selfID, m.Message)
	})
}

// HandleMessage routes a guild text message to its command handler. Messages
// from bots, direct messages and unknown commands are ignored.
func HandleMessage(b *bot.Bot, selfID string, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return
	}
	if m.GuildID == "" {
		return
	}

	cfg := b.GetConfig()
	result := commands.Parse(cfg.CommandPrefix, m.Content)
	if result.ParseID != commands.ParseOK {
		return
	}

	h, ok := b.CommandHandlers[result.Command]
	if !ok {
		log.Debug().Str("command", result.Command).Msg("Ignoring unknown command")
		return
	}

	if def, _ := commands.Lookup(result.Command); def.AdminOnly && !cfg.Static() {
		admin, err := utils.IsAdministrator(b.Runtime, m.Author.ID, m.ChannelID)
		if err != nil {
			log.Error().Err(err).Str("guild_id", m.GuildID).Msg("Permission check failed")
			utils.SendErrorReply(b.Runtime, m, "Could not check your permissions, please try again.")
			return
		}
		if !admin {
			utils.SendErrorReply(b.Runtime, m, "You need the Administrator permission to use this command.")
			return
		}
	}

	log.Debug().Str("command", result.Command).Str("guild_id", m.GuildID).Str("user_id", m.Author.ID).Msg("Handling command")
	h(m, result.Args)
}
