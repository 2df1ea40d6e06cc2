package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worldboss-bot/bot"
	"worldboss-bot/commands"
	"worldboss-bot/model"
	"worldboss-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const storeTimeout = 10 * time.Second

func commandHandlers(b *bot.Bot) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		commands.CommandSetTimer: func(m *discordgo.Message, args []string) {
			handleSetTimer(b, m, args)
		},
		commands.CommandStart: func(m *discordgo.Message, args []string) {
			handleStart(b, m)
		},
		commands.CommandStop: func(m *discordgo.Message, args []string) {
			handleStop(b, m)
		},
		commands.CommandStatus: func(m *discordgo.Message, args []string) {
			SystemInfoHandler(b, m)
		},
		commands.CommandHelp: func(m *discordgo.Message, args []string) {
			utils.SendReply(b.Runtime, m, commands.HelpText(b.GetConfig().CommandPrefix))
		},
	}
}

func handleSetTimer(b *bot.Bot, m *discordgo.Message, args []string) {
	cfg := b.GetConfig()
	if cfg.Static() {
		utils.SendReply(b.Runtime, m, "Per-server timers are disabled: this bot posts to a fixed channel.")
		return
	}

	usage := "Usage: " + commands.UsageOf(cfg.CommandPrefix, commands.CommandSetTimer)
	if len(args) != 2 {
		utils.SendErrorReply(b.Runtime, m, usage)
		return
	}
	channelID, err := utils.ParseChannelMention(args[0])
	if err != nil {
		utils.SendErrorReply(b.Runtime, m, err.Error()+". "+usage)
		return
	}
	roleID, err := utils.ParseRoleMention(args[1])
	if err != nil {
		utils.SendErrorReply(b.Runtime, m, err.Error()+". "+usage)
		return
	}

	channel, err := b.Runtime.ResolveChannel(channelID)
	if err != nil || channel == nil || channel.GuildID != m.GuildID {
		if err != nil {
			log.Warn().Err(err).Str("guild_id", m.GuildID).Str("channel_id", channelID).Msg("Could not resolve channel for timer")
		}
		utils.SendErrorReply(b.Runtime, m, fmt.Sprintf("Channel %s is not part of this server.", utils.ChannelMention(channelID)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	timer := model.ServerTimerConfig{ServerID: m.GuildID, ChannelID: channelID, RoleID: roleID}
	if err := b.Store.Upsert(ctx, timer); err != nil {
		log.Error().Err(err).Str("guild_id", m.GuildID).Msg("Could not save timer")
		utils.SendErrorReply(b.Runtime, m, "Could not save the timer settings, please try again.")
		return
	}

	log.Info().Str("guild_id", m.GuildID).Str("channel_id", channelID).Str("role_id", roleID).Msg("Timer set")
	utils.SendReply(b.Runtime, m, fmt.Sprintf("✅ Timer set: %s will ping %s.", utils.ChannelMention(channelID), utils.RoleMention(roleID)))
}

func handleStart(b *bot.Bot, m *discordgo.Message) {
	err := b.Scheduler.Start()
	switch {
	case errors.Is(err, bot.ErrAlreadyRunning):
		utils.SendReply(b.Runtime, m, "⏳ Timer is already running.")
	case err != nil:
		log.Error().Err(err).Msg("Could not start timer loop")
		utils.SendErrorReply(b.Runtime, m, "Could not start the timer.")
	default:
		utils.SendReply(b.Runtime, m, "✅ Timer started!")
	}
}

func handleStop(b *bot.Bot, m *discordgo.Message) {
	err := b.Scheduler.Stop()
	switch {
	case errors.Is(err, bot.ErrNotRunning):
		utils.SendReply(b.Runtime, m, "⛔ Timer isn't running.")
	case err != nil:
		log.Error().Err(err).Msg("Could not stop timer loop")
		utils.SendErrorReply(b.Runtime, m, "Could not stop the timer.")
	default:
		utils.SendReply(b.Runtime, m, "⏹ Timer stopped.")
	}
}
