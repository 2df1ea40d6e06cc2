package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"worldboss-bot/bot"
	"worldboss-bot/commands"
	"worldboss-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfoHandler replies with the timer state, the settings of the
// invoking server and a few host figures.
func SystemInfoHandler(b *bot.Bot, m *discordgo.Message) {
	utils.SendReply(b.Runtime, m, statusText(b, m.GuildID))
}

func statusText(b *bot.Bot, guildID string) string {
	cfg := b.GetConfig()
	var sb strings.Builder

	sb.WriteString("**⏰ World Boss timer**\n")
	if next, ok := b.Scheduler.NextRun(); ok {
		fmt.Fprintf(&sb, "State: running, next reminder <t:%d:R>\n", next.Unix())
	} else {
		sb.WriteString("State: stopped\n")
	}
	fmt.Fprintf(&sb, "Interval: %s\n", b.Scheduler.Interval())

	if cfg.Static() {
		fmt.Fprintf(&sb, "Mode: static, posting to %s and pinging %s\n", utils.ChannelMention(cfg.ChannelID), utils.RoleMention(cfg.RoleID))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		timer, ok, err := b.Store.Get(ctx, guildID)
		switch {
		case err != nil:
			log.Error().Err(err).Str("guild_id", guildID).Msg("Could not read timer for status")
			sb.WriteString("This server: could not read settings\n")
		case ok:
			fmt.Fprintf(&sb, "This server: posting to %s and pinging %s\n", utils.ChannelMention(timer.ChannelID), utils.RoleMention(timer.RoleID))
		default:
			fmt.Fprintf(&sb, "This server: not configured, use %s\n", commands.UsageOf(cfg.CommandPrefix, commands.CommandSetTimer))
		}

		if count, err := b.Store.Count(ctx); err == nil {
			fmt.Fprintf(&sb, "Servers configured: %d\n", count)
		} else {
			log.Error().Err(err).Msg("Could not count timers for status")
		}
	}

	sb.WriteString("\n**🖥️ System**\n")
	fmt.Fprintf(&sb, "Bot uptime: %s\n", time.Since(b.StartedAt).Round(time.Second))
	if uptime, err := host.Uptime(); err == nil {
		fmt.Fprintf(&sb, "Host uptime: %s\n", (time.Duration(uptime) * time.Second).String())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(&sb, "Memory: %.1f%% (%d MB / %d MB)\n", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}
	fmt.Fprintf(&sb, "Go: %s, goroutines: %d\n", runtime.Version(), runtime.NumGoroutine())

	return sb.String()
}
