package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"worldboss-bot/bot"
	"worldboss-bot/model"
	"worldboss-bot/utils/database"
	"worldboss-bot/utils/runtimetest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	commandChannel = "cmd"
	selfID         = "bot-user"
)

func newGuildBot(t *testing.T) (*bot.Bot, *runtimetest.Runtime, *database.TimerConfigStore) {
	t.Helper()
	store, err := database.OpenTimerConfigStore(filepath.Join(t.TempDir(), "timers.db"))
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))

	rt := runtimetest.New()
	rt.AddChannel(commandChannel, "S1")
	rt.SetPermissions("admin", discordgo.PermissionAdministrator)
	rt.SetPermissions("member", discordgo.PermissionSendMessages)

	cfg := &model.Config{Mode: model.ModeGuild, CommandPrefix: "!", Interval: time.Hour}
	b, err := bot.NewWithRuntime(cfg, rt, store)
	require.NoError(t, err)
	Register(b)
	t.Cleanup(b.Close)
	return b, rt, store
}

func newStaticBot(t *testing.T) (*bot.Bot, *runtimetest.Runtime) {
	t.Helper()
	rt := runtimetest.New()
	cfg := &model.Config{Mode: model.ModeStatic, ChannelID: "C9", RoleID: "R9", CommandPrefix: "!", Interval: time.Hour}
	b, err := bot.NewWithRuntime(cfg, rt, nil)
	require.NoError(t, err)
	Register(b)
	t.Cleanup(b.Close)
	return b, rt
}

func message(guildID, authorID, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: commandChannel,
		GuildID:   guildID,
		Author:    &discordgo.User{ID: authorID},
		Content:   content,
	}
}

func lastReply(t *testing.T, rt *runtimetest.Runtime) *discordgo.MessageSend {
	t.Helper()
	replies := rt.SentTo(commandChannel)
	require.NotEmpty(t, replies)
	return replies[len(replies)-1].Data
}

func TestSetTimerThenTickEndToEnd(t *testing.T) {
	b, rt, store := newGuildBot(t)
	rt.AddChannel("1001", "S1")
	ctx := context.Background()

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	HandleMessage(b, selfID, message("S1", "admin", "!set_timer <#1001> <@&2001>"))

	reply := lastReply(t, rt)
	assert.Equal(t, "✅ Timer set: <#1001> will ping <@&2001>.", reply.Content)
	require.NotNil(t, reply.AllowedMentions)
	assert.Empty(t, reply.AllowedMentions.Parse)
	assert.Empty(t, reply.AllowedMentions.Roles)

	all, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ServerTimerConfig{{ServerID: "S1", ChannelID: "1001", RoleID: "2001"}}, all)

	report := b.Scheduler.Tick(ctx)
	require.NoError(t, report.Err())
	sent := rt.SentTo("1001")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Data.Content, "<@&2001>")
	assert.Contains(t, sent[0].Data.Content, "World Boss in 10 minutes")
}

func TestSetTimerOverwritesServerConfig(t *testing.T) {
	b, rt, store := newGuildBot(t)
	rt.AddChannel("1001", "S1")
	rt.AddChannel("1002", "S1")

	HandleMessage(b, selfID, message("S1", "admin", "!set_timer 1001 2001"))
	HandleMessage(b, selfID, message("S1", "admin", "!set_timer <#1002> <@&2002>"))

	got, ok, err := store.Get(context.Background(), "S1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.ServerTimerConfig{ServerID: "S1", ChannelID: "1002", RoleID: "2002"}, got)
}

func TestSetTimerValidation(t *testing.T) {
	b, rt, store := newGuildBot(t)
	rt.AddChannel("1001", "S1")
	rt.AddChannel("1999", "S2")

	cases := []struct {
		content string
		want    string
	}{
		{content: "!set_timer", want: "Usage: `!set_timer <#channel> <@role>`"},
		{content: "!set_timer <#1001>", want: "Usage:"},
		{content: "!set_timer general <@&2001>", want: "is not a channel mention or id"},
		{content: "!set_timer <#1001> everyone", want: "is not a role mention or id"},
		{content: "!set_timer <#1999> <@&2001>", want: "is not part of this server"},
		{content: "!set_timer <#404> <@&2001>", want: "is not part of this server"},
	}
	for _, tc := range cases {
		HandleMessage(b, selfID, message("S1", "admin", tc.content))
		reply := lastReply(t, rt)
		assert.Contains(t, reply.Content, "❌", tc.content)
		assert.Contains(t, reply.Content, tc.want, tc.content)
	}

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetTimerStorageFailure(t *testing.T) {
	b, rt, store := newGuildBot(t)
	rt.AddChannel("1001", "S1")
	require.NoError(t, store.Close())

	HandleMessage(b, selfID, message("S1", "admin", "!set_timer <#1001> <@&2001>"))

	assert.Equal(t, "❌ Could not save the timer settings, please try again.", lastReply(t, rt).Content)
}

func TestCommandsRequireAdministrator(t *testing.T) {
	b, rt, _ := newGuildBot(t)
	rt.AddChannel("1001", "S1")

	for _, content := range []string{"!set_timer <#1001> <@&2001>", "!start", "!stop", "!status"} {
		HandleMessage(b, selfID, message("S1", "member", content))
		assert.Equal(t, "❌ You need the Administrator permission to use this command.", lastReply(t, rt).Content, content)
	}
	assert.False(t, b.Scheduler.Running())

	HandleMessage(b, selfID, message("S1", "member", "!help"))
	assert.Contains(t, lastReply(t, rt).Content, "World Boss timer commands")
}

func TestPermissionLookupFailure(t *testing.T) {
	b, rt, _ := newGuildBot(t)
	rt.FailPermissions(errors.New("gateway unavailable"))

	HandleMessage(b, selfID, message("S1", "admin", "!start"))

	assert.Contains(t, lastReply(t, rt).Content, "Could not check your permissions")
	assert.False(t, b.Scheduler.Running())
}

func TestStartStopReplies(t *testing.T) {
	b, rt, _ := newGuildBot(t)

	HandleMessage(b, selfID, message("S1", "admin", "!stop"))
	assert.Equal(t, "⛔ Timer isn't running.", lastReply(t, rt).Content)
	assert.False(t, b.Scheduler.Running())

	HandleMessage(b, selfID, message("S1", "admin", "!start"))
	assert.Equal(t, "✅ Timer started!", lastReply(t, rt).Content)
	assert.True(t, b.Scheduler.Running())

	HandleMessage(b, selfID, message("S1", "admin", "!start"))
	assert.Equal(t, "⏳ Timer is already running.", lastReply(t, rt).Content)
	assert.True(t, b.Scheduler.Running())

	HandleMessage(b, selfID, message("S1", "admin", "!stop"))
	assert.Equal(t, "⏹ Timer stopped.", lastReply(t, rt).Content)
	assert.False(t, b.Scheduler.Running())
}

func TestStatus(t *testing.T) {
	b, rt, store := newGuildBot(t)

	HandleMessage(b, selfID, message("S1", "admin", "!status"))
	reply := lastReply(t, rt).Content
	assert.Contains(t, reply, "State: stopped")
	assert.Contains(t, reply, "This server: not configured")
	assert.Contains(t, reply, "Servers configured: 0")

	require.NoError(t, store.Upsert(context.Background(), model.ServerTimerConfig{ServerID: "S1", ChannelID: "1001", RoleID: "2001"}))
	HandleMessage(b, selfID, message("S1", "admin", "!status"))
	reply = lastReply(t, rt).Content
	assert.Contains(t, reply, "This server: posting to <#1001> and pinging <@&2001>")
	assert.Contains(t, reply, "Servers configured: 1")
	assert.Contains(t, reply, "Interval: 1h0m0s")
}

func TestIgnoredMessages(t *testing.T) {
	b, rt, _ := newGuildBot(t)

	botAuthor := message("S1", "admin", "!start")
	botAuthor.Author.Bot = true
	HandleMessage(b, selfID, botAuthor)
	HandleMessage(b, selfID, message("S1", selfID, "!start"))
	HandleMessage(b, selfID, message("", "admin", "!start"))
	HandleMessage(b, selfID, message("S1", "admin", "start"))
	HandleMessage(b, selfID, message("S1", "admin", "!dance"))
	HandleMessage(b, selfID, &discordgo.Message{GuildID: "S1", Content: "!start"})

	assert.Empty(t, rt.Sent())
	assert.False(t, b.Scheduler.Running())
}

func TestStaticModeCommands(t *testing.T) {
	b, rt := newStaticBot(t)

	// static mode keeps the open commands of the single-server bot
	HandleMessage(b, selfID, message("S1", "member", "!set_timer <#1001> <@&2001>"))
	assert.Equal(t, "Per-server timers are disabled: this bot posts to a fixed channel.", lastReply(t, rt).Content)

	HandleMessage(b, selfID, message("S1", "member", "!status"))
	assert.Contains(t, lastReply(t, rt).Content, "Mode: static, posting to <#C9> and pinging <@&R9>")

	HandleMessage(b, selfID, message("S1", "member", "!start"))
	assert.Equal(t, "✅ Timer started!", lastReply(t, rt).Content)
	assert.True(t, b.Scheduler.Running())
}
