package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"worldboss-bot/model"
	"worldboss-bot/utils"
	"worldboss-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// CommandHandler handles one text command. args excludes the command name.
type CommandHandler func(m *discordgo.Message, args []string)

type Bot struct {
	Session         *discordgo.Session
	Runtime         model.Runtime
	Store           *database.TimerConfigStore
	Scheduler       *Scheduler
	CommandHandlers map[string]CommandHandler
	StartedAt       time.Time
	config          atomic.Value // *model.Config
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

// New creates the discordgo session and assembles the bot around it. The
// session is not opened until Run.
func New(cfg *model.Config, store *database.TimerConfigStore) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	dg.StateEnabled = true

	b, err := NewWithRuntime(cfg, NewSessionRuntime(dg), store)
	if err != nil {
		return nil, err
	}
	b.Session = dg
	return b, nil
}

// NewWithRuntime assembles a bot on any runtime. Guild mode needs a store;
// static mode ignores it.
func NewWithRuntime(cfg *model.Config, rt model.Runtime, store *database.TimerConfigStore) (*Bot, error) {
	var source model.TargetSource
	if cfg.Static() {
		source = model.StaticTargets{ChannelID: cfg.ChannelID, RoleID: cfg.RoleID}
	} else {
		if store == nil {
			return nil, errors.New("guild mode requires a timer store")
		}
		source = store
	}

	b := &Bot{
		Runtime:         rt,
		Store:           store,
		Scheduler:       NewScheduler(rt, source, cfg.Interval),
		CommandHandlers: make(map[string]CommandHandler),
		StartedAt:       time.Now(),
	}
	b.config.Store(cfg)
	b.Scheduler.OnReport = b.reportTick
	return b, nil
}

// HandleReady prepares storage and starts the timer unless it already runs.
// Ready fires again after reconnects, so both steps are idempotent.
func (b *Bot) HandleReady(ctx context.Context) {
	if b.Store != nil {
		if err := b.Store.EnsureSchema(ctx); err != nil {
			log.Error().Err(err).Msg("Could not prepare timer table")
		}
	}

	if err := b.Scheduler.Start(); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			log.Debug().Msg("Timer loop already running")
			return
		}
		log.Error().Err(err).Msg("Could not start timer loop")
	}
}

func (b *Bot) reportTick(report TickReport) {
	webhookURL := b.GetConfig().LogWebhookURL
	if webhookURL == "" || report.Err() == nil {
		return
	}

	var details strings.Builder
	fmt.Fprintf(&details, "%d sent, %d failed\n", report.Sent(), len(report.Failures()))
	if report.ListErr != nil {
		fmt.Fprintf(&details, "listing timers: %v\n", report.ListErr)
	}
	for _, d := range report.Failures() {
		target := d.Target.Label()
		if d.Target.ServerID != "" {
			target += ", channel " + d.Target.ChannelID
		}
		fmt.Fprintf(&details, "%s: %s\n", target, d.Outcome)
	}

	if err := utils.LogWarn(webhookURL, "Scheduler", "Tick", details.String()); err != nil {
		log.Error().Err(err).Msg("Failed to send tick alert")
	}
}

func (b *Bot) Close() {
	log.Info().Msg("Gracefully shutting down.")
	if err := b.Scheduler.Stop(); err != nil && !errors.Is(err, ErrNotRunning) {
		log.Error().Err(err).Msg("Error stopping timer loop")
	}
	if b.Session != nil {
		if err := b.Session.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing session")
		}
	}
	if b.Store != nil {
		if err := b.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing timer database")
		}
	}
}
