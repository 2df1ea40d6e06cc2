package bot

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"worldboss-bot/utils"

	"github.com/rs/zerolog/log"
)

// Run opens the session and blocks until SIGINT or SIGTERM.
func (b *Bot) Run() error {
	if b.Session == nil {
		return errors.New("bot has no discord session")
	}
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	log.Info().Str("mode", string(b.GetConfig().Mode)).Msg("Bot is now running. Press CTRL-C to exit.")
	if err := utils.LogInfo(b.GetConfig().LogWebhookURL, "System", "Startup", "Bot has started successfully."); err != nil {
		log.Error().Err(err).Msg("Failed to send startup log")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
