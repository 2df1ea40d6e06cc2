package main

import (
	"worldboss-bot/bot"
	"worldboss-bot/config"
	"worldboss-bot/handlers"
	"worldboss-bot/utils"
	"worldboss-bot/utils/database"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := utils.SetupLogger(""); err != nil {
		log.Fatal().Err(err).Msg("Error setting up logger")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	if err := utils.SetupLogger(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Error setting up logger")
	}

	var store *database.TimerConfigStore
	if !cfg.Static() {
		store, err = database.OpenTimerConfigStore(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
	}

	b, err := bot.New(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating bot")
	}

	handlers.Register(b)

	if err := b.Run(); err != nil {
		b.Close()
		log.Fatal().Err(err).Msg("Error running bot")
	}
	b.Close()
}
