package config

import (
	"errors"
	"fmt"
	"strings"

	"worldboss-bot/model"
	"worldboss-bot/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrMissingToken        = errors.New("DISCORD_TOKEN environment variable not set")
	ErrMissingStaticTarget = errors.New("static mode requires CHANNEL_ID and WORLD_BOSS_ROLE_ID")
)

// envBindings maps config keys to the environment variables read for them,
// in order of precedence.
var envBindings = map[string][]string{
	"discord_token":   {"DISCORD_TOKEN", "BOT_TOKEN"},
	"mode":            {"MODE"},
	"channel_id":      {"CHANNEL_ID"},
	"role_id":         {"WORLD_BOSS_ROLE_ID", "ROLE_ID"},
	"db_path":         {"DB_PATH"},
	"command_prefix":  {"COMMAND_PREFIX"},
	"interval":        {"INTERVAL"},
	"log_level":       {"LOG_LEVEL"},
	"log_webhook_url": {"LOG_WEBHOOK_URL"},
}

// Load loads the configuration from .env, an optional config.yaml in the
// working directory or data/, and the environment.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, relying on environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("data")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	return FromViper(v)
}

// FromViper builds the configuration from v after applying defaults and
// environment bindings. Environment variables win over config file values.
func FromViper(v *viper.Viper) (*model.Config, error) {
	v.SetDefault("mode", string(model.ModeGuild))
	v.SetDefault("db_path", "data/worldboss.db")
	v.SetDefault("command_prefix", "!")
	v.SetDefault("interval", "2h")
	v.SetDefault("log_level", "info")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	token := v.GetString("discord_token")
	if token == "" {
		return nil, ErrMissingToken
	}

	mode := model.Mode(strings.ToLower(v.GetString("mode")))
	if mode != model.ModeGuild && mode != model.ModeStatic {
		return nil, fmt.Errorf("unknown mode %q, expected %q or %q", mode, model.ModeGuild, model.ModeStatic)
	}

	interval, err := utils.ParseDuration(v.GetString("interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid interval: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}

	cfg := &model.Config{
		BotToken:      token,
		Mode:          mode,
		ChannelID:     v.GetString("channel_id"),
		RoleID:        v.GetString("role_id"),
		DBPath:        v.GetString("db_path"),
		CommandPrefix: v.GetString("command_prefix"),
		Interval:      interval,
		LogLevel:      v.GetString("log_level"),
		LogWebhookURL: v.GetString("log_webhook_url"),
	}

	if cfg.Static() && (cfg.ChannelID == "" || cfg.RoleID == "") {
		return nil, ErrMissingStaticTarget
	}
	if !cfg.Static() && (cfg.ChannelID != "" || cfg.RoleID != "") {
		log.Warn().Msg("CHANNEL_ID and WORLD_BOSS_ROLE_ID are ignored in guild mode, use set_timer per server")
	}

	return cfg, nil
}
