package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"worldboss-bot/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrInvalidTimerConfig is returned when a timer config misses one of its IDs.
var ErrInvalidTimerConfig = errors.New("timer config requires server, channel and role ids")

const timersSchema = `
    CREATE TABLE IF NOT EXISTS timers (
        server_id TEXT NOT NULL PRIMARY KEY,
        channel_id TEXT NOT NULL,
        role_id TEXT NOT NULL
    );`

// TimerConfigStore persists one reminder destination per server.
type TimerConfigStore struct {
	db *sqlx.DB
}

// OpenTimerConfigStore connects to the SQLite file at dbPath, creating its
// directory if needed. The schema is not created here, see EnsureSchema.
func OpenTimerConfigStore(dbPath string) (*TimerConfigStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to timer database: %w", err)
	}
	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)

	return NewTimerConfigStore(db), nil
}

// NewTimerConfigStore wraps an already opened database.
func NewTimerConfigStore(db *sqlx.DB) *TimerConfigStore {
	return &TimerConfigStore{db: db}
}

// EnsureSchema creates the timers table if it does not exist yet.
func (s *TimerConfigStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, timersSchema); err != nil {
		return fmt.Errorf("failed to create timers table: %w", err)
	}
	return nil
}

// Upsert inserts the config or replaces channel and role of an existing row.
func (s *TimerConfigStore) Upsert(ctx context.Context, cfg model.ServerTimerConfig) error {
	if cfg.ServerID == "" || cfg.ChannelID == "" || cfg.RoleID == "" {
		return ErrInvalidTimerConfig
	}

	query := `INSERT INTO timers (server_id, channel_id, role_id)
              VALUES (:server_id, :channel_id, :role_id)
              ON CONFLICT(server_id) DO UPDATE SET
                  channel_id = excluded.channel_id,
                  role_id = excluded.role_id`

	if _, err := s.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("failed to save timer for server %s: %w", cfg.ServerID, err)
	}
	return nil
}

// Get returns the config of a server. The boolean is false when the server
// has no row.
func (s *TimerConfigStore) Get(ctx context.Context, serverID string) (model.ServerTimerConfig, bool, error) {
	var cfg model.ServerTimerConfig
	err := s.db.GetContext(ctx, &cfg, "SELECT server_id, channel_id, role_id FROM timers WHERE server_id = ?", serverID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ServerTimerConfig{}, false, nil
	}
	if err != nil {
		return model.ServerTimerConfig{}, false, fmt.Errorf("failed to get timer for server %s: %w", serverID, err)
	}
	return cfg, true, nil
}

// ListAll returns every stored config ordered by server id.
func (s *TimerConfigStore) ListAll(ctx context.Context) ([]model.ServerTimerConfig, error) {
	var configs []model.ServerTimerConfig
	err := s.db.SelectContext(ctx, &configs, "SELECT server_id, channel_id, role_id FROM timers ORDER BY server_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	return configs, nil
}

// ListTargets lets the store feed the scheduler.
func (s *TimerConfigStore) ListTargets(ctx context.Context) ([]model.ServerTimerConfig, error) {
	return s.ListAll(ctx)
}

// Count returns the number of configured servers.
func (s *TimerConfigStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM timers"); err != nil {
		return 0, fmt.Errorf("failed to count timers: %w", err)
	}
	return count, nil
}

func (s *TimerConfigStore) Close() error {
	return s.db.Close()
}
