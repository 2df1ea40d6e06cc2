package model

import "context"

// ServerTimerConfig is the reminder destination of one server.
type ServerTimerConfig struct {
	ServerID  string `db:"server_id"`
	ChannelID string `db:"channel_id"`
	RoleID    string `db:"role_id"`
}

// Label names the target in logs and alerts. Targets without a server, as in
// static mode, are named by their channel.
func (c ServerTimerConfig) Label() string {
	if c.ServerID == "" {
		return "channel " + c.ChannelID
	}
	return "server " + c.ServerID
}

// StaticTargets serves the single channel/role pair configured in static
// mode. ServerID is left empty since the pair is not bound to a server.
type StaticTargets struct {
	ChannelID string
	RoleID    string
}

func (t StaticTargets) ListTargets(ctx context.Context) ([]ServerTimerConfig, error) {
	return []ServerTimerConfig{{ChannelID: t.ChannelID, RoleID: t.RoleID}}, nil
}
