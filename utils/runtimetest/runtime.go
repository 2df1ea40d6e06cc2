// Package runtimetest provides an in-memory model.Runtime for tests.
package runtimetest

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// SentMessage records one message handed to SendMessage.
type SentMessage struct {
	ChannelID string
	Data      *discordgo.MessageSend
}

// Runtime is a fake Discord runtime. Unknown channels fail to resolve.
type Runtime struct {
	mu          sync.Mutex
	channels    map[string]*discordgo.Channel
	resolveErrs map[string]error
	sendErrs    map[string]error
	permissions map[string]int64
	permErr     error
	sent        []SentMessage
}

func New() *Runtime {
	return &Runtime{
		channels:    make(map[string]*discordgo.Channel),
		resolveErrs: make(map[string]error),
		sendErrs:    make(map[string]error),
		permissions: make(map[string]int64),
	}
}

// AddChannel makes a channel resolvable.
func (r *Runtime) AddChannel(channelID, guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[channelID] = &discordgo.Channel{ID: channelID, GuildID: guildID, Name: "channel-" + channelID}
}

// FailResolve makes resolving the channel return err.
func (r *Runtime) FailResolve(channelID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveErrs[channelID] = err
}

// FailSend makes sending to the channel return err.
func (r *Runtime) FailSend(channelID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendErrs[channelID] = err
}

// SetPermissions sets the permission bits returned for the user.
func (r *Runtime) SetPermissions(userID string, perms int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permissions[userID] = perms
}

// FailPermissions makes every permission lookup return err.
func (r *Runtime) FailPermissions(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permErr = err
}

func (r *Runtime) ResolveChannel(channelID string) (*discordgo.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.resolveErrs[channelID]; ok {
		return nil, err
	}
	ch, ok := r.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return ch, nil
}

func (r *Runtime) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.sendErrs[channelID]; ok {
		return nil, err
	}
	r.sent = append(r.sent, SentMessage{ChannelID: channelID, Data: data})
	return &discordgo.Message{
		ID:        strconv.Itoa(len(r.sent)),
		ChannelID: channelID,
		Content:   data.Content,
	}, nil
}

func (r *Runtime) MemberPermissions(userID, channelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.permErr != nil {
		return 0, r.permErr
	}
	return r.permissions[userID], nil
}

// Sent returns a copy of every message sent so far.
func (r *Runtime) Sent() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentMessage(nil), r.sent...)
}

// SentTo returns the messages sent to one channel.
func (r *Runtime) SentTo(channelID string) []SentMessage {
	var out []SentMessage
	for _, msg := range r.Sent() {
		if msg.ChannelID == channelID {
			out = append(out, msg)
		}
	}
	return out
}
