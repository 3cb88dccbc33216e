// Package commander is the producer API for sending tracker commands.
package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Command names understood by the tracker service.
const (
	CommandRunCycle  = "run_cycle"
	CommandTrack     = "track_product"
	CommandSubscribe = "subscribe"
)

// Command is a tracker command message.
type Command struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// TrackerCommander sends tracker commands.
type TrackerCommander struct {
	sender Sender
}

// NewTrackerCommander returns new TrackerCommander using provided sender for sending messages.
func NewTrackerCommander(sender Sender) TrackerCommander {
	return TrackerCommander{
		sender: sender,
	}
}

// SendRunCycleCommand sends command starting one tracking cycle.
func (c TrackerCommander) SendRunCycleCommand(ctx context.Context) error {
	return c.send(ctx, Command{Name: CommandRunCycle})
}

// SendTrackCommand sends command starting tracking of product at url.
func (c TrackerCommander) SendTrackCommand(ctx context.Context, url string) error {
	return c.send(ctx, Command{Name: CommandTrack, URL: url})
}

// SendSubscribeCommand sends command subscribing email to the product at url.
func (c TrackerCommander) SendSubscribeCommand(ctx context.Context, url string, email string) error {
	return c.send(ctx, Command{Name: CommandSubscribe, URL: url, Email: email})
}

func (c TrackerCommander) send(ctx context.Context, cmd Command) error {
	msg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Name, err)
	}

	return c.sender.Send(ctx, msg)
}
