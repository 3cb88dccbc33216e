// Package handler consumes tracker commands from RabbitMQ.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/jkowalczyk/price-tracker/internal/platform/rabbitmq"
	"github.com/jkowalczyk/price-tracker/pkg/v1/commander"
	"github.com/rs/zerolog"
)

// Tracker runs tracking operations.
type Tracker interface {
	RunCycle(ctx context.Context) (*models.CycleReport, error)
	TrackProduct(ctx context.Context, url string) (*models.TrackedProduct, error)
	Subscribe(ctx context.Context, url string, email string) error
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq     *rabbitmq.RabbitMQ
	tracker Tracker
	logger  *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, tracker Tracker, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:     rmq,
		tracker: tracker,
		logger:  logger,
	}
}

// Start starts consuming and handling tracker commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, func(ctx context.Context, message []byte) error {
		cmd, err := decodeMessage(message)
		if err != nil {
			return err
		}

		return h.handleCommand(ctx, cmd)
	})
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func (h *RMQHandler) handleCommand(ctx context.Context, cmd *commander.Command) error {
	switch cmd.Name {
	case commander.CommandRunCycle:
		return h.handleRunCycle(ctx)
	case commander.CommandTrack:
		return h.handleTrack(ctx, cmd.URL)
	case commander.CommandSubscribe:
		return h.handleSubscribe(ctx, cmd.URL, cmd.Email)
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
}

func (h *RMQHandler) handleRunCycle(ctx context.Context) error {
	h.logger.Debug().Msg("tracking cycle started")

	report, err := h.tracker.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("tracking cycle failed: %w", err)
	}

	h.logger.Info().
		Int32("updated", report.Updated).
		Int32("skipped", report.Skipped).
		Int32("failed", report.Failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("tracking cycle finished")

	return nil
}

func (h *RMQHandler) handleTrack(ctx context.Context, url string) error {
	h.logger.Debug().
		Str("url", url).
		Msg("tracking product")

	product, err := h.tracker.TrackProduct(ctx, url)
	if err != nil {
		return fmt.Errorf("can't track product: %w", err)
	}

	h.logger.Info().
		Str("url", product.URL).
		Str("title", product.Title).
		Msg("product tracked")

	return nil
}

func (h *RMQHandler) handleSubscribe(ctx context.Context, url string, email string) error {
	h.logger.Debug().
		Str("url", url).
		Msg("subscribing to product")

	if err := h.tracker.Subscribe(ctx, url, email); err != nil {
		return fmt.Errorf("can't subscribe to product: %w", err)
	}

	return nil
}

func decodeMessage(msg []byte) (*commander.Command, error) {
	var cmd commander.Command
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode tracker command: %w", err)
	}

	return &cmd, err
}
