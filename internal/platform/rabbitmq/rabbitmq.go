// Package rabbitmq wraps amqp consuming and publishing.
package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes and publishes amqp messages.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ returns new RabbitMQ publishing to exchange.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	return &RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish publishes message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		},
	)
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

// Done returns channel which will be closed when consuming is finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for delivery := range deliveries {
		if err := handler(ctx, delivery.Body); err != nil {
			if pushError(ctx, consumingErrors, err) != nil {
				return
			}
			if err := delivery.Nack(false, false); err != nil {
				if pushError(ctx, consumingErrors, fmt.Errorf("can't nack message: %w", err)) != nil {
					return
				}
			}
			continue
		}

		if err := delivery.Ack(false); err != nil {
			if pushError(ctx, consumingErrors, fmt.Errorf("can't ack message: %w", err)) != nil {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func pushError(ctx context.Context, errChan chan error, err error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
		return nil
	}
}
