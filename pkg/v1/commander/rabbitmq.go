package commander

import "context"

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher publishes RabbitMQ messages to a routing key.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// RabbitMQSender sends tracker command messages to the commands routing key.
type RabbitMQSender struct {
	publisher     RabbitMQPublisher
	cmdRoutingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing messages with publisher to cmdRoutingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, cmdRoutingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:     publisher,
		cmdRoutingKey: cmdRoutingKey,
	}
}

// Send publishes one command message to the commands routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	return s.publisher.Publish(ctx, s.cmdRoutingKey, msg)
}
