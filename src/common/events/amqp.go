package events

import (
	"context"
	"fmt"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/multierr"
)

type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPPublisher(queue string) (*AMQPPublisher, error) {
	conn, channel, err := utils.NewRabbitConnection()
	if err != nil {
		return nil, err
	}

	if err := DeclareQueue(channel, queue); err != nil {
		return nil, multierr.Append(err, conn.Close())
	}

	return &AMQPPublisher{conn: conn, channel: channel, queue: queue}, nil
}

func DeclareQueue(channel *amqp.Channel, name string) error {
	_, err := channel.QueueDeclare(
		name,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event types.LookupEvent) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   event.ID,
			Timestamp:   event.LookedUpAt,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	return multierr.Combine(p.channel.Close(), p.conn.Close())
}
