package listener

import (
	"context"
	"sync"

	"github.com/go-stomp/stomp/v3"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Handler func(ctx context.Context, body []byte) error

type Listener struct {
	ctx     context.Context
	wg      *sync.WaitGroup
	handler Handler
	onError func(error)
}

func NewListener(ctx context.Context, wg *sync.WaitGroup, handler Handler, onError func(error)) *Listener {
	return &Listener{
		ctx:     ctx,
		wg:      wg,
		handler: handler,
		onError: onError,
	}
}

// Deliver runs the handler for one message body.
func (l *Listener) Deliver(body []byte) {
	if err := l.handler(l.ctx, body); err != nil && l.onError != nil {
		l.onError(err)
	}
}

// ListenStomp consumes a STOMP destination until the context ends.
func (l *Listener) ListenStomp(conn *stomp.Conn, destination string) error {
	defer l.wg.Done()

	sub, err := conn.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-l.ctx.Done():
			return nil
		case msg, ok := <-sub.C:
			if !ok {
				return nil
			}
			if msg.Err != nil {
				if l.onError != nil {
					l.onError(msg.Err)
				}
				continue
			}

			l.Deliver(msg.Body)
		}
	}
}

// ListenAMQP consumes a queue with automatic acks until the context ends.
func (l *Listener) ListenAMQP(channel *amqp.Channel, queue string) error {
	defer l.wg.Done()

	msgs, err := channel.ConsumeWithContext(l.ctx, queue, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	return l.drain(msgs)
}

func (l *Listener) drain(msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-l.ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			l.Deliver(msg.Body)
		}
	}
}
