package events

import (
	"context"
	"fmt"

	"github.com/go-stomp/stomp/v3"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
)

type StompPublisher struct {
	conn        *stomp.Conn
	destination string
}

func NewStompPublisher(destination string) (*StompPublisher, error) {
	conn, err := utils.NewStompConnection()
	if err != nil {
		return nil, err
	}
	return &StompPublisher{conn: conn, destination: destination}, nil
}

func (p *StompPublisher) Publish(ctx context.Context, event types.LookupEvent) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}

	err = p.conn.Send(p.destination, "application/json", body,
		stomp.SendOpt.Header("message-id", event.ID),
		stomp.SendOpt.Header("persistent", "true"),
	)
	if err != nil {
		return fmt.Errorf("send to %s: %w", p.destination, err)
	}
	return nil
}

func (p *StompPublisher) Close() error {
	return p.conn.Disconnect()
}
