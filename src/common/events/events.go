package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

const (
	LookupQueue       = "lookups"
	LookupDestination = "/queue/" + LookupQueue

	BrokerAMQP  = "amqp"
	BrokerStomp = "stomp"
)

type Publisher interface {
	Publish(ctx context.Context, event types.LookupEvent) error
	Close() error
}

func NewLookupEvent(info types.TrainInfo, stops []types.RouteStop, now time.Time) types.LookupEvent {
	return types.LookupEvent{
		ID:         uuid.NewString(),
		Train:      info,
		Stops:      stops,
		LookedUpAt: now.UTC(),
	}
}

func Encode(event types.LookupEvent) ([]byte, error) {
	return json.Marshal(event)
}

func Decode(body []byte) (types.LookupEvent, error) {
	var event types.LookupEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return types.LookupEvent{}, fmt.Errorf("decode lookup event: %w", err)
	}
	if _, err := uuid.Parse(event.ID); err != nil {
		return types.LookupEvent{}, fmt.Errorf("lookup event id %q: %w", event.ID, err)
	}
	if event.Train.TrainNo == "" {
		return types.LookupEvent{}, fmt.Errorf("lookup event %s has no train number", event.ID)
	}
	return event, nil
}

// NewPublisher connects to the configured broker. An empty broker disables publishing.
func NewPublisher(broker string) (Publisher, error) {
	switch broker {
	case "":
		return NoopPublisher{}, nil
	case BrokerAMQP:
		return NewAMQPPublisher(LookupQueue)
	case BrokerStomp:
		return NewStompPublisher(LookupDestination)
	default:
		return nil, fmt.Errorf("unknown events broker %q", broker)
	}
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event types.LookupEvent) error { return nil }
func (NoopPublisher) Close() error                                               { return nil }
