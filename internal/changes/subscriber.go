package changes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// Subscriber turns the redis pub/sub channel into a channel of events.
// Redis pub/sub drops messages while disconnected, so consumers must not rely on it as the
// only source of freshness.
type Subscriber struct {
	redisClient *redis.Client
	channel     string
	bufferSize  int
}

func NewSubscriber(redisClient *redis.Client, channel string) *Subscriber {
	return &Subscriber{
		redisClient: redisClient,
		channel:     channel,
		bufferSize:  100,
	}
}

// Subscribe returns once the subscription is confirmed. The events channel is closed when
// ctx is done.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan Event, error) {
	pubSub := s.redisClient.Subscribe(ctx, s.channel)
	if _, err := pubSub.Receive(ctx); err != nil {
		_ = pubSub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", s.channel, err)
	}

	events := make(chan Event, s.bufferSize)
	go func() {
		defer close(events)
		defer func() {
			if err := pubSub.Close(); err != nil {
				log.Errorf("changes subscriber, close pubsub: %s", err)
			}
		}()

		messages := pubSub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Debugln("changes subscriber context done")
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				event, err := Decode([]byte(msg.Payload))
				if err != nil {
					log.Errorf("changes subscriber, %s", err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func Decode(payload []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("decode event [%s]: %w", payload, err)
	}
	if !event.Type.IsValid() {
		return Event{}, fmt.Errorf("decode event: invalid type [%s]", event.Type)
	}
	return event, nil
}
