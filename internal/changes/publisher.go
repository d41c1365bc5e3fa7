package changes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

type Publisher struct {
	redisClient *redis.Client
	channel     string
}

func NewPublisher(redisClient *redis.Client, channel string) *Publisher {
	return &Publisher{
		redisClient: redisClient,
		channel:     channel,
	}
}

func (p *Publisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "changes.publish")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("type", event.Type.String()),
		attribute.String("challenge_id", event.ChallengeID.String()),
	)

	if !event.Type.IsValid() {
		return fmt.Errorf("invalid event type: %s", event.Type)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, p.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}
