package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/domain/shared"
)

// relayChannel is the Redis pub/sub channel all replicas share.
const relayChannel = "tableside:events"

// envelope is the wire form of a relayed domain event
type envelope struct {
	Origin        string          `json:"origin"`
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RestaurantID  uuid.UUID       `json:"restaurant_id"`
	Payload       json.RawMessage `json:"payload"`
}

// RelayedEvent is a domain event received from another replica.
// The concrete event type is not reconstructed, subscribers that need
// event-specific fields read them from Payload.
type RelayedEvent struct {
	id            uuid.UUID
	eventType     string
	occurredAt    time.Time
	aggregateID   uuid.UUID
	aggregateType string
	restaurantID  uuid.UUID
	Payload       json.RawMessage
}

// NewRelayedEvent builds a relayed event carrying a pre-serialized payload
func NewRelayedEvent(eventID uuid.UUID, eventType string, occurredAt time.Time, aggregateID uuid.UUID, aggregateType string, restaurantID uuid.UUID, payload json.RawMessage) *RelayedEvent {
	return &RelayedEvent{
		id:            eventID,
		eventType:     eventType,
		occurredAt:    occurredAt,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		restaurantID:  restaurantID,
		Payload:       payload,
	}
}

func (e *RelayedEvent) EventID() uuid.UUID      { return e.id }
func (e *RelayedEvent) EventType() string       { return e.eventType }
func (e *RelayedEvent) OccurredAt() time.Time   { return e.occurredAt }
func (e *RelayedEvent) AggregateID() uuid.UUID  { return e.aggregateID }
func (e *RelayedEvent) AggregateType() string   { return e.aggregateType }
func (e *RelayedEvent) RestaurantID() uuid.UUID { return e.restaurantID }

// RedisEventRelay fans events out across replicas through Redis pub/sub.
// Local handlers always receive events directly; the relay re-delivers
// events published by other instances so every replica's SSE clients see
// the full stream.
type RedisEventRelay struct {
	client   *redis.Client
	local    shared.EventBus
	logger   *zap.Logger
	instance string
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRedisEventRelay creates a relay wrapping the given local bus
func NewRedisEventRelay(client *redis.Client, local shared.EventBus, logger *zap.Logger) *RedisEventRelay {
	return &RedisEventRelay{
		client:   client,
		local:    local,
		logger:   logger,
		instance: uuid.NewString(),
	}
}

// Publish delivers events to local handlers and broadcasts them to peers
func (r *RedisEventRelay) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if err := r.local.Publish(ctx, events...); err != nil {
		return err
	}

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			r.logger.Warn("failed to serialize event for relay",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
			continue
		}

		env := envelope{
			Origin:        r.instance,
			EventID:       event.EventID(),
			EventType:     event.EventType(),
			OccurredAt:    event.OccurredAt(),
			AggregateID:   event.AggregateID(),
			AggregateType: event.AggregateType(),
			RestaurantID:  event.RestaurantID(),
			Payload:       payload,
		}

		data, err := json.Marshal(env)
		if err != nil {
			continue
		}

		if err := r.client.Publish(ctx, relayChannel, data).Err(); err != nil {
			r.logger.Warn("failed to relay event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}

	return nil
}

// Subscribe registers a handler on the local bus
func (r *RedisEventRelay) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	r.local.Subscribe(handler, eventTypes...)
}

// Unsubscribe removes a handler from the local bus
func (r *RedisEventRelay) Unsubscribe(handler shared.EventHandler) {
	r.local.Unsubscribe(handler)
}

// Start begins consuming peer events from Redis
func (r *RedisEventRelay) Start(ctx context.Context) error {
	if err := r.local.Start(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	pubsub := r.client.Subscribe(runCtx, relayChannel)

	go func() {
		defer close(r.done)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-runCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.deliver(runCtx, msg.Payload)
			}
		}
	}()

	r.logger.Info("redis event relay started", zap.String("channel", relayChannel))
	return nil
}

// Stop shuts down the relay and the local bus
func (r *RedisEventRelay) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
		select {
		case <-r.done:
		case <-ctx.Done():
		}
	}
	return r.local.Stop(ctx)
}

func (r *RedisEventRelay) deliver(ctx context.Context, raw string) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		r.logger.Warn("failed to decode relayed event", zap.Error(err))
		return
	}

	// Events from this instance already reached local handlers
	if env.Origin == r.instance {
		return
	}

	event := NewRelayedEvent(env.EventID, env.EventType, env.OccurredAt,
		env.AggregateID, env.AggregateType, env.RestaurantID, env.Payload)

	if err := r.local.Publish(ctx, event); err != nil {
		r.logger.Warn("failed to deliver relayed event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

var _ shared.EventBus = (*RedisEventRelay)(nil)
