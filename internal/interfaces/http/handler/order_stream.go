package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/infrastructure/config"
	"github.com/tableside/backend/internal/infrastructure/event"
)

// StreamClient represents one connected kitchen display or staff screen
type StreamClient struct {
	ID           string
	RestaurantID string
	Chan         chan StreamMessage
	Done         chan struct{}
}

// StreamMessage is a single SSE frame
type StreamMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// OrderStreamHandler streams order events to staff clients over SSE.
// It subscribes to the event bus and fans frames out per restaurant:
// a client only ever sees events for the restaurant in its token.
type OrderStreamHandler struct {
	BaseHandler
	subscriber shared.EventSubscriber
	logger     *zap.Logger
	clients    sync.Map // map[string]*StreamClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	bufferSize int
	started    bool
	startMu    sync.Mutex
}

// NewOrderStreamHandler creates a new OrderStreamHandler
func NewOrderStreamHandler(subscriber shared.EventSubscriber, streamCfg config.StreamConfig, logger *zap.Logger) *OrderStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &OrderStreamHandler{
		subscriber: subscriber,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  streamCfg.HeartbeatInterval,
		bufferSize: streamCfg.ClientBufferSize,
	}
}

// EventTypes implements shared.EventHandler
func (h *OrderStreamHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderCreated, ordering.EventTypeOrderStatusChanged}
}

// Handle implements shared.EventHandler. It serializes the event once
// and delivers it to every client of the event's restaurant.
func (h *OrderStreamHandler) Handle(_ context.Context, domainEvent shared.DomainEvent) error {
	data, err := h.encodeEvent(domainEvent)
	if err != nil {
		h.logger.Error("failed to encode order event",
			zap.String("event_type", domainEvent.EventType()), zap.Error(err))
		return err
	}

	msg := StreamMessage{
		Event: domainEvent.EventType(),
		Data:  string(data),
		ID:    domainEvent.EventID().String(),
	}

	restaurantID := domainEvent.RestaurantID().String()
	h.clients.Range(func(_, value any) bool {
		client, ok := value.(*StreamClient)
		if !ok || client.RestaurantID != restaurantID {
			return true
		}

		select {
		case client.Chan <- msg:
		default:
			// Slow consumer; drop rather than stall the bus
			h.logger.Warn("stream client channel full, dropping event",
				zap.String("client_id", client.ID),
				zap.String("event_type", msg.Event))
		}
		return true
	})

	return nil
}

// encodeEvent produces the JSON body of an SSE frame. Events relayed
// from other replicas arrive pre-serialized.
func (h *OrderStreamHandler) encodeEvent(domainEvent shared.DomainEvent) ([]byte, error) {
	if relayed, ok := domainEvent.(*event.RelayedEvent); ok {
		return relayed.Payload, nil
	}
	return json.Marshal(domainEvent)
}

// Start subscribes to the event bus and begins heartbeats
func (h *OrderStreamHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("order stream handler already started")
	}

	h.subscriber.Subscribe(h, h.EventTypes()...)
	go h.sendHeartbeats()

	h.started = true
	h.logger.Info("order stream handler started")
	return nil
}

// Stop disconnects all clients
func (h *OrderStreamHandler) Stop() {
	h.cancel()

	h.clients.Range(func(_, value any) bool {
		if client, ok := value.(*StreamClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("order stream handler stopped")
}

// sendHeartbeats keeps idle connections alive through proxies
func (h *OrderStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			msg := StreamMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			}
			h.clients.Range(func(_, value any) bool {
				if client, ok := value.(*StreamClient); ok {
					select {
					case client.Chan <- msg:
					default:
					}
				}
				return true
			})
		}
	}
}

// Stream handles GET /api/v1/orders/stream
func (h *OrderStreamHandler) Stream(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	client := &StreamClient{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID.String(),
		Chan:         make(chan StreamMessage, h.bufferSize),
		Done:         make(chan struct{}),
	}

	h.clients.Store(client.ID, client)
	// The channel is never closed: Handle and sendHeartbeats may still
	// hold a reference from a concurrent Range. Deleting the client is
	// enough, unreferenced channels are collected.
	defer h.clients.Delete(client.ID)

	h.logger.Info("stream client connected",
		zap.String("client_id", client.ID),
		zap.String("restaurant_id", client.RestaurantID))

	h.writeFrame(c.Writer, StreamMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("stream client disconnected",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			return
		case <-h.ctx.Done():
			return
		case msg := <-client.Chan:
			h.writeFrame(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// writeFrame writes one SSE frame in wire format
func (h *OrderStreamHandler) writeFrame(w io.Writer, msg StreamMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// ClientCount reports connected clients, used by readiness logging
func (h *OrderStreamHandler) ClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

var _ shared.EventHandler = (*OrderStreamHandler)(nil)
