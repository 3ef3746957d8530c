package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/sse"
	"github.com/sommystore/storefront/pkg/ws"
)

const heartbeatInterval = 25 * time.Second

// EventsController bridges the in-process change notifier to browser
// surfaces: an SSE stream per client and a shared WebSocket hub. Subscribers
// attach on connect and detach when the client goes away, mirroring a
// surface that listens while mounted.
type EventsController struct {
	bus     *bus.Bus
	hub     *ws.Hub
	cart    *services.CartService
	session *services.SessionService
}

func NewEventsController(b *bus.Bus, hub *ws.Hub, cart *services.CartService, session *services.SessionService) *EventsController {
	return &EventsController{bus: b, hub: hub, cart: cart, session: session}
}

// topicEvent is the wire form of one notification, for SSE and WS alike.
type topicEvent struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// Stream serves one SSE connection. The client receives a snapshot of each
// topic's current state on connect, then every subsequent change.
func (c *EventsController) Stream(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	// Snapshot first so a client never renders from nothing.
	stream.Send(bus.TopicCart, c.cart.Items())            //nolint:errcheck
	stream.Send(bus.TopicUser, c.session.CurrentUser())   //nolint:errcheck
	stream.Send(bus.TopicAdmin, c.session.CurrentAdmin()) //nolint:errcheck

	events := make(chan topicEvent, 16)
	unsubscribe := c.subscribeAll(events)
	defer unsubscribe()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keepalive")
			if stream.IsClosed() {
				return
			}
		case ev := <-events:
			if err := stream.Send(ev.Topic, ev.Payload); err != nil {
				logger.Warn("events: sse send failed", "error", err)
				return
			}
			if stream.IsClosed() {
				return
			}
		}
	}
}

// Socket upgrades to a WebSocket fed by the shared hub.
func (c *EventsController) Socket(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub)
}

// BridgeToHub forwards every notification to the WebSocket hub for the
// lifetime of the process. Called once at server start.
func (c *EventsController) BridgeToHub() {
	for _, topic := range []string{bus.TopicCart, bus.TopicUser, bus.TopicAdmin} {
		topic := topic
		c.bus.Subscribe(topic, func(payload interface{}) {
			raw, err := json.Marshal(topicEvent{Topic: topic, Payload: payload})
			if err != nil {
				logger.Warn("events: marshal for hub", "topic", topic, "error", err)
				return
			}
			c.hub.Broadcast <- raw
		})
	}
}

// subscribeAll fans all topics into one channel and returns a single
// detach function. A slow client drops notifications rather than blocking
// the publisher.
func (c *EventsController) subscribeAll(events chan<- topicEvent) func() {
	topics := []string{bus.TopicCart, bus.TopicUser, bus.TopicAdmin}
	cancels := make([]func(), 0, len(topics))

	for _, topic := range topics {
		topic := topic
		cancels = append(cancels, c.bus.Subscribe(topic, func(payload interface{}) {
			select {
			case events <- topicEvent{Topic: topic, Payload: payload}:
			default:
			}
		}))
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
