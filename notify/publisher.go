// Package notify provides the best-effort notification sink used by the
// result-recording path. The persisted write is the source of truth; a sink
// failure must never fail the request that triggered it.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/cricboard/league-system/live"
)

// Publisher announces an update on a topic keyed by match identifier.
type Publisher interface {
	Publish(topic string, payload interface{}) error
}

// HubPublisher delivers updates to websocket subscribers of the match room.
type HubPublisher struct {
	hub *live.Hub
}

func NewHubPublisher(hub *live.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(topic string, payload interface{}) error {
	p.hub.BroadcastToRoom(topic, live.Message{
		Type:    "MATCH_UPDATED",
		Payload: payload,
		MatchID: topic,
	})
	return nil
}

// NATSPublisher mirrors updates onto a NATS subject for external consumers.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: subjectPrefix}
}

func (p *NATSPublisher) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	subject := p.prefix + "." + topic
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Fanout sends to every configured sink, logging failures instead of
// returning them.
type Fanout struct {
	sinks  []Publisher
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, sinks ...Publisher) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

func (f *Fanout) Publish(topic string, payload interface{}) error {
	for _, sink := range f.sinks {
		if err := sink.Publish(topic, payload); err != nil {
			f.logger.Warn("notification sink failed",
				slog.String("topic", topic), slog.Any("error", err))
		}
	}
	return nil
}
