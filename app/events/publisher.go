package events

import (
	"context"

	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/logger"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/metrics"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/workerpool"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ws"
)

// Publisher delivers one event to one transport. Delivery is best-effort;
// a failing publisher never propagates into the request that emitted the
// event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Name() string
}

// Dispatch fans a batch of post-commit events out to pub. Failures are
// logged and counted, never returned.
func Dispatch(ctx context.Context, pub Publisher, evts []Event) {
	if pub == nil {
		return
	}
	for _, e := range evts {
		if err := pub.Publish(ctx, e); err != nil {
			logger.WithCtx(ctx).Warn("events: publish failed",
				"driver", pub.Name(), "event", e.Type, "error", err)
		}
	}
}

// WSPublisher broadcasts events to every connected WebSocket client as
// {"event": ..., "data": ...}.
type WSPublisher struct {
	hub *ws.Hub
}

func NewWSPublisher(hub *ws.Hub) *WSPublisher {
	return &WSPublisher{hub: hub}
}

func (p *WSPublisher) Name() string { return "ws" }

func (p *WSPublisher) Publish(_ context.Context, e Event) error {
	if err := p.hub.BroadcastJSON(e); err != nil {
		metrics.EventsPublished.WithLabelValues(p.Name(), "error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(p.Name(), "ok").Inc()
	return nil
}

// Multi fans events out to several publishers through a bounded worker
// pool so a slow broker never stalls request handling. When the pool is
// saturated the event is dropped for that driver.
type Multi struct {
	publishers []Publisher
	pool       *workerpool.Pool
}

func NewMulti(pool *workerpool.Pool, publishers ...Publisher) *Multi {
	return &Multi{publishers: publishers, pool: pool}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Publish(ctx context.Context, e Event) error {
	for _, pub := range m.publishers {
		pub := pub
		err := m.pool.Submit(func() {
			if err := pub.Publish(context.WithoutCancel(ctx), e); err != nil {
				logger.Warn("events: publish failed",
					"driver", pub.Name(), "event", e.Type, "error", err)
			}
		})
		if err != nil {
			metrics.EventsPublished.WithLabelValues(pub.Name(), "dropped").Inc()
			logger.Warn("events: dispatch dropped",
				"driver", pub.Name(), "event", e.Type, "error", err)
		}
	}
	return nil
}

// Noop discards every event. Used in tests and CLI commands.
type Noop struct{}

func (Noop) Name() string                          { return "noop" }
func (Noop) Publish(context.Context, Event) error { return nil }
