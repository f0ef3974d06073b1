package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/milk9111/rampage/ecs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/rampage/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records gameplay counters. It uses the global OTel meter provider,
// so everything is a no-op until the host installs one.
type Metrics struct {
	events   metric.Int64Counter
	kills    metric.Int64Counter
	damage   metric.Int64Counter
	tick     metric.Float64Histogram
	entities metric.Int64ObservableGauge

	live atomic.Int64
}

func New() (*Metrics, error) {
	m := meter()
	out := &Metrics{}

	var err error
	out.events, err = m.Int64Counter(
		"rampage.events",
		metric.WithDescription("Gameplay events emitted, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating events counter: %w", err)
	}

	out.kills, err = m.Int64Counter(
		"rampage.kills",
		metric.WithDescription("Entities killed, by label"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating kills counter: %w", err)
	}

	out.damage, err = m.Int64Counter(
		"rampage.damage_taken",
		metric.WithDescription("Hit points lost by the avatar or its vehicle"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating damage counter: %w", err)
	}

	out.tick, err = m.Float64Histogram(
		"rampage.tick.duration",
		metric.WithDescription("Wall time spent in one simulation tick"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating tick histogram: %w", err)
	}

	out.entities, err = m.Int64ObservableGauge(
		"rampage.entities",
		metric.WithDescription("Live entities in the world"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating entity gauge: %w", err)
	}
	_, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(out.entities, out.live.Load())
		return nil
	}, out.entities)
	if err != nil {
		return nil, fmt.Errorf("telemetry: registering entity callback: %w", err)
	}

	return out, nil
}

// Observe counts one outbound event.
func (m *Metrics) Observe(evt ecs.Event) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(evt.Kind))))
	switch evt.Kind {
	case ecs.EventKill:
		m.kills.Add(ctx, 1, metric.WithAttributes(attribute.String("label", evt.Label)))
	case ecs.EventDamageTaken:
		m.damage.Add(ctx, int64(evt.Value))
	}
}

// TickDone records a tick's duration and the live entity count.
func (m *Metrics) TickDone(elapsed time.Duration, entities int) {
	if m == nil {
		return
	}
	m.tick.Record(context.Background(), float64(elapsed.Microseconds())/1000)
	m.live.Store(int64(entities))
}
