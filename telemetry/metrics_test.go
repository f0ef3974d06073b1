package telemetry

import (
	"testing"
	"time"

	"github.com/milk9111/rampage/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsNoopProvider(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.Observe(ecs.Event{Kind: ecs.EventKill, Label: "pedestrian"})
		m.Observe(ecs.Event{Kind: ecs.EventDamageTaken, Value: 5})
		m.TickDone(2*time.Millisecond, 12)
	})
	assert.Equal(t, int64(12), m.live.Load())
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(ecs.Event{Kind: ecs.EventKill})
		m.TickDone(time.Millisecond, 1)
	})
}
