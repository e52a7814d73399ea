package metrics_test

import (
	"testing"

	"github.com/marmos91/supercore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestCollectorQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.SetQueueDepth(3)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *metrics.Collector
	require.NotPanics(t, func() {
		c.SetQueueDepth(1)
		c.AddGCDrained(1)
		c.ObserveCoalescedGet()
		c.ObserveCoalescedSet()
		c.ObserveRoundTrip("resolve", 0.01)
		c.ObserveFrameBytes(128)
		c.ObserveStaleHandle()
	})
}
