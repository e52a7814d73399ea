// Package metrics exposes Prometheus instrumentation for the supervisor
// client core: queue depth, garbage-collection drains, read-your-writes
// coalescing hits, one-shot round trips, and outbound frame sizes.
// Adapted from the donor's pkg/metrics/prometheus package, collapsed into
// a single collector (the donor split per-subsystem files because it
// instrumented several unrelated stores; this core has one thing to
// watch: the flush cycle).
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enabled  bool
	enableMu sync.RWMutex
)

// SetEnabled toggles whether Collector methods record anything. Disabled
// by default so a supervisor client embedded in a process that never
// calls config.Load carries zero metrics overhead.
func SetEnabled(v bool) {
	enableMu.Lock()
	defer enableMu.Unlock()
	enabled = v
}

// IsEnabled reports the current enabled state.
func IsEnabled() bool {
	enableMu.RLock()
	defer enableMu.RUnlock()
	return enabled
}

// Collector holds every metric this core emits. A nil *Collector is
// valid and every method on it is a no-op, so callers that never call
// NewCollector pay no instrumentation cost.
type Collector struct {
	queueDepth       prometheus.Gauge
	gcDrained        prometheus.Counter
	coalescedGets    prometheus.Counter
	coalescedSets    prometheus.Counter
	roundTrips       *prometheus.CounterVec
	roundTripSeconds *prometheus.HistogramVec
	frameBytes       prometheus.Histogram
	staleHandleHits  prometheus.Counter
}

// NewCollector registers this core's metrics against reg and returns a
// Collector. Pass prometheus.DefaultRegisterer for the global registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	return &Collector{
		queueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "supercore_queue_depth",
			Help: "Number of field-mutation requests currently pending in the outbound queue.",
		}),
		gcDrained: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "supercore_gc_drained_total",
			Help: "Total number of garbage-listed requests freed at the top of a read-answer cycle.",
		}),
		coalescedGets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "supercore_coalesced_gets_total",
			Help: "Total number of GETs satisfied by a pending SET without a round trip.",
		}),
		coalescedSets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "supercore_coalesced_sets_total",
			Help: "Total number of SETs that overwrote an already-pending SET on the same (field, index).",
		}),
		roundTrips: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "supercore_round_trips_total",
			Help: "Total number of flush-unlocked round trips by kind.",
		}, []string{"kind"}),
		roundTripSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supercore_round_trip_seconds",
			Help:    "Latency of flush-unlocked round trips by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		frameBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "supercore_frame_bytes",
			Help:    "Size in bytes of each outbound frame written.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		}),
		staleHandleHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "supercore_stale_handle_total",
			Help: "Total number of operations rejected due to a stale node or field handle.",
		}),
	}
}

// SetQueueDepth records the current pending-request count.
func (c *Collector) SetQueueDepth(n int) {
	if c == nil {
		return
	}
	c.queueDepth.Set(float64(n))
}

// AddGCDrained records n garbage-listed requests freed.
func (c *Collector) AddGCDrained(n int) {
	if c == nil || n == 0 {
		return
	}
	c.gcDrained.Add(float64(n))
}

// ObserveCoalescedGet records a GET satisfied by coalescing.
func (c *Collector) ObserveCoalescedGet() {
	if c == nil {
		return
	}
	c.coalescedGets.Inc()
}

// ObserveCoalescedSet records a SET overwriting an already-pending SET.
func (c *Collector) ObserveCoalescedSet() {
	if c == nil {
		return
	}
	c.coalescedSets.Inc()
}

// ObserveRoundTrip records one round trip of the given kind (e.g.
// "resolve", "field_get", "oneshot") and its latency.
func (c *Collector) ObserveRoundTrip(kind string, seconds float64) {
	if c == nil {
		return
	}
	c.roundTrips.WithLabelValues(kind).Inc()
	c.roundTripSeconds.WithLabelValues(kind).Observe(seconds)
}

// ObserveFrameBytes records the size of an outbound frame.
func (c *Collector) ObserveFrameBytes(n int) {
	if c == nil {
		return
	}
	c.frameBytes.Observe(float64(n))
}

// ObserveStaleHandle records a rejected operation due to a stale handle.
func (c *Collector) ObserveStaleHandle() {
	if c == nil {
		return
	}
	c.staleHandleHits.Inc()
}
