package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/keyview/internal/renderer/backend"
)

// Metrics tracks session counters: how many frames were flushed, how many
// events were read and how long each event took to show on screen.
type Metrics struct {
	frameCount   atomic.Uint64
	eventCount   atomic.Uint64
	resizeCount  atomic.Uint64
	latencyNs    atomic.Int64
	maxLatencyNs atomic.Int64
	latencyCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records one flushed frame.
func (m *Metrics) RecordFrame() {
	m.frameCount.Add(1)
}

// RecordEvent records one event read from the terminal.
func (m *Metrics) RecordEvent(ev backend.Event) {
	m.eventCount.Add(1)
	if ev.Type == backend.EventResize {
		m.resizeCount.Add(1)
	}
}

// RecordLatency records the time from reading an event to flushing the
// frame that reflects it.
func (m *Metrics) RecordLatency(d time.Duration) {
	ns := d.Nanoseconds()
	m.latencyNs.Add(ns)
	m.latencyCount.Add(1)

	for {
		old := m.maxLatencyNs.Load()
		if ns <= old || m.maxLatencyNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a point-in-time copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:      time.Since(m.startTime),
		Frames:      m.frameCount.Load(),
		Events:      m.eventCount.Load(),
		Resizes:     m.resizeCount.Load(),
		MaxLatency:  time.Duration(m.maxLatencyNs.Load()),
		LatencyRuns: m.latencyCount.Load(),
	}
	if s.LatencyRuns > 0 {
		s.AvgLatency = time.Duration(m.latencyNs.Load() / int64(s.LatencyRuns))
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime      time.Duration
	Frames      uint64
	Events      uint64
	Resizes     uint64
	AvgLatency  time.Duration
	MaxLatency  time.Duration
	LatencyRuns uint64
}

// String formats the snapshot for the session log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s frames=%d events=%d resizes=%d latency(avg=%s max=%s)",
		s.Uptime.Round(time.Millisecond), s.Frames, s.Events, s.Resizes, s.AvgLatency, s.MaxLatency)
}

// meteredBackend forwards to a backend and feeds Metrics.
type meteredBackend struct {
	backend.Backend
	metrics *Metrics
	now     func() time.Time

	lastEvent time.Time
}

func newMeteredBackend(b backend.Backend, m *Metrics) *meteredBackend {
	return &meteredBackend{Backend: b, metrics: m, now: time.Now}
}

func (b *meteredBackend) Show() {
	b.Backend.Show()
	b.metrics.RecordFrame()
	if !b.lastEvent.IsZero() {
		b.metrics.RecordLatency(b.now().Sub(b.lastEvent))
		b.lastEvent = time.Time{}
	}
}

func (b *meteredBackend) PollEvent() backend.Event {
	ev := b.Backend.PollEvent()
	if ev.Type != backend.EventError {
		b.metrics.RecordEvent(ev)
		b.lastEvent = b.now()
	}
	return ev
}
