package main

import (
	"sync/atomic"
	"time"
)

type telemetryCounters struct {
	bytesSent          atomic.Uint64
	entitiesSent       atomic.Uint64
	tickDurationMillis atomic.Int64
	intentQueueDepth   atomic.Int64
	outboundQueueDepth atomic.Int64
	malformedMessages  atomic.Uint64
	rateLimitedIntents atomic.Uint64
	broadcastSkips     atomic.Uint64
}

type telemetrySnapshot struct {
	BytesSent          uint64 `json:"bytesSent"`
	EntitiesSent       uint64 `json:"entitiesSent"`
	TickDuration       int64  `json:"tickDurationMillis"`
	IntentQueueDepth   int64  `json:"intentQueueDepth"`
	OutboundQueueDepth int64  `json:"outboundQueueDepth"`
	MalformedMessages  uint64 `json:"malformedMessages"`
	RateLimitedIntents uint64 `json:"rateLimitedIntents"`
	BroadcastSkips     uint64 `json:"broadcastSkips"`
}

func newTelemetryCounters() *telemetryCounters {
	return &telemetryCounters{}
}

func (t *telemetryCounters) RecordBroadcast(bytes, entities int) {
	if bytes < 0 {
		bytes = 0
	}
	if entities < 0 {
		entities = 0
	}
	t.bytesSent.Add(uint64(bytes))
	t.entitiesSent.Add(uint64(entities))
}

func (t *telemetryCounters) RecordTickDuration(duration time.Duration) {
	millis := duration.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	t.tickDurationMillis.Store(millis)
}

// RecordIntentQueueDepth tracks how many delayed intents are still waiting
// for release. A depth that keeps growing means the sink is slower than the
// submission rate.
func (t *telemetryCounters) RecordIntentQueueDepth(depth int) {
	t.intentQueueDepth.Store(int64(depth))
}

// RecordOutboundQueueDepth tracks the deepest per-session outbound queue seen
// on the last broadcast. A slow client shows up here before its frames start
// getting skipped.
func (t *telemetryCounters) RecordOutboundQueueDepth(depth int) {
	t.outboundQueueDepth.Store(int64(depth))
}

func (t *telemetryCounters) IncrementMalformed() {
	t.malformedMessages.Add(1)
}

func (t *telemetryCounters) IncrementRateLimited() {
	t.rateLimitedIntents.Add(1)
}

func (t *telemetryCounters) IncrementBroadcastSkip() {
	t.broadcastSkips.Add(1)
}

func (t *telemetryCounters) Snapshot() telemetrySnapshot {
	return telemetrySnapshot{
		BytesSent:          t.bytesSent.Load(),
		EntitiesSent:       t.entitiesSent.Load(),
		TickDuration:       t.tickDurationMillis.Load(),
		IntentQueueDepth:   t.intentQueueDepth.Load(),
		OutboundQueueDepth: t.outboundQueueDepth.Load(),
		MalformedMessages:  t.malformedMessages.Load(),
		RateLimitedIntents: t.rateLimitedIntents.Load(),
		BroadcastSkips:     t.broadcastSkips.Load(),
	}
}
