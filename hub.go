package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"coin-chase/server/internal/latency"
	"coin-chase/server/internal/sim"
	"coin-chase/server/pkg/logger"
)

// Hub owns the world and every live session, and drives the fixed-rate
// authoritative tick. All world mutation happens under h.mu, which gives the
// single-writer guarantee the simulation relies on.
type Hub struct {
	mu       sync.Mutex
	cfg      Config
	world    *sim.World
	sessions map[string]*session
	inbox    []sim.Intent
	colorIdx int

	inbound   *latency.Queue
	telemetry *telemetryCounters
}

func newHub(cfg Config) *Hub {
	h := &Hub{
		cfg:       cfg,
		world:     sim.NewWorld(cfg.World),
		sessions:  make(map[string]*session),
		telemetry: newTelemetryCounters(),
	}
	h.inbound = latency.NewQueue(cfg.OneWayLatency, cfg.QueueCapacity, cfg.QueuePolicy, h.deliverIntent)
	return h
}

// deliverIntent is the inbound delay queue's sink: released intents land in
// the inbox and stay there until the next tick drains them.
func (h *Hub) deliverIntent(payload any) {
	intent, ok := payload.(sim.Intent)
	if !ok {
		return
	}
	h.mu.Lock()
	h.inbox = append(h.inbox, intent)
	h.mu.Unlock()
}

// SubmitIntent schedules a validated intent for delayed delivery.
func (h *Hub) SubmitIntent(intent sim.Intent) {
	h.inbound.Submit(intent)
}

// Run drives the tick loop until the stop channel closes. A tick that
// overruns its period is not merged with the next one; the ticker keeps its
// fixed cadence and any drift is accepted.
func (h *Hub) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			h.inbound.Close()
			h.closeAllSessions()
			return
		case now := <-ticker.C:
			started := time.Now()
			h.tick(now)
			h.telemetry.RecordTickDuration(time.Since(started))
		}
	}
}

// tick drains released intents into the world, advances it, resolves coin
// pickups, and hands the sanitized snapshot to every session's outbound
// delay queue.
func (h *Hub) tick(now time.Time) {
	h.mu.Lock()
	pending := h.inbox
	h.inbox = nil
	for _, intent := range pending {
		h.world.ApplyIntent(intent)
	}
	h.world.Advance()
	h.world.ResolveCollisions()
	snap := h.world.Snapshot(now)
	recipients := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		recipients = append(recipients, s)
	}
	h.mu.Unlock()

	h.telemetry.RecordIntentQueueDepth(h.inbound.Depth())

	data, err := json.Marshal(stateMessage{Type: msgTypeState, State: snap})
	if err != nil {
		logger.Log.WithError(err).Error("failed to marshal state message")
		return
	}
	h.telemetry.RecordBroadcast(len(data), len(snap.Players)+len(snap.Coins))

	// Every recipient gets the same logical snapshot, but each session's own
	// delay queue decides when it actually reaches that socket, so clients
	// observe it at slightly different wall-clock times.
	maxDepth := 0
	for _, s := range recipients {
		s.out.Submit(data)
		if d := s.out.Depth(); d > maxDepth {
			maxDepth = d
		}
	}
	h.telemetry.RecordOutboundQueueDepth(maxDepth)
}

// Join allocates a player for a fresh connection, registers the session, and
// schedules the init message through the session's delayed outbound path so
// the client learns its id only after the configured latency.
func (h *Hub) Join(conn *websocket.Conn) *session {
	id := uuid.NewString()
	s := newSession(id, conn, h)

	// The init frame must enter the session's FIFO before the tick loop can
	// see the session; only then is init-before-first-state guaranteed.
	data, err := json.Marshal(initMessage{Type: msgTypeInit, ID: id})
	if err != nil {
		logger.Log.WithError(err).Error("failed to marshal init message")
	} else {
		s.out.Submit(data)
	}

	h.mu.Lock()
	color := playerPalette[h.colorIdx%len(playerPalette)]
	h.colorIdx++
	h.world.AddPlayer(id, color)
	h.sessions[id] = s
	h.mu.Unlock()

	logger.Log.WithField("player", id).Info("player joined")

	go s.writePump()
	go s.readLoop()
	return s
}

// Disconnect removes the player synchronously and tears the session down.
// Intents already sitting in the delay queue for this player release later
// as harmless no-ops.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.world.RemovePlayer(id)
	h.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	logger.Log.WithField("player", id).Info("player left")
}

// closeAllSessions tears down every live session so their dispatcher
// goroutines and sockets do not outlive the tick loop.
func (h *Hub) closeAllSessions() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.Disconnect(id)
	}
}

// PlayerCount reports the number of connected players.
func (h *Hub) PlayerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.PlayerCount()
}

func (h *Hub) TelemetrySnapshot() telemetrySnapshot {
	return h.telemetry.Snapshot()
}
