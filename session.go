package main

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"coin-chase/server/internal/latency"
	"coin-chase/server/pkg/logger"
)

// session binds one websocket connection to one player. Inbound messages are
// parsed into intents and pushed through the shared inbound delay queue;
// outbound frames pass through the session's own delay queue before the
// write pump flushes them to the socket.
type session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	out  *latency.Queue

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	limiter   *rate.Limiter
}

func newSession(id string, conn *websocket.Conn, hub *Hub) *session {
	s := &session{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(intentRatePerSecond), intentRateBurst),
	}
	s.out = latency.NewQueue(hub.cfg.OneWayLatency, hub.cfg.QueueCapacity, hub.cfg.QueuePolicy, s.enqueueFrame)
	return s
}

// enqueueFrame is the outbound delay queue's sink. A session that is closed
// or cannot keep up is skipped for this broadcast, never retried.
func (s *session) enqueueFrame(payload any) {
	data, ok := payload.([]byte)
	if !ok {
		return
	}
	select {
	case <-s.done:
		s.hub.telemetry.IncrementBroadcastSkip()
		return
	default:
	}
	select {
	case s.send <- data:
	default:
		s.hub.telemetry.IncrementBroadcastSkip()
	}
}

// readLoop parses client messages until the connection dies. Malformed or
// unrecognized payloads are dropped and counted; they never end a session.
func (s *session) readLoop() {
	defer s.hub.Disconnect(s.id)

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		intent, err := parseIntent(s.id, payload)
		if err != nil {
			s.hub.telemetry.IncrementMalformed()
			logger.Log.WithField("player", s.id).WithError(err).Debug("dropping client message")
			continue
		}
		if !s.limiter.Allow() {
			s.hub.telemetry.IncrementRateLimited()
			continue
		}
		s.hub.SubmitIntent(intent)
	}
}

// writePump flushes delayed frames to the socket in order.
func (s *session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Log.WithField("player", s.id).WithError(err).Debug("write failed")
				s.hub.Disconnect(s.id)
				return
			}
		}
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.out.Close()
		s.conn.Close()
	})
}
