package main

import (
	"encoding/json"
	"fmt"

	"coin-chase/server/internal/sim"
)

const (
	msgTypeInit  = "init"
	msgTypeInput = "input"
	msgTypeState = "state"

	actionStart = "start"
	actionStop  = "stop"
)

type initMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type inputMessage struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Action string `json:"action"`
}

type stateMessage struct {
	Type  string       `json:"type"`
	State sim.Snapshot `json:"state"`
}

// parseIntent turns a raw client payload into an intent for the given
// player. Any schema violation is an error; callers drop and count it.
func parseIntent(playerID string, payload []byte) (sim.Intent, error) {
	var msg inputMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return sim.Intent{}, fmt.Errorf("unmarshal input: %w", err)
	}
	if msg.Type != msgTypeInput {
		return sim.Intent{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	key, ok := sim.ParseDirection(msg.Key)
	if !ok {
		return sim.Intent{}, fmt.Errorf("unknown direction key %q", msg.Key)
	}
	switch msg.Action {
	case actionStart, actionStop:
	default:
		return sim.Intent{}, fmt.Errorf("unknown action %q", msg.Action)
	}
	return sim.Intent{
		PlayerID: playerID,
		Key:      key,
		Pressed:  msg.Action == actionStart,
	}, nil
}
