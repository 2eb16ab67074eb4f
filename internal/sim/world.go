package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// World holds every player and coin plus the movement and collision rules.
// It performs no I/O and is not safe for concurrent use; the hub serializes
// all access.
type World struct {
	cfg     Config
	players map[string]*Player
	coins   []Coin
	rng     *rand.Rand

	tick      uint64
	lastStamp int64
}

// NewWorld creates an empty world with a full coin pool. A zero seed picks a
// time-based one; tests pass a fixed seed for determinism.
func NewWorld(cfg Config) *World {
	cfg = cfg.normalized()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		cfg:     cfg,
		players: make(map[string]*Player),
		rng:     rand.New(rand.NewSource(seed)),
	}
	w.coins = make([]Coin, 0, cfg.CoinCount)
	for i := 0; i < cfg.CoinCount; i++ {
		w.coins = append(w.coins, w.spawnCoin())
	}
	return w
}

// Config returns the world parameters.
func (w *World) Config() Config {
	return w.cfg
}

// PlayerCount returns the number of live players.
func (w *World) PlayerCount() int {
	return len(w.players)
}

// AddPlayer registers a player at the arena center with zero score.
func (w *World) AddPlayer(id, color string) *Player {
	p := &Player{
		ID:    id,
		X:     w.cfg.Width / 2,
		Y:     w.cfg.Height / 2,
		Color: color,
	}
	w.players[id] = p
	return p
}

// RemovePlayer drops a player. Unknown ids are a no-op.
func (w *World) RemovePlayer(id string) {
	delete(w.players, id)
}

// ApplyIntent updates a player's pressed-key set. Intents for players that
// already disconnected are dropped silently; position never changes here.
func (w *World) ApplyIntent(intent Intent) {
	p, ok := w.players[intent.PlayerID]
	if !ok {
		return
	}
	if intent.Key < 0 || intent.Key >= directionCount {
		return
	}
	p.pressed[intent.Key] = intent.Pressed
}

// Advance moves every player by the per-tick speed along each pressed axis
// and clamps the result to the arena. Pressing two axes sums both full-speed
// deltas, so diagonal movement is faster than axis movement; that matches the
// original game feel and is kept on purpose.
func (w *World) Advance() {
	w.tick++
	for _, p := range w.players {
		for d := Direction(0); d < directionCount; d++ {
			if !p.pressed[d] {
				continue
			}
			dx, dy := d.vector()
			p.X += dx * w.cfg.MoveSpeed
			p.Y += dy * w.cfg.MoveSpeed
		}
		p.X = clamp(p.X, 0, w.cfg.Width)
		p.Y = clamp(p.Y, 0, w.cfg.Height)
	}
}

// ResolveCollisions checks every player against every coin. Each hit scores
// one point, removes the coin, and spawns a replacement, keeping the pool
// size constant. All overlaps in a tick resolve; there is no early exit.
func (w *World) ResolveCollisions() {
	hitRadius := w.cfg.PlayerRadius + w.cfg.CoinRadius
	for _, p := range w.players {
		for i := range w.coins {
			if math.Hypot(p.X-w.coins[i].X, p.Y-w.coins[i].Y) >= hitRadius {
				continue
			}
			p.Score++
			w.coins[i] = w.spawnCoin()
		}
	}
}

// Snapshot returns an immutable sanitized copy of the world stamped with now.
// Emission stamps are forced strictly increasing even if the wall clock
// stalls between ticks.
func (w *World) Snapshot(now time.Time) Snapshot {
	stamp := now.UnixMilli()
	if stamp <= w.lastStamp {
		stamp = w.lastStamp + 1
	}
	w.lastStamp = stamp

	players := make(map[string]PlayerView, len(w.players))
	for id, p := range w.players {
		players[id] = p.view()
	}
	coins := make([]CoinView, 0, len(w.coins))
	for _, c := range w.coins {
		coins = append(coins, c.view())
	}
	return Snapshot{
		Players:   players,
		Coins:     coins,
		Timestamp: stamp,
		Tick:      w.tick,
	}
}

// spawnCoin places a fresh coin at a random position inside the arena, kept a
// coin radius away from the edges.
func (w *World) spawnCoin() Coin {
	margin := w.cfg.CoinRadius
	return Coin{
		ID: uuid.NewString(),
		X:  margin + w.rng.Float64()*(w.cfg.Width-2*margin),
		Y:  margin + w.rng.Float64()*(w.cfg.Height-2*margin),
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
