package netview

import (
	"time"

	"coin-chase/server/internal/sim"
)

const DefaultRenderDelay = 100 * time.Millisecond

// View is what the renderer draws for one frame.
type View struct {
	Players map[string]sim.PlayerView
	Coins   []sim.CoinView
	// Interpolated is false when the view fell back to the latest snapshot
	// as-is (buffer too short or target outside the buffered range). That is
	// a degraded mode, not an error.
	Interpolated bool
}

// Interpolator blends bracketing snapshots into a render view offset a fixed
// render delay into the past, so a freshly arrived snapshot is (almost)
// always available ahead of the render target.
type Interpolator struct {
	buffer      *Buffer
	renderDelay time.Duration
}

// NewInterpolator wraps a snapshot buffer with the given render delay.
func NewInterpolator(buffer *Buffer, renderDelay time.Duration) *Interpolator {
	if renderDelay <= 0 {
		renderDelay = DefaultRenderDelay
	}
	return &Interpolator{buffer: buffer, renderDelay: renderDelay}
}

// Render computes the view for the given wall-clock instant. The second
// return is false only when no snapshot has arrived at all.
func (ip *Interpolator) Render(now time.Time) (View, bool) {
	target := now.Add(-ip.renderDelay).UnixMilli()

	prev, next, ok := ip.buffer.bracket(target)
	if !ok {
		latest, ok := ip.buffer.Latest()
		if !ok {
			return View{}, false
		}
		return View{
			Players:      clonePlayers(latest.Players),
			Coins:        cloneCoins(latest.Coins),
			Interpolated: false,
		}, true
	}

	span := next.Timestamp - prev.Timestamp
	t := 0.0
	if span > 0 {
		t = float64(target-prev.Timestamp) / float64(span)
	}
	// Pathological timestamps could otherwise overshoot the segment.
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	players := make(map[string]sim.PlayerView, len(next.Players))
	for id, to := range next.Players {
		view := to
		if from, ok := prev.Players[id]; ok {
			view.X = from.X + (to.X-from.X)*t
			view.Y = from.Y + (to.Y-from.Y)*t
		}
		// New arrivals snap to their position in next; players present only
		// in prev have departed and are omitted.
		players[id] = view
	}

	return View{
		Players: players,
		// Coins are never interpolated; pop-in on collection is expected.
		Coins:        cloneCoins(next.Coins),
		Interpolated: true,
	}, true
}

func clonePlayers(players map[string]sim.PlayerView) map[string]sim.PlayerView {
	cloned := make(map[string]sim.PlayerView, len(players))
	for id, view := range players {
		cloned[id] = view
	}
	return cloned
}

func cloneCoins(coins []sim.CoinView) []sim.CoinView {
	return append([]sim.CoinView(nil), coins...)
}
