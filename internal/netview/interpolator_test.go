package netview

import (
	"testing"
	"time"

	"coin-chase/server/internal/sim"
)

const testRenderDelay = 100 * time.Millisecond

// renderAt maps a desired target time to the wall clock Render expects.
func renderAt(ip *Interpolator, target int64) (View, bool) {
	return ip.Render(time.UnixMilli(target).Add(testRenderDelay))
}

func playerSnap(ts int64, players map[string]sim.PlayerView, coins ...sim.CoinView) sim.Snapshot {
	return sim.Snapshot{Players: players, Coins: coins, Timestamp: ts}
}

func TestRenderInterpolatesBetweenBracketingSnapshots(t *testing.T) {
	b := NewBuffer(10)
	b.Push(playerSnap(1000, map[string]sim.PlayerView{"p": {ID: "p", X: 100, Y: 50}}))
	b.Push(playerSnap(1050, map[string]sim.PlayerView{"p": {ID: "p", X: 110, Y: 50, Score: 3}}))
	ip := NewInterpolator(b, testRenderDelay)

	view, ok := renderAt(ip, 1025)
	if !ok || !view.Interpolated {
		t.Fatalf("expected an interpolated view")
	}
	p := view.Players["p"]
	if p.X != 105 {
		t.Fatalf("expected x=105 midway, got %v", p.X)
	}
	if p.Y != 50 {
		t.Fatalf("expected y unchanged at 50, got %v", p.Y)
	}
	if p.Score != 3 {
		t.Fatalf("score must come from next, got %d", p.Score)
	}
}

func TestRenderStaysOnSegment(t *testing.T) {
	b := NewBuffer(10)
	b.Push(playerSnap(1000, map[string]sim.PlayerView{"p": {ID: "p", X: 10, Y: 20}}))
	b.Push(playerSnap(1100, map[string]sim.PlayerView{"p": {ID: "p", X: 30, Y: 60}}))
	ip := NewInterpolator(b, testRenderDelay)

	for target := int64(1000); target < 1100; target += 7 {
		view, ok := renderAt(ip, target)
		if !ok || !view.Interpolated {
			t.Fatalf("target %d: expected interpolation", target)
		}
		p := view.Players["p"]
		if p.X < 10 || p.X > 30 || p.Y < 20 || p.Y > 60 {
			t.Fatalf("target %d: (%v, %v) left the segment", target, p.X, p.Y)
		}
		// Collinearity: y - 20 == 2 * (x - 10) along this segment.
		if diff := (p.Y - 20) - 2*(p.X-10); diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("target %d: (%v, %v) off the segment", target, p.X, p.Y)
		}
	}
}

func TestRenderFallsBackToLatestSnapshot(t *testing.T) {
	b := NewBuffer(10)
	ip := NewInterpolator(b, testRenderDelay)

	if _, ok := renderAt(ip, 1000); ok {
		t.Fatalf("empty buffer must yield no view")
	}

	b.Push(playerSnap(1000, map[string]sim.PlayerView{"p": {ID: "p", X: 42}}))

	// Target past the newest snapshot: degraded mode, latest as-is.
	view, ok := renderAt(ip, 2000)
	if !ok {
		t.Fatalf("expected a degraded view")
	}
	if view.Interpolated {
		t.Fatalf("fallback view must not claim interpolation")
	}
	if view.Players["p"].X != 42 {
		t.Fatalf("fallback must render the latest snapshot as-is")
	}

	// Target before the earliest snapshot degrades the same way.
	view, ok = renderAt(ip, 10)
	if !ok || view.Interpolated {
		t.Fatalf("early target must degrade to the latest snapshot")
	}
}

func TestRenderSnapsNewArrivalsAndOmitsDeparted(t *testing.T) {
	b := NewBuffer(10)
	b.Push(playerSnap(1000, map[string]sim.PlayerView{
		"stays": {ID: "stays", X: 0},
		"gone":  {ID: "gone", X: 500},
	}))
	b.Push(playerSnap(1100, map[string]sim.PlayerView{
		"stays": {ID: "stays", X: 100},
		"new":   {ID: "new", X: 250},
	}))
	ip := NewInterpolator(b, testRenderDelay)

	view, ok := renderAt(ip, 1050)
	if !ok || !view.Interpolated {
		t.Fatalf("expected interpolation")
	}
	if _, present := view.Players["gone"]; present {
		t.Fatalf("departed player must be omitted")
	}
	if view.Players["new"].X != 250 {
		t.Fatalf("new arrival must snap to its next position, got %v", view.Players["new"].X)
	}
	if view.Players["stays"].X != 50 {
		t.Fatalf("expected x=50 midway, got %v", view.Players["stays"].X)
	}
}

func TestRenderTakesCoinsFromNext(t *testing.T) {
	b := NewBuffer(10)
	b.Push(playerSnap(1000, map[string]sim.PlayerView{},
		sim.CoinView{ID: "old", X: 1, Y: 1}))
	b.Push(playerSnap(1100, map[string]sim.PlayerView{},
		sim.CoinView{ID: "fresh", X: 9, Y: 9}))
	ip := NewInterpolator(b, testRenderDelay)

	view, ok := renderAt(ip, 1050)
	if !ok {
		t.Fatalf("expected a view")
	}
	if len(view.Coins) != 1 || view.Coins[0].ID != "fresh" {
		t.Fatalf("coins must come straight from next, got %+v", view.Coins)
	}
}
