package sim

// Player is a live entity owned by the world. Only the world mutates it.
type Player struct {
	ID    string
	X     float64
	Y     float64
	Score int
	Color string

	pressed [directionCount]bool
}

// view returns the sanitized client-facing copy of the player.
func (p *Player) view() PlayerView {
	return PlayerView{
		ID:    p.ID,
		X:     p.X,
		Y:     p.Y,
		Score: p.Score,
		Color: p.Color,
	}
}

// Pressed reports whether a direction key is currently held.
func (p *Player) Pressed(d Direction) bool {
	if d < 0 || d >= directionCount {
		return false
	}
	return p.pressed[d]
}

// Coin is a collectible owned by the world.
type Coin struct {
	ID string
	X  float64
	Y  float64
}

func (c Coin) view() CoinView {
	return CoinView{ID: c.ID, X: c.X, Y: c.Y}
}
