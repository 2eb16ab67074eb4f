package sim

// PlayerView is the sanitized projection of a player sent to clients.
// The pressed-key set never leaves the server.
type PlayerView struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score int     `json:"score"`
	Color string  `json:"color"`
}

// CoinView is the wire form of a coin.
type CoinView struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Snapshot is an immutable, timestamped copy of world state. Timestamps are
// strictly increasing in emission order; Tick is the internal monotonic
// counter and stays off the wire.
type Snapshot struct {
	Players   map[string]PlayerView `json:"players"`
	Coins     []CoinView            `json:"coins"`
	Timestamp int64                 `json:"timestamp"`
	Tick      uint64                `json:"-"`
}
