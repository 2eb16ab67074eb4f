package sim

// Config captures the world dimensions and movement rules.
type Config struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MoveSpeed    float64 `json:"moveSpeed"`
	PlayerRadius float64 `json:"playerRadius"`
	CoinRadius   float64 `json:"coinRadius"`
	CoinCount    int     `json:"coinCount"`
	Seed         int64   `json:"-"`
}

// DefaultConfig returns the standard arena parameters.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		MoveSpeed:    5,
		PlayerRadius: 20,
		CoinRadius:   10,
		CoinCount:    5,
	}
}

// normalized returns a config with zero values replaced by defaults.
func (cfg Config) normalized() Config {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = def.MoveSpeed
	}
	if cfg.PlayerRadius <= 0 {
		cfg.PlayerRadius = def.PlayerRadius
	}
	if cfg.CoinRadius <= 0 {
		cfg.CoinRadius = def.CoinRadius
	}
	if cfg.CoinCount <= 0 {
		cfg.CoinCount = def.CoinCount
	}
	return cfg
}
