package main

import (
	"os"
	"strconv"
	"time"

	"coin-chase/server/internal/latency"
	"coin-chase/server/internal/sim"
)

// Config is the full server configuration. Every field has a sensible
// default; env variables override individual values.
type Config struct {
	Addr          string
	TickRate      int
	OneWayLatency time.Duration
	RenderDelay   time.Duration
	QueueCapacity int
	QueuePolicy   latency.Policy
	World         sim.Config
}

func defaultServerConfig() Config {
	return Config{
		Addr:          defaultListenAddr,
		TickRate:      defaultTickRate,
		OneWayLatency: defaultOneWayLatency,
		RenderDelay:   defaultRenderDelay,
		QueueCapacity: defaultQueueCapacity,
		QueuePolicy:   latency.DropOldest,
		World:         sim.DefaultConfig(),
	}
}

// loadConfig builds the config from defaults plus environment overrides.
func loadConfig() Config {
	cfg := defaultServerConfig()

	if addr := os.Getenv("COINCHASE_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	cfg.TickRate = envInt("COINCHASE_TICK_RATE", cfg.TickRate)
	cfg.OneWayLatency = envMillis("COINCHASE_LATENCY_MS", cfg.OneWayLatency)
	cfg.RenderDelay = envMillis("COINCHASE_RENDER_DELAY_MS", cfg.RenderDelay)
	cfg.QueueCapacity = envInt("COINCHASE_QUEUE_CAPACITY", cfg.QueueCapacity)
	if policy := os.Getenv("COINCHASE_QUEUE_POLICY"); policy == "block" {
		cfg.QueuePolicy = latency.Block
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.OneWayLatency < 0 {
		cfg.OneWayLatency = 0
	}
	return cfg
}

func (cfg Config) tickInterval() time.Duration {
	return time.Second / time.Duration(cfg.TickRate)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envMillis(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	millis, err := strconv.Atoi(raw)
	if err != nil || millis < 0 {
		return fallback
	}
	return time.Duration(millis) * time.Millisecond
}
