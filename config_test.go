package main

import (
	"testing"
	"time"

	"coin-chase/server/internal/latency"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()
	if cfg.TickRate != 20 {
		t.Fatalf("default tick rate 20, got %d", cfg.TickRate)
	}
	if cfg.OneWayLatency != 200*time.Millisecond {
		t.Fatalf("default latency 200ms, got %v", cfg.OneWayLatency)
	}
	if cfg.RenderDelay != 100*time.Millisecond {
		t.Fatalf("default render delay 100ms, got %v", cfg.RenderDelay)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Fatalf("default map 800x600, got %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.CoinCount != 5 {
		t.Fatalf("default coin pool 5, got %d", cfg.World.CoinCount)
	}
	if cfg.tickInterval() != 50*time.Millisecond {
		t.Fatalf("20 Hz means a 50ms tick, got %v", cfg.tickInterval())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("COINCHASE_ADDR", ":9000")
	t.Setenv("COINCHASE_TICK_RATE", "10")
	t.Setenv("COINCHASE_LATENCY_MS", "50")
	t.Setenv("COINCHASE_QUEUE_CAPACITY", "128")
	t.Setenv("COINCHASE_QUEUE_POLICY", "block")

	cfg := loadConfig()
	if cfg.Addr != ":9000" {
		t.Fatalf("addr override ignored: %s", cfg.Addr)
	}
	if cfg.TickRate != 10 {
		t.Fatalf("tick rate override ignored: %d", cfg.TickRate)
	}
	if cfg.OneWayLatency != 50*time.Millisecond {
		t.Fatalf("latency override ignored: %v", cfg.OneWayLatency)
	}
	if cfg.QueueCapacity != 128 {
		t.Fatalf("capacity override ignored: %d", cfg.QueueCapacity)
	}
	if cfg.QueuePolicy != latency.Block {
		t.Fatalf("policy override ignored")
	}
}

func TestLoadConfigIgnoresGarbageValues(t *testing.T) {
	t.Setenv("COINCHASE_TICK_RATE", "fast")
	t.Setenv("COINCHASE_LATENCY_MS", "-5")

	cfg := loadConfig()
	if cfg.TickRate != 20 {
		t.Fatalf("bad tick rate must fall back to default, got %d", cfg.TickRate)
	}
	if cfg.OneWayLatency != 200*time.Millisecond {
		t.Fatalf("bad latency must fall back to default, got %v", cfg.OneWayLatency)
	}
}
