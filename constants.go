package main

import "time"

const (
	writeWait            = 10 * time.Second
	defaultListenAddr    = ":8080"
	defaultTickRate      = 20 // ticks per second
	defaultOneWayLatency = 200 * time.Millisecond
	defaultRenderDelay   = 100 * time.Millisecond
	defaultQueueCapacity = 0 // unbounded; see latency.Queue on the growth risk
	sendBufferSize       = 8
	intentRatePerSecond  = 60 // generous ceiling; a key repeat never gets near it
	intentRateBurst      = 90
)

// playerPalette cycles across joining players.
var playerPalette = []string{
	"#e6194b",
	"#3cb44b",
	"#ffe119",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#46f0f0",
	"#f032e6",
}
