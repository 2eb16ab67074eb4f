// Command bot is a headless client: it joins the server, mashes direction
// keys at random, buffers the snapshots it receives, and renders an
// interpolated view on a fixed cadence. Useful for soaking the delay queues
// and eyeballing interpolation smoothness without a browser.
package main

import (
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"coin-chase/server/internal/netview"
	"coin-chase/server/internal/sim"
)

type serverMessage struct {
	Type  string       `json:"type"`
	ID    string       `json:"id,omitempty"`
	State sim.Snapshot `json:"state,omitempty"`
}

type inputMessage struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Action string `json:"action"`
}

var directions = []string{"up", "down", "left", "right"}

func main() {
	var serverURL string
	var renderDelayMillis int
	flag.StringVar(&serverURL, "server", "ws://localhost:8080/ws", "websocket endpoint")
	flag.IntVar(&renderDelayMillis, "render-delay", 100, "render delay in milliseconds")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		log.WithError(err).Fatal("dial failed")
	}
	defer conn.Close()

	buffer := netview.NewBuffer(netview.DefaultBufferCapacity)
	interp := netview.NewInterpolator(buffer, time.Duration(renderDelayMillis)*time.Millisecond)

	snapshots := make(chan sim.Snapshot, 64)
	playerID := make(chan string, 1)
	readErr := make(chan error, 1)

	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			var msg serverMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.WithError(err).Warn("discarding unreadable message")
				continue
			}
			switch msg.Type {
			case "init":
				select {
				case playerID <- msg.ID:
				default:
				}
			case "state":
				snapshots <- msg.State
			}
		}
	}()

	inputTicker := time.NewTicker(500 * time.Millisecond)
	defer inputTicker.Stop()
	renderTicker := time.NewTicker(time.Second / 30)
	defer renderTicker.Stop()
	reportTicker := time.NewTicker(2 * time.Second)
	defer reportTicker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var id string
	var lastView netview.View
	var haveView bool
	pressed := map[string]bool{}

	for {
		select {
		case <-quit:
			return
		case err := <-readErr:
			log.WithError(err).Info("connection closed")
			return
		case id = <-playerID:
			log.WithField("player", id).Info("joined")
		case snap := <-snapshots:
			buffer.Push(snap)
		case <-inputTicker.C:
			key := directions[rand.Intn(len(directions))]
			action := "start"
			if pressed[key] {
				action = "stop"
			}
			pressed[key] = !pressed[key]
			msg := inputMessage{Type: "input", Key: key, Action: action}
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.WithError(err).Info("write failed")
				return
			}
		case now := <-renderTicker.C:
			if view, ok := interp.Render(now); ok {
				lastView = view
				haveView = true
			}
		case <-reportTicker.C:
			if !haveView {
				continue
			}
			entry := log.WithFields(logrus.Fields{
				"players":      len(lastView.Players),
				"coins":        len(lastView.Coins),
				"interpolated": lastView.Interpolated,
			})
			if id != "" {
				if me, ok := lastView.Players[id]; ok {
					entry = entry.WithFields(logrus.Fields{"x": me.X, "y": me.Y, "score": me.Score})
				}
			}
			entry.Info("view")
		}
	}
}
