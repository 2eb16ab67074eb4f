package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"coin-chase/server/pkg/logger"
)

func main() {
	// .env is optional; real env variables always win.
	_ = godotenv.Load()
	logger.Init()

	cfg := loadConfig()
	logger.Log.WithFields(map[string]any{
		"addr":     cfg.Addr,
		"tickRate": cfg.TickRate,
		"latency":  cfg.OneWayLatency.String(),
	}).Info("starting coin-chase server")

	hub := newHub(cfg)
	stop := make(chan struct{})
	go hub.Run(stop)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(cfg, hub),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("shutdown incomplete")
	}
}

// newRouter wires the HTTP surface: websocket entry point plus the health and
// diagnostics endpoints.
func newRouter(cfg Config, hub *Hub) *gin.Engine {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/diagnostics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"serverTime":  time.Now().UnixMilli(),
			"tickRate":    cfg.TickRate,
			"latencyMs":   cfg.OneWayLatency.Milliseconds(),
			"playerCount": hub.PlayerCount(),
			"telemetry":   hub.TelemetrySnapshot(),
		})
	})

	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		hub.Join(conn)
	})

	return router
}
