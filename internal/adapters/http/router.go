package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/adapters/signal"
	"github.com/dkeye/Beacon/internal/app"
	"github.com/dkeye/Beacon/internal/config"
)

const indexPage = `<html>
    <head><title>Beacon Signaling</title></head>
    <body style="font-family: sans-serif; margin: 2rem;">
        <h1>Beacon Signaling Server</h1>
        <p>Server is running.</p>
        <ul>
            <li><a href="/heartbeat">/heartbeat</a></li>
            <li><a href="/health">/health</a></li>
            <li><a href="/lobbies">/lobbies</a></li>
        </ul>
        <p>WebSocket endpoint: <code>/ws</code></p>
    </body>
</html>`

func SetupRouter(cfg *config.Config, registry *app.Registry, ctrl *signal.SignalWSController) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	startTime := time.Now()

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/heartbeat", func(c *gin.Context) {
		rooms, peers := registry.Counts()
		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"service":        "beacon-signaling",
			"uptime_seconds": now.Sub(startTime).Seconds(),
			"timestamp_unix": float64(now.UnixNano()) / float64(time.Second),
			"rooms":          rooms,
			"peers":          peers,
		})
	})

	r.GET("/lobbies", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"lobbies": registry.Snapshot(nil)})
	})

	r.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
