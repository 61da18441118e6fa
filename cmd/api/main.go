package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/corteexpress/barberia-api/internal/config"
	dbpkg "github.com/corteexpress/barberia-api/internal/db"
	"github.com/corteexpress/barberia-api/internal/infra/payments"
	"github.com/corteexpress/barberia-api/internal/infra/realtime"
	"github.com/corteexpress/barberia-api/internal/infra/storage"
	"github.com/corteexpress/barberia-api/internal/routes"
)

func main() {

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var notifier *realtime.Notifier
	if cfg.RedisURL != "" {
		rdb, err := realtime.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, realtime disabled")
		} else {
			notifier = realtime.NewNotifier(rdb)
		}
	}

	gateway, err := payments.NewGateway(cfg.MPAccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init payment gateway")
	}

	images := storage.NewImageStore(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, notifier, gateway, images)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
