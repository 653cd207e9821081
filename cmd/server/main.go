package main

import (
	"context"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/cache"
	"github.com/campusmatch/backend/internal/config"
	"github.com/campusmatch/backend/internal/db"
	"github.com/campusmatch/backend/internal/logger"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/service/account"
	"github.com/campusmatch/backend/internal/service/discover"
	"github.com/campusmatch/backend/internal/service/institution"
	"github.com/campusmatch/backend/internal/service/match"
	"github.com/campusmatch/backend/internal/token"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	tokens := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	auth := server.NewAuth(appCtx, tokens)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx, auth, tokens),
		institution.NewRegistrar(appCtx, auth),
		discover.NewRegistrar(appCtx, auth),
		match.NewRegistrar(appCtx, auth),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
