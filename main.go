package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bidboard/marketplace-api/internal/config"
	"github.com/bidboard/marketplace-api/internal/database"
	"github.com/bidboard/marketplace-api/internal/resource/repository"
	"github.com/bidboard/marketplace-api/internal/resource/service"
	"github.com/bidboard/marketplace-api/internal/server"
	"github.com/bidboard/marketplace-api/internal/sessions"
	"github.com/bidboard/marketplace-api/internal/tokens"
	"github.com/bidboard/marketplace-api/pkg/logger"
	"github.com/bidboard/marketplace-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: env=%s mongo_db=%s redis=%v", cfg.Server.Environment, cfg.MongoDB.Database, cfg.RedisAddr() != "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}()
	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)

	// logout revocation is only available with Redis
	var deny *sessions.Denylist
	if addr := cfg.RedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis at %s unreachable, logout will only clear the cookie: %v", addr, err)
			_ = client.Close()
		} else {
			defer client.Close()
			deny = sessions.NewDenylist(client, "")
			logger.Infof("connected to Redis at %s", addr)
		}
	}

	issuer, err := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	if err != nil {
		logger.Fatalf("failed to create token issuer: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	router := server.NewRouter(server.Deps{
		Issuer:     issuer,
		Denylist:   deny,
		Jobs:       service.NewCollection(database.JobsCollection, repository.NewMongoRepo(store.Collection(database.JobsCollection))),
		Bids:       service.NewCollection(database.BidsCollection, repository.NewMongoRepo(store.Collection(database.BidsCollection))),
		Store:      store,
		Gatherer:   prometheus.DefaultGatherer,
		Origins:    cfg.CORS.AllowedOrigins,
		Production: cfg.IsProduction(),
	})

	srv := server.New(cfg.Server, router)
	logger.Infof("starting marketplace API on %s", srv.Addr())
	if err := srv.Run(ctx); err != nil {
		logger.Errorf("server failed: %v", err)
		os.Exit(1)
	}
}
