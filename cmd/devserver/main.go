// Command devserver runs the marketplace API against in-memory collections
// so a frontend can be developed without MongoDB. Data is lost on exit.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bidboard/marketplace-api/internal/config"
	"github.com/bidboard/marketplace-api/internal/database"
	"github.com/bidboard/marketplace-api/internal/resource/repository"
	"github.com/bidboard/marketplace-api/internal/resource/service"
	"github.com/bidboard/marketplace-api/internal/server"
	"github.com/bidboard/marketplace-api/internal/tokens"
	"github.com/bidboard/marketplace-api/pkg/logger"
	"github.com/bidboard/marketplace-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type memoryStore struct{}

func (memoryStore) Ping(context.Context) error { return nil }

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("DEV_PORT")
	if port == "" {
		port = "5000"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			logger.Fatalf("failed to generate signing secret: %v", err)
		}
		secret = hex.EncodeToString(b)
		logger.Warnf("JWT_SECRET not set, using a random secret; sessions end when the process exits")
	}

	issuer, err := tokens.NewIssuer(secret, 0)
	if err != nil {
		logger.Fatalf("failed to create token issuer: %v", err)
	}
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	router := server.NewRouter(server.Deps{
		Issuer:   issuer,
		Jobs:     service.NewCollection(database.JobsCollection, repository.NewMemoryRepo()),
		Bids:     service.NewCollection(database.BidsCollection, repository.NewMemoryRepo()),
		Store:    memoryStore{},
		Gatherer: prometheus.DefaultGatherer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(config.ServerConfig{Host: "127.0.0.1", Port: port, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second}, router)
	logger.Infof("dev server with in-memory collections on http://%s", net.JoinHostPort("127.0.0.1", port))
	if err := srv.Run(ctx); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
