package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	apihttp "github.com/finflow/identity/internal/api/http"
	"github.com/finflow/identity/internal/config"
	"github.com/finflow/identity/internal/events"
	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
	"github.com/finflow/identity/internal/password"
	"github.com/finflow/identity/internal/repository/postgres"
	redisrepo "github.com/finflow/identity/internal/repository/redis"
	"github.com/finflow/identity/internal/server"
	"github.com/finflow/identity/internal/service"
	"github.com/finflow/identity/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	userStore := redisrepo.NewUserCache(userRepo, redisClient, cfg.Redis.CacheTTL, logger)
	kv := redisrepo.NewKV(redisClient)
	publisher := events.NewRedisPublisher(redisClient)
	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	var defaultRoles []string
	if role := strings.TrimSpace(cfg.Auth.DefaultRole); role != "" {
		defaultRoles = []string{role}
	}

	usersService := service.NewUsers(userStore, hasher, publisher, defaultRoles, logger)
	revocation := service.NewRevocation(kv, logger)
	authService := service.NewAuth(usersService, tokenManager, revocation, logger)

	handler := apihttp.NewHandler(authService, db, redisPinger{redisClient}, cfg.JWT.TTL, logger)
	router := apihttp.NewRouter(handler, logger)

	httpServer := server.NewHTTPServer(router, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// redisPinger adapts the go-redis client to the health check contract.
type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
