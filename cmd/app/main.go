package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"telegram-referral-gate/internal/application"
	"telegram-referral-gate/internal/config"
	tele "telegram-referral-gate/internal/infra/adapters/telegram"
	pg "telegram-referral-gate/internal/infra/db/postgres"
	httpapi "telegram-referral-gate/internal/infra/http"
	"telegram-referral-gate/internal/infra/logging"
	"telegram-referral-gate/internal/infra/metrics"
	red "telegram-referral-gate/internal/infra/redis"
	"telegram-referral-gate/internal/infra/worker"
	"telegram-referral-gate/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to optional YAML config file (env overrides)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	userRepo := pg.NewPostgresUserRepo(pool)
	if err := userRepo.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}
	tm := pg.NewTxManager(pool)

	// ---- Redis (optional, inbound rate limiting only) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.Addr != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	}

	// ---- Telegram client ----
	bot, err := tele.NewBot(&cfg.Bot, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}

	// ---- Worker pool (broadcast fan-out) ----
	pool2 := worker.NewPool(cfg.Bot.Workers, logger)
	pool2.Start(ctx)
	defer pool2.Stop()

	// ---- Use cases ----
	regUC := usecase.NewRegistrationUseCase(userRepo, tm, logger)
	gate := usecase.NewSubscriptionGate(bot, cfg.Gate.Channel, logger)
	rewardUC := usecase.NewRewardUseCase(userRepo, bot, cfg.Gate.GroupID, logger)
	broadcastUC := usecase.NewBroadcastUseCase(userRepo, bot, pool2, logger)

	// ---- Facade + router ----
	facade := application.NewBotFacade(regUC, gate, rewardUC, broadcastUC, userRepo, cfg.Bot.AdminID, logger)
	if cfg.Bot.Username != "" {
		facade.SetBotUsername(cfg.Bot.Username)
	} else {
		facade.SetBotUsername(bot.Username())
	}

	router := tele.NewRouter(bot, facade, rateLimiter, cfg, logger)
	go func() {
		if err := router.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Admin HTTP server (/healthz, /metrics) ----
	srv := httpapi.NewServer(cfg.Admin.Port, pool, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("admin http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = srv.Shutdown(context.Background())
}
