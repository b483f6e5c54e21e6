package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/eventra/api"
	"github.com/Domenick1991/eventra/config"
	"github.com/Domenick1991/eventra/internal/bootstrap"
	"github.com/Domenick1991/eventra/internal/kafka"
	"github.com/Domenick1991/eventra/internal/logger"
	"github.com/Domenick1991/eventra/internal/payment"
	"github.com/Domenick1991/eventra/internal/service/cart"
	"github.com/Domenick1991/eventra/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := bootstrap.OpenKV(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeKV()

	hub := api.NewEventHub(log)
	deps := storefront.Deps{
		Payments: payment.NewSimulator(
			time.Duration(cfg.Payment.DelayMillis)*time.Millisecond,
			cfg.Payment.SuccessRate,
			payment.WithLogger(log),
		),
		StrictTransitions: cfg.Booking.StrictTransitions,
		CartScope:         cart.Scope(cfg.Cart.Scope),
		BcryptCost:        cfg.Auth.BcryptCost,
		Notifier:          hub,
		Logger:            log,
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka unavailable, booking events will not be delivered until it recovers")
		}
		deps.Producer = producer
		deps.BookingTopic = cfg.Kafka.BookingTopic
		deps.NotificationsTopic = cfg.Kafka.NotificationsTopic
	}

	registry := storefront.NewRegistry(kv, cfg.Storage.KeyPrefix, deps,
		storefront.WithMaxProfiles(cfg.Storage.MaxCachedProfiles),
	)
	router := api.NewRouter(registry, hub, api.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         log,
	})

	log.WithFields(logrus.Fields{
		"storage":    cfg.Storage.Backend,
		"cart_scope": cfg.Cart.Scope,
	}).Info("starting eventra")

	if err := bootstrap.Run(ctx, cfg, router, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
