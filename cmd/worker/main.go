package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/eventra/config"
	"github.com/Domenick1991/eventra/internal/email"
	"github.com/Domenick1991/eventra/internal/kafka"
	"github.com/Domenick1991/eventra/internal/logger"
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

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}
	if len(cfg.Kafka.Brokers) == 0 || topic == "" {
		log.Fatal("worker needs kafka brokers and a notifications or booking topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	log.WithField("topic", topic).Info("worker started")
	if err := consumer.Consume(ctx, kafka.BookingEventHandler(emailSender.Send)); err != nil && ctx.Err() == nil {
		log.Errorf("consumer stopped: %v", err)
		return
	}
	log.Info("worker stopped")
}
