package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/spaceflights/config"
	"github.com/Domenick1991/spaceflights/internal/email"
	"github.com/Domenick1991/spaceflights/internal/kafka"
	"github.com/Domenick1991/spaceflights/internal/logging"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger := logging.With().Str("component", "notifier").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	logger.Info().Str("topic", cfg.Kafka.NotificationsTopic).Str("group", cfg.Kafka.GroupID).Msg("consuming booking notifications")
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("skip undecodable event")
			return nil
		}
		if err := emailSender.Send(ctx, event); err != nil {
			logger.Warn().Err(err).Int64("booking_id", event.BookingID).Msg("notification not sent")
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped")
		return
	}
	logger.Info().Msg("worker stopped")
}
