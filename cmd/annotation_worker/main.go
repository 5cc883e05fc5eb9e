package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/digital-user-report/config"
	"github.com/oksasatya/digital-user-report/internal/application"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
)

// annotation_worker consumes reason events and keeps the search index in sync.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-annotation-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQReasonQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if len(cfg.ESAddrs()) == 0 {
		log.Fatal("Elasticsearch not configured")
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	ensureCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := helpers.EnsureIndex(ensureCtx, es, cfg.ESReasonsIndex, application.ReasonIndexMapping); err != nil {
		cancel()
		log.Fatalf("elasticsearch index: %v", err)
	}
	cancel()
	index := application.NewReasonIndex(es, cfg.ESReasonsIndex, logger)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQReasonQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev entity.ReasonEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.DigitalUserID == "" {
				logger.WithField("body", string(msg.Body)).Warn("bad reason event, dropping")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := index.Apply(c, ev)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("user_id", ev.DigitalUserID.String()).Error("index reason failed")
				// redeliver once; a second failure is dropped
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("annotation worker listening on queue=%s index=%s", cfg.RabbitMQReasonQueue, cfg.ESReasonsIndex)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
