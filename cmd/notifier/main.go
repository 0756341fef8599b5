package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/log"
	"github.com/quillcms/quill/internal/mail"
	"github.com/quillcms/quill/internal/metrics"
	"github.com/quillcms/quill/internal/queue"
)

// The notifier drains email.requested events off the broker and pushes them
// through SMTP, keeping delivery latency out of the API request path.
func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	if cfg.RabbitURL == "" {
		stdlog.Fatal("RABBIT_URL is required for the notifier")
	}

	logger, err := log.Init(!cfg.Dev)
	if err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	consumer, err := queue.NewConsumer(cfg.RabbitURL, cfg.EventExchange, cfg.EmailQueue, queue.KeyEmailRequested)
	if err != nil {
		stdlog.Fatalf("consumer: %v", err)
	}
	defer consumer.Close()

	sender := mail.NewSMTPSender(cfg.SMTP)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("notifier consuming",
		zap.String("queue", cfg.EmailQueue),
		zap.Int("workers", cfg.Concurrency))

	err = consumer.Consume(ctx, cfg.Concurrency, func(body []byte) error {
		var ev queue.EmailRequested
		if err := json.Unmarshal(body, &ev); err != nil {
			// a malformed payload will never parse on redelivery; drop it
			logger.Error("malformed email event", zap.Error(err))
			return nil
		}

		err := sender.Send(ctx, mail.Message{
			To:      ev.To,
			Subject: ev.Subject,
			HTML:    ev.HTML,
		})
		if err != nil {
			metrics.EmailsDispatched.WithLabelValues(ev.Collection, "error").Inc()
			logger.Error("email delivery failed",
				zap.Strings("to", ev.To), zap.Error(err))
			return err
		}
		metrics.EmailsDispatched.WithLabelValues(ev.Collection, "ok").Inc()
		return nil
	})
	if err != nil {
		stdlog.Fatalf("consume: %v", err)
	}

	logger.Info("notifier stopped")
}
