package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/internal/documents"
	api "github.com/quillcms/quill/internal/http"
	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/log"
	"github.com/quillcms/quill/internal/mail"
	"github.com/quillcms/quill/internal/metrics"
	"github.com/quillcms/quill/internal/queue"
	"github.com/quillcms/quill/internal/repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	logger, err := log.Init(!cfg.Dev)
	if err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		stdlog.Fatalf("mongo connect: %v", err)
	}
	defer store.Close(context.Background())

	reg := registerCollections()
	for _, c := range reg.All() {
		if err := store.EnsureCollectionIndexes(ctx, c); err != nil {
			stdlog.Fatalf("indexes for %s: %v", c.Slug, err)
		}
	}

	rds := repo.NewRedis(cfg.RedisAddr)
	defer rds.Close()

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.EventExchange)
		if err != nil {
			stdlog.Fatalf("rabbit publisher: %v", err)
		}
	}
	defer pub.Close()

	// with a broker, delivery runs through the notifier; otherwise the API
	// process talks SMTP itself
	var sender mail.Sender = mail.NewSMTPSender(cfg.SMTP)
	if cfg.RabbitURL != "" {
		sender = mail.NewQueueSender(pub, cfg.EventExchange)
	}

	tr, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		stdlog.Fatalf("i18n: %v", err)
	}

	authSvc := auth.NewService(store, sender, tr, logger, cfg)
	docSvc := documents.NewService(store, logger)

	h := api.NewHandler(reg, authSvc, docSvc, store, rds, pub, tr, cfg, logger)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	stdlog.Printf("quill api listening on :%s", cfg.Port)

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		stdlog.Printf("signal: %s, shutting down", s)
	case err := <-srvErr:
		stdlog.Printf("server error: %v", err)
	}
}
