// Annotata Runner — демон выполнения executions.
//
// Runner:
//   - Получает события execution.pending из RabbitMQ
//   - Загружает execution и спецификацию пайплайна с платформы
//   - Выполняет шаги последовательно, fail-fast
//   - Фиксирует терминальный статус и публикует execution.completed
//
// Раннеры масштабируются горизонтально: prefetch ограничивает
// количество executions в обработке на один процесс.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/config"
	"github.com/shaiso/Annotata/internal/mq"
	"github.com/shaiso/Annotata/internal/repos"
	"github.com/shaiso/Annotata/internal/runner"
	"github.com/shaiso/Annotata/internal/scheduler"
	"github.com/shaiso/Annotata/internal/telemetry"
)

func main() {
	logger := telemetry.SetupLogger()
	logger.Info("starting annotata-runner")

	configPath := flag.String("config", "", "path to config file")
	withScheduler := flag.Bool("scheduler", false, "run the trigger scheduler in this process")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateRunner(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Клиент платформы
	creds := client.Credentials{
		Token:        cfg.Platform.Token,
		ClientID:     cfg.Platform.ClientID,
		ClientSecret: cfg.Platform.ClientSecret,
		TokenURL:     cfg.Platform.TokenURL,
	}
	tokenSource, err := creds.TokenSource(ctx)
	if err != nil {
		logger.Error("failed to configure credentials", "error", err)
		os.Exit(1)
	}
	platformClient, err := client.New(client.Options{
		BaseURL:     cfg.Platform.BaseURL,
		Token:       cfg.Platform.Token,
		TokenSource: tokenSource,
		UserAgent:   "annotata-runner/1.0",
	})
	if err != nil {
		logger.Error("failed to create platform client", "error", err)
		os.Exit(1)
	}
	api := repos.NewAPI(platformClient)

	// RabbitMQ
	conn, err := mq.Dial(cfg.AMQP.URL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := mq.SetupTopology(conn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}
	publisher := mq.NewPublisher(conn, logger)

	// Runner
	r := runner.New(runner.Config{
		API:       api,
		Publisher: publisher,
		Logger:    logger,
		Prefetch:  cfg.AMQP.Prefetch,
	})
	go func() {
		if err := r.Run(ctx, conn); err != nil && ctx.Err() == nil {
			logger.Error("runner stopped", "error", err)
			cancel()
		}
	}()

	// Планировщик триггеров (опционально, один на кластер)
	if *withScheduler {
		sched := scheduler.New(scheduler.Config{
			Triggers:   api.Triggers,
			Executions: api.Executions,
			Publisher:  publisher,
			Logger:     logger,
			Interval:   cfg.Scheduler.Interval,
		})
		go func() {
			if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("scheduler stopped", "error", err)
			}
		}()
		logger.Info("trigger scheduler enabled", "interval", cfg.Scheduler.Interval)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info("listening", "addr", cfg.Runner.HTTPAddr)
		if err := http.ListenAndServe(cfg.Runner.HTTPAddr, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("annotata-runner stopped")
}
