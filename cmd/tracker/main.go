package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v6"
	"github.com/jkowalczyk/price-tracker/cmd/tracker/config"
	"github.com/jkowalczyk/price-tracker/internal/handler"
	"github.com/jkowalczyk/price-tracker/internal/notifier"
	"github.com/jkowalczyk/price-tracker/internal/platform/rabbitmq"
	"github.com/jkowalczyk/price-tracker/internal/platform/storage"
	"github.com/jkowalczyk/price-tracker/internal/scheduler"
	"github.com/jkowalczyk/price-tracker/internal/scraper"
	"github.com/jkowalczyk/price-tracker/internal/snapshot"
	"github.com/jkowalczyk/price-tracker/internal/tracker"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	httpClient := &http.Client{Timeout: cfg.Scrape.HTTPTimeout}

	scraperOps := []scraper.Option{
		scraper.WithMaxRetries(cfg.Scrape.MaxRetries),
	}
	if cfg.Scrape.RespectRobots {
		scraperOps = append(scraperOps, scraper.WithRobots(httpClient))
	}

	trk := tracker.NewTracker(
		scraper.NewScraper(
			httpClient,
			cfg.Scrape.UserAgent,
			rate.NewLimiter(rate.Limit(cfg.Scrape.RequestsPerSecond), 1),
			scraperOps...,
		),
		snapshot.NewNormalizer(cfg.DefaultCurrency),
		storage.NewPostgres(pgDB),
		notifier.NewRabbitMQNotifier(conn, cfg.RabbitMQ.NotificationRoutingKey),
		&logger,
		cfg.MaxParallel,
		tracker.WithCycleBudget(cfg.CycleBudget),
		tracker.WithDiscountThreshold(cfg.DiscountThreshold),
	)

	han := handler.NewHandler(conn, trk, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.CommandQueue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	sched := scheduler.NewScheduler(trk, &logger)
	if err := sched.Start(ctx, cfg.CycleSchedule); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start cycle scheduler")
	}

	logger.Info().Msg("price tracker up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
