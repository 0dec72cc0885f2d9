// Package main 数据摄取执行器入口（ingest-worker）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/infrastructure/messaging"
	"finance-assistant-api/internal/wire"
	"finance-assistant-api/pkg/logger"
	"finance-assistant-api/pkg/tracer"
)

const (
	defaultRefreshInterval = 30 * time.Minute
	defaultRefreshLimit    = 10
	dlqAlertThreshold      = 100

	archivePruneInterval = 24 * time.Hour
	archiveMaxAge        = 90 * 24 * time.Hour
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: "ingest-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(ctx) }()

	worker, cleanup, err := wire.InitializeWorker(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize worker", err)
	}
	defer cleanup()

	log := logger.FromContext(ctx)

	// 知识库集合存在性检查（Milvus 可用时）
	if worker.Vector != nil {
		if err := worker.Vector.EnsureKnowledgeCollection(ctx); err != nil {
			log.Warn("ensure knowledge collection failed", "error", err)
		}
	}

	streamCfg := cfg.Messaging.RedisStream

	// 新闻刷新任务消费者
	refreshConsumer := messaging.NewConsumer(worker.RedisClient.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamNewsRefresh,
		Group:         messaging.ConsumerGroupNewsRefresher,
		ConsumerName:  hostnameConsumerName(),
		BlockTimeout:  streamCfg.BlockTimeout,
		ClaimInterval: streamCfg.ClaimInterval,
		RetryLimit:    streamCfg.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    streamCfg.RetryBackoff.Initial,
			Max:        streamCfg.RetryBackoff.Max,
			Multiplier: streamCfg.RetryBackoff.Multiplier,
		},
	})

	refreshConsumer.RegisterHandler("news_refresh", func(ctx context.Context, msg *messaging.Message) error {
		var payload messaging.NewsRefreshMessage
		if err := msg.UnmarshalPayload(&payload); err != nil {
			return err
		}

		limit := payload.Limit
		if limit <= 0 {
			limit = defaultRefreshLimit
		}
		query := payload.Query
		if query == "" {
			query = payload.Symbol
		}

		articles, err := worker.News.Refresh(ctx, query, payload.Symbol, limit)
		if err != nil {
			return err
		}
		logger.Info(ctx, "news refreshed",
			"job_id", payload.JobID,
			"symbol", payload.Symbol,
			"articles", len(articles),
		)
		return nil
	})

	// 知识库索引任务消费者
	indexConsumer := messaging.NewConsumer(worker.RedisClient.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamKnowledgeIndex,
		Group:         messaging.ConsumerGroupKnowledgeIndexer,
		ConsumerName:  hostnameConsumerName(),
		BlockTimeout:  streamCfg.BlockTimeout,
		ClaimInterval: streamCfg.ClaimInterval,
		RetryLimit:    streamCfg.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    streamCfg.RetryBackoff.Initial,
			Max:        streamCfg.RetryBackoff.Max,
			Multiplier: streamCfg.RetryBackoff.Multiplier,
		},
	})

	indexConsumer.RegisterHandler("knowledge_index", func(ctx context.Context, msg *messaging.Message) error {
		if !worker.Indexer.Enabled() {
			// 向量链路未配置时直接确认，避免积压
			logger.Debug(ctx, "vector indexing disabled, skipping", "doc_id", msg.ID)
			return nil
		}

		var payload messaging.KnowledgeIndexMessage
		if err := msg.UnmarshalPayload(&payload); err != nil {
			return err
		}

		return worker.Indexer.IndexDocument(ctx, &entity.KnowledgeDocument{
			ID:     payload.DocID,
			Topic:  payload.Topic,
			Symbol: payload.Symbol,
			Text:   payload.Text,
		})
	})

	if err := refreshConsumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start news refresh consumer", err)
	}
	if err := indexConsumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start knowledge index consumer", err)
	}

	go refreshConsumer.MonitorDLQ(ctx, dlqAlertThreshold)
	go indexConsumer.MonitorDLQ(ctx, dlqAlertThreshold)

	// 定时刷新：按配置周期为每个跟踪标的投递刷新任务
	scheduler, err := startRefreshScheduler(ctx, worker, &streamCfg)
	if err != nil {
		logger.Fatal(ctx, "failed to start refresh scheduler", err)
	}

	log.Info("ingest-worker started",
		"tracked_symbols", len(streamCfg.TrackedSymbols),
		"refresh_interval", refreshInterval(&streamCfg).String(),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("ingest-worker shutting down")
	if scheduler != nil {
		_ = scheduler.Shutdown()
	}
	refreshConsumer.Stop()
	indexConsumer.Stop()
}

func startRefreshScheduler(ctx context.Context, worker *wire.Worker, streamCfg *config.RedisStreamConfig) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	interval := refreshInterval(streamCfg)

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			publishScheduledRefresh(ctx, worker, streamCfg.TrackedSymbols)
		}),
	)
	if err != nil {
		return nil, err
	}

	// 归档清理：每天清理超过保留期的新闻
	_, err = scheduler.NewJob(
		gocron.DurationJob(archivePruneInterval),
		gocron.NewTask(func() {
			pruneNewsArchive(ctx, worker)
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}

func pruneNewsArchive(ctx context.Context, worker *wire.Worker) {
	pruned, err := worker.News.PruneArchive(ctx, archiveMaxAge)
	if err != nil {
		logger.Warn(ctx, "failed to prune news archive", "error", err)
		return
	}
	if pruned > 0 {
		logger.Info(ctx, "news archive pruned", "deleted", pruned, "max_age", archiveMaxAge.String())
	}
}

func publishScheduledRefresh(ctx context.Context, worker *wire.Worker, symbols []string) {
	// 无跟踪标的时刷新大盘新闻
	if len(symbols) == 0 {
		publishRefresh(ctx, worker, "", "financial markets")
		return
	}
	for _, symbol := range symbols {
		publishRefresh(ctx, worker, symbol, symbol)
	}
}

func publishRefresh(ctx context.Context, worker *wire.Worker, symbol, query string) {
	_, err := worker.Producer.PublishNewsRefresh(ctx, &messaging.NewsRefreshMessage{
		JobID:  uuid.NewString(),
		Symbol: symbol,
		Query:  query,
		Limit:  defaultRefreshLimit,
		Reason: "scheduled",
	})
	if err != nil {
		logger.Warn(ctx, "failed to publish scheduled refresh", "symbol", symbol, "error", err)
	}
}

func refreshInterval(streamCfg *config.RedisStreamConfig) time.Duration {
	if streamCfg.RefreshInterval > 0 {
		return streamCfg.RefreshInterval
	}
	return defaultRefreshInterval
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
