// Package wire 提供依赖注入配置
package wire

import (
	"context"

	einoembedding "github.com/cloudwego/eino/components/embedding"

	"finance-assistant-api/internal/application/retrieval"
	"finance-assistant-api/internal/config"
	infraembedding "finance-assistant-api/internal/infrastructure/embedding"
	"finance-assistant-api/internal/infrastructure/marketdata"
	"finance-assistant-api/internal/infrastructure/messaging"
	"finance-assistant-api/internal/infrastructure/persistence/milvus"
	"finance-assistant-api/internal/infrastructure/persistence/postgres"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
	voiceclient "finance-assistant-api/internal/infrastructure/voice"
	"finance-assistant-api/pkg/logger"
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideMilvusClientOptional 提供可选的 Milvus 客户端（不可达时不阻塞启动）
func ProvideMilvusClientOptional(ctx context.Context, cfg *config.Config) (*milvus.Client, func(), error) {
	client, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		logger.Warn(ctx, "milvus not available, vector features disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideMilvusRepositoryOptional 提供可选的 Milvus 仓储
func ProvideMilvusRepositoryOptional(client *milvus.Client) *milvus.Repository {
	if client == nil {
		return nil
	}
	return milvus.NewRepository(client)
}

// ProvideRetrievalVectorRepositoryOptional 提供可选的向量仓储
func ProvideRetrievalVectorRepositoryOptional(repo *milvus.Repository) retrieval.VectorRepository {
	if repo == nil {
		return nil
	}
	return milvus.NewRetrievalVectorRepository(repo)
}

// ProvideEmbedderOptional 提供可选的 Embedder（不可用时禁用向量检索/索引）。
// 配置了自托管 endpoint 时优先走 HTTP 批量客户端，否则使用 openai 适配器。
func ProvideEmbedderOptional(ctx context.Context, cfg *config.Config) (einoembedding.Embedder, error) {
	if cfg.Embedding.Endpoint != "" {
		return infraembedding.NewClient(&cfg.Embedding), nil
	}

	embedder, err := infraembedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		logger.Warn(ctx, "embedding not available, vector features disabled", "error", err.Error())
		return nil, nil
	}
	return embedder, nil
}

// ProvideRetrievalEngine 提供知识库检索引擎
func ProvideRetrievalEngine(cfg *config.Config, embedder einoembedding.Embedder, vectorRepo retrieval.VectorRepository) *retrieval.Engine {
	bs := 0
	if cfg != nil {
		bs = cfg.Embedding.BatchSize
	}
	return retrieval.NewEngine(embedder, vectorRepo, bs)
}

// ProvideRetrievalIndexer 提供知识库索引器
func ProvideRetrievalIndexer(cfg *config.Config, embedder einoembedding.Embedder, vectorRepo retrieval.VectorRepository) *retrieval.Indexer {
	bs := 0
	if cfg != nil {
		bs = cfg.Embedding.BatchSize
	}
	return retrieval.NewIndexer(embedder, vectorRepo, bs)
}

// ProvideMarketDataChain 提供行情数据源降级链
func ProvideMarketDataChain(cfg *config.Config) *marketdata.Chain {
	var live []marketdata.Provider
	if cfg.MarketData.AlphaVantageAPIKey != "" {
		live = append(live, marketdata.NewAlphaVantageProvider(&cfg.MarketData))
	}
	return marketdata.NewChain(&cfg.MarketData, live, marketdata.NewSimulatedProvider())
}

// ProvideVoiceClient 提供语音客户端（未配置时 Enabled 为 false）
func ProvideVoiceClient(cfg *config.Config) *voiceclient.Client {
	return voiceclient.NewClient(&cfg.Voice)
}

// ProvideScraperConfig 提供抓取配置
func ProvideScraperConfig(cfg *config.Config) *config.ScraperConfig {
	return &cfg.Scraper
}

// ProvideMarketDataConfig 提供行情配置
func ProvideMarketDataConfig(cfg *config.Config) *config.MarketDataConfig {
	return &cfg.MarketData
}
