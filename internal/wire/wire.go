//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/application/filings"
	"finance-assistant-api/internal/application/language"
	"finance-assistant-api/internal/application/market"
	"finance-assistant-api/internal/application/news"
	"finance-assistant-api/internal/application/orchestrator"
	"finance-assistant-api/internal/application/portfolio"
	"finance-assistant-api/internal/application/voice"
	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/repository"
	"finance-assistant-api/internal/domain/service"
	"finance-assistant-api/internal/infrastructure/llm"
	"finance-assistant-api/internal/infrastructure/persistence/postgres"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
	"finance-assistant-api/internal/infrastructure/scraper"
	"finance-assistant-api/internal/interfaces/http/handler"
	"finance-assistant-api/internal/interfaces/http/middleware"
	"finance-assistant-api/internal/interfaces/http/router"
	"finance-assistant-api/internal/workflow/chain"
	workflowport "finance-assistant-api/internal/workflow/port"
)

// InitializeApp 初始化 API 网关（路由器 + 全部应用服务）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		MessagingSet,
		MilvusAppSet,
		EmbeddingSet,
		RetrievalSet,
		MarketDataSet,
		ScraperSet,
		LLMSet,
		AgentSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeWorker 初始化 ingest-worker 依赖
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		MessagingSet,
		MilvusAppSet,
		EmbeddingSet,
		RetrievalSet,
		ScraperSet,
		news.NewService,
		wire.Struct(new(Worker), "*"),
	)
	return nil, nil, nil
}

// InitializeBootstrap 初始化建库工具依赖
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*Bootstrap, func(), error) {
	wire.Build(
		PostgresSet,
		MilvusAppSet,
		EmbeddingSet,
		RetrievalSet,
		portfolio.NewService,
		wire.Struct(new(Bootstrap), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewNewsRepository,
	postgres.NewHoldingRepository,
	postgres.NewFilingRepository,
	wire.Bind(new(repository.NewsRepository), new(*postgres.NewsRepository)),
	wire.Bind(new(repository.HoldingRepository), new(*postgres.HoldingRepository)),
	wire.Bind(new(repository.FilingRepository), new(*postgres.FilingRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
)

// MilvusAppSet 可选 Milvus（不可达时不阻塞启动）
var MilvusAppSet = wire.NewSet(
	ProvideMilvusClientOptional,
	ProvideMilvusRepositoryOptional,
	ProvideRetrievalVectorRepositoryOptional,
)

// EmbeddingSet 可选 Embedder（不可用时禁用向量检索/索引）
var EmbeddingSet = wire.NewSet(
	ProvideEmbedderOptional,
)

// RetrievalSet 知识库检索引擎与索引器
var RetrievalSet = wire.NewSet(
	ProvideRetrievalEngine,
	ProvideRetrievalIndexer,
)

// MarketDataSet 行情数据源提供者集合
var MarketDataSet = wire.NewSet(
	ProvideMarketDataChain,
	service.NewSymbolResolver,
)

// ScraperSet 抓取器提供者集合
var ScraperSet = wire.NewSet(
	ProvideScraperConfig,
	ProvideMarketDataConfig,
	scraper.NewFetcher,
	scraper.NewNewsScraper,
	scraper.NewFilingsScraper,
	scraper.NewSentimentAnalyzer,
)

// LLMSet LLM 提供者集合
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewMarketBriefChain,
	ProvideVoiceClient,
)

// AgentSet 应用服务提供者集合
var AgentSet = wire.NewSet(
	market.NewService,
	news.NewService,
	filings.NewService,
	portfolio.NewService,
	analysis.NewService,
	language.NewService,
	orchestrator.NewService,
	voice.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewMarketDataHandler,
	handler.NewNewsHandler,
	handler.NewPortfolioHandler,
	handler.NewFilingsHandler,
	handler.NewAnalysisHandler,
	handler.NewQueryHandler,
	handler.NewKnowledgeHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
