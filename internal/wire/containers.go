package wire

import (
	"finance-assistant-api/internal/application/news"
	"finance-assistant-api/internal/application/portfolio"
	"finance-assistant-api/internal/application/retrieval"
	"finance-assistant-api/internal/infrastructure/messaging"
	"finance-assistant-api/internal/infrastructure/persistence/postgres"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
)

// Worker ingest-worker 依赖容器
type Worker struct {
	RedisClient *redis.Client
	Producer    *messaging.Producer
	News        *news.Service
	Indexer     *retrieval.Indexer
	Vector      retrieval.VectorRepository
}

// Bootstrap 初始化工具依赖容器
type Bootstrap struct {
	PgClient  *postgres.Client
	Portfolio *portfolio.Service
	Indexer   *retrieval.Indexer
	Vector    retrieval.VectorRepository
}
