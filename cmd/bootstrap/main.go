package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"finance-assistant-api/internal/application/retrieval"
	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/wire"
)

// seedHoldings 初始持仓（示例组合）
var seedHoldings = []entity.Holding{
	{Symbol: "AAPL", Name: "Apple Inc.", Value: 120000, Shares: 500, Sector: "Technology", Region: "North America"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Value: 100000, Shares: 300, Sector: "Technology", Region: "North America"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Value: 90000, Shares: 40, Sector: "Communication Services", Region: "North America"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Value: 85000, Shares: 25, Sector: "Consumer Cyclical", Region: "North America"},
	{Symbol: "TSM", Name: "Taiwan Semiconductor Manufacturing", Value: 40000, Shares: 400, Sector: "Technology", Region: "Asia"},
	{Symbol: "9988.HK", Name: "Alibaba Group Holding", Value: 35000, Shares: 1500, Sector: "Consumer Cyclical", Region: "Asia"},
	{Symbol: "005930.KS", Name: "Samsung Electronics", Value: 30000, Shares: 500, Sector: "Technology", Region: "Asia"},
	{Symbol: "SONY", Name: "Sony Group Corporation", Value: 22000, Shares: 250, Sector: "Technology", Region: "Asia"},
	{Symbol: "ASML", Name: "ASML Holding", Value: 45000, Shares: 70, Sector: "Technology", Region: "Europe"},
	{Symbol: "SAP", Name: "SAP SE", Value: 28000, Shares: 200, Sector: "Technology", Region: "Europe"},
	{Symbol: "SHOP", Name: "Shopify Inc.", Value: 18000, Shares: 150, Sector: "Technology", Region: "North America"},
	{Symbol: "BABA", Name: "Alibaba Group Holding ADR", Value: 15000, Shares: 150, Sector: "Consumer Cyclical", Region: "Asia"},
	{Symbol: "V", Name: "Visa Inc.", Value: 32000, Shares: 150, Sector: "Financial Services", Region: "North America"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Value: 30000, Shares: 200, Sector: "Financial Services", Region: "North America"},
	{Symbol: "HSBC", Name: "HSBC Holdings", Value: 20000, Shares: 400, Sector: "Financial Services", Region: "Europe"},
}

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化依赖（PostgreSQL 必需，Milvus/Embedding 可选）
	deps, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize bootstrap: %v", err)
	}
	defer cleanup()

	// 3. 建表
	fmt.Println("Running schema migration...")
	if err := deps.PgClient.AutoMigrate(
		&entity.Holding{},
		&entity.NewsArticle{},
		&entity.Filing{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	// 4. 写入初始持仓
	fmt.Printf("Seeding %d portfolio holdings...\n", len(seedHoldings))
	for i := range seedHoldings {
		h := seedHoldings[i]
		if err := deps.Portfolio.UpsertHolding(ctx, &h); err != nil {
			log.Fatalf("failed to seed holding %s: %v", h.Symbol, err)
		}
	}

	// 5. 初始化知识库（向量链路可用时）
	if deps.Vector == nil {
		fmt.Println("Milvus not available, skipping knowledge base seeding.")
	} else if !deps.Indexer.Enabled() {
		fmt.Println("Embedding not configured, skipping knowledge base seeding.")
	} else {
		if err := deps.Vector.EnsureKnowledgeCollection(ctx); err != nil {
			log.Fatalf("failed to ensure knowledge collection: %v", err)
		}

		docs := retrieval.SeedDocuments()
		fmt.Printf("Indexing %d knowledge documents...\n", len(docs))
		if err := deps.Indexer.IndexDocuments(ctx, docs); err != nil {
			log.Fatalf("failed to index seed documents: %v", err)
		}
	}

	fmt.Println("Bootstrap completed successfully.")
}
