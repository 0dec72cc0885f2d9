package orchestrator

import "strings"

// Intent 查询意图
type Intent string

const (
	IntentQuote     Intent = "quote"
	IntentMarket    Intent = "market"
	IntentBrief     Intent = "brief"
	IntentPortfolio Intent = "portfolio"
	IntentEarnings  Intent = "earnings"
	IntentNews      Intent = "news"
	IntentFilings   Intent = "filings"
	IntentGeneric   Intent = "generic"
)

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentBrief, []string{"brief", "morning update", "daily report", "market brief"}},
	{IntentPortfolio, []string{"portfolio", "exposure", "allocation", "holdings", "aum", "my stocks"}},
	{IntentEarnings, []string{"earnings", "surprise", "beat estimate", "missed estimate", "beat", "miss", "estimate", "eps"}},
	{IntentFilings, []string{"filing", "filings", "sec ", "10-k", "10-q", "8-k", "edgar", "annual report"}},
	{IntentNews, []string{"news", "headline", "headlines", "article", "sentiment", "happening"}},
	{IntentQuote, []string{"price", "quote", "trading at", "stock price", "how much is"}},
	{IntentMarket, []string{"market", "indices", "index", "overview", "summary", "sector", "s&p", "nasdaq", "dow"}},
}

// DetectIntent 基于关键词的意图识别，返回意图与置信度。
// 同一查询命中多个意图时，按列表顺序取第一个（brief/portfolio 优先于泛化的 market）。
func DetectIntent(query string) (Intent, float64) {
	q := " " + strings.ToLower(strings.TrimSpace(query)) + " "

	for _, ik := range intentKeywords {
		hits := 0
		for _, kw := range ik.keywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		if hits > 0 {
			conf := 0.55 + 0.15*float64(min(hits, 3))
			if conf > 0.95 {
				conf = 0.95
			}
			return ik.intent, conf
		}
	}
	return IntentGeneric, 0.4
}

// ParseRegion 从查询中提取区域过滤条件
func ParseRegion(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "asia") || strings.Contains(q, "asian"):
		return "Asia"
	case strings.Contains(q, "north america") || strings.Contains(q, "american") || strings.Contains(q, "us "):
		return "North America"
	case strings.Contains(q, "europe") || strings.Contains(q, "european"):
		return "Europe"
	}
	return ""
}

// ParseSector 从查询中提取行业过滤条件
func ParseSector(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "tech"):
		return "Technology"
	case strings.Contains(q, "consumer"):
		return "Consumer Cyclical"
	case strings.Contains(q, "energy"):
		return "Energy"
	case strings.Contains(q, "financial") || strings.Contains(q, "bank"):
		return "Financial Services"
	case strings.Contains(q, "health"):
		return "Healthcare"
	}
	return ""
}
