// Package service 提供领域服务
package service

import (
	"regexp"
	"sort"
	"strings"
)

// commonSymbols 常见公司/指数名称到代码的映射
var commonSymbols = map[string]string{
	"apple":                "AAPL",
	"microsoft":            "MSFT",
	"google":               "GOOGL",
	"alphabet":             "GOOGL",
	"amazon":               "AMZN",
	"meta":                 "META",
	"facebook":             "META",
	"tesla":                "TSLA",
	"nvidia":               "NVDA",
	"tsmc":                 "TSM",
	"taiwan semiconductor": "TSM",
	"alibaba":              "9988.HK",
	"samsung":              "005930.KS",
	"dow":                  "^DJI",
	"s&p":                  "^GSPC",
	"s&p 500":              "^GSPC",
	"nasdaq":               "^IXIC",
	"nikkei":               "^N225",
	"hang seng":            "^HSI",
	"ftse":                 "^FTSE",
	"dax":                  "^GDAXI",
}

// indexNames 指数代码到展示名称的映射
var indexNames = map[string]string{
	"^DJI":   "Dow Jones Industrial Average",
	"^GSPC":  "S&P 500",
	"^IXIC":  "NASDAQ Composite",
	"^N225":  "Nikkei 225",
	"^HSI":   "Hang Seng Index",
	"^FTSE":  "FTSE 100",
	"^GDAXI": "DAX",
}

// majorIndices 查询未指明标的时使用的默认指数
var majorIndices = []string{"^DJI", "^GSPC", "^IXIC"}

var tickerPattern = regexp.MustCompile(`^[\^]?[A-Z0-9]{1,6}(\.[A-Z]{2})?$`)

// SymbolResolver 从自然语言中解析标的代码
type SymbolResolver struct{}

// NewSymbolResolver 创建标的解析器
func NewSymbolResolver() *SymbolResolver {
	return &SymbolResolver{}
}

// Resolve 将公司/指数名称或代码规范化为标的代码
// 未命中映射时，形如代码的输入原样返回（统一大写），其余返回空
func (r *SymbolResolver) Resolve(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if symbol, ok := commonSymbols[strings.ToLower(s)]; ok {
		return symbol
	}
	upper := strings.ToUpper(s)
	if tickerPattern.MatchString(upper) {
		return upper
	}
	return ""
}

// ExtractSymbols 从查询文本中提取全部命中的标的代码，按出现位置排序
// 没有命中但提到市场/股票时返回三大美股指数
func (r *SymbolResolver) ExtractSymbols(query string) []string {
	q := strings.ToLower(query)

	type match struct {
		symbol string
		pos    int
	}
	var matches []match
	seen := make(map[string]bool)
	for name, symbol := range commonSymbols {
		pos := strings.Index(q, name)
		if pos < 0 {
			continue
		}
		if seen[symbol] {
			// 同一代码命中多个别名时取最靠前的位置
			for i := range matches {
				if matches[i].symbol == symbol && pos < matches[i].pos {
					matches[i].pos = pos
				}
			}
			continue
		}
		matches = append(matches, match{symbol: symbol, pos: pos})
		seen[symbol] = true
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, m.symbol)
	}

	if len(symbols) == 0 && mentionsMarket(q) {
		symbols = append(symbols, majorIndices...)
	}
	return symbols
}

func mentionsMarket(q string) bool {
	for _, kw := range []string{"market", "stock", "index", "indices"} {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// IndexName 返回指数展示名称，未知时返回代码本身
func IndexName(symbol string) string {
	if name, ok := indexNames[symbol]; ok {
		return name
	}
	return symbol
}

// IsIndex 判断是否为指数代码
func IsIndex(symbol string) bool {
	return strings.HasPrefix(symbol, "^")
}
