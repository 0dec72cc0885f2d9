package language

import (
	"fmt"
	"strings"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/domain/entity"
)

// ComposeTemplate 确定性模板组稿：不依赖任何外部模型，
// 相同输入产生相同回答。
func ComposeTemplate(in *ComposeInput) string {
	switch in.Intent {
	case "quote":
		return quoteAnswer(in)
	case "portfolio":
		return portfolioAnswer(in.Exposure)
	case "earnings":
		return earningsAnswer(in.Earnings)
	case "market", "brief":
		return marketAnswer(in)
	case "news":
		return newsAnswer(in.News, in.Sentiment)
	case "filings":
		return filingsAnswer(in.Filings)
	}
	return genericAnswer(in)
}

func quoteAnswer(in *ComposeInput) string {
	if len(in.Quotes) == 0 {
		return "I could not find a quote for that symbol."
	}

	parts := make([]string, 0, len(in.Quotes)+1)
	for _, q := range in.Quotes {
		direction := "up"
		if q.Change < 0 {
			direction = "down"
		}
		parts = append(parts, fmt.Sprintf("%s is trading at %.2f, %s %.2f%% today.",
			q.Symbol, q.Price, direction, abs(q.ChangePercent)))
	}
	if in.Overview != nil {
		parts = append(parts, fmt.Sprintf("%s operates in the %s sector and is listed on %s.",
			in.Overview.Name, in.Overview.Sector, in.Overview.Exchange))
	}
	return strings.Join(parts, " ")
}

func portfolioAnswer(exposure *entity.PortfolioExposure) string {
	if exposure == nil {
		return "I don't have portfolio data available right now."
	}

	parts := make([]string, 0, 4)
	if exposure.FilteredPercentage > 0 && exposure.FilteredPercentage < 100 {
		parts = append(parts, fmt.Sprintf("This allocation is %.1f%% of your total portfolio value ($%s).",
			exposure.FilteredPercentage, formatMoney(exposure.TotalValue)))
	} else {
		parts = append(parts, fmt.Sprintf("Your total portfolio value is $%s.", formatMoney(exposure.TotalValue)))
	}

	if len(exposure.SectorAllocation) > 0 {
		parts = append(parts, "Top sectors: "+allocationLine(exposure.SectorAllocation, 3)+".")
	}
	if len(exposure.RegionAllocation) > 0 {
		parts = append(parts, "Top regions: "+allocationLine(exposure.RegionAllocation, 3)+".")
	}
	if len(exposure.Holdings) > 0 {
		top := exposure.Holdings
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, 0, len(top))
		for _, h := range top {
			label := h.Name
			if label == "" {
				label = h.Symbol
			}
			names = append(names, fmt.Sprintf("%s (%.1f%%)", label, h.Weight))
		}
		parts = append(parts, "Top holdings: "+strings.Join(names, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func earningsAnswer(a *analysis.EarningsAnalysis) string {
	if a == nil || a.Total == 0 {
		return "There are no earnings surprises matching your criteria."
	}

	parts := make([]string, 0, 3)
	scope := "Overall"
	if a.FocusSector != "" {
		scope = "In the " + a.FocusSector + " sector"
	}
	parts = append(parts, fmt.Sprintf("%s, %.1f%% of companies beat earnings expectations.", scope, a.BeatRate))

	if len(a.TopBeats) > 0 {
		b := a.TopBeats[0]
		parts = append(parts, fmt.Sprintf("The biggest positive surprise was %s, which beat estimates by %.1f%%.",
			surpriseName(b), b.SurprisePercent))
	}
	if len(a.TopMisses) > 0 {
		m := a.TopMisses[0]
		parts = append(parts, fmt.Sprintf("The biggest negative surprise was %s, which missed estimates by %.1f%%.",
			surpriseName(m), abs(m.SurprisePercent)))
	}
	return strings.Join(parts, " ")
}

func marketAnswer(in *ComposeInput) string {
	summary := in.Summary
	if summary == nil {
		return "I don't have market data available right now."
	}

	parts := make([]string, 0, 6)
	if in.Sentiment != nil {
		parts = append(parts, fmt.Sprintf("Overall market sentiment today is %s.", in.Sentiment.Sentiment))
	}

	for i, idx := range summary.Indices {
		if i >= 3 {
			break
		}
		direction := "up"
		if idx.ChangePercent < 0 {
			direction = "down"
		}
		parts = append(parts, fmt.Sprintf("%s is %s %.2f%% today.", idx.Name, direction, abs(idx.ChangePercent)))
	}

	if len(summary.Sectors) > 0 {
		best := summary.Sectors[0]
		worst := summary.Sectors[0]
		for _, s := range summary.Sectors[1:] {
			if s.ChangePercent > best.ChangePercent {
				best = s
			}
			if s.ChangePercent < worst.ChangePercent {
				worst = s
			}
		}
		parts = append(parts, fmt.Sprintf("The best performing sector is %s (%.2f%%).", best.Sector, best.ChangePercent))
		parts = append(parts, fmt.Sprintf("The worst performing sector is %s (%.2f%%).", worst.Sector, worst.ChangePercent))
	}
	return strings.Join(parts, " ")
}

func newsAnswer(articles []*entity.NewsArticle, sentiment *entity.SentimentReport) string {
	if len(articles) == 0 {
		return "I could not find any recent news on that topic."
	}

	var sb strings.Builder
	sb.WriteString("Here are the latest headlines:\n")
	for i, a := range articles {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, a.Title, a.Source)
	}
	if sentiment != nil {
		fmt.Fprintf(&sb, "Overall sentiment is %s (score %.2f).", sentiment.Sentiment, sentiment.Score)
	}
	return strings.TrimSpace(sb.String())
}

func filingsAnswer(filings []*entity.Filing) string {
	if len(filings) == 0 {
		return "I could not find any recent filings for that symbol."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent filings for %s:\n", filings[0].Symbol)
	for i, f := range filings {
		fmt.Fprintf(&sb, "%d. %s filed on %s\n", i+1, f.Title, f.FiledAt.Format("2006-01-02"))
	}
	return strings.TrimSpace(sb.String())
}

func genericAnswer(in *ComposeInput) string {
	if in.Context != "" {
		// 有召回上下文时至少把知识库内容回给用户
		return "Here is what I found:\n" + in.Context
	}
	if in.Summary != nil {
		return marketAnswer(in)
	}
	return "I can help with market quotes, portfolio exposure, earnings surprises, news, and SEC filings. Could you rephrase your question?"
}

func allocationLine(allocations []entity.Allocation, n int) string {
	if len(allocations) > n {
		allocations = allocations[:n]
	}
	parts := make([]string, 0, len(allocations))
	for _, a := range allocations {
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", a.Key, a.Percent))
	}
	return strings.Join(parts, ", ")
}

func surpriseName(sp entity.EarningsSurprise) string {
	if sp.Name != "" {
		return sp.Name
	}
	return sp.Symbol
}

func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := sb.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
