package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finance-assistant-api/internal/domain/entity"
)

func sampleSurprises() []entity.EarningsSurprise {
	return []entity.EarningsSurprise{
		{Symbol: "AAPL", Name: "Apple Inc.", SurprisePercent: 5.2, Sector: "Technology", Date: "2026-08-10"},
		{Symbol: "MSFT", Name: "Microsoft", SurprisePercent: 3.1, Sector: "Technology", Date: "2026-08-11"},
		{Symbol: "XOM", Name: "Exxon Mobil", SurprisePercent: -2.4, Sector: "Energy", Date: "2026-08-12"},
		{Symbol: "JPM", Name: "JPMorgan", SurprisePercent: 1.0, Sector: "Financial Services", Date: "2026-08-13"},
	}
}

func TestAnalyzeCounts(t *testing.T) {
	result := Analyze(sampleSurprises())

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Positive)
	assert.Equal(t, 1, result.Negative)
	assert.InDelta(t, 75.0, result.BeatRate, 1e-9)
	assert.InDelta(t, 1.73, result.AverageSurprise, 1e-9)
}

func TestAnalyzeTopBeatsAndMisses(t *testing.T) {
	result := Analyze(sampleSurprises())

	assert.Len(t, result.TopBeats, 3)
	assert.Equal(t, "AAPL", result.TopBeats[0].Symbol)
	assert.Equal(t, "MSFT", result.TopBeats[1].Symbol)

	assert.Len(t, result.TopMisses, 1)
	assert.Equal(t, "XOM", result.TopMisses[0].Symbol)
}

func TestAnalyzeSectorStats(t *testing.T) {
	result := Analyze(sampleSurprises())

	assert.Len(t, result.SectorStats, 3)

	var tech *SectorStats
	for i := range result.SectorStats {
		if result.SectorStats[i].Sector == "Technology" {
			tech = &result.SectorStats[i]
		}
	}
	assert.NotNil(t, tech)
	assert.Equal(t, 2, tech.Count)
	assert.Equal(t, 2, tech.Positive)
	assert.InDelta(t, 100.0, tech.BeatRate, 1e-9)
	assert.InDelta(t, 4.15, tech.AverageSurprise, 1e-9)
}

func TestAnalyzeInsights(t *testing.T) {
	result := Analyze(sampleSurprises())

	assert.Len(t, result.KeyInsights, 3)
	assert.Contains(t, result.KeyInsights[0], "75.0% of companies beat earnings expectations")
	assert.Contains(t, result.KeyInsights[1], "Apple Inc. had the largest positive surprise at 5.20%")
	assert.Contains(t, result.KeyInsights[2], "Exxon Mobil had the largest negative surprise at -2.40%")
}

func TestAnalyzeEmpty(t *testing.T) {
	result := Analyze(nil)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.TopBeats)
	assert.Empty(t, result.KeyInsights)
	assert.Zero(t, result.BeatRate)
}

func TestAnalyzeUnknownSector(t *testing.T) {
	result := Analyze([]entity.EarningsSurprise{
		{Symbol: "ZZZ", SurprisePercent: 2.0},
	})

	assert.Len(t, result.SectorStats, 1)
	assert.Equal(t, "Unknown", result.SectorStats[0].Sector)
}

func TestFilterSurprisesBySector(t *testing.T) {
	filtered := filterSurprises(sampleSurprises(), 0, "technology")

	assert.Len(t, filtered, 2)
	for _, sp := range filtered {
		assert.Equal(t, "Technology", sp.Sector)
	}
}

func TestFilterSurprisesKeepsUnparseableDates(t *testing.T) {
	surprises := []entity.EarningsSurprise{
		{Symbol: "AAA", SurprisePercent: 1.0, Date: "not-a-date"},
	}

	filtered := filterSurprises(surprises, 7, "")
	assert.Len(t, filtered, 1)
}

func TestTopNLimit(t *testing.T) {
	var surprises []entity.EarningsSurprise
	for i := 0; i < 8; i++ {
		surprises = append(surprises, entity.EarningsSurprise{
			Symbol:          string(rune('A' + i)),
			SurprisePercent: float64(i + 1),
		})
	}

	result := Analyze(surprises)
	assert.Len(t, result.TopBeats, 5)
	assert.InDelta(t, 8.0, result.TopBeats[0].SurprisePercent, 1e-9)
}
