package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/domain/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"at min", 10, 10, 20, 0},
		{"at max", 20, 10, 20, 1},
		{"midpoint", 15, 10, 20, 0.5},
		{"below range clamps", -5, 10, 20, 0},
		{"above range clamps", 99, 10, 20, 1},
		{"reversed bounds", 15, 20, 10, 0.5},
		{"empty range", 3, 7, 7, 0},
		{"nan value", math.NaN(), 0, 1, 0},
		{"inf bound", 0.5, 0, math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.v, tt.min, tt.max), 1e-12)
		})
	}
}

func TestNormalizeStaysInUnitInterval(t *testing.T) {
	for v := -50.0; v <= 50; v += 0.25 {
		got := Normalize(v, -10, 10)
		if got < 0 || got > 1 {
			t.Fatalf("Normalize(%v) = %v, outside [0,1]", v, got)
		}
	}
}

func TestScoreNormalizedPE(t *testing.T) {
	assert.Equal(t, 25, ScoreNormalizedPE(models.Float(10), models.Float(20)))
	assert.Equal(t, 0, ScoreNormalizedPE(models.Float(30), models.Float(20)))
	assert.Equal(t, 13, ScoreNormalizedPE(models.Float(20), models.Float(20)))
	assert.Equal(t, 0, ScoreNormalizedPE(nil, models.Float(20)))
	assert.Equal(t, 0, ScoreNormalizedPE(models.Float(15), models.Float(0)))
	assert.Equal(t, 0, ScoreNormalizedPE(models.Float(-4), models.Float(20)))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, -2, roundHalfUp(-2.5))
	assert.Equal(t, -3, roundHalfUp(-2.6))
	assert.Equal(t, 0, roundHalfUp(0.49))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentChange(110, 100), 1e-9)
	assert.Equal(t, 0.0, PercentChange(110, 0))
	assert.Equal(t, 0.0, PercentChange(110, math.NaN()))
}

func TestBuildSnapshot(t *testing.T) {
	bars := make([]models.DailyBar, 100)
	for i := range bars {
		bars[i] = models.DailyBar{AdjustedClose: 100}
	}
	bars[0].AdjustedClose = 110

	ov := &models.CompanyOverview{Symbol: "IBM", PERatio: 21, DividendYield: 0.031, EarningsGrowth: models.Float(0.07)}
	snap := BuildSnapshot("IBM", ov, bars)

	assert.Equal(t, "IBM", snap.Symbol)
	assert.InDelta(t, 21, *snap.PERatio, 1e-12)
	assert.InDelta(t, 0.031, *snap.DividendYield, 1e-12)
	assert.InDelta(t, 0.07, *snap.EarningsGrowth, 1e-12)
	assert.InDelta(t, 0.1, *snap.Momentum3M, 1e-12)

	bare := BuildSnapshot("IBM", &models.CompanyOverview{PERatio: 0}, bars[:10])
	assert.Nil(t, bare.PERatio)
	assert.Nil(t, bare.Momentum3M)
	assert.Nil(t, bare.EarningsGrowth)
}

func TestSummarizeSeries(t *testing.T) {
	assert.Equal(t, models.TimeSeriesSummary{Symbol: "X"}, SummarizeSeries("X", nil))

	s := SummarizeSeries("X", []models.DailyBar{{AdjustedClose: 102}, {AdjustedClose: 100}})
	assert.Equal(t, 2, s.DataPoints)
	assert.InDelta(t, 2.0, s.PercentChange1D, 1e-9)
	assert.Equal(t, 0.0, s.PercentChange90D)
	assert.Nil(t, s.AnnualizedVolatility)
}

func TestLogReturns(t *testing.T) {
	assert.Nil(t, LogReturns([]models.DailyBar{{AdjustedClose: 1}}))

	got := LogReturns([]models.DailyBar{{AdjustedClose: 121}, {AdjustedClose: 0}, {AdjustedClose: 100}})
	assert.Equal(t, []float64{0, 0}, got)

	got = LogReturns([]models.DailyBar{{AdjustedClose: 121}, {AdjustedClose: 110}, {AdjustedClose: 100}})
	require.Len(t, got, 2)
	assert.InDelta(t, math.Log(1.1), got[0], 1e-12)
	assert.InDelta(t, math.Log(1.1), got[1], 1e-12)
}

func TestRealizedVolatility(t *testing.T) {
	r := math.Log(1.1)
	assert.Equal(t, 0.0, RealizedVolatility([]float64{r}, 2, TradingDaysPerYear))
	assert.InDelta(t, 0.0, RealizedVolatility([]float64{r, r}, 2, TradingDaysPerYear), 1e-9)
	assert.InDelta(t, math.Sqrt(2*r*r*TradingDaysPerYear), RealizedVolatility([]float64{0.5, r, -r}, 2, TradingDaysPerYear), 1e-9)
}

func TestSummarizeSeries_Volatility(t *testing.T) {
	s := SummarizeSeries("X", []models.DailyBar{{AdjustedClose: 100}, {AdjustedClose: 110}, {AdjustedClose: 100}})
	require.NotNil(t, s.AnnualizedVolatility)
	r := math.Log(1.1)
	assert.InDelta(t, math.Sqrt(2*r*r*TradingDaysPerYear), *s.AnnualizedVolatility, 1e-9)

	bars := make([]models.DailyBar, 120)
	for i := range bars {
		bars[i].AdjustedClose = 100
	}
	bars[len(bars)-1].AdjustedClose = 50
	s = SummarizeSeries("X", bars)
	require.NotNil(t, s.AnnualizedVolatility)
	assert.Equal(t, 0.0, *s.AnnualizedVolatility, "bars past the 90-session window are ignored")
}
