package scoring

import (
	"StockAdvisor/internal/domain/models"
)

// MomentumLookback is the bar index used for three-month momentum, roughly
// 90 trading sessions back from the latest bar.
const MomentumLookback = 89

// SummarizeSeries computes the 1D and 90D moves of a newest-first series and
// the annualized volatility over the same 90-session window. Missing lookback
// bars leave the corresponding change at 0; fewer than three bars leave the
// volatility unknown.
func SummarizeSeries(symbol string, bars []models.DailyBar) models.TimeSeriesSummary {
	out := models.TimeSeriesSummary{Symbol: symbol, DataPoints: len(bars)}
	if len(bars) == 0 {
		return out
	}
	out.LastClose = bars[0].AdjustedClose
	if len(bars) > 1 {
		out.PercentChange1D = PercentChange(out.LastClose, bars[1].AdjustedClose)
	}
	if len(bars) > MomentumLookback {
		out.PercentChange90D = PercentChange(out.LastClose, bars[MomentumLookback].AdjustedClose)
	}
	window := bars
	if len(window) > MomentumLookback+1 {
		window = window[:MomentumLookback+1]
	}
	if returns := LogReturns(window); len(returns) >= 2 {
		out.AnnualizedVolatility = models.Float(RealizedVolatility(returns, len(returns), TradingDaysPerYear))
	}
	return out
}

// BuildSnapshot assembles scoring inputs from whatever upstream data is
// available. A nil overview or a short series leaves the fields unknown.
func BuildSnapshot(symbol string, overview *models.CompanyOverview, bars []models.DailyBar) models.StockSnapshot {
	snap := models.StockSnapshot{Symbol: symbol}
	if overview != nil {
		if overview.PERatio > 0 {
			snap.PERatio = models.Float(overview.PERatio)
		}
		if overview.DividendYield >= 0 {
			snap.DividendYield = models.Float(overview.DividendYield)
		}
		if g, ok := value(overview.EarningsGrowth); ok {
			snap.EarningsGrowth = models.Float(g)
		}
	}
	if len(bars) > MomentumLookback {
		summary := SummarizeSeries(symbol, bars)
		snap.Momentum3M = models.Float(summary.PercentChange90D / 100)
	}
	return snap
}
