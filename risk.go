package investool

import (
	"fmt"
	"math"
)

// Risk helpers: ATR-based volatility measurement and stop-loss /
// take-profit suggestions for a planned entry. These work on float64
// price history; money amounts elsewhere stay exact decimals.

const (
	// DefaultATRPeriod is the usual lookback for the average true range.
	DefaultATRPeriod = 14
	// DefaultATRMultiplier places the stop loss this many ATRs under the entry.
	DefaultATRMultiplier = 2.0
	// DefaultRRatio is the reward-to-risk ratio for the take profit.
	DefaultRRatio = 2.0
)

// ATR computes the average true range over the last `period` candles.
// The true range of a day is the largest of high-low, |high-prevClose|
// and |low-prevClose|; ATR is its simple moving average.
func ATR(candles []Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("atr period must be positive, got %d", period)
	}
	if len(candles) < period+1 {
		return 0, fmt.Errorf("not enough history for ATR(%d): have %d candles, need %d", period, len(candles), period+1)
	}
	var sum float64
	start := len(candles) - period
	for i := start; i < len(candles); i++ {
		prevClose := candles[i-1].Close
		tr := candles[i].High - candles[i].Low
		tr = math.Max(tr, math.Abs(candles[i].High-prevClose))
		tr = math.Max(tr, math.Abs(candles[i].Low-prevClose))
		sum += tr
	}
	return sum / float64(period), nil
}

// EntryPlan is a suggested position for a planned entry: how many units
// the risk budget allows, and where to place the stop loss and take
// profit.
type EntryPlan struct {
	Entry       float64
	StopLoss    float64
	TakeProfit  float64
	RiskPerUnit float64
	MaxQuantity float64
	MaxLoss     float64
}

// SuggestEntry sizes a position from the maximum acceptable loss. The
// stop loss sits atrMult ATRs under the entry price; the take profit
// mirrors it scaled by the reward-to-risk ratio.
func SuggestEntry(entry, atr, maxLoss, atrMult, rRatio float64) (EntryPlan, error) {
	if entry <= 0 {
		return EntryPlan{}, fmt.Errorf("entry price must be positive, got %g", entry)
	}
	if atr <= 0 {
		return EntryPlan{}, fmt.Errorf("atr must be positive, got %g", atr)
	}
	if maxLoss <= 0 {
		return EntryPlan{}, fmt.Errorf("max loss must be positive, got %g", maxLoss)
	}

	riskPerUnit := atr * atrMult
	stop := entry - riskPerUnit
	if stop < 0 {
		stop = 0
		riskPerUnit = entry
	}
	return EntryPlan{
		Entry:       entry,
		StopLoss:    stop,
		TakeProfit:  entry + riskPerUnit*rRatio,
		RiskPerUnit: riskPerUnit,
		MaxQuantity: maxLoss / riskPerUnit,
		MaxLoss:     maxLoss,
	}, nil
}
