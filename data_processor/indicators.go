package data_processor

import (
	"math"

	"fundflow-quant/model"
)

// 各技术指标的最小样本门槛
const (
	volatilityMinBars = 10
	rsiPeriod         = 14
)

// EnrichHistory 基于历史K线（最新在前）计算均线、波动率、RSI 等技术指标。
// 样本不足的指标保持零值，调用方按零值跳过。
func EnrichHistory(s *model.StockRecord) {
	bars := s.HistoryPrices
	n := len(bars)
	if n == 0 {
		return
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	s.MA5 = movingAverage(closes, 5)
	s.MA10 = movingAverage(closes, 10)
	s.MA20 = movingAverage(closes, 20)
	s.MA30 = movingAverage(closes, 30)
	s.VolumeMA5 = movingAverage(volumes, 5)
	s.VolumeMA10 = movingAverage(volumes, 10)

	if n >= 2 && closes[1] != 0 {
		s.HistoryChangeRate = (closes[0] - closes[1]) / closes[1] * 100
	}
	if n >= 30 && closes[29] != 0 {
		s.Change30Day = (closes[0] - closes[29]) / closes[29] * 100
	}

	s.HistoryHigh = bars[0].High
	s.HistoryLow = bars[0].Low
	for _, b := range bars[1:] {
		if b.High > s.HistoryHigh {
			s.HistoryHigh = b.High
		}
		if b.Low < s.HistoryLow && b.Low > 0 {
			s.HistoryLow = b.Low
		}
	}

	if n >= volatilityMinBars {
		s.Volatility = annualizedVolatility(closes)
	}
	if n >= rsiPeriod {
		s.RSI = relativeStrength(closes, rsiPeriod)
	}
}

// movingAverage 取最近 window 根K线的简单均值，样本不足返回 0。
func movingAverage(values []float64, window int) float64 {
	if len(values) < window || window <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values[:window] {
		sum += v
	}
	return sum / float64(window)
}

// annualizedVolatility 日收益率总体标准差 × √252。
func annualizedVolatility(closes []float64) float64 {
	var returns []float64
	for i := 0; i+1 < len(closes); i++ {
		if closes[i+1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i+1])/closes[i+1])
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(252)
}

// relativeStrength 经典 RSI：最多取 period 个日间涨跌，
// 平均亏损为 0 时返回 0（视为未计算，避免除零）。
func relativeStrength(closes []float64, period int) float64 {
	deltas := len(closes) - 1
	if deltas > period {
		deltas = period
	}
	if deltas <= 0 {
		return 0
	}

	var gain, loss float64
	for i := 0; i < deltas; i++ {
		d := closes[i] - closes[i+1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(deltas)
	avgLoss := loss / float64(deltas)
	if avgLoss == 0 {
		return 0
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
