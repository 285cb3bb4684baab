package data_processor

import (
	"math"
	"testing"

	"fundflow-quant/model"
)

// barsFromCloses 构造最新在前的合成日线，高低点围绕收盘价摆动。
func barsFromCloses(closes ...float64) []model.DailyBar {
	bars := make([]model.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = model.DailyBar{
			Date:   "2025-01-01",
			Open:   c,
			Close:  c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Volume: 1000,
		}
	}
	return bars
}

func TestEnrichHistoryMovingAverages(t *testing.T) {
	s := &model.StockRecord{
		HistoryPrices: barsFromCloses(10, 11, 12, 13, 14, 15, 16, 17),
	}
	EnrichHistory(s)

	if s.MA5 != 12 {
		t.Errorf("MA5 = %v, want 12", s.MA5)
	}
	if s.MA10 != 0 {
		t.Errorf("MA10 must stay 0 with 8 bars, got %v", s.MA10)
	}
	if s.MA30 != 0 {
		t.Errorf("MA30 must stay 0 with 8 bars, got %v", s.MA30)
	}
}

func TestEnrichHistoryChangeRates(t *testing.T) {
	s := &model.StockRecord{HistoryPrices: barsFromCloses(10, 8, 9)}
	EnrichHistory(s)

	if math.Abs(s.HistoryChangeRate-25.0) > 1e-9 {
		t.Errorf("day-over-day change = %v, want 25", s.HistoryChangeRate)
	}
	if s.Change30Day != 0 {
		t.Errorf("30-day change needs 30 bars, got %v", s.Change30Day)
	}
	if s.HistoryHigh != 10.5 || s.HistoryLow != 7.5 {
		t.Errorf("history high/low = %v/%v, want 10.5/7.5", s.HistoryHigh, s.HistoryLow)
	}
}

func TestEnrichHistoryVolatility(t *testing.T) {
	flat := &model.StockRecord{
		HistoryPrices: barsFromCloses(10, 10, 10, 10, 10, 10, 10, 10, 10, 10),
	}
	EnrichHistory(flat)
	if flat.Volatility != 0 {
		t.Errorf("constant closes must give zero volatility, got %v", flat.Volatility)
	}

	short := &model.StockRecord{HistoryPrices: barsFromCloses(10, 12, 9, 11, 10)}
	EnrichHistory(short)
	if short.Volatility != 0 {
		t.Errorf("volatility gated on 10 bars, got %v with 5 bars", short.Volatility)
	}

	moving := &model.StockRecord{
		HistoryPrices: barsFromCloses(10, 12, 9, 11, 10, 12, 9, 11, 10, 12),
	}
	EnrichHistory(moving)
	if moving.Volatility <= 0 {
		t.Errorf("moving closes must give positive volatility, got %v", moving.Volatility)
	}
}

func TestEnrichHistoryRSI(t *testing.T) {
	// 涨跌交替且等幅，平均涨=平均跌，RSI 应为 50
	alternating := &model.StockRecord{
		HistoryPrices: barsFromCloses(11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11),
	}
	EnrichHistory(alternating)
	if math.Abs(alternating.RSI-50) > 1e-9 {
		t.Errorf("RSI = %v, want 50", alternating.RSI)
	}

	// 单边上涨没有亏损样本，RSI 保持未计算
	rising := &model.StockRecord{
		HistoryPrices: barsFromCloses(24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10),
	}
	EnrichHistory(rising)
	if rising.RSI != 0 {
		t.Errorf("all-gain window must leave RSI unset, got %v", rising.RSI)
	}
}

func TestEnrichHistoryEmpty(t *testing.T) {
	s := &model.StockRecord{}
	EnrichHistory(s)
	if s.MA5 != 0 || s.Volatility != 0 || s.RSI != 0 {
		t.Errorf("empty history must leave indicators zero: %+v", s)
	}
}

func TestEnrichHistoryVolumeMA(t *testing.T) {
	bars := barsFromCloses(10, 10, 10, 10, 10)
	for i := range bars {
		bars[i].Volume = float64((i + 1) * 100)
	}
	s := &model.StockRecord{HistoryPrices: bars}
	EnrichHistory(s)
	if s.VolumeMA5 != 300 {
		t.Errorf("VolumeMA5 = %v, want 300", s.VolumeMA5)
	}
	if s.VolumeMA10 != 0 {
		t.Errorf("VolumeMA10 gated on 10 bars, got %v", s.VolumeMA10)
	}
}
