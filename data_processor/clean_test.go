package data_processor

import (
	"testing"

	"fundflow-quant/model"
)

func TestCleanNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{"-5.6%", -5.6},
		{"-", 0},
		{"--", 0},
		{"None", 0},
		{"", 0},
		{"1756608000", 0}, // 时间戳串进数值字段，超上限归零
	}
	for _, c := range cases {
		if got := CleanNumeric(c.in); got != c.want {
			t.Errorf("CleanNumeric(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCleanStockDerivedFields(t *testing.T) {
	s := &model.StockRecord{
		Price:          12.0,
		HighPrice:      14.0,
		LowPrice:       10.0,
		VolumeRatio:    1.5,
		TurnoverRate:   7.2,
		MainInflow:     2.5,
		CirculationCap: 500,
	}
	CleanStock(s)

	if s.PricePosition != 50.0 {
		t.Errorf("price_position = %v, want 50 (midpoint)", s.PricePosition)
	}
	if s.FundIntensity != 0.5 {
		t.Errorf("fund_intensity = %v, want 0.5", s.FundIntensity)
	}
	if s.VolumeStatus != "expanded" {
		t.Errorf("volume_status = %q, want expanded", s.VolumeStatus)
	}
	if s.TurnoverStatus != "medium" {
		t.Errorf("turnover_status = %q, want medium", s.TurnoverStatus)
	}
}

func TestCleanStockFlatRange(t *testing.T) {
	s := &model.StockRecord{Price: 9.99, HighPrice: 9.99, LowPrice: 9.99}
	CleanStock(s)
	if s.PricePosition != 50.0 {
		t.Errorf("flat high/low must give price_position 50, got %v", s.PricePosition)
	}
	if s.VolumeStatus != "contracted" || s.TurnoverStatus != "low" {
		t.Errorf("zero ratios must give contracted/low, got %q/%q", s.VolumeStatus, s.TurnoverStatus)
	}
}

func TestCleanStockSanityCeiling(t *testing.T) {
	s := &model.StockRecord{Price: 1756608000, TurnoverRate: 3}
	CleanStock(s)
	if s.Price != 0 {
		t.Errorf("corrupt price must reset to 0, got %v", s.Price)
	}
}

func TestCleanStockZeroCirculation(t *testing.T) {
	s := &model.StockRecord{MainInflow: 3.0, CirculationCap: 0}
	CleanStock(s)
	if s.FundIntensity != 0 {
		t.Errorf("fund_intensity with zero cap = %v, want 0", s.FundIntensity)
	}
}
