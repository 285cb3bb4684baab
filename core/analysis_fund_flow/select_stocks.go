package core

import (
	"fmt"
	"sort"
	"time"

	"fundflow-quant/config"
	"fundflow-quant/data_processor"
	"fundflow-quant/model"
)

// SelectStocks 对全部候选股按配置的因子打分，降序取前 N。
// 反转阈值由全市场涨跌幅中位数动态调整。
func SelectStocks(cfg *config.Config, stocks []model.StockRecord) model.SelectionReport {
	fmt.Printf("🧮 [Step 3] 因子打分 (%s)，候选 %d 只...\n", cfg.Selection.FactorType, len(stocks))

	median := data_processor.MedianChangeRate(stocks)
	threshold := data_processor.DynamicReversalThreshold(median)

	scored := make([]model.ScoredStock, 0, len(stocks))
	for i := range stocks {
		scored = append(scored, scoreStock(&stocks[i], cfg.Selection, threshold))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return activeScore(scored[i], cfg.Selection.FactorType) >
			activeScore(scored[j], cfg.Selection.FactorType)
	})

	topN := cfg.Selection.TopN
	if topN > len(scored) {
		topN = len(scored)
	}
	selected := scored[:topN]
	for i := range selected {
		selected[i].Rank = i + 1
	}

	report := model.SelectionReport{
		SelectionTime:  time.Now().Format("2006-01-02 15:04:05"),
		TotalSelected:  len(selected),
		FactorType:     cfg.Selection.FactorType,
		SelectedStocks: selected,
	}
	if cfg.Selection.FactorType == model.FactorPhaseComposite {
		report.MarketPhase = cfg.Selection.MarketPhase
	}
	return report
}

// scoreStock 按因子类型给单只股票打分，未知类型按基础动量因子处理。
func scoreStock(s *model.StockRecord, sel config.SelectionConfig, threshold float64) model.ScoredStock {
	scored := model.ScoredStock{StockRecord: *s}
	switch sel.FactorType {
	case model.FactorMomentum15Day:
		scored.Momentum15Score = data_processor.Momentum15Factor(s)
	case model.FactorPhaseComposite:
		ps := data_processor.PhaseComposite(s, sel.MarketPhase, threshold)
		scored.Phase = sel.MarketPhase
		scored.PhaseScore = ps.Composite
		scored.MomentumSubScore = ps.Momentum
		scored.TrendSubScore = ps.Trend
		scored.VolumeSubScore = ps.Volume
		scored.FundSubScore = ps.Fund
	default:
		scored.MomentumScore = data_processor.MomentumFactor(s, threshold)
	}
	return scored
}

// activeScore 当前因子类型下用于排序的得分。
func activeScore(s model.ScoredStock, factorType string) float64 {
	switch factorType {
	case model.FactorMomentum15Day:
		return s.Momentum15Score
	case model.FactorPhaseComposite:
		return s.PhaseScore
	default:
		return s.MomentumScore
	}
}
