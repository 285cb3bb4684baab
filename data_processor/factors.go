package data_processor

import (
	"math"
	"sort"

	"fundflow-quant/model"
)

// DefaultReversalThreshold 未提供市场中位数时的反转阈值（涨幅百分比）。
const DefaultReversalThreshold = 5.0

// DynamicReversalThreshold 按市场中位数涨跌幅动态调整反转阈值：
// 市场整体波动越大，越晚切入反转策略。
func DynamicReversalThreshold(marketMedianChange float64) float64 {
	return math.Max(3.0, math.Abs(marketMedianChange)*2)
}

// MedianChangeRate 全市场样本的涨跌幅中位数。
func MedianChangeRate(stocks []model.StockRecord) float64 {
	if len(stocks) == 0 {
		return 0
	}
	rates := make([]float64, len(stocks))
	for i, s := range stocks {
		rates[i] = s.ChangeRate
	}
	sort.Float64s(rates)
	mid := len(rates) / 2
	if len(rates)%2 == 0 {
		return (rates[mid-1] + rates[mid]) / 2
	}
	return rates[mid]
}

// MomentumFactor 动量/反转复合因子。
// 涨幅超过阈值走反转（杀高），跌幅超过 -2% 走反转（捡低），中间区间走动量，
// 三个分支均叠加资金强度、超大单强度与量比项，最后乘以低价修正并钳制到 [-100,100]。
func MomentumFactor(s *model.StockRecord, reversalThreshold float64) float64 {
	fund := fundStrength(s)
	superLarge := 0.5*s.SuperLargeInflow + 0.5*s.SuperLargeRatio
	volume := volumeFactor(s.VolumeRatio)

	var score float64
	switch {
	case s.ChangeRate > reversalThreshold:
		score = -0.5*s.ChangeRate + 1.5*fund + 1.0*superLarge + 0.5*volume
	case s.ChangeRate < -2.0:
		score = 0.8*math.Abs(s.ChangeRate) + 1.0*fund + 0.8*superLarge + 0.8*volume
	default:
		score = 1.2*s.ChangeRate + 1.5*fund + 1.2*superLarge + 1.0*volume
	}

	// 低价股弹性更大，非线性加成
	priceFactor := 100 / (s.Price + 50)
	score *= 1 + 0.2*priceFactor

	return clamp(score, -100, 100)
}

// 15日因子的分支阈值
const (
	reversalDownMom5 = 15.0
	reversalUpMom5   = -10.0
	momentum15Bars   = 15
)

// Momentum15Factor 基于 15 日历史的动量/反转因子，历史不足 15 根返回 0。
// 用波动率、量比与资金流做三重确认，输出钳制到 [-50,50]。
func Momentum15Factor(s *model.StockRecord) float64 {
	bars := s.HistoryPrices
	if len(bars) < momentum15Bars {
		return 0
	}

	mom5 := percentChange(bars[0].Close, bars[4].Close)
	mom10 := percentChange(bars[0].Close, bars[9].Close)
	pos := rangePosition(s.Price, bars[:momentum15Bars])

	volFactor := math.Min(1, 0.3/(s.Volatility+0.1))
	volumeConfirm := s.VolumeRatio
	if volumeConfirm <= 0 {
		volumeConfirm = 1
	}
	if volumeConfirm > 2 {
		volumeConfirm = 2
	}
	fundConfirm := 1 + s.MainRatio*0.1

	var base float64
	switch {
	case mom5 > reversalDownMom5:
		// 短线过热，反转做空倾向；高位时加重
		base = -0.5 * mom5
		if pos > 80 {
			base = -0.8 * mom5
		}
	case mom5 < reversalUpMom5:
		// 短线超跌，反转做多倾向；低位时加重
		base = 0.5 * math.Abs(mom5)
		if pos < 20 {
			base = 0.8 * math.Abs(mom5)
		}
	default:
		// 动量延续，10 日方向一致时加权
		if mom10 > 0 {
			base = 1.2 * mom5
		} else {
			base = 0.8 * mom5
		}
	}

	score := base*volFactor*volumeConfirm*fundConfirm + pos*0.1
	return clamp(score, -50, 50)
}

// TrendFactor 均线趋势因子：排列 + 发散 + 突破三项合成。
// 缺任一均线或价格非正时返回 0。
func TrendFactor(s *model.StockRecord) float64 {
	if s.Price <= 0 || s.MA5 <= 0 || s.MA10 <= 0 || s.MA20 <= 0 {
		return 0
	}

	var alignment float64
	switch {
	case s.MA5 > s.MA10 && s.MA10 > s.MA20:
		alignment = 1.0 // 多头排列
	case s.MA5 > s.MA10:
		alignment = 0.5
	case s.MA10 > s.MA20:
		alignment = 0.3
	case s.MA5 < s.MA10 && s.MA10 < s.MA20:
		alignment = -0.5 // 空头排列
	}

	gap := (percentChange(s.MA5, s.MA10) + percentChange(s.MA10, s.MA20)) / 2
	gap = clamp(gap, -2, 2)

	breaks := 0
	for _, ma := range []float64{s.MA5, s.MA10, s.MA20} {
		if s.Price > ma {
			breaks++
		}
	}
	var breakout float64
	switch breaks {
	case 3:
		breakout = 1.0
	case 2:
		breakout = 0.5
	case 1:
		breakout = 0.0
	default:
		breakout = -0.5
	}

	return clamp(alignment*40+gap*20+breakout*40, -100, 100)
}

// phaseWeights 不同市场阶段下 动量/趋势/量能/资金 四因子的权重。
var phaseWeights = map[string][4]float64{
	model.PhaseUptrend:   {0.40, 0.30, 0.15, 0.15},
	model.PhaseRange:     {0.20, 0.25, 0.25, 0.30},
	model.PhaseDowntrend: {0.15, 0.35, 0.20, 0.30},
}

// PhaseScores phase_composite 因子的合成得分与四个分项。
type PhaseScores struct {
	Composite float64
	Momentum  float64
	Trend     float64
	Volume    float64
	Fund      float64
}

// PhaseComposite 按市场阶段加权合成四因子。未知阶段按震荡市处理。
// 量能与资金因子原始量级较小，先放大 20 倍再加权。
func PhaseComposite(s *model.StockRecord, phase string, reversalThreshold float64) PhaseScores {
	w, ok := phaseWeights[phase]
	if !ok {
		w = phaseWeights[model.PhaseRange]
	}

	scores := PhaseScores{
		Momentum: MomentumFactor(s, reversalThreshold),
		Trend:    TrendFactor(s),
		Volume:   volumeFactor(s.VolumeRatio) * 20,
		Fund:     fundStrength(s) * 20,
	}
	scores.Composite = w[0]*scores.Momentum + w[1]*scores.Trend + w[2]*scores.Volume + w[3]*scores.Fund
	return scores
}

// fundStrength 资金强度：主力净流入(亿)与净占比的加权。
func fundStrength(s *model.StockRecord) float64 {
	return 0.6*s.MainInflow + 0.4*s.MainRatio
}

// volumeFactor 量比项：1 为基准，3 以上折线递增避免巨量失真。
func volumeFactor(ratio float64) float64 {
	if ratio > 3 {
		return 2.0 + (ratio-3.0)*0.2
	}
	return math.Min(3, ratio) - 1
}

// percentChange (a-b)/b*100，b 为 0 时返回 0。
func percentChange(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// rangePosition 现价在区间高低点之间的百分位，区间退化时取 50。
func rangePosition(price float64, bars []model.DailyBar) float64 {
	if len(bars) == 0 {
		return 50
	}
	high, low := bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low && b.Low > 0 {
			low = b.Low
		}
	}
	if high == low {
		return 50
	}
	return clamp((price-low)/(high-low)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
