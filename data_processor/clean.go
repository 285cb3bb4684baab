// Package data_processor 负责个股数据清洗、技术指标计算与因子打分。
package data_processor

import (
	"math"

	"fundflow-quant/extract"
	"fundflow-quant/model"
)

// 字段合理性上限：超过视为脏数据（例如时间戳串进了价格字段），归零处理
const sanityCeiling = 999999

// CleanNumeric 把接口返回的原始文本清洗为 float64。
// 占位符（"-"、"--"、"None"、空串）与无数字文本归 0，超出合理上限的值归 0。
func CleanNumeric(raw string) float64 {
	return ClampNumeric(extract.ExtractFloat(raw))
}

// ClampNumeric 对已是数值的字段做同样的上限检查。
func ClampNumeric(v float64) float64 {
	if math.Abs(v) > sanityCeiling {
		return 0
	}
	return v
}

// CleanStock 清洗单条个股记录并计算衍生字段：
// 价格位置、资金强度、量能与换手状态标签。
func CleanStock(s *model.StockRecord) {
	s.Price = ClampNumeric(s.Price)
	s.OpenPrice = ClampNumeric(s.OpenPrice)
	s.HighPrice = ClampNumeric(s.HighPrice)
	s.LowPrice = ClampNumeric(s.LowPrice)
	s.ChangeRate = ClampNumeric(s.ChangeRate)
	s.Volume = ClampNumeric(s.Volume)
	s.Amount = ClampNumeric(s.Amount)
	s.TurnoverRate = ClampNumeric(s.TurnoverRate)
	s.VolumeRatio = ClampNumeric(s.VolumeRatio)
	s.PERatio = ClampNumeric(s.PERatio)
	s.PBRatio = ClampNumeric(s.PBRatio)
	s.MarketCap = ClampNumeric(s.MarketCap)
	s.CirculationCap = ClampNumeric(s.CirculationCap)
	s.MainInflow = ClampNumeric(s.MainInflow)
	s.MainRatio = ClampNumeric(s.MainRatio)
	s.SuperLargeInflow = ClampNumeric(s.SuperLargeInflow)
	s.SuperLargeRatio = ClampNumeric(s.SuperLargeRatio)
	s.LargeInflow = ClampNumeric(s.LargeInflow)
	s.LargeRatio = ClampNumeric(s.LargeRatio)
	s.MediumInflow = ClampNumeric(s.MediumInflow)
	s.SmallInflow = ClampNumeric(s.SmallInflow)

	s.PricePosition = pricePosition(s.Price, s.HighPrice, s.LowPrice)
	s.FundIntensity = fundIntensity(s.MainInflow, s.CirculationCap)

	if s.VolumeRatio > 1 {
		s.VolumeStatus = "expanded"
	} else {
		s.VolumeStatus = "contracted"
	}

	switch {
	case s.TurnoverRate > 10:
		s.TurnoverStatus = "high"
	case s.TurnoverRate > 5:
		s.TurnoverStatus = "medium"
	default:
		s.TurnoverStatus = "low"
	}
}

// pricePosition 现价在当日高低区间内的线性位置，0-100。高低相等时取 50。
func pricePosition(price, high, low float64) float64 {
	if high == low {
		return 50.0
	}
	pos := (price - low) / (high - low) * 100
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}

// fundIntensity 主力净流入占流通市值的千分比刻画资金攻击强度，保留 4 位小数。
func fundIntensity(mainInflow, circulationCap float64) float64 {
	if circulationCap <= 0 {
		return 0
	}
	return math.Round(mainInflow/circulationCap*100*10000) / 10000
}
