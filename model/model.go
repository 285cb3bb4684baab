// Package model 定义板块资金流、个股、K线与选股结果等数据结构。
package model

// SectorRecord 板块资金流单条记录。资金单位统一为亿元，比率为百分比。
type SectorRecord struct {
	Name             string  `json:"name"`
	ChangeRate       float64 `json:"change_rate"`
	SuperLargeInflow float64 `json:"super_large_inflow"` // 超大单净流入(亿)
	SuperLargeRatio  float64 `json:"super_large_ratio"`  // 超大单净占比(%)
	LargeInflow      float64 `json:"large_inflow"`       // 大单净流入(亿)
	LargeRatio       float64 `json:"large_ratio"`        // 大单净占比(%)
	MaxStock         string  `json:"max_stock"`          // 主力净流入最大股，未知为 "未知"
	URL              string  `json:"url,omitempty"`
}

// MainInflow 主力净流入 = 超大单 + 大单。排序依据。
func (s SectorRecord) MainInflow() float64 {
	return s.SuperLargeInflow + s.LargeInflow
}

// DailyBar 单日 K 线：日期、开收高低、成交量。
type DailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`
}

// StockRecord 个股记录：行情 + 资金流 + 清洗后的衍生字段 + 历史K线与技术指标。
// 数值字段清洗后 0 表示“数据不可用”。
type StockRecord struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Sector string `json:"sector,omitempty"` // 归集进板块时回填

	Price      float64 `json:"price"`
	OpenPrice  float64 `json:"open_price"`
	HighPrice  float64 `json:"high_price"`
	LowPrice   float64 `json:"low_price"`
	ChangeRate float64 `json:"change_rate"`

	Volume         float64 `json:"volume"` // 成交量(万手)
	Amount         float64 `json:"amount"` // 成交额(亿)
	TurnoverRate   float64 `json:"turnover_rate"`
	VolumeRatio    float64 `json:"volume_ratio"`
	PERatio        float64 `json:"pe_ratio"`
	PBRatio        float64 `json:"pb_ratio"`
	MarketCap      float64 `json:"market_cap"`      // 总市值(亿)
	CirculationCap float64 `json:"circulation_cap"` // 流通市值(亿)

	MainInflow       float64 `json:"main_inflow"` // 主力净流入(亿)
	MainRatio        float64 `json:"main_ratio"`
	SuperLargeInflow float64 `json:"super_large_inflow"`
	SuperLargeRatio  float64 `json:"super_large_ratio"`
	LargeInflow      float64 `json:"large_inflow"`
	LargeRatio       float64 `json:"large_ratio"`
	MediumInflow     float64 `json:"medium_inflow"`
	SmallInflow      float64 `json:"small_inflow"`

	// 清洗阶段计算的衍生字段
	PricePosition  float64 `json:"price_position"` // 现价在当日高低区间的位置 0-100
	FundIntensity  float64 `json:"fund_intensity"` // 主力净流入/流通市值*100
	VolumeStatus   string  `json:"volume_status"`  // expanded / contracted
	TurnoverStatus string  `json:"turnover_status"` // high / medium / low

	// 历史K线（最新在前）与技术指标，数据不足时保持零值
	HistoryPrices     []DailyBar `json:"history_prices,omitempty"`
	MA5               float64    `json:"ma5,omitempty"`
	MA10              float64    `json:"ma10,omitempty"`
	MA20              float64    `json:"ma20,omitempty"`
	MA30              float64    `json:"ma30,omitempty"`
	VolumeMA5         float64    `json:"volume_ma5,omitempty"`
	VolumeMA10        float64    `json:"volume_ma10,omitempty"`
	Volatility        float64    `json:"volatility,omitempty"` // 年化波动率
	RSI               float64    `json:"rsi,omitempty"`        // 14日RSI，0 表示未计算
	HistoryChangeRate float64    `json:"history_change_rate,omitempty"`
	Change30Day       float64    `json:"change_30day,omitempty"`
	HistoryHigh       float64    `json:"history_high,omitempty"`
	HistoryLow        float64    `json:"history_low,omitempty"`
}

// ScoredStock 打分后的个股：原始记录 + 因子得分 + 名次。
type ScoredStock struct {
	StockRecord

	Rank int `json:"rank"`

	MomentumScore   float64 `json:"momentum_score,omitempty"`
	Momentum15Score float64 `json:"momentum_15day_score,omitempty"`

	// phase_composite 因子的标签与分项得分，便于追溯
	Phase           string  `json:"phase,omitempty"`
	PhaseScore      float64 `json:"phase_composite_score,omitempty"`
	MomentumSubScore float64 `json:"momentum_sub_score,omitempty"`
	TrendSubScore    float64 `json:"trend_sub_score,omitempty"`
	VolumeSubScore   float64 `json:"volume_sub_score,omitempty"`
	FundSubScore     float64 `json:"fund_sub_score,omitempty"`
}

// Snapshot 一次爬取的落盘结构。
type Snapshot struct {
	CrawlID      string                   `json:"crawl_id"`
	CrawlTime    string                   `json:"crawl_time"`
	TopSectors   []SectorRecord           `json:"top_sectors"`
	SectorStocks map[string][]StockRecord `json:"sector_stocks,omitempty"`
}

// SelectionReport 选股结果落盘结构。
type SelectionReport struct {
	SelectionTime  string        `json:"selection_time"`
	TotalSelected  int           `json:"total_selected"`
	FactorType     string        `json:"factor_type"`
	MarketPhase    string        `json:"market_phase,omitempty"`
	SelectedStocks []ScoredStock `json:"selected_stocks"`
}

// 因子类型枚举
const (
	FactorMomentum       = "momentum"
	FactorMomentum15Day  = "momentum_15day"
	FactorPhaseComposite = "phase_composite"
)

// 市场阶段枚举（phase_composite 因子的权重档位）
const (
	PhaseUptrend   = "uptrend"
	PhaseRange     = "range"
	PhaseDowntrend = "downtrend"
)
