// Package extract 实现板块资金流数据的多路提取：接口 JSON、HTML 表格、
// 正则文本、通用表格兜底，按固定优先级依次尝试。
package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"fundflow-quant/model"
)

// ErrInsufficientData 所有策略跑完仍不足最小记录数。
// 多半是临时性反爬响应而非真实空数据，由外层重试机制处理。
var ErrInsufficientData = errors.New("extract: insufficient sector records")

// Source 一次抓取得到的原始素材，各字段允许为空，策略各取所需。
type Source struct {
	APIBody  []byte            // push2 接口原始响应
	Document *goquery.Document // 页面 DOM
	PageText string            // 页面原始文本
}

// Strategy 提取策略：输入原始素材，输出板块记录列表（可为空），不产生副作用。
type Strategy interface {
	Name() string
	Extract(src *Source) []model.SectorRecord
}

// headerTokens 表头/标签字面量。行名命中即判定为串进数据区的表头行，丢弃。
var headerTokens = []string{"净占比", "名称", "板块", "行业"}

func isHeaderToken(name string) bool {
	for _, t := range headerTokens {
		if name == t {
			return true
		}
	}
	return false
}

func containsHeaderToken(name string) bool {
	for _, t := range headerTokens {
		if strings.Contains(name, t) {
			return true
		}
	}
	return strings.Contains(name, "nan")
}

// Orchestrator 按固定顺序执行策略，首个达到最小记录数的结果胜出。
type Orchestrator struct {
	strategies []Strategy
	minRecords int
	log        *logrus.Entry
}

func NewOrchestrator(minRecords int, strategies ...Strategy) *Orchestrator {
	return &Orchestrator{
		strategies: strategies,
		minRecords: minRecords,
		log:        logrus.WithField("module", "extract"),
	}
}

// DefaultOrchestrator 按规格固定的优先级组装：接口 → HTML表格 → 正则文本 → 表格兜底。
func DefaultOrchestrator(minRecords int) *Orchestrator {
	return NewOrchestrator(minRecords,
		&APIStrategy{},
		&HTMLTableStrategy{},
		&RegexTextStrategy{},
		&TabularStrategy{},
	)
}

// Run 依次尝试各策略，返回首个足量结果及策略名。
// 全部不足时返回 ErrInsufficientData，绝不以伪造数据兜底。
func (o *Orchestrator) Run(src *Source) ([]model.SectorRecord, string, error) {
	for _, s := range o.strategies {
		records := s.Extract(src)
		o.log.Debugf("策略 %s 提取到 %d 条板块数据", s.Name(), len(records))
		if len(records) >= o.minRecords {
			return records, s.Name(), nil
		}
	}
	return nil, "", ErrInsufficientData
}
