package extract

import (
	"github.com/tidwall/gjson"

	"fundflow-quant/model"
)

// 接口返回的资金字段单位为万元，统一折算为亿
const yuanWanToYi = 10000.0

// APIStrategy 解析 push2 行情列表接口的板块资金流数据。
// 字段码：f14 名称 f3 涨跌幅 f66 超大单净流入 f69 超大单净占比
// f72 大单净流入 f75 大单净占比 f204 主力净流入最大股。
type APIStrategy struct{}

func (s *APIStrategy) Name() string { return "api" }

func (s *APIStrategy) Extract(src *Source) []model.SectorRecord {
	if len(src.APIBody) == 0 {
		return nil
	}
	diff := gjson.GetBytes(src.APIBody, "data.diff")
	if !diff.Exists() {
		return nil
	}

	var records []model.SectorRecord
	diff.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("f14").String()
		if name == "" || isHeaderToken(name) {
			return true
		}
		maxStock := item.Get("f204").String()
		if maxStock == "" || maxStock == "-" {
			maxStock = "未知"
		}
		records = append(records, model.SectorRecord{
			Name:             name,
			ChangeRate:       item.Get("f3").Float(),
			SuperLargeInflow: item.Get("f66").Float() / yuanWanToYi,
			SuperLargeRatio:  item.Get("f69").Float(),
			LargeInflow:      item.Get("f72").Float() / yuanWanToYi,
			LargeRatio:       item.Get("f75").Float(),
			MaxStock:         maxStock,
		})
		return true
	})
	return records
}
