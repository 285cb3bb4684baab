package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundflow-quant/model"
)

// FieldMappings 逻辑字段 → 表头关键词列表，用于模糊定位数据列。
var FieldMappings = map[string][]string{
	"name":               {"名称", "板块", "行业"},
	"change_rate":        {"涨跌幅", "涨", "跌幅"},
	"super_large_inflow": {"超大单净流入"},
	"super_large_ratio":  {"超大单净流入净占比"},
	"large_inflow":       {"大单净流入"},
	"large_ratio":        {"大单净流入净占比"},
	"max_stock":          {"主力净流入最大股"},
}

// 关键词匹配的检查顺序：净占比列先于净流入列，
// 避免 "超大单净流入净占比" 表头被 "超大单净流入" 关键词抢先命中。
var fieldMatchOrder = []string{
	"name", "change_rate",
	"super_large_ratio", "super_large_inflow",
	"large_ratio", "large_inflow",
	"max_stock",
}

// 关键词缺席时的默认列号（东方财富板块资金流表的固定布局）
var defaultColumns = map[string]int{
	"name":               1,
	"change_rate":        2,
	"super_large_inflow": 4,
	"super_large_ratio":  5,
	"large_inflow":       6,
	"large_ratio":        7,
	"max_stock":          9,
}

const minRowCells = 8

// HTMLTableStrategy 从页面表格提取板块数据：按表头关键词建列映射，
// 缺失则退回默认列号，逐行经 ExtractFloat 清洗。
type HTMLTableStrategy struct{}

func (s *HTMLTableStrategy) Name() string { return "html-table" }

func (s *HTMLTableStrategy) Extract(src *Source) []model.SectorRecord {
	if src.Document == nil {
		return nil
	}

	tables := findDataTables(src.Document)

	var records []model.SectorRecord
	tables.Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() <= 1 {
			return
		}

		colMap := mapColumns(rows.First())

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := cellTexts(row)
			if len(cells) < minRowCells {
				return
			}
			rec, ok := rowToRecord(cells, colMap)
			if ok {
				records = append(records, rec)
			}
		})
	})
	return records
}

// findDataTables 优先找已知的数据容器，找不到则扫全页表格。
func findDataTables(doc *goquery.Document) *goquery.Selection {
	container := doc.Find("div.data-list")
	if container.Length() == 0 {
		container = doc.Find("#dt_1")
	}
	if container.Length() > 0 {
		return container.Find("table")
	}
	return doc.Find("table")
}

// mapColumns 表头关键词 → 列号映射。每列只归属首个命中的字段。
func mapColumns(headerRow *goquery.Selection) map[string]int {
	colMap := make(map[string]int)
	headerRow.Find("th,td").Each(func(i int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		for _, field := range fieldMatchOrder {
			if _, done := colMap[field]; done {
				continue
			}
			for _, keyword := range FieldMappings[field] {
				if strings.Contains(text, keyword) {
					colMap[field] = i
					return
				}
			}
		}
	})
	return colMap
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

func columnText(cells []string, colMap map[string]int, field, fallback string) string {
	idx, ok := colMap[field]
	if !ok {
		idx = defaultColumns[field]
	}
	if idx < 0 || idx >= len(cells) {
		return fallback
	}
	return cells[idx]
}

// rowToRecord 单行转板块记录。表头行与流入字段非数值的行丢弃；
// 单行解析失败不影响其余行。
func rowToRecord(cells []string, colMap map[string]int) (model.SectorRecord, bool) {
	name := columnText(cells, colMap, "name", "未知")
	if name == "" || isHeaderToken(name) {
		return model.SectorRecord{}, false
	}

	superText := columnText(cells, colMap, "super_large_inflow", "")
	largeText := columnText(cells, colMap, "large_inflow", "")
	if !HasNumeral(superText) || !HasNumeral(largeText) {
		return model.SectorRecord{}, false
	}

	return model.SectorRecord{
		Name:             name,
		ChangeRate:       ExtractFloat(columnText(cells, colMap, "change_rate", "0%")),
		SuperLargeInflow: ExtractFloat(superText),
		SuperLargeRatio:  ExtractFloat(columnText(cells, colMap, "super_large_ratio", "0%")),
		LargeInflow:      ExtractFloat(largeText),
		LargeRatio:       ExtractFloat(columnText(cells, colMap, "large_ratio", "0%")),
		MaxStock:         columnText(cells, colMap, "max_stock", "未知"),
	}, true
}
