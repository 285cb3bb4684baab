package extract

import (
	"github.com/PuerkitoBio/goquery"

	"fundflow-quant/model"
)

// Table 通用表格对象：整页任意表格读成的纯文本单元格矩阵。
type Table struct {
	Rows [][]string
}

// Shape 行数与最大列数。
func (t *Table) Shape() (rows, cols int) {
	rows = len(t.Rows)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return rows, cols
}

// ReadTables 把文档中的所有表格读成单元格矩阵（含表头行）。
func ReadTables(doc *goquery.Document) []*Table {
	var tables []*Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		t := &Table{}
		sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			t.Rows = append(t.Rows, cellTexts(row))
		})
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	})
	return tables
}

// 兜底策略只对尺寸合理的表格动手，避免在页面杂表上空耗
const (
	tabularMinRows = 10
	tabularMinCols = 8
)

// TabularStrategy 末级兜底：对整页表格做按位取列，无表头识别。
// 首格为空的行跳过，名称含表头字样的行丢弃。
type TabularStrategy struct{}

func (s *TabularStrategy) Name() string { return "tabular" }

func (s *TabularStrategy) Extract(src *Source) []model.SectorRecord {
	if src.Document == nil {
		return nil
	}
	for _, table := range ReadTables(src.Document) {
		rows, cols := table.Shape()
		if rows <= tabularMinRows || cols <= tabularMinCols {
			continue
		}
		if records := processTable(table); len(records) > 0 {
			return records
		}
	}
	return nil
}

func processTable(table *Table) []model.SectorRecord {
	var records []model.SectorRecord
	for _, row := range table.Rows {
		if len(row) < minRowCells || row[0] == "" {
			continue
		}
		name := cellAt(row, 1, "未知")
		if name == "" || containsHeaderToken(name) {
			continue
		}
		records = append(records, model.SectorRecord{
			Name:             name,
			ChangeRate:       ExtractFloat(cellAt(row, 2, "0")),
			SuperLargeInflow: ExtractFloat(cellAt(row, 4, "0")),
			SuperLargeRatio:  ExtractFloat(cellAt(row, 5, "0")),
			LargeInflow:      ExtractFloat(cellAt(row, 6, "0")),
			LargeRatio:       ExtractFloat(cellAt(row, 7, "0")),
			MaxStock:         cellAt(row, 9, "未知"),
		})
	}
	return records
}

func cellAt(row []string, idx int, fallback string) string {
	if idx < 0 || idx >= len(row) {
		return fallback
	}
	return row[idx]
}
