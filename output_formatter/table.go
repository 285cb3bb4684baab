package output_formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"fundflow-quant/model"
)

// PrintSectorTable 控制台输出入选板块概览。
func PrintSectorTable(top []model.SectorRecord) {
	renderSectorTable(os.Stdout, top)
}

func renderSectorTable(w io.Writer, top []model.SectorRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "板块", "涨跌幅%", "超大单(亿)", "大单(亿)", "主力合计(亿)", "流入最大股"})
	for i, s := range top {
		t.AppendRow(table.Row{
			i + 1, s.Name,
			fmt.Sprintf("%.2f", s.ChangeRate),
			fmt.Sprintf("%.2f", s.SuperLargeInflow),
			fmt.Sprintf("%.2f", s.LargeInflow),
			fmt.Sprintf("%.2f", s.MainInflow()),
			s.MaxStock,
		})
	}
	t.Render()
}

// PrintSelectionTable 控制台输出选股结果。
func PrintSelectionTable(report model.SelectionReport) {
	renderSelectionTable(os.Stdout, report)
}

func renderSelectionTable(w io.Writer, report model.SelectionReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("因子选股 Top %d (%s)", report.TotalSelected, report.FactorType))
	t.AppendHeader(table.Row{"名次", "代码", "名称", "板块", "现价", "涨跌幅%", "主力净流入(亿)", "得分"})
	for _, s := range report.SelectedStocks {
		t.AppendRow(table.Row{
			s.Rank, s.Code, s.Name, s.Sector,
			fmt.Sprintf("%.2f", s.Price),
			fmt.Sprintf("%.2f", s.ChangeRate),
			fmt.Sprintf("%.2f", s.MainInflow),
			fmt.Sprintf("%.2f", activeScore(s, report.FactorType)),
		})
	}
	t.Render()
}
