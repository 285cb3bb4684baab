package output_formatter

import (
	"fmt"
	"html/template"
	"os"

	"fundflow-quant/data_processor"
	"fundflow-quant/model"
)

// ReportData HTML 报告的模板入参。
type ReportData struct {
	Snapshot  model.Snapshot
	Selection model.SelectionReport
	Anomalies []data_processor.VolumeAnomaly
}

var reportFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"cls": func(v float64) string {
		if v < 0 {
			return "down"
		}
		return "up"
	},
	"score": activeScore,
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>板块资金流报告 {{.Snapshot.CrawlTime}}</title>
<style>
body { font-family: "Microsoft YaHei", sans-serif; margin: 24px; background: #f7f7f7; }
h1, h2 { color: #333; }
table { border-collapse: collapse; width: 100%; margin-bottom: 24px; background: #fff; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: right; }
th { background: #b71c1c; color: #fff; }
td:first-child, th:first-child, td.name, th.name { text-align: left; }
.up { color: #d32f2f; }
.down { color: #388e3c; }
.meta { color: #888; font-size: 12px; }
</style>
</head>
<body>
<h1>板块资金流与选股报告</h1>
<p class="meta">爬取时间 {{.Snapshot.CrawlTime}} · 爬取ID {{.Snapshot.CrawlID}}</p>

<h2>主力净流入前列板块</h2>
<table>
<tr><th>#</th><th class="name">板块</th><th>涨跌幅%</th><th>超大单(亿)</th><th>大单(亿)</th><th>主力合计(亿)</th><th class="name">流入最大股</th></tr>
{{range $i, $s := .Snapshot.TopSectors}}
<tr>
<td>{{inc $i}}</td>
<td class="name">{{$s.Name}}</td>
<td class="{{cls $s.ChangeRate}}">{{printf "%.2f" $s.ChangeRate}}</td>
<td>{{printf "%.2f" $s.SuperLargeInflow}}</td>
<td>{{printf "%.2f" $s.LargeInflow}}</td>
<td>{{printf "%.2f" $s.MainInflow}}</td>
<td class="name">{{$s.MaxStock}}</td>
</tr>
{{end}}
</table>

<h2>因子选股 Top {{.Selection.TotalSelected}}（{{.Selection.FactorType}}{{if .Selection.MarketPhase}} / {{.Selection.MarketPhase}}{{end}}）</h2>
<table>
<tr><th>名次</th><th class="name">代码</th><th class="name">名称</th><th class="name">板块</th><th>现价</th><th>涨跌幅%</th><th>主力净流入(亿)</th><th>得分</th></tr>
{{range .Selection.SelectedStocks}}
<tr>
<td>{{.Rank}}</td>
<td class="name">{{.Code}}</td>
<td class="name">{{.Name}}</td>
<td class="name">{{.Sector}}</td>
<td>{{printf "%.2f" .Price}}</td>
<td class="{{cls .ChangeRate}}">{{printf "%.2f" .ChangeRate}}</td>
<td>{{printf "%.2f" .MainInflow}}</td>
<td>{{printf "%.2f" (score . $.Selection.FactorType)}}</td>
</tr>
{{end}}
</table>

{{if .Anomalies}}
<h2>近30日放量异动</h2>
<table>
<tr><th class="name">代码</th><th class="name">日期</th><th>收盘</th><th>放量倍数</th></tr>
{{range .Anomalies}}
<tr>
<td class="name">{{.Code}}</td>
<td class="name">{{.Date}}</td>
<td>{{printf "%.2f" .Close}}</td>
<td>{{printf "%.1f" .VolRatio}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>`))

// activeScore 按报告的因子类型取对应的得分字段。
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

// RenderReport 生成 HTML 报告文件。
func RenderReport(path string, data ReportData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s failed: %w", path, err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render report failed: %w", err)
	}
	return nil
}
