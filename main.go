package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fundflow-quant/config"
	core "fundflow-quant/core/analysis_fund_flow"
	"fundflow-quant/data_processor"
	"fundflow-quant/fetcher"
	"fundflow-quant/model"
	"fundflow-quant/output_formatter"
)

var (
	factorType  = flag.String("factor", "", "选股因子: momentum / momentum_15day / phase_composite")
	marketPhase = flag.String("phase", "", "市场阶段: uptrend / range / downtrend (phase_composite 因子用)")
	skipStocks  = flag.Bool("sectors-only", false, "只抓板块资金流，跳过成份股与选股")
	verbose     = flag.Bool("v", false, "输出调试日志")
)

func main() {
	fmt.Println(`
  _____                _ _____ _
 |  ___|   _ _ __   __| |  ___| | _____      __
 | |_ | | | | '_ \ / _' | |_  | |/ _ \ \ /\ / /
 |  _|| |_| | | | | (_| |  _| | | (_) \ V  V /
 |_|   \__,_|_| |_|\__,_|_|   |_|\___/ \_/\_/
   板块资金流 · 因子选股
	`)

	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("⚠️ 加载配置失败: %v\n", err)
		return
	}
	if *factorType != "" {
		cfg.Selection.FactorType = *factorType
	}
	if *marketPhase != "" {
		cfg.Selection.MarketPhase = *marketPhase
	}

	client := fetcher.NewClient(time.Duration(cfg.Crawler.TimeoutSec) * time.Second)

	// --- Step 1: 板块资金流 ---
	crawlResult, err := core.CrawlSectors(cfg, client)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	output_formatter.PrintSectorTable(crawlResult.TopSectors)

	if *skipStocks {
		snap := output_formatter.BuildSnapshot(crawlResult.TopSectors, nil)
		if err := output_formatter.SaveSnapshot(cfg.SnapshotFile, snap); err != nil {
			fmt.Printf("⚠️ 快照写盘失败: %v\n", err)
			return
		}
		fmt.Printf("✅ 板块快照已保存: %s\n", cfg.SnapshotFile)
		return
	}

	// --- Step 2: 成份股 + 历史K线 ---
	collectResult := core.CollectStocks(cfg, client, crawlResult.TopSectors)
	snap := output_formatter.BuildSnapshot(crawlResult.TopSectors, collectResult.SectorStocks)
	if err := output_formatter.SaveSnapshot(cfg.SnapshotFile, snap); err != nil {
		fmt.Printf("⚠️ 快照写盘失败: %v\n", err)
	} else {
		fmt.Printf("✅ 资金流快照已保存: %s\n", cfg.SnapshotFile)
	}

	// --- Step 3: 因子选股 ---
	allStocks := core.FlattenStocks(collectResult.SectorStocks)
	if len(allStocks) == 0 {
		fmt.Println("❌ 未采集到任何成份股，跳过选股。")
		return
	}
	report := core.SelectStocks(cfg, allStocks)
	output_formatter.PrintSelectionTable(report)
	if err := output_formatter.SaveSelection(cfg.SelectionFile, report); err != nil {
		fmt.Printf("⚠️ 选股结果写盘失败: %v\n", err)
	} else {
		fmt.Printf("✅ 选股结果已保存: %s\n", cfg.SelectionFile)
	}

	// --- Step 4: 放量异动扫描 + HTML 报告 ---
	anomalies := scanVolumeAnomalies(report.SelectedStocks)
	if err := output_formatter.RenderReport(cfg.ReportFile, output_formatter.ReportData{
		Snapshot:  snap,
		Selection: report,
		Anomalies: anomalies,
	}); err != nil {
		fmt.Printf("⚠️ 报告生成失败: %v\n", err)
		return
	}
	fmt.Printf("✅ HTML 报告已生成: %s\n", cfg.ReportFile)
}

// scanVolumeAnomalies 对入选股的历史K线做放量异动扫描，失败不阻断主流程。
func scanVolumeAnomalies(selected []model.ScoredStock) []data_processor.VolumeAnomaly {
	fmt.Println("🔍 [Step 4] 扫描入选股近30日放量异动...")

	bars := make(map[string][]model.DailyBar, len(selected))
	for _, s := range selected {
		if len(s.HistoryPrices) > 0 {
			bars[s.Code] = s.HistoryPrices
		}
	}
	if len(bars) == 0 {
		return nil
	}

	duck, err := data_processor.NewDuckDB("")
	if err != nil {
		logrus.WithError(err).Warn("DuckDB 初始化失败，跳过放量扫描")
		return nil
	}
	defer duck.Close()

	scanner := data_processor.NewVolumeScanner(duck)
	if err := scanner.LoadBars(bars); err != nil {
		logrus.WithError(err).Warn("日线入库失败，跳过放量扫描")
		return nil
	}
	events, err := scanner.ScanVolumeSpikes(2.0, 10)
	if err != nil {
		logrus.WithError(err).Warn("放量扫描失败")
		return nil
	}
	fmt.Printf("   -> 发现 %d 条放量异动\n", len(events))
	return events
}
