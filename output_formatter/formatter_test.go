package output_formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"fundflow-quant/model"
)

func sampleSnapshot() model.Snapshot {
	snap := BuildSnapshot(
		[]model.SectorRecord{
			{Name: "通信设备", ChangeRate: 1.93, SuperLargeInflow: 64.13, LargeInflow: 3.76, MaxStock: "新易盛"},
			{Name: "半导体", ChangeRate: 2.22, SuperLargeInflow: 54.74, LargeInflow: -16.87, MaxStock: "中芯国际"},
		},
		map[string][]model.StockRecord{
			"通信设备": {{Code: "300502", Name: "新易盛", Price: 100, MainInflow: 5.2}},
		},
	)
	return snap
}

func sampleReport() model.SelectionReport {
	return model.SelectionReport{
		SelectionTime: "2025-08-31 10:00:00",
		TotalSelected: 1,
		FactorType:    model.FactorMomentum,
		SelectedStocks: []model.ScoredStock{
			{StockRecord: model.StockRecord{Code: "300502", Name: "新易盛", Sector: "通信设备", Price: 100, ChangeRate: 3.2, MainInflow: 5.2}, Rank: 1, MomentumScore: 42.5},
		},
	}
}

func TestSaveSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	snap := sampleSnapshot()
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := gjson.GetBytes(raw, "top_sectors.#").Int(); got != 2 {
		t.Errorf("top_sectors count = %d, want 2", got)
	}
	if got := gjson.GetBytes(raw, "top_sectors.0.super_large_inflow").Float(); got != 64.13 {
		t.Errorf("super_large_inflow = %v", got)
	}
	if gjson.GetBytes(raw, "crawl_id").String() == "" {
		t.Error("crawl_id must be assigned")
	}
	if got := gjson.GetBytes(raw, "sector_stocks.通信设备.0.code").String(); got != "300502" {
		t.Errorf("nested stock code = %q", got)
	}
}

func TestSaveSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selected.json")
	if err := SaveSelection(path, sampleReport()); err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if got := gjson.GetBytes(raw, "factor_type").String(); got != "momentum" {
		t.Errorf("factor_type = %q", got)
	}
	if got := gjson.GetBytes(raw, "selected_stocks.0.rank").Int(); got != 1 {
		t.Errorf("rank = %d", got)
	}
}

func TestRenderReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	err := RenderReport(path, ReportData{
		Snapshot:  sampleSnapshot(),
		Selection: sampleReport(),
	})
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	raw, _ := os.ReadFile(path)
	html := string(raw)
	for _, want := range []string{"通信设备", "新易盛", "64.13", "42.50", "momentum"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderTables(t *testing.T) {
	var sector strings.Builder
	renderSectorTable(&sector, sampleSnapshot().TopSectors)
	if !strings.Contains(sector.String(), "通信设备") || !strings.Contains(sector.String(), "67.89") {
		t.Errorf("sector table incomplete:\n%s", sector.String())
	}

	var sel strings.Builder
	renderSelectionTable(&sel, sampleReport())
	if !strings.Contains(sel.String(), "300502") || !strings.Contains(sel.String(), "42.50") {
		t.Errorf("selection table incomplete:\n%s", sel.String())
	}
}

func TestActiveScoreFollowsFactorType(t *testing.T) {
	// 15日因子下合法得 0 的个股：即使残留动量分也必须显示 0.00
	report := sampleReport()
	report.FactorType = model.FactorMomentum15Day
	report.SelectedStocks[0].Momentum15Score = 0

	if got := activeScore(report.SelectedStocks[0], report.FactorType); got != 0 {
		t.Errorf("momentum_15day score = %v, want 0", got)
	}

	var sel strings.Builder
	renderSelectionTable(&sel, report)
	if strings.Contains(sel.String(), "42.50") {
		t.Errorf("table must not show the stale momentum score:\n%s", sel.String())
	}
	if !strings.Contains(sel.String(), "0.00") {
		t.Errorf("table must show the zero 15-day score:\n%s", sel.String())
	}

	report.FactorType = model.FactorPhaseComposite
	report.SelectedStocks[0].PhaseScore = 12.5
	if got := activeScore(report.SelectedStocks[0], report.FactorType); got != 12.5 {
		t.Errorf("phase_composite score = %v, want 12.5", got)
	}
}
