package core

import (
	"testing"

	"fundflow-quant/model"
)

func TestRankSectorsDescending(t *testing.T) {
	records := []model.SectorRecord{
		{Name: "证券", SuperLargeInflow: 3.31, LargeInflow: 8.12},
		{Name: "通信设备", SuperLargeInflow: 64.13, LargeInflow: 3.76},
		{Name: "工程机械", SuperLargeInflow: 9.34, LargeInflow: 1.18},
		{Name: "半导体", SuperLargeInflow: 54.74, LargeInflow: -16.87},
		{Name: "电子元件", SuperLargeInflow: 51.75, LargeInflow: 7.05},
		{Name: "消费电子", SuperLargeInflow: 39.90, LargeInflow: 1.88},
	}

	ranked := RankSectors(records)
	wantOrder := []string{"通信设备", "电子元件", "消费电子", "半导体", "证券", "工程机械"}
	for i, name := range wantOrder {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, ranked[i].Name, name)
		}
	}

	// 入参顺序不被破坏
	if records[0].Name != "证券" {
		t.Error("RankSectors must not mutate its input")
	}

	top := TopSectors(ranked, 5)
	if len(top) != 5 || top[4].Name != "证券" {
		t.Errorf("top-5 must be a prefix of the ranked list: %+v", top)
	}
}

func TestRankSectorsStableOnTies(t *testing.T) {
	records := []model.SectorRecord{
		{Name: "甲", SuperLargeInflow: 5, LargeInflow: 5},
		{Name: "乙", SuperLargeInflow: 10, LargeInflow: 0},
		{Name: "丙", SuperLargeInflow: 0, LargeInflow: 10},
	}
	ranked := RankSectors(records)
	if ranked[0].Name != "甲" || ranked[1].Name != "乙" || ranked[2].Name != "丙" {
		t.Errorf("equal composites must keep input order, got %+v", ranked)
	}
}

func TestTopSectorsEdges(t *testing.T) {
	if top := TopSectors(nil, 5); len(top) != 0 {
		t.Errorf("empty input must yield empty top list, got %d", len(top))
	}
	two := RankSectors([]model.SectorRecord{{Name: "a"}, {Name: "b"}})
	if top := TopSectors(two, 5); len(top) != 2 {
		t.Errorf("n beyond length must clamp, got %d", len(top))
	}
}

func TestFlattenStocksDeterministic(t *testing.T) {
	sectorStocks := map[string][]model.StockRecord{
		"b板块": {{Code: "000002"}},
		"a板块": {{Code: "600000"}, {Code: "600001"}},
	}
	all := FlattenStocks(sectorStocks)
	if len(all) != 3 {
		t.Fatalf("expected 3 stocks, got %d", len(all))
	}
	if all[0].Code != "600000" || all[2].Code != "000002" {
		t.Errorf("flatten order must follow sector name order: %+v", all)
	}
}
