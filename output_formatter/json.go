// Package output_formatter 负责结果落盘（JSON/HTML）与控制台表格输出。
package output_formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/pretty"

	"fundflow-quant/model"
)

// BuildSnapshot 组装一次爬取的落盘快照，分配本次爬取的唯一ID。
func BuildSnapshot(top []model.SectorRecord, sectorStocks map[string][]model.StockRecord) model.Snapshot {
	return model.Snapshot{
		CrawlID:      uuid.NewString(),
		CrawlTime:    time.Now().Format("2006-01-02 15:04:05"),
		TopSectors:   top,
		SectorStocks: sectorStocks,
	}
}

// SaveSnapshot 快照写盘，JSON 经过格式化便于人工查看。
func SaveSnapshot(path string, snap model.Snapshot) error {
	return writeJSON(path, snap)
}

// SaveSelection 选股结果写盘。
func SaveSelection(path string, report model.SelectionReport) error {
	return writeJSON(path, report)
}

func writeJSON(path string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	if err := os.WriteFile(path, pretty.Pretty(raw), 0644); err != nil {
		return fmt.Errorf("write %s failed: %w", path, err)
	}
	return nil
}
