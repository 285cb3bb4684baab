package core

import (
	"fmt"
	"sort"

	"fundflow-quant/config"
	"fundflow-quant/fetcher"
	"fundflow-quant/model"
	"fundflow-quant/retry"
)

type CrawlSectorsResult struct {
	AllSectors []model.SectorRecord
	TopSectors []model.SectorRecord
}

// CrawlSectors 抓取板块资金流并选出主力净流入前 N 的板块。
// 抓取整体走重试包装，提取不足门槛视为可重试故障；重试耗尽后如实报错，
// 绝不伪造兜底数据。
func CrawlSectors(cfg *config.Config, client *fetcher.Client) (CrawlSectorsResult, error) {
	fmt.Println("📡 [Step 1] 抓取行业板块资金流...")

	sectorFetcher := fetcher.NewSectorFetcher(client, cfg.Crawler.MinSectorRecords)
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.Crawler.MaxRetries

	records, err := retry.Do(sectorFetcher.FetchSectorFlows, policy)
	if err != nil {
		return CrawlSectorsResult{}, fmt.Errorf("板块资金流抓取失败: %w", err)
	}

	ranked := RankSectors(records)
	top := TopSectors(ranked, cfg.Crawler.TopSectors)

	fmt.Printf("   -> 共 %d 个板块，主力净流入前 %d：\n", len(ranked), len(top))
	for i, s := range top {
		fmt.Printf("      %d. %s 主力净流入 %.2f亿 (涨跌 %.2f%%)\n",
			i+1, s.Name, s.MainInflow(), s.ChangeRate)
	}

	return CrawlSectorsResult{AllSectors: ranked, TopSectors: top}, nil
}

// RankSectors 按主力净流入（超大单+大单）降序稳定排序，入参不被修改。
func RankSectors(records []model.SectorRecord) []model.SectorRecord {
	ranked := make([]model.SectorRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MainInflow() > ranked[j].MainInflow()
	})
	return ranked
}

// TopSectors 取排序结果的前 n 条。
func TopSectors(ranked []model.SectorRecord, n int) []model.SectorRecord {
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}
