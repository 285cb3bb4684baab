package core

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"fundflow-quant/config"
	"fundflow-quant/data_processor"
	"fundflow-quant/fetcher"
	"fundflow-quant/model"
)

type CollectStocksResult struct {
	SectorStocks map[string][]model.StockRecord
}

// CollectStocks 逐板块抓取成份股并补齐历史K线与技术指标。
// 串行执行，板块之间互不影响：某板块抓不到就记空，继续下一个。
func CollectStocks(cfg *config.Config, client *fetcher.Client, top []model.SectorRecord) CollectStocksResult {
	fmt.Printf("📥 [Step 2] 抓取 %d 个入选板块的成份股...\n", len(top))

	stockFetcher := fetcher.NewStockFetcher(client)
	historyFetcher := fetcher.NewHistoryFetcher(client)
	sectorStocks := make(map[string][]model.StockRecord, len(top))

	for _, sector := range top {
		code := fetcher.SectorCodeFromURL(sector.URL)
		if code == "" {
			logrus.WithField("sector", sector.Name).Warn("板块缺少详情页代码，跳过成份股抓取")
			sectorStocks[sector.Name] = nil
			continue
		}

		stocks := stockFetcher.FetchSectorStocks(code, cfg.Crawler.StocksPerSector)
		for i := range stocks {
			stocks[i].Sector = sector.Name
			stocks[i].HistoryPrices = historyFetcher.FetchHistory(stocks[i].Code, cfg.Crawler.HistoryDays)
			data_processor.EnrichHistory(&stocks[i])
		}
		sectorStocks[sector.Name] = stocks
		fmt.Printf("   -> %s: %d 只\n", sector.Name, len(stocks))
	}

	return CollectStocksResult{SectorStocks: sectorStocks}
}

// FlattenStocks 把按板块归集的个股铺平成单列表，按板块名序保证确定性。
func FlattenStocks(sectorStocks map[string][]model.StockRecord) []model.StockRecord {
	names := make([]string, 0, len(sectorStocks))
	for name := range sectorStocks {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []model.StockRecord
	for _, name := range names {
		all = append(all, sectorStocks[name]...)
	}
	return all
}
