package fetcher

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"fundflow-quant/data_processor"
	"fundflow-quant/model"
)

const (
	defaultStockAPIURL = "https://push2.eastmoney.com/api/qt/clist/get"

	stockFields = "f12,f14,f2,f3,f5,f6,f8,f9,f10,f15,f16,f17,f20,f21,f23," +
		"f62,f66,f69,f72,f75,f78,f84,f184"

	// 个股请求前的随机延时区间（秒）
	stockJitterMin = 0.5
	stockJitterMax = 2.0

	// 资金字段万元转亿元
	wanToYi = 10000.0
	// 市值/成交额字段元转亿元
	yuanToYi = 1e8
	// 成交量字段手转万手
	shouToWan = 1e4
)

// stockFilterCombos 同一接口下表达“限定板块”的几种等价写法，逐个尝试。
var stockFilterCombos = []struct {
	fid string
	fs  string
}{
	{fid: "f62", fs: "b:%s"},
	{fid: "f62", fs: "b:%s+f:!50"},
	{fid: "f3", fs: "b:%s"},
}

// StockFetcher 抓取板块成份股列表。
type StockFetcher struct {
	Client *Client
	APIURL string
}

func NewStockFetcher(client *Client) *StockFetcher {
	return &StockFetcher{Client: client, APIURL: defaultStockAPIURL}
}

// FetchSectorStocks 按主力净流入序返回板块成份股，最多 limit 条。
// 依次尝试各过滤组合，取第一个返回有效 data.diff 的；全部失败返回空列表，
// 不向上抛错，板块之间的抓取互不影响。
func (f *StockFetcher) FetchSectorStocks(sectorCode string, limit int) []model.StockRecord {
	for _, combo := range stockFilterCombos {
		f.Client.Jitter(stockJitterMin, stockJitterMax)

		url := fmt.Sprintf(
			"%s?pn=1&pz=%d&po=1&np=1&fltt=2&invt=2&fid=%s&fs=%s&fields=%s",
			f.APIURL, limit, combo.fid, fmt.Sprintf(combo.fs, sectorCode), stockFields)

		body, err := f.Client.Get(url)
		if err != nil {
			logrus.WithError(err).WithField("fs", combo.fs).Debug("个股接口请求失败，换下一组参数")
			continue
		}

		diff := gjson.GetBytes(body, "data.diff")
		if !diff.IsArray() || len(diff.Array()) == 0 {
			continue
		}

		stocks := mapStocks(diff)
		if len(stocks) > 0 {
			logrus.WithFields(logrus.Fields{
				"sector": sectorCode,
				"count":  len(stocks),
			}).Info("板块成份股抓取完成")
			return stocks
		}
	}

	logrus.WithField("sector", sectorCode).Warn("所有参数组合都未取到成份股")
	return nil
}

// mapStocks 把接口的 f 字段编码映射为 StockRecord 并清洗。
// 代码与名称同时缺失的记录丢弃。
func mapStocks(diff gjson.Result) []model.StockRecord {
	var stocks []model.StockRecord
	diff.ForEach(func(_, item gjson.Result) bool {
		code := strings.TrimSpace(item.Get("f12").String())
		name := strings.TrimSpace(item.Get("f14").String())
		if code == "" && name == "" {
			return true
		}

		s := model.StockRecord{
			Code:       code,
			Name:       name,
			Price:      numField(item, "f2"),
			ChangeRate: numField(item, "f3"),
			Volume:     numField(item, "f5") / shouToWan,
			Amount:     numField(item, "f6") / yuanToYi,

			TurnoverRate: numField(item, "f8"),
			PERatio:      numField(item, "f9"),
			VolumeRatio:  numField(item, "f10"),
			HighPrice:    numField(item, "f15"),
			LowPrice:     numField(item, "f16"),
			OpenPrice:    numField(item, "f17"),
			PBRatio:      numField(item, "f23"),

			MarketCap:      numField(item, "f20") / yuanToYi,
			CirculationCap: numField(item, "f21") / yuanToYi,

			MainInflow:       numField(item, "f62") / wanToYi,
			SuperLargeInflow: numField(item, "f66") / wanToYi,
			LargeInflow:      numField(item, "f72") / wanToYi,
			MediumInflow:     numField(item, "f78") / wanToYi,
			SmallInflow:      numField(item, "f84") / wanToYi,
			MainRatio:        numField(item, "f184"),
			SuperLargeRatio:  numField(item, "f69"),
			LargeRatio:       numField(item, "f75"),
		}
		data_processor.CleanStock(&s)
		stocks = append(stocks, s)
		return true
	})
	return stocks
}

// numField 数值字段读取，接口用 "-" 表示无数据，gjson 对其返回 0。
// 此处不做上限检查：原始值尚未折算单位（市值为元、量为手），
// 合理性上限由 CleanStock 对折算后的字段统一把关。
func numField(item gjson.Result, key string) float64 {
	return item.Get(key).Float()
}
