package fetcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"fundflow-quant/model"
)

const (
	defaultKlineAPIURL = "https://push2his.eastmoney.com/api/qt/stock/kline/get"

	// fields2: 日期,开盘,收盘,最高,最低,成交量
	klineFields = "f51,f52,f53,f54,f55,f56"
)

// HistoryFetcher 抓取个股日K线历史。
type HistoryFetcher struct {
	Client *Client
	APIURL string

	now func() time.Time
}

func NewHistoryFetcher(client *Client) *HistoryFetcher {
	return &HistoryFetcher{Client: client, APIURL: defaultKlineAPIURL, now: time.Now}
}

// FetchHistory 返回最近 days 个交易日的日线，最新在前。
// 日历窗口取 days*2 天、条数上限 days+20，补偿周末与节假日。
// 任何失败返回空列表，个股历史缺失不阻断整体流程。
func (f *HistoryFetcher) FetchHistory(code string, days int) []model.DailyBar {
	if code == "" || days <= 0 {
		return nil
	}

	end := f.now()
	beg := end.AddDate(0, 0, -days*2)
	url := fmt.Sprintf(
		"%s?secid=%s&fields1=f1&fields2=%s&klt=101&fqt=1&beg=%s&end=%s&lmt=%d",
		f.APIURL, SecID(code), klineFields,
		beg.Format("20060102"), end.Format("20060102"), days+20)

	body, err := f.Client.Get(url)
	if err != nil {
		logrus.WithError(err).WithField("code", code).Debug("日K线请求失败")
		return nil
	}

	klines := gjson.GetBytes(body, "data.klines")
	if !klines.IsArray() {
		return nil
	}

	// 接口按时间正序返回，倒序成最新在前
	var bars []model.DailyBar
	arr := klines.Array()
	for i := len(arr) - 1; i >= 0; i-- {
		if bar, ok := parseKlineRow(arr[i].String()); ok {
			bars = append(bars, bar)
		}
		if len(bars) >= days {
			break
		}
	}
	return bars
}

// parseKlineRow 解析单行K线 "日期,开,收,高,低,量"。
func parseKlineRow(line string) (model.DailyBar, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 6 {
		return model.DailyBar{}, false
	}
	open, _ := strconv.ParseFloat(parts[1], 64)
	closePrice, _ := strconv.ParseFloat(parts[2], 64)
	high, _ := strconv.ParseFloat(parts[3], 64)
	low, _ := strconv.ParseFloat(parts[4], 64)
	volume, _ := strconv.ParseFloat(parts[5], 64)
	return model.DailyBar{
		Date:   parts[0],
		Open:   open,
		Close:  closePrice,
		High:   high,
		Low:    low,
		Volume: volume,
	}, true
}

// SecID 股票代码转接口的市场前缀形式：6 开头为沪市（1.），其余深市（0.）。
func SecID(code string) string {
	if strings.HasPrefix(code, "6") {
		return "1." + code
	}
	return "0." + code
}
