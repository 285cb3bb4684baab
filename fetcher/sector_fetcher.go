package fetcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"fundflow-quant/extract"
	"fundflow-quant/model"
)

// 板块资金流的两个数据源：clist 接口与行业资金流页面
const (
	defaultSectorAPIURL  = "https://push2.eastmoney.com/api/qt/clist/get"
	defaultSectorPageURL = "https://data.eastmoney.com/bkzj/hy.html"

	// fs=m:90+t:2 行业板块；fid=f62 按主力净流入排序
	sectorAPIQuery = "pn=1&pz=100&po=1&np=1&fltt=2&invt=2&fid=f62&fs=m:90+t:2&fields=f14,f3,f66,f69,f72,f75,f204"
)

var sectorHrefPattern = regexp.MustCompile(`BK\d+`)

// SectorFetcher 抓取行业板块资金流：接口与页面双源，交给提取编排器兜底。
type SectorFetcher struct {
	Client  *Client
	APIURL  string
	PageURL string

	orchestrator *extract.Orchestrator
}

func NewSectorFetcher(client *Client, minRecords int) *SectorFetcher {
	return &SectorFetcher{
		Client:       client,
		APIURL:       defaultSectorAPIURL,
		PageURL:      defaultSectorPageURL,
		orchestrator: extract.DefaultOrchestrator(minRecords),
	}
}

// FetchSectorFlows 抓取一轮板块资金流。
// 接口与页面任一失败都不致命，全部策略失败时由编排器返回 ErrInsufficientData。
func (f *SectorFetcher) FetchSectorFlows() ([]model.SectorRecord, error) {
	src := &extract.Source{}

	if body, err := f.Client.Get(f.APIURL + "?" + sectorAPIQuery); err != nil {
		logrus.WithError(err).Warn("板块接口请求失败，转页面提取")
	} else {
		src.APIBody = body
	}

	if page, err := f.Client.Get(f.PageURL); err != nil {
		logrus.WithError(err).Warn("板块页面请求失败")
	} else {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page))); err == nil {
			src.Document = doc
			src.PageText = doc.Text()
		}
	}

	records, strategy, err := f.orchestrator.Run(src)
	if err != nil {
		return nil, fmt.Errorf("sector extraction failed: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"strategy": strategy,
		"count":    len(records),
	}).Info("板块资金流提取完成")

	if src.Document != nil {
		attachSectorURLs(records, src.Document)
	}
	return records, nil
}

// attachSectorURLs 从页面超链接回填各板块的详情页地址。
func attachSectorURLs(records []model.SectorRecord, doc *goquery.Document) {
	urls := DiscoverSectorURLs(doc)
	for i := range records {
		if u, ok := urls[records[i].Name]; ok {
			records[i].URL = u
		}
	}
}

// DiscoverSectorURLs 扫描页面中指向板块详情页的链接，按板块名索引。
func DiscoverSectorURLs(doc *goquery.Document) map[string]string {
	urls := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "/bkzj/BK") {
			return
		}
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = "https://data.eastmoney.com" + href
		}
		urls[name] = href
	})
	return urls
}

// SectorCodeFromURL 从详情页地址提取板块代码（BK 开头），没有则返回空串。
func SectorCodeFromURL(rawURL string) string {
	return sectorHrefPattern.FindString(rawURL)
}
