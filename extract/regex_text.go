package extract

import (
	"regexp"

	"fundflow-quant/model"
)

// 页面文本中板块行的固定模式：
// 序号 名称 涨跌幅% 主力净流入亿 超大单净流入亿 超大单净占比% 大单净流入亿 大单净占比%
var sectorLinePattern = regexp.MustCompile(
	`(\d+)\s+(\S+)\s+([-+]?\d+\.\d+)%\s+([-+]?\d+\.\d+)亿\S*\s+([-+]?\d+\.\d+)亿\s+([-+]?\d+\.\d+)%\s+([-+]?\d+\.\d+)亿\s+([-+]?\d+\.\d+)%`)

// 正则路径处理的匹配上限
const maxRegexMatches = 20

// RegexTextStrategy 对页面原始文本按固定模式逐行匹配，捕获组按位映射。
// 最大流入股不在捕获组内，置为 "未知"。
type RegexTextStrategy struct{}

func (s *RegexTextStrategy) Name() string { return "regex-text" }

func (s *RegexTextStrategy) Extract(src *Source) []model.SectorRecord {
	if src.PageText == "" {
		return nil
	}
	matches := sectorLinePattern.FindAllStringSubmatch(src.PageText, -1)
	if len(matches) > maxRegexMatches {
		matches = matches[:maxRegexMatches]
	}

	var records []model.SectorRecord
	for _, m := range matches {
		name := m[2]
		if name == "" || isHeaderToken(name) {
			continue
		}
		records = append(records, model.SectorRecord{
			Name:             name,
			ChangeRate:       ExtractFloat(m[3]),
			SuperLargeInflow: ExtractFloat(m[5]),
			SuperLargeRatio:  ExtractFloat(m[6]),
			LargeInflow:      ExtractFloat(m[7]),
			LargeRatio:       ExtractFloat(m[8]),
			MaxStock:         "未知",
		})
	}
	return records
}
