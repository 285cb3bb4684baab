package extract

import (
	"regexp"
	"strconv"
)

// numPattern 匹配首个带符号的整数或小数
var numPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ExtractFloat 从含噪文本中提取浮点数，如 "+1.23%"、"12.3亿"。
// 占位符（"-"、"--"、"None"、空串）与无数字文本一律返回 0，绝不报错：
// 它是所有文本来源数值字段的兜底。
func ExtractFloat(text string) float64 {
	match := numPattern.FindString(text)
	if match == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// HasNumeral 判断文本中是否存在数字，用于剔除非数值行。
func HasNumeral(text string) bool {
	return numPattern.MatchString(text)
}
