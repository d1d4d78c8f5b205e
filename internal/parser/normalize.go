package parser

import (
	"strings"
	"time"
)

// 占位值：表格中表示"无数据"的字面量（大小写不敏感）
var placeholderValues = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
}

// CleanText 规范化单元格文本
// 去除首尾空白；空串与占位值（nan/none）视为无数据，返回空串
func CleanText(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := placeholderValues[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// 日期格式按固定顺序尝试，先匹配者生效
// 歧义格式不按区域设置消歧：01/02/2024 按日/月解释
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// ParseDate 解析单元格中的日期
// 依次尝试各格式，全部失败时返回 false（上游按"该行无日期标记"处理）
func ParseDate(value string) (time.Time, bool) {
	value = CleanText(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			// 只保留日期部分
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
