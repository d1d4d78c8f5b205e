package parser

import "strings"

// FindHeaderRow 扫描 Sheet 的行，定位数据起始的表头行
// 规则：整行单元格拼接转大写后，包含 "EQUIPO" 且包含 "FECHA" 或 "MANO"
// 返回第一个命中的行索引；没有表头时返回 -1（该 Sheet 整体跳过，不算错误）
func FindHeaderRow(rows [][]string) int {
	for i, row := range rows {
		joined := strings.ToUpper(strings.Join(row, " "))
		if !strings.Contains(joined, "EQUIPO") {
			continue
		}
		if strings.Contains(joined, "FECHA") || strings.Contains(joined, "MANO") {
			return i
		}
	}
	return -1
}
