package importer

import (
	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// BuildPreview 为确认前的操作员预览汇总解析结果
// 取前 n 条记录，并统计总数、去重标签数与日期范围
func BuildPreview(records []model.ImportRecord, n int) *model.ImportPreview {
	preview := &model.ImportPreview{
		Records:      []model.ImportRecord{},
		TotalRecords: len(records),
	}

	clients := make(map[string]struct{})
	equipments := make(map[string]struct{})

	for _, rec := range records {
		clients[rec.ClientLabel] = struct{}{}
		equipments[rec.EquipmentLabel] = struct{}{}

		if preview.MinDate == nil || rec.Date.Before(*preview.MinDate) {
			d := rec.Date
			preview.MinDate = &d
		}
		if preview.MaxDate == nil || rec.Date.After(*preview.MaxDate) {
			d := rec.Date
			preview.MaxDate = &d
		}
	}

	preview.ClientLabels = len(clients)
	preview.EquipmentLabels = len(equipments)

	if n > len(records) {
		n = len(records)
	}
	preview.Records = append(preview.Records, records[:n]...)

	return preview
}
