package model

import (
	"strings"
	"time"
)

// ImportRecord 从工作簿切分出的单条历史工单记录（仅存在于一次解析过程，不落库）
type ImportRecord struct {
	ClientLabel    string    `json:"clientLabel"`    // 来源 Sheet 名
	EquipmentLabel string    `json:"equipmentLabel"` // 设备标签（导入时作为序列号匹配）
	Date           time.Time `json:"date"`
	Parts          string    `json:"parts"` // 累积的配件文本（换行连接）
	Labor          string    `json:"labor"` // 累积的工时文本（换行连接）
	Description    string    `json:"description"`
}

// BuildDescription 由工时与配件文本合成工单描述
// 工时段在前（LABOR: 前缀），配件段在后（PARTS: 前缀），空段整体省略
func BuildDescription(labor, parts string) string {
	var sections []string
	if labor != "" {
		sections = append(sections, "LABOR:\n"+labor)
	}
	if parts != "" {
		sections = append(sections, "PARTS:\n"+parts)
	}
	return strings.Join(sections, "\n\n")
}

// ImportSummary 导入批次的结果汇总（返回给调用方，不落库）
type ImportSummary struct {
	ClientsCreated    int      `json:"clientsCreated"`
	EquipmentsCreated int      `json:"equipmentsCreated"`
	EquipmentsUpdated int      `json:"equipmentsUpdated"`
	JobsCreated       int      `json:"jobsCreated"`
	Errors            []string `json:"errors"`
}

// ImportPreview 确认导入前展示给操作员的预览
type ImportPreview struct {
	Records         []ImportRecord `json:"records"` // 前 N 条记录
	TotalRecords    int            `json:"totalRecords"`
	ClientLabels    int            `json:"clientLabels"`    // 去重后的客户标签数
	EquipmentLabels int            `json:"equipmentLabels"` // 去重后的设备标签数
	MinDate         *time.Time     `json:"minDate"`
	MaxDate         *time.Time     `json:"maxDate"`
}

// ImportLog 已确认导入的落库记录
type ImportLog struct {
	ID                int64         `json:"id"`
	Filename          string        `json:"filename"`
	ClientsCreated    int           `json:"clientsCreated"`
	EquipmentsCreated int           `json:"equipmentsCreated"`
	EquipmentsUpdated int           `json:"equipmentsUpdated"`
	JobsCreated       int           `json:"jobsCreated"`
	ErrorCount        int           `json:"errorCount"`
	Duration          time.Duration `json:"duration"`
	CreatedAt         time.Time     `json:"createdAt"`
}
