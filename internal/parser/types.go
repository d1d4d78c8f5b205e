package parser

// SheetResult 单个 Sheet 的解析结果
type SheetResult struct {
	SheetName   string `json:"sheetName"`
	Status      string `json:"status"` // parsed/skipped/error
	HeaderRow   int    `json:"headerRow"`
	Records     int    `json:"records"`
	DroppedRows []int  `json:"droppedRows,omitempty"` // 带文本但无法归属工单而被丢弃的行号（1 起）
	Error       string `json:"error,omitempty"`
}

// Sheet 状态
const (
	SheetStatusParsed  = "parsed"
	SheetStatusSkipped = "skipped"
	SheetStatusError   = "error"
)
