package parser

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// 非数据 Sheet：Excel 默认页与模板页，不对应任何客户
var excludedSheets = map[string]struct{}{
	"HOJA1":     {},
	"HOJA2":     {},
	"HOJA3":     {},
	"SHEET1":    {},
	"SHEET2":    {},
	"SHEET3":    {},
	"RESUMEN":   {},
	"PLANTILLA": {},
}

// WorkbookResult 一次工作簿解析的产物
type WorkbookResult struct {
	Records []model.ImportRecord `json:"records"`
	Sheets  []SheetResult        `json:"sheets"`
}

// ParseWorkbook 按顺序解析工作簿的各个 Sheet
// 每个非空、非排除名单的 Sheet 名视为一个客户标签；
// 找不到表头的 Sheet 贡献零条记录，不算错误
func ParseWorkbook(f *excelize.File) *WorkbookResult {
	result := &WorkbookResult{}

	for _, sheetName := range f.GetSheetList() {
		sheet := parseSheet(f, sheetName)
		result.Sheets = append(result.Sheets, sheet.result)
		result.Records = append(result.Records, sheet.records...)

		log.WithFields(log.Fields{
			"sheet":   sheetName,
			"status":  sheet.result.Status,
			"records": sheet.result.Records,
		}).Info("sheet parsed")
	}

	log.WithField("records", len(result.Records)).Info("workbook parsed")
	return result
}

type sheetOutcome struct {
	result  SheetResult
	records []model.ImportRecord
}

// parseSheet 解析单个 Sheet：定位表头后把数据行折叠为工单记录
func parseSheet(f *excelize.File, sheetName string) sheetOutcome {
	name := strings.TrimSpace(sheetName)
	if name == "" {
		return sheetOutcome{result: SheetResult{SheetName: sheetName, Status: SheetStatusSkipped, HeaderRow: -1}}
	}
	if _, ok := excludedSheets[strings.ToUpper(name)]; ok {
		return sheetOutcome{result: SheetResult{SheetName: sheetName, Status: SheetStatusSkipped, HeaderRow: -1}}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return sheetOutcome{result: SheetResult{
			SheetName: sheetName,
			Status:    SheetStatusError,
			HeaderRow: -1,
			Error:     err.Error(),
		}}
	}

	headerRow := FindHeaderRow(rows)
	if headerRow < 0 {
		return sheetOutcome{result: SheetResult{SheetName: sheetName, Status: SheetStatusSkipped, HeaderRow: -1}}
	}

	segmenter := NewSegmenter(name)
	state := SegmentState{}

	var records []model.ImportRecord
	var droppedRows []int

	for i := headerRow + 1; i < len(rows); i++ {
		next, emitted, dropped := segmenter.Step(state, rows[i])
		state = next
		if emitted != nil {
			records = append(records, *emitted)
		}
		if dropped {
			droppedRows = append(droppedRows, i+1)
		}
	}
	if emitted := segmenter.Flush(state); emitted != nil {
		records = append(records, *emitted)
	}

	if len(droppedRows) > 0 {
		log.WithFields(log.Fields{
			"sheet": sheetName,
			"rows":  droppedRows,
		}).Warn("rows with text but no open job were dropped")
	}

	return sheetOutcome{
		result: SheetResult{
			SheetName:   sheetName,
			Status:      SheetStatusParsed,
			HeaderRow:   headerRow,
			Records:     len(records),
			DroppedRows: droppedRows,
		},
		records: records,
	}
}
