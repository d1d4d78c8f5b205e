package parser

import (
	"strings"
	"time"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// 数据行的固定列位
const (
	colEquipment = 0
	colDate      = 1
	colParts     = 2
	colLabor     = 3
)

// openWork 切分过程中尚未收尾的工单
// equipment 固定为工单开启时的设备标签，后续行改变设备不影响它
type openWork struct {
	equipment string
	date      time.Time
	parts     []string
	labor     []string
}

// SegmentState 切分器状态，作为显式折叠值在行间传递
// Equipment 是最近一次出现的设备标签，向下延续到被覆盖为止
type SegmentState struct {
	Equipment string
	work      *openWork
}

// Segmenter 行切分器：把表头之下的行序列折叠为离散的工单记录
// 每行调用一次 Step，行序列结束后调用 Flush 收尾
type Segmenter struct {
	clientLabel string
}

// NewSegmenter 创建指定客户标签（Sheet 名）的切分器
func NewSegmenter(clientLabel string) *Segmenter {
	return &Segmenter{clientLabel: clientLabel}
}

// Step 处理一行数据，返回新状态与本行促成收尾的记录（可能为 nil）
// dropped 为 true 表示本行带有配件/工时文本但被丢弃（日期无法解析且没有未收尾工单）
func (s *Segmenter) Step(st SegmentState, row []string) (next SegmentState, emitted *model.ImportRecord, dropped bool) {
	equipment := CleanText(cell(row, colEquipment))
	parts := CleanText(cell(row, colParts))
	labor := CleanText(cell(row, colLabor))
	date, hasDate := ParseDate(cell(row, colDate))

	next = st
	if equipment != "" {
		next.Equipment = equipment
	}

	switch {
	case hasDate && next.Equipment != "":
		// 日期行：开启新工单，先收尾上一个
		emitted = s.finalize(next.work)
		work := &openWork{equipment: next.Equipment, date: date}
		if parts != "" {
			work.parts = append(work.parts, parts)
		}
		if labor != "" {
			work.labor = append(work.labor, labor)
		}
		next.work = work

	case (parts != "" || labor != "") && next.work != nil:
		// 延续行：文本分别追加到配件与工时
		if parts != "" {
			next.work.parts = append(next.work.parts, parts)
		}
		if labor != "" {
			next.work.labor = append(next.work.labor, labor)
		}

	case parts != "" || labor != "":
		// 带文本但没有可归属的工单，整行丢弃
		dropped = true
	}

	return next, emitted, dropped
}

// Flush 收尾仍未关闭的工单
func (s *Segmenter) Flush(st SegmentState) *model.ImportRecord {
	return s.finalize(st.work)
}

// finalize 把未收尾工单转为记录；配件与工时均为空时不产出（视为录入噪音）
func (s *Segmenter) finalize(work *openWork) *model.ImportRecord {
	if work == nil {
		return nil
	}
	if len(work.parts) == 0 && len(work.labor) == 0 {
		return nil
	}

	parts := strings.Join(work.parts, "\n")
	labor := strings.Join(work.labor, "\n")

	return &model.ImportRecord{
		ClientLabel:    s.clientLabel,
		EquipmentLabel: work.equipment,
		Date:           work.date,
		Parts:          parts,
		Labor:          labor,
		Description:    model.BuildDescription(labor, parts),
	}
}

// cell 读取列值，短行缺失的列按空值处理
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
