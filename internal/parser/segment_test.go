package parser

import (
	"testing"
	"time"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// runRows 把行序列整体过一遍切分器，返回全部产出记录与丢弃行下标
func runRows(t *testing.T, clientLabel string, rows [][]string) ([]model.ImportRecord, []int) {
	t.Helper()

	seg := NewSegmenter(clientLabel)
	state := SegmentState{}

	var records []model.ImportRecord
	var droppedIdx []int
	for i, row := range rows {
		next, emitted, dropped := seg.Step(state, row)
		state = next
		if emitted != nil {
			records = append(records, *emitted)
		}
		if dropped {
			droppedIdx = append(droppedIdx, i)
		}
	}
	if emitted := seg.Flush(state); emitted != nil {
		records = append(records, *emitted)
	}
	return records, droppedIdx
}

func TestSegmenter_SingleJob(t *testing.T) {
	t.Parallel()

	records, dropped := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "Filtro", "Revision"},
	})
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped rows: %v", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}

	rec := records[0]
	if rec.ClientLabel != "Acme Corp" || rec.EquipmentLabel != "Bomba X1" {
		t.Fatalf("unexpected labels: %q %q", rec.ClientLabel, rec.EquipmentLabel)
	}
	if want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC); !rec.Date.Equal(want) {
		t.Fatalf("want=%v got=%v", want, rec.Date)
	}
	if rec.Description != "LABOR:\nRevision\n\nPARTS:\nFiltro" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestSegmenter_ContinuationRowsJoined(t *testing.T) {
	t.Parallel()

	records, dropped := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "Filtro", "Revision"},
		{"", "", "Correa", ""},
		{"", "", "", "Ajuste de valvulas"},
	})
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped rows: %v", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}

	rec := records[0]
	if rec.Parts != "Filtro\nCorrea" {
		t.Fatalf("unexpected parts: %q", rec.Parts)
	}
	if rec.Labor != "Revision\nAjuste de valvulas" {
		t.Fatalf("unexpected labor: %q", rec.Labor)
	}
	if rec.Description != "LABOR:\nRevision\nAjuste de valvulas\n\nPARTS:\nFiltro\nCorrea" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestSegmenter_EquipmentCarryDown(t *testing.T) {
	t.Parallel()

	// 第二个日期行不带设备：沿用上一设备标签
	records, _ := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "Filtro", ""},
		{"", "2024-02-15", "Correa", ""},
	})
	if len(records) != 2 {
		t.Fatalf("want 2 records got %d", len(records))
	}
	if records[0].EquipmentLabel != "Bomba X1" || records[1].EquipmentLabel != "Bomba X1" {
		t.Fatalf("unexpected equipments: %q %q", records[0].EquipmentLabel, records[1].EquipmentLabel)
	}
	if records[0].Parts != "Filtro" || records[1].Parts != "Correa" {
		t.Fatalf("unexpected parts: %q %q", records[0].Parts, records[1].Parts)
	}
}

func TestSegmenter_EquipmentFixedAtJobStart(t *testing.T) {
	t.Parallel()

	// 新设备标签出现时，上一个未收尾工单仍归属开启时的设备
	records, _ := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "Filtro", ""},
		{"Motor Z9", "2024-03-01", "Bujias", ""},
	})
	if len(records) != 2 {
		t.Fatalf("want 2 records got %d", len(records))
	}
	if records[0].EquipmentLabel != "Bomba X1" {
		t.Fatalf("first record equipment: %q", records[0].EquipmentLabel)
	}
	if records[1].EquipmentLabel != "Motor Z9" {
		t.Fatalf("second record equipment: %q", records[1].EquipmentLabel)
	}
}

func TestSegmenter_EmptyJobSuppressed(t *testing.T) {
	t.Parallel()

	// 配件与工时都为空的工单不产出
	records, dropped := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "", ""},
		{"", "2024-02-15", "Correa", ""},
	})
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped rows: %v", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}
	if records[0].Parts != "Correa" {
		t.Fatalf("unexpected parts: %q", records[0].Parts)
	}
}

func TestSegmenter_OrphanTextDropped(t *testing.T) {
	t.Parallel()

	// 表头之后、任何日期行之前的文本无法归属，整行丢弃
	records, dropped := runRows(t, "Acme Corp", [][]string{
		{"", "", "Filtro suelto", ""},
		{"Bomba X1", "2024-01-10", "Filtro", ""},
	})
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}
	if len(dropped) != 1 || dropped[0] != 0 {
		t.Fatalf("unexpected dropped rows: %v", dropped)
	}
}

func TestSegmenter_PlaceholderCellsIgnored(t *testing.T) {
	t.Parallel()

	records, dropped := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10", "nan", "Revision"},
		{"None", "", "nan", "None"},
	})
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped rows: %v", dropped)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}
	if records[0].Parts != "" || records[0].Labor != "Revision" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].Description != "LABOR:\nRevision" {
		t.Fatalf("unexpected description: %q", records[0].Description)
	}
}

func TestSegmenter_ShortRows(t *testing.T) {
	t.Parallel()

	// excelize 会裁掉行尾空单元格，短行按缺列处理
	records, _ := runRows(t, "Acme Corp", [][]string{
		{"Bomba X1", "2024-01-10"},
		{"", "", "Correa"},
	})
	if len(records) != 1 {
		t.Fatalf("want 1 record got %d", len(records))
	}
	if records[0].Parts != "Correa" || records[0].Labor != "" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}
