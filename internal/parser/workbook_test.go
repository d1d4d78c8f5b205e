package parser

import (
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook 构造只含给定 Sheet 的内存工作簿
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for i, row := range rows {
			cellRef := fmt.Sprintf("A%d", i+1)
			if err := f.SetSheetRow(name, cellRef, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	return f
}

func TestParseWorkbook_EndToEnd(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, map[string][][]interface{}{
		"Acme Corp": {
			{"EQUIPO", "FECHA", "REPUESTOS", "MANO DE OBRA"},
			{"Bomba X1", "2024-01-10", "Filtro", "Revision"},
			{"", "", "Correa", ""},
		},
	})

	result := ParseWorkbook(f)
	if len(result.Records) != 1 {
		t.Fatalf("want 1 record got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.ClientLabel != "Acme Corp" {
		t.Fatalf("unexpected client: %q", rec.ClientLabel)
	}
	if rec.EquipmentLabel != "Bomba X1" {
		t.Fatalf("unexpected equipment: %q", rec.EquipmentLabel)
	}
	if want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC); !rec.Date.Equal(want) {
		t.Fatalf("want=%v got=%v", want, rec.Date)
	}
	if rec.Description != "LABOR:\nRevision\n\nPARTS:\nFiltro\nCorrea" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestParseWorkbook_ExcludedAndHeaderlessSheets(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, map[string][][]interface{}{
		// 模板页：有表头也不产出记录
		"Plantilla": {
			{"EQUIPO", "FECHA", "REPUESTOS", "MANO DE OBRA"},
			{"Bomba X1", "2024-01-10", "Filtro", ""},
		},
		// 无表头的 Sheet 整体跳过，不算错误
		"Notas": {
			{"recordar llamar al proveedor"},
		},
		"Cliente Real": {
			{"EQUIPO", "FECHA", "REPUESTOS", "MANO DE OBRA"},
			{"Motor Z9", "2024-02-20", "", "Cambio de aceite"},
		},
	})

	result := ParseWorkbook(f)
	if len(result.Records) != 1 {
		t.Fatalf("want 1 record got %d", len(result.Records))
	}
	if result.Records[0].ClientLabel != "Cliente Real" {
		t.Fatalf("unexpected client: %q", result.Records[0].ClientLabel)
	}

	statuses := map[string]string{}
	for _, sheet := range result.Sheets {
		statuses[sheet.SheetName] = sheet.Status
	}
	if statuses["Plantilla"] != SheetStatusSkipped {
		t.Fatalf("Plantilla status: %q", statuses["Plantilla"])
	}
	if statuses["Notas"] != SheetStatusSkipped {
		t.Fatalf("Notas status: %q", statuses["Notas"])
	}
	if statuses["Cliente Real"] != SheetStatusParsed {
		t.Fatalf("Cliente Real status: %q", statuses["Cliente Real"])
	}
}

func TestParseWorkbook_DroppedRowsReported(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, map[string][][]interface{}{
		"Acme Corp": {
			{"EQUIPO", "FECHA", "REPUESTOS", "MANO DE OBRA"},
			{"", "", "texto sin fecha", ""},
			{"Bomba X1", "2024-01-10", "Filtro", ""},
		},
	})

	result := ParseWorkbook(f)
	var sheet *SheetResult
	for i := range result.Sheets {
		if result.Sheets[i].SheetName == "Acme Corp" {
			sheet = &result.Sheets[i]
		}
	}
	if sheet == nil {
		t.Fatalf("sheet result missing")
	}
	if len(sheet.DroppedRows) != 1 || sheet.DroppedRows[0] != 2 {
		t.Fatalf("unexpected dropped rows: %v", sheet.DroppedRows)
	}
	if sheet.Records != 1 {
		t.Fatalf("want 1 record got %d", sheet.Records)
	}
}
