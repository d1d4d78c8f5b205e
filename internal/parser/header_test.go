package parser

import "testing"

func TestFindHeaderRow_Standard(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"AGENDA DE TALLER"},
		{},
		{"EQUIPO", "FECHA", "REPUESTOS", "MANO DE OBRA"},
		{"Bomba X1", "2024-01-10", "Filtro", "Revision"},
	}
	if got := FindHeaderRow(rows); got != 2 {
		t.Fatalf("want=2 got=%d", got)
	}
}

func TestFindHeaderRow_CaseInsensitive(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"equipo", "fecha"},
	}
	if got := FindHeaderRow(rows); got != 0 {
		t.Fatalf("want=0 got=%d", got)
	}
}

func TestFindHeaderRow_ManoAlone(t *testing.T) {
	t.Parallel()

	// FECHA 缺失时 MANO 也能确认表头
	rows := [][]string{
		{"Equipo", "", "Repuestos", "Mano de obra"},
	}
	if got := FindHeaderRow(rows); got != 0 {
		t.Fatalf("want=0 got=%d", got)
	}
}

func TestFindHeaderRow_NotFound(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"EQUIPO"},                     // 缺 FECHA/MANO
		{"FECHA", "MANO DE OBRA"},      // 缺 EQUIPO
		{"nombre", "telefono", "nota"}, // 无关表头
	}
	if got := FindHeaderRow(rows); got != -1 {
		t.Fatalf("want=-1 got=%d", got)
	}

	if got := FindHeaderRow(nil); got != -1 {
		t.Fatalf("empty sheet want=-1 got=%d", got)
	}
}
