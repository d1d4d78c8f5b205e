package model

import (
	"testing"
	"time"
)

func TestBuildDescription(t *testing.T) {
	t.Parallel()

	cases := []struct {
		labor, parts, want string
	}{
		{"Revision", "Filtro", "LABOR:\nRevision\n\nPARTS:\nFiltro"},
		{"Revision", "", "LABOR:\nRevision"},
		{"", "Filtro", "PARTS:\nFiltro"},
		{"", "", ""},
		{"Revision\nAjuste", "Filtro\nCorrea", "LABOR:\nRevision\nAjuste\n\nPARTS:\nFiltro\nCorrea"},
	}
	for _, c := range cases {
		if got := BuildDescription(c.labor, c.parts); got != c.want {
			t.Fatalf("BuildDescription(%q, %q) want=%q got=%q", c.labor, c.parts, got, c.want)
		}
	}
}

func TestSetNextService(t *testing.T) {
	t.Parallel()

	job := &Job{DateDone: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}

	days := 90
	job.SetNextService(&days)
	if job.NextServiceDate == nil {
		t.Fatalf("expected next service date")
	}
	if got := job.NextServiceDate.Format("2006-01-02"); got != "2024-04-09" {
		t.Fatalf("unexpected next service date: %s", got)
	}

	job.SetNextService(nil)
	if job.NextServiceDays != nil || job.NextServiceDate != nil {
		t.Fatalf("expected cleared next service")
	}
}
