package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportStats(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reports := NewReportService(logger)

	rep := &StatsReport{
		Tutors: []TutorStats{
			{TutorID: "t1", FullName: "Greta Olsen", DoneCount: 3, DoneHours: 2.5},
		},
		Students: []StudentStats{
			{StudentID: "s1", FullName: "Lena Hart", ReservedCount: 4, DoneCount: 3, ReservedHours: 3.33, DoneHours: 2.5},
		},
	}

	data, err := reports.ExportStats(context.Background(), rep)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Tutors")
	if err != nil {
		t.Fatalf("read tutor sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one tutor row, got %d rows", len(rows))
	}
	if rows[1][0] != "Greta Olsen" || rows[1][1] != "3" || rows[1][2] != "2.5" {
		t.Errorf("unexpected tutor row: %v", rows[1])
	}

	rows, err = f.GetRows("Students")
	if err != nil {
		t.Fatalf("read student sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one student row, got %d rows", len(rows))
	}
	if rows[1][0] != "Lena Hart" || rows[1][1] != "4" {
		t.Errorf("unexpected student row: %v", rows[1])
	}
}

func TestExportStatsEmptyReport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reports := NewReportService(logger)

	data, err := reports.ExportStats(context.Background(), &StatsReport{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Tutors", "Students"} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("read %s: %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Errorf("%s: expected only the header row, got %d", sheet, len(rows))
		}
	}
}
