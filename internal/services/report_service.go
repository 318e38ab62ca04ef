package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// reportService renders stats projections as xlsx workbooks for the
// admin dashboard download.
type reportService struct {
	logger *slog.Logger
}

func NewReportService(logger *slog.Logger) ReportService {
	return &reportService{logger: logger}
}

func (s *reportService) ExportStats(_ context.Context, report *StatsReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("closing workbook", "error", err)
		}
	}()

	const tutorSheet = "Tutors"
	if err := f.SetSheetName("Sheet1", tutorSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headers := []interface{}{"Tutor", "Done lessons", "Hours taught"}
	if err := f.SetSheetRow(tutorSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, t := range report.Tutors {
		row := []interface{}{t.FullName, t.DoneCount, t.DoneHours}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(tutorSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write tutor row: %w", err)
		}
	}

	const studentSheet = "Students"
	if _, err := f.NewSheet(studentSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	headers = []interface{}{"Student", "Reserved", "Done", "Hours reserved", "Hours done"}
	if err := f.SetSheetRow(studentSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, st := range report.Students {
		row := []interface{}{st.FullName, st.ReservedCount, st.DoneCount, st.ReservedHours, st.DoneHours}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(studentSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write student row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
