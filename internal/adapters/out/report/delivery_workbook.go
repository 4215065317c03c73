// Package report renders read models as spreadsheet files.
package report

import (
	"fmt"
	"io"
	"time"

	"distribution/internal/core/application/usecases/queries"

	"github.com/xuri/excelize/v2"
)

const (
	AssignmentsSheet = "Assignments"
	SummarySheet     = "Summary"

	// ContentType is the media type of the workbook WriteDeliveryReport
	// produces.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var assignmentHeader = []any{
	"Assignment ID", "Order ID", "Courier", "Status", "Assigned at", "Accept deadline",
	"Accepted at", "Delivered at", "Expected minutes", "Delivery minutes", "Late",
}

// WriteDeliveryReport writes the SLA workbook: one row per assignment on the
// first sheet and the counters on the second. Times are written in UTC.
func WriteDeliveryReport(w io.Writer, report queries.DeliveryReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", AssignmentsSheet); err != nil {
		return err
	}
	if err := writeAssignments(f, report.Assignments); err != nil {
		return fmt.Errorf("write %s sheet: %w", AssignmentsSheet, err)
	}
	if err := writeSummary(f, report); err != nil {
		return fmt.Errorf("write %s sheet: %w", SummarySheet, err)
	}

	_, err := f.WriteTo(w)
	return err
}

func writeAssignments(f *excelize.File, assignments []queries.AssignmentResponse) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(AssignmentsSheet, "A1", &assignmentHeader); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(assignmentHeader), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(AssignmentsSheet, "A1", last, bold); err != nil {
		return err
	}
	if err = f.SetColWidth(AssignmentsSheet, "A", "B", 38); err != nil {
		return err
	}
	if err = f.SetColWidth(AssignmentsSheet, "C", "H", 22); err != nil {
		return err
	}

	for i, a := range assignments {
		row := []any{
			a.ID.String(),
			a.OrderID.String(),
			a.StaffName,
			a.Status,
			formatTime(&a.AssignedAt),
			formatTime(&a.AcceptDeadline),
			formatTime(a.AcceptedAt),
			formatTime(a.DeliveredAt),
			a.ExpectedDeliveryMinutes,
			"",
			"",
		}
		if a.DeliveryMinutes != nil {
			row[9] = *a.DeliveryMinutes
		}
		if a.IsLate != nil {
			row[10] = yesNo(*a.IsLate)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(AssignmentsSheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func writeSummary(f *excelize.File, report queries.DeliveryReport) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Branch", report.BranchID.String()},
		{"From", formatTime(&report.From)},
		{"To", formatTime(&report.To)},
		{"Assignments", len(report.Assignments)},
		{"Delivered", report.Delivered},
		{"On time", report.OnTime},
		{"Late", report.Late},
		{"Rejected", report.Rejected},
		{"Expired", report.Expired},
		{"Cancelled", report.Cancelled},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 38)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
