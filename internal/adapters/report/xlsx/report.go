package xlsx

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

// SheetName は進捗レポートのシート名です。
const SheetName = "Progress"

// ContentType は xlsx ファイルの MIME タイプです。
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const listPageSize = 200

var headers = []string{
	"Employee ID",
	"Name",
	"Email",
	"Department",
	"Position",
	"Start Date",
	"Status",
	"Progress (%)",
	"Tasks",
	"Completed",
	"Pending",
	"Overdue",
}

// EmployeeLister は社員一覧の取得元です。
type EmployeeLister interface {
	ListEmployees(ctx context.Context, in employee.ListEmployeesInput) (*employee.ListEmployeesResult, error)
}

// Generate は全社員を取得して進捗レポートを書き出します。
func Generate(ctx context.Context, lister EmployeeLister, w io.Writer, now time.Time) error {
	var (
		employees []*employee.Employee
		token     string
	)
	for {
		page, err := lister.ListEmployees(ctx, employee.ListEmployeesInput{PageSize: listPageSize, PageToken: token})
		if err != nil {
			return err
		}
		employees = append(employees, page.Employees...)
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	return Write(w, employees, now)
}

// Write は社員ごとに 1 行の進捗レポートを書き出します。期限切れ件数は now 時点で数えます。
func Write(w io.Writer, employees []*employee.Employee, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx: header %s: %w", cell, err)
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("xlsx: apply header style: %w", err)
	}

	for i, e := range employees {
		summary := employee.SummarizeTasks(e, now)
		values := []any{
			e.ID,
			e.Name,
			e.Email,
			e.Department,
			e.Position,
			e.StartDate.Format("2006-01-02"),
			string(e.Status),
			e.Progress,
			summary.Total,
			summary.Completed,
			summary.Pending,
			summary.Overdue,
		}
		row := i + 2
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("xlsx: row %d: %w", row, err)
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("xlsx: freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}
