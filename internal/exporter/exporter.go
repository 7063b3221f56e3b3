// Package exporter 将单个 CLUES 的汇总与明细导出为 xlsx。
package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/martin-lopez25/appbrechas/internal/model"
	"github.com/martin-lopez25/appbrechas/internal/report"
)

// Sheet 名称
const (
	SheetSummary = "Summary"
	SheetDetail  = "Detail"
)

// ContentType xlsx MIME
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter 报表导出器，只读持有规范表
type Exporter struct {
	table *model.Table
}

// NewExporter 创建导出器
func NewExporter(table *model.Table) *Exporter {
	return &Exporter{table: table}
}

// ExportOptions 导出选项
type ExportOptions struct {
	FacilityID string
	Progress   func(ProgressEvent)
}

// Artifact 导出结果
type Artifact struct {
	Name        string
	Bytes       []byte
	SummaryRows int
	DetailRows  int
}

// FileName 导出文件名
func FileName(facilityID string) string {
	return fmt.Sprintf("report_%s.xlsx", facilityID)
}

// Export 导出 xlsx；未选择 CLUES 时返回 (nil, nil)
func (e *Exporter) Export(opts ExportOptions) (*Artifact, error) {
	facilityID := strings.TrimSpace(opts.FacilityID)
	if facilityID == "" {
		return nil, nil
	}

	progress := newProgressReporter(opts.Progress)
	progress.report(5, StageFilter)
	rows := report.FilterByFacility(e.table, facilityID)

	progress.report(25, StageSummary)
	summary := SummarySheet(rows)

	progress.report(45, StageDetail)
	detail := DetailSheet(e.table, rows)

	f, err := workbook(summary, detail, progress)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	progress.report(90, StageWrite)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	progress.report(100, StageDone)
	return &Artifact{
		Name:        FileName(facilityID),
		Bytes:       buf.Bytes(),
		SummaryRows: len(summary.Rows),
		DetailRows:  len(detail.Rows),
	}, nil
}

// Workbook 生成包含 Summary / Detail 两个 sheet 的工作簿
func Workbook(summary, detail Sheet, progress func(ProgressEvent)) (*excelize.File, error) {
	return workbook(summary, detail, newProgressReporter(progress))
}

func workbook(summary, detail Sheet, progress *progressReporter) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summary.Name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detail.Name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", detail.Name, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, summary, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	progress.report(60, StageSheetS)

	if err := writeSheet(f, detail, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	progress.report(80, StageSheetD)

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("写入 %s 表头失败: %w", s.Name, err)
	}
	if len(s.Headers) > 0 {
		if err := f.SetRowStyle(s.Name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("设置 %s 表头样式失败: %w", s.Name, err)
		}
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
			return fmt.Errorf("写入 %s 第 %d 行失败: %w", s.Name, i+2, err)
		}
	}

	if n := len(s.Headers); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, "A", last, 18); err != nil {
			return fmt.Errorf("设置 %s 列宽失败: %w", s.Name, err)
		}
	}
	return nil
}
