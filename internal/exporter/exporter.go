package exporter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"dennki/internal/report"
)

// ErrEmptyReport 没有选择任何方案
var ErrEmptyReport = errors.New("报告中没有方案")

// 金额列的显示格式（值本身仍为整数）
const numFmtThousands = 3

// Options 导出选项
type Options struct {
	Progress func(ProgressEvent)
}

// Exporter 比较报表的 xlsx 导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 每个方案写入两张工作表：月别推移、项目别内訳
func (e *Exporter) Export(r report.Report, opts Options) (*excelize.File, error) {
	tables := r.Tables()
	if len(tables) == 0 {
		return nil, ErrEmptyReport
	}

	f := excelize.NewFile()
	styles, err := newSheetStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(opts.Progress, 0, StageStart)
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", t.Name, err)
		}

		if err := writeTable(f, t, styles); err != nil {
			_ = f.Close()
			return nil, err
		}
		reportProgress(opts.Progress, (i+1)*90/len(tables), StageSheet+t.Name)
	}

	f.SetActiveSheet(0)
	reportProgress(opts.Progress, 100, StageDone)
	return f, nil
}

// ExportBytes 导出并序列化为字节流
func (e *Exporter) ExportBytes(r report.Report, opts Options) ([]byte, error) {
	f, err := e.Export(r, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	total  int
	amount int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: numFmtThousands,
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}

	s.amount, err = f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return s, fmt.Errorf("create amount style: %w", err)
	}
	return s, nil
}

func writeTable(f *excelize.File, t report.Table, styles sheetStyles) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header %s: %w", t.Name, err)
	}
	if err := f.SetRowStyle(t.Name, 1, 1, styles.header); err != nil {
		return fmt.Errorf("style header %s: %w", t.Name, err)
	}

	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return fmt.Errorf("write row %s:%d: %w", t.Name, i+2, err)
		}
	}

	lastRow := len(t.Rows) + 1
	lastCol, _ := excelize.ColumnNumberToName(len(t.Header))
	if len(t.Rows) > 0 {
		// 第一列为文字，其余数字列统一千分位
		if err := f.SetCellStyle(t.Name, "B2", fmt.Sprintf("%s%d", lastCol, lastRow), styles.amount); err != nil {
			return fmt.Errorf("style rows %s: %w", t.Name, err)
		}
	}
	if t.HasTotal && len(t.Rows) > 0 {
		if err := f.SetCellStyle(t.Name, fmt.Sprintf("A%d", lastRow), fmt.Sprintf("%s%d", lastCol, lastRow), styles.total); err != nil {
			return fmt.Errorf("style total %s: %w", t.Name, err)
		}
	}

	if err := f.SetColWidth(t.Name, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(t.Name, "B", lastCol, 15)
}
