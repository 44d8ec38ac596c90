package catalog

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX 从流读取 Excel 格式的料金マスター（第一个工作表，首行为表头）
func LoadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开料金マスター工作簿失败: %w", err)
	}
	defer f.Close()
	return readWorkbook("stream", f)
}

func loadXLSXFile(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开料金マスター工作簿 %s 失败: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(path, f)
}

func readWorkbook(source string, f *excelize.File) (*Catalog, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	return fromTable(source, rows[0], rows[1:])
}
