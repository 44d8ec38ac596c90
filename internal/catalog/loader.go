package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dennki/internal/model"
)

// Load 从文件加载料金マスター
// 按扩展名选择格式：.xlsx/.xlsm、.db/.sqlite/.sqlite3，其余按 CSV 处理
func Load(path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("读取料金マスター %s 失败: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSXFile(path)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("打开料金マスター %s 失败: %w", path, err)
		}
		defer f.Close()
		return readCSV(path, f)
	}
}

// LoadCSV 从流读取 CSV 格式的料金マスター
func LoadCSV(r io.Reader) (*Catalog, error) {
	return readCSV("stream", r)
}

func readCSV(source string, r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析料金マスター CSV 失败: %w", err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	return fromTable(source, records[0], records[1:])
}

// fromTable 校验表头并解析数据行
func fromTable(source string, header []string, records [][]string) (*Catalog, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	missing := make([]string, 0)
	for _, want := range RequiredColumns {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	rows := make([]model.CatalogPlan, 0, len(records))
	for _, rec := range records {
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, parseRow(rec, cols))
	}
	return New(source, rows), nil
}

func parseRow(rec []string, cols map[string]int) model.CatalogPlan {
	cell := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	p := model.CatalogPlan{
		CompanyName:  cell(ColCompanyName),
		ContractType: model.ContractType(cell(ColContractType)),
	}

	// 单价必须可解析；インセンティブ空白按 0
	num := func(name string, allowEmpty bool) float64 {
		raw := cell(name)
		if raw == "" && allowEmpty {
			return 0
		}
		v, err := parseNumber(raw)
		if err != nil {
			p.Problems = append(p.Problems, fmt.Sprintf("%s: %q 不是有效数值", name, raw))
			return 0
		}
		return v
	}
	p.BaseUnitPrice = num(ColBaseUnitPrice, false)
	p.EnergyUnitPrice = num(ColEnergyUnitPrice, false)
	p.IncentiveShot = num(ColIncentiveShot, true)
	p.IncentiveRunning = num(ColIncentiveRunning, true)

	return p
}

// parseNumber 去掉千分位后解析；NaN、Inf 及溢出值不接受
func parseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, ",", "")
	if s == "" {
		return 0, errors.New("空值")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q 不是有限数", raw)
	}
	return v, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(h)
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
