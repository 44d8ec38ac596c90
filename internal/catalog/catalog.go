package catalog

import (
	"dennki/internal/model"
)

// 必须存在的列（顺序即 SchemaError 中的报告顺序）
const (
	ColCompanyName      = "company_name"
	ColContractType     = "contract_type"
	ColBaseUnitPrice    = "base_unit_price"
	ColEnergyUnitPrice  = "energy_unit_price"
	ColIncentiveShot    = "incentive_shot"
	ColIncentiveRunning = "incentive_running"
)

// RequiredColumns 料金マスターの必須カラム
var RequiredColumns = []string{
	ColCompanyName,
	ColContractType,
	ColBaseUnitPrice,
	ColEnergyUnitPrice,
	ColIncentiveShot,
	ColIncentiveRunning,
}

// Catalog 料金マスター（只读，保持原始行顺序）
//
// 重复的 (company_name, contract_type) 不报错：查询时第一行优先，后续行被遮蔽。
type Catalog struct {
	source string
	rows   []model.CatalogPlan
	index  map[model.PlanKey]int
}

// New 由已解析的行构建目录
func New(source string, rows []model.CatalogPlan) *Catalog {
	c := &Catalog{
		source: source,
		rows:   make([]model.CatalogPlan, len(rows)),
		index:  make(map[model.PlanKey]int, len(rows)),
	}
	copy(c.rows, rows)
	for i, r := range c.rows {
		if _, exists := c.index[r.Key()]; !exists {
			c.index[r.Key()] = i
		}
	}
	return c
}

// Source 数据来源（文件路径或 "stream"）
func (c *Catalog) Source() string {
	return c.source
}

// Len 行数（含被遮蔽的重复行）
func (c *Catalog) Len() int {
	return len(c.rows)
}

// Rows 全部行的副本，保持原始顺序
func (c *Catalog) Rows() []model.CatalogPlan {
	out := make([]model.CatalogPlan, len(c.rows))
	copy(out, c.rows)
	return out
}

// Lookup 按复合键查找，first match wins
func (c *Catalog) Lookup(key model.PlanKey) (model.CatalogPlan, bool) {
	i, ok := c.index[key]
	if !ok {
		return model.CatalogPlan{}, false
	}
	return c.rows[i], true
}

// ByContractType 指定契约种别的全部行，保持原始顺序
func (c *Catalog) ByContractType(ct model.ContractType) []model.CatalogPlan {
	out := make([]model.CatalogPlan, 0)
	for _, r := range c.rows {
		if r.ContractType == ct {
			out = append(out, r)
		}
	}
	return out
}

// ContractTypes 出现过的契约种别及行数，按首次出现顺序
func (c *Catalog) ContractTypes() ([]model.ContractType, map[model.ContractType]int) {
	order := make([]model.ContractType, 0)
	counts := make(map[model.ContractType]int)
	for _, r := range c.rows {
		if _, seen := counts[r.ContractType]; !seen {
			order = append(order, r.ContractType)
		}
		counts[r.ContractType]++
	}
	return order, counts
}
