package comparison

import (
	"sort"

	"github.com/rs/zerolog"

	"dennki/internal/calculator"
	"dennki/internal/model"
)

// Catalog 比较引擎依赖的料金マスター视图
type Catalog interface {
	ByContractType(ct model.ContractType) []model.CatalogPlan
}

// Failure 单个方案计算失败的记录
type Failure struct {
	CompanyName  string             `json:"companyName"`
	ContractType model.ContractType `json:"contractType"`
	Err          error              `json:"-"`
	Message      string             `json:"message"`
}

// Comparison 一次比较的结果
type Comparison struct {
	Results  []model.CatalogComparisonResult `json:"results"`
	Failures []Failure                       `json:"failures,omitempty"`
}

// Engine 全方案比较引擎
type Engine struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewEngine 创建比较引擎
func NewEngine(catalog Catalog, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		logger:  logger.With().Str("component", "comparison").Logger(),
	}
}

// Compare 计算指定契约种别下全部方案的年间料金
//
// 单个方案失败只记录并跳过，不影响其余方案。
// 结果按正味年間コスト升序；相同时按会社名升序，再按マスター行顺序。
func (e *Engine) Compare(contractType model.ContractType, capacity float64, monthlyUsage []float64, powerFactorPct *float64) Comparison {
	rows := e.catalog.ByContractType(contractType)

	out := Comparison{
		Results: make([]model.CatalogComparisonResult, 0, len(rows)),
	}

	for _, plan := range rows {
		cost, err := calculator.TariffCostForPlan(plan, capacity, monthlyUsage, powerFactorPct)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("company", plan.CompanyName).
				Str("contract_type", string(plan.ContractType)).
				Msg("计算失败，跳过该方案")
			out.Failures = append(out.Failures, Failure{
				CompanyName:  plan.CompanyName,
				ContractType: plan.ContractType,
				Err:          err,
				Message:      err.Error(),
			})
			continue
		}

		out.Results = append(out.Results, model.CatalogComparisonResult{
			CompanyName:          plan.CompanyName,
			AnnualCost:           cost.AnnualCost,
			NetAnnualCost:        cost.NetAnnualCost,
			IncentiveShot:        cost.IncentiveShot,
			IncentiveRunning:     cost.IncentiveRunningAnnual,
			MonthlyCosts:         cost.MonthlyCosts,
			MonthlyBaseCharges:   cost.MonthlyBaseCharges,
			MonthlyEnergyCharges: cost.MonthlyEnergyCharges,
		})
	}

	sort.SliceStable(out.Results, func(i, j int) bool {
		a, b := out.Results[i], out.Results[j]
		if a.NetAnnualCost != b.NetAnnualCost {
			return a.NetAnnualCost < b.NetAnnualCost
		}
		return a.CompanyName < b.CompanyName
	})

	e.logger.Debug().
		Str("contract_type", string(contractType)).
		Int("plans", len(rows)).
		Int("ranked", len(out.Results)).
		Int("skipped", len(out.Failures)).
		Msg("比较完成")

	return out
}

// CompareAll 只返回成功的方案，按正味年間コスト升序
func (e *Engine) CompareAll(contractType model.ContractType, capacity float64, monthlyUsage []float64, powerFactorPct *float64) []model.CatalogComparisonResult {
	return e.Compare(contractType, capacity, monthlyUsage, powerFactorPct).Results
}
