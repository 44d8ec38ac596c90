package calculator

import (
	"fmt"
	"math"

	"dennki/internal/model"
)

// MonthsPerYear 年间计算的月数
const MonthsPerYear = 12

// NeutralPowerFactor 力率 85% 时基本料金不增不减
const NeutralPowerFactor = 85.0

// PlanLookup 按复合键查找料金マスターの行
type PlanLookup interface {
	Lookup(key model.PlanKey) (model.CatalogPlan, bool)
}

// CalculateTariffCost 查找方案并计算 12 个月的料金
func CalculateTariffCost(plans PlanLookup, key model.PlanKey, capacity float64, monthlyUsage []float64, powerFactorPct *float64) (*model.TariffCost, error) {
	plan, ok := plans.Lookup(key)
	if !ok {
		return nil, &PlanNotFoundError{Key: key}
	}
	return TariffCostForPlan(plan, capacity, monthlyUsage, powerFactorPct)
}

// TariffCostForPlan 按单价计算 12 个月的料金
//
// 高压：基本料金 = 基本料金単価 × 容量 × (185 - 力率) / 100
// 其他：基本料金 = 基本料金単価 × 容量
func TariffCostForPlan(plan model.CatalogPlan, capacity float64, monthlyUsage []float64, powerFactorPct *float64) (*model.TariffCost, error) {
	if plan.Malformed() {
		return nil, &MalformedPlanError{Key: plan.Key(), Problems: plan.Problems}
	}
	if problems := nonFiniteFields(plan); len(problems) > 0 {
		return nil, &MalformedPlanError{Key: plan.Key(), Problems: problems}
	}
	if err := validateUsage(monthlyUsage); err != nil {
		return nil, err
	}
	if capacity < 0 || !isFinite(capacity) {
		return nil, ErrInvalidCapacity
	}

	var baseCharge float64
	if plan.ContractType.RequiresPowerFactor() {
		if powerFactorPct == nil {
			return nil, &MissingParameterError{Parameter: "力率", Key: plan.Key()}
		}
		if pf := *powerFactorPct; pf < 0 || pf > 100 || !isFinite(pf) {
			return nil, ErrInvalidPowerFactor
		}
		baseCharge = BaseChargeWithPowerFactor(plan.BaseUnitPrice, capacity, *powerFactorPct)
	} else {
		baseCharge = plan.BaseUnitPrice * capacity
	}

	result := &model.TariffCost{
		MonthlyCosts:         make([]float64, 0, MonthsPerYear),
		MonthlyBaseCharges:   make([]float64, 0, MonthsPerYear),
		MonthlyEnergyCharges: make([]float64, 0, MonthsPerYear),
		IncentiveShot:        plan.IncentiveShot,
	}

	for _, usage := range monthlyUsage {
		energyCharge := plan.EnergyUnitPrice * usage
		monthly := baseCharge + energyCharge

		result.MonthlyBaseCharges = append(result.MonthlyBaseCharges, baseCharge)
		result.MonthlyEnergyCharges = append(result.MonthlyEnergyCharges, energyCharge)
		result.MonthlyCosts = append(result.MonthlyCosts, monthly)
		result.AnnualCost += monthly
	}

	result.IncentiveRunningAnnual = plan.IncentiveRunning * MonthsPerYear
	result.NetAnnualCost = result.AnnualCost - result.IncentiveShot - result.IncentiveRunningAnnual
	if !isFinite(result.NetAnnualCost) {
		return nil, ErrCostOverflow
	}

	return result, nil
}

// BaseChargeWithPowerFactor 力率割引/割増を適用した基本料金
func BaseChargeWithPowerFactor(baseUnitPrice, capacity, powerFactorPct float64) float64 {
	return baseUnitPrice * capacity * (100 + NeutralPowerFactor - powerFactorPct) / 100
}

// PowerFactorMultiplier 力率对应的基本料金倍率（85% → 1.00）
func PowerFactorMultiplier(powerFactorPct float64) float64 {
	return (100 + NeutralPowerFactor - powerFactorPct) / 100
}

func validateUsage(monthlyUsage []float64) error {
	if len(monthlyUsage) != MonthsPerYear {
		return ErrInvalidUsage
	}
	for _, u := range monthlyUsage {
		if u < 0 || !isFinite(u) {
			return ErrInvalidUsage
		}
	}
	return nil
}

// nonFiniteFields 单价与インセンティブ中的 NaN/Inf
func nonFiniteFields(plan model.CatalogPlan) []string {
	fields := []struct {
		name string
		v    float64
	}{
		{"base_unit_price", plan.BaseUnitPrice},
		{"energy_unit_price", plan.EnergyUnitPrice},
		{"incentive_shot", plan.IncentiveShot},
		{"incentive_running", plan.IncentiveRunning},
	}
	var problems []string
	for _, f := range fields {
		if !isFinite(f.v) {
			problems = append(problems, fmt.Sprintf("%s: %v 不是有限数", f.name, f.v))
		}
	}
	return problems
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
