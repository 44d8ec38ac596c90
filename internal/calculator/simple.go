package calculator

import "dennki/internal/model"

// CalculateSimplePlanCost 简易模式：按削减率估算提案后费用
//
// totalActualCost 为 0 时削减率为 0，monthsCount 为 0 时月平均为 0，均不视为错误。
func CalculateSimplePlanCost(totalActualCost, discountRate float64, monthsCount int) model.ComparisonResult {
	proposed := FloorMul(totalActualCost, discountRate)
	reduction := FloorAmount(totalActualCost - float64(proposed))

	result := model.ComparisonResult{
		ProposedCost:    proposed,
		ReductionAmount: reduction,
	}
	if totalActualCost > 0 {
		result.ReductionPct = float64(reduction) / totalActualCost * 100
	}
	if monthsCount > 0 {
		result.AvgMonthlyReduction = floorDiv(reduction, int64(monthsCount))
	}
	return result
}
