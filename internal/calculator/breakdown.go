package calculator

import "dennki/internal/model"

// CalculateItemBreakdown 将全期间总额按基准月各项目占比分摊，并套用削减率
//
// 这是按比例的近似值，不是按项目重新计算料金。输出顺序与输入一致，同名项目不合并。
func CalculateItemBreakdown(items []model.BillingItem, baseMonthlyCost, totalActualCost, discountRate float64) []model.ItemBreakdown {
	rows := make([]model.ItemBreakdown, 0, len(items))
	for _, item := range items {
		var current int64
		if baseMonthlyCost > 0 {
			current = floorShare(item.Amount, baseMonthlyCost, totalActualCost)
		}
		proposed := FloorMul(float64(current), discountRate)
		rows = append(rows, model.ItemBreakdown{
			Name:          item.Name,
			CurrentTotal:  current,
			ProposedTotal: proposed,
			Difference:    current - proposed,
		})
	}
	return rows
}
