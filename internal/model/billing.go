package model

// BillingItem 基准月检针票上的一行明细（基本料金、電力量料金等）
type BillingItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SumBillingItems 基准月合计（baseMonthlyCost 的唯一来源）
func SumBillingItems(items []BillingItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Amount
	}
	return total
}

// DefaultBillingItems 新会话的默认明细
func DefaultBillingItems() []BillingItem {
	return []BillingItem{
		{Name: "基本料金", Amount: 5000},
		{Name: "電力量料金", Amount: 12000},
		{Name: "燃料費調整額", Amount: 2000},
		{Name: "再エネ賦課金", Amount: 1000},
	}
}
