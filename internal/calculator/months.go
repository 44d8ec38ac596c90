package calculator

import (
	"fmt"

	"dennki/internal/model"
)

// BuildMonthRecords 从月度输入组装参与计算的记录
//
// 仅保留使用量或请求额大于 0 的月份；请求额为 0 时按基准月合计推算。
// 保留的月份必须是有效年月（年 > 0，月 1..12），全 0 的空行不校验。
// 没有任何月份符合条件时，补一行基准月（1 个月分）。
func BuildMonthRecords(entries []model.MonthEntry, baseMonthlyCost float64) ([]model.MonthlyRecord, model.UsageSummary, error) {
	records := make([]model.MonthlyRecord, 0, len(entries))
	summary := model.UsageSummary{BaseMonthlyCost: baseMonthlyCost}

	for _, e := range entries {
		if e.UsageKWh < 0 || e.BilledAmount < 0 || !isFinite(e.UsageKWh) || !isFinite(e.BilledAmount) {
			return nil, model.UsageSummary{}, fmt.Errorf("%d/%d: 使用量与请求额必须为非负有限数", e.Year, e.Month)
		}
		if e.UsageKWh <= 0 && e.BilledAmount <= 0 {
			continue
		}
		if e.Year <= 0 || e.Month < 1 || e.Month > 12 {
			return nil, model.UsageSummary{}, &InvalidMonthError{Year: e.Year, Month: e.Month}
		}

		rec := model.MonthlyRecord{
			Year:         e.Year,
			Month:        e.Month,
			UsageKWh:     e.UsageKWh,
			BilledAmount: e.BilledAmount,
			SourceType:   model.SourceMeasured,
		}
		if e.BilledAmount <= 0 {
			rec.BilledAmount = baseMonthlyCost
			rec.SourceType = model.SourceEstimated
		}

		summary.TotalUsageKWh += rec.UsageKWh
		summary.TotalActualCost += rec.BilledAmount
		records = append(records, rec)
	}

	if len(records) == 0 {
		records = append(records, model.MonthlyRecord{
			BilledAmount: baseMonthlyCost,
			SourceType:   model.SourceBaseline,
		})
		summary.TotalActualCost = baseMonthlyCost
	}

	summary.MonthsCount = len(records)
	if summary.TotalUsageKWh > 0 {
		summary.AvgUnitPrice = summary.TotalActualCost / summary.TotalUsageKWh
	}
	return records, summary, nil
}
