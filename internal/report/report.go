package report

import (
	"dennki/internal/calculator"
	"dennki/internal/model"
)

// 月别推移表的列
var MonthlyHeader = []string{"年", "月", "使用量(kWh)", "請求金額", "提案金額", "削減額", "入力タイプ"}

// 项目别内訳表的列
var BreakdownHeader = []string{"明細項目", "現状(全期間)", "提案後(全期間)", "削減額"}

// TotalLabel 合计行的年列
const TotalLabel = "合計"

// MonthlyRow 月别推移表的一行，金额均为向下取整后的整数
type MonthlyRow struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	YearLabel      string  `json:"yearLabel"`
	MonthLabel     string  `json:"monthLabel"`
	UsageKWh       float64 `json:"usageKwh"`
	BilledAmount   int64   `json:"billedAmount"`
	ProposedAmount int64   `json:"proposedAmount"`
	Reduction      int64   `json:"reduction"`
	InputType      string  `json:"inputType"`
}

// MonthlyTable 月别推移表
type MonthlyTable struct {
	SheetName string       `json:"sheetName"`
	Rows      []MonthlyRow `json:"rows"`
	Total     MonthlyRow   `json:"total"`
}

// BreakdownTable 项目别内訳表（概算）
type BreakdownTable struct {
	SheetName string                `json:"sheetName"`
	Rows      []model.ItemBreakdown `json:"rows"`
}

// PlanReport 单个方案的两张表
type PlanReport struct {
	Plan      model.Plan     `json:"plan"`
	Monthly   MonthlyTable   `json:"monthly"`
	Breakdown BreakdownTable `json:"breakdown"`
}

// Report 按方案顺序排列的报表
type Report struct {
	Plans []PlanReport `json:"plans"`
}

// Table 序列化用的通用表
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
	// 最后一行是合计行
	HasTotal bool
}

// BuildReport 组装每个方案的月别推移表与项目别内訳表
func BuildReport(selectedPlans []model.Plan, monthRecords []model.MonthlyRecord, billingItems []model.BillingItem, baseMonthlyCost, totalActualCost float64) Report {
	namer := newSheetNamer()
	r := Report{Plans: make([]PlanReport, 0, len(selectedPlans))}

	for _, plan := range selectedPlans {
		monthlySheet, breakdownSheet := namer.pair(plan.Name)

		r.Plans = append(r.Plans, PlanReport{
			Plan:    plan,
			Monthly: buildMonthlyTable(monthlySheet, monthRecords, plan.DiscountRate),
			Breakdown: BreakdownTable{
				SheetName: breakdownSheet,
				Rows:      calculator.CalculateItemBreakdown(billingItems, baseMonthlyCost, totalActualCost, plan.DiscountRate),
			},
		})
	}
	return r
}

func buildMonthlyTable(sheet string, records []model.MonthlyRecord, rate float64) MonthlyTable {
	t := MonthlyTable{
		SheetName: sheet,
		Rows:      make([]MonthlyRow, 0, len(records)),
		Total: MonthlyRow{
			YearLabel: TotalLabel,
			InputType: "-",
		},
	}

	for _, rec := range records {
		billed := calculator.FloorAmount(rec.BilledAmount)
		proposed := calculator.FloorMul(float64(billed), rate)
		row := MonthlyRow{
			Year:           rec.Year,
			Month:          rec.Month,
			YearLabel:      rec.YearLabel(),
			MonthLabel:     rec.MonthLabel(),
			UsageKWh:       rec.UsageKWh,
			BilledAmount:   billed,
			ProposedAmount: proposed,
			Reduction:      billed - proposed,
			InputType:      rec.SourceType.Label(),
		}
		t.Rows = append(t.Rows, row)

		t.Total.UsageKWh += row.UsageKWh
		t.Total.BilledAmount += row.BilledAmount
		t.Total.ProposedAmount += row.ProposedAmount
		t.Total.Reduction += row.Reduction
	}
	return t
}

// Tables 按 (月别, 内訳) × 方案 的顺序展开为通用表
func (r Report) Tables() []Table {
	tables := make([]Table, 0, len(r.Plans)*2)
	for _, p := range r.Plans {
		monthly := Table{
			Name:     p.Monthly.SheetName,
			Header:   MonthlyHeader,
			Rows:     make([][]any, 0, len(p.Monthly.Rows)+1),
			HasTotal: true,
		}
		for _, row := range p.Monthly.Rows {
			monthly.Rows = append(monthly.Rows, monthlyCells(row))
		}
		monthly.Rows = append(monthly.Rows, []any{
			TotalLabel, "",
			p.Monthly.Total.UsageKWh,
			p.Monthly.Total.BilledAmount,
			p.Monthly.Total.ProposedAmount,
			p.Monthly.Total.Reduction,
			p.Monthly.Total.InputType,
		})

		breakdown := Table{
			Name:   p.Breakdown.SheetName,
			Header: BreakdownHeader,
			Rows:   make([][]any, 0, len(p.Breakdown.Rows)),
		}
		for _, it := range p.Breakdown.Rows {
			breakdown.Rows = append(breakdown.Rows, []any{it.Name, it.CurrentTotal, it.ProposedTotal, it.Difference})
		}

		tables = append(tables, monthly, breakdown)
	}
	return tables
}

func monthlyCells(row MonthlyRow) []any {
	var year, month any = row.YearLabel, row.MonthLabel
	if row.Year != 0 {
		year = row.Year
	}
	if row.Month != 0 {
		month = row.Month
	}
	return []any{year, month, row.UsageKWh, row.BilledAmount, row.ProposedAmount, row.Reduction, row.InputType}
}
