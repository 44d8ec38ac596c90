package model

import "strconv"

// SourceType 月度记录的金额来源
type SourceType string

const (
	SourceMeasured  SourceType = "measured"  // 实际请求额
	SourceEstimated SourceType = "estimated" // 按基准月合计推算
	SourceBaseline  SourceType = "baseline"  // 无任何输入时的基准月替代行
)

// Label 报表中显示的输入类型
func (s SourceType) Label() string {
	switch s {
	case SourceMeasured:
		return "実数"
	case SourceEstimated:
		return "基準値推計"
	case SourceBaseline:
		return "基準値"
	default:
		return "-"
	}
}

// MonthEntry 调用方输入的单月原始数据，BilledAmount 为 0 表示未填写
type MonthEntry struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	UsageKWh     float64 `json:"usageKwh"`
	BilledAmount float64 `json:"billedAmount"`
}

// MonthlyRecord 参与计算的月度记录
// Year/Month 为 0 表示基准月替代行
type MonthlyRecord struct {
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	UsageKWh     float64    `json:"usageKwh"`
	BilledAmount float64    `json:"billedAmount"`
	SourceType   SourceType `json:"sourceType"`
}

// IsBaseline 是否为基准月替代行
func (r MonthlyRecord) IsBaseline() bool {
	return r.SourceType == SourceBaseline
}

// YearLabel 报表用年份
func (r MonthlyRecord) YearLabel() string {
	if r.IsBaseline() || r.Year == 0 {
		return "-"
	}
	return strconv.Itoa(r.Year)
}

// MonthLabel 报表用月份
func (r MonthlyRecord) MonthLabel() string {
	if r.IsBaseline() || r.Month == 0 {
		return "基準月"
	}
	return strconv.Itoa(r.Month)
}
