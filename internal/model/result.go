package model

// ComparisonResult 简易模式的单方案比较结果
type ComparisonResult struct {
	ProposedCost        int64   `json:"proposedCost"`
	ReductionAmount     int64   `json:"reductionAmount"`
	ReductionPct        float64 `json:"reductionPct"`
	AvgMonthlyReduction int64   `json:"avgMonthlyReduction"`
}

// ItemBreakdown 明细项目的全期间按比例分摊
type ItemBreakdown struct {
	Name          string `json:"name"`
	CurrentTotal  int64  `json:"currentTotal"`
	ProposedTotal int64  `json:"proposedTotal"`
	Difference    int64  `json:"difference"`
}

// TariffCost 按料金マスター单价计算的年间料金
type TariffCost struct {
	MonthlyCosts           []float64 `json:"monthlyCosts"`
	AnnualCost             float64   `json:"annualCost"`
	MonthlyBaseCharges     []float64 `json:"monthlyBaseCharges"`
	MonthlyEnergyCharges   []float64 `json:"monthlyEnergyCharges"`
	IncentiveShot          float64   `json:"incentiveShot"`
	IncentiveRunningAnnual float64   `json:"incentiveRunningAnnual"`
	NetAnnualCost          float64   `json:"netAnnualCost"`
}

// CatalogComparisonResult 料金マスター模式下的单方案结果
type CatalogComparisonResult struct {
	CompanyName          string    `json:"companyName"`
	AnnualCost           float64   `json:"annualCost"`
	NetAnnualCost        float64   `json:"netAnnualCost"`
	IncentiveShot        float64   `json:"incentiveShot"`
	IncentiveRunning     float64   `json:"incentiveRunning"` // 年间
	MonthlyCosts         []float64 `json:"monthlyCosts"`
	MonthlyBaseCharges   []float64 `json:"monthlyBaseCharges"`
	MonthlyEnergyCharges []float64 `json:"monthlyEnergyCharges"`
}

// UsageSummary 当前契约状况汇总
type UsageSummary struct {
	MonthsCount     int     `json:"monthsCount"`
	TotalUsageKWh   float64 `json:"totalUsageKwh"`
	TotalActualCost float64 `json:"totalActualCost"`
	AvgUnitPrice    float64 `json:"avgUnitPrice"` // 円/kWh
	BaseMonthlyCost float64 `json:"baseMonthlyCost"`
}
