package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dennki/internal/calculator"
	"dennki/internal/model"
	"dennki/internal/report"
)

// NoPlansWarning 未选择方案时的提示（非致命）
const NoPlansWarning = "比較するプランが選択されていません。設定を確認してください。"

// DiagnosisRequest 简易诊断输入
//
// BillingItems 省略时使用默认明细；Plans 省略时使用区分对应的默认方案，
// 显式传入空数组表示未选择任何方案。
type DiagnosisRequest struct {
	Contract     ContractRequest     `json:"contract" binding:"required"`
	BillingItems []model.BillingItem `json:"billingItems"`
	Months       []model.MonthEntry  `json:"months"`
	Plans        []model.Plan        `json:"plans"`
	SalesMode    bool                `json:"salesMode"`
}

// PlanDiagnosis 单方案诊断结果
type PlanDiagnosis struct {
	Name         string  `json:"name"`
	DiscountRate float64 `json:"discountRate"`
	model.ComparisonResult
	Breakdown        []model.ItemBreakdown `json:"breakdown"`
	SignupIncentive  *float64              `json:"signupIncentive,omitempty"`
	MonthlyIncentive *float64              `json:"monthlyIncentive,omitempty"`
}

// DiagnosisResponse 简易诊断响应
type DiagnosisResponse struct {
	Contract model.ContractProfile `json:"contract"`
	Summary  model.UsageSummary    `json:"summary"`
	Records  []model.MonthlyRecord `json:"records"`
	Plans    []PlanDiagnosis       `json:"plans"`
	Warning  string                `json:"warning,omitempty"`
}

// diagnosisInput 校验后的计算输入，每个请求独立
type diagnosisInput struct {
	profile         model.ContractProfile
	items           []model.BillingItem
	baseMonthlyCost float64
	records         []model.MonthlyRecord
	summary         model.UsageSummary
	plans           []model.Plan
	salesMode       bool
}

func prepareDiagnosis(req DiagnosisRequest) (*diagnosisInput, error) {
	_, profile, err := resolveProfile(req.Contract)
	if err != nil {
		return nil, err
	}

	items := req.BillingItems
	if items == nil {
		items = model.DefaultBillingItems()
	}
	for i, it := range items {
		if it.Amount < 0 {
			return nil, fmt.Errorf("请求项目 %d (%s): 金额不能为负数", i+1, it.Name)
		}
	}
	baseMonthlyCost := model.SumBillingItems(items)

	records, summary, err := calculator.BuildMonthRecords(req.Months, baseMonthlyCost)
	if err != nil {
		return nil, err
	}

	plans := req.Plans
	if plans == nil {
		plans = model.DefaultPlans(profile.Category)
	}
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &diagnosisInput{
		profile:         profile,
		items:           items,
		baseMonthlyCost: baseMonthlyCost,
		records:         records,
		summary:         summary,
		plans:           plans,
		salesMode:       req.SalesMode,
	}, nil
}

func (in *diagnosisInput) buildReport() report.Report {
	return report.BuildReport(in.plans, in.records, in.items, in.baseMonthlyCost, in.summary.TotalActualCost)
}

// Diagnose 简易模式：按削减率比较各方案
// POST /api/diagnosis
func (h *Handler) Diagnose(c *gin.Context) {
	var req DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	in, err := prepareDiagnosis(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	showIncentive := h.report.IncentiveDisplay || in.salesMode
	resp := DiagnosisResponse{
		Contract: in.profile,
		Summary:  in.summary,
		Records:  in.records,
		Plans:    make([]PlanDiagnosis, 0, len(in.plans)),
	}
	if len(in.plans) == 0 {
		resp.Warning = NoPlansWarning
	}

	for _, p := range in.plans {
		pd := PlanDiagnosis{
			Name:             p.Name,
			DiscountRate:     p.DiscountRate,
			ComparisonResult: calculator.CalculateSimplePlanCost(in.summary.TotalActualCost, p.DiscountRate, in.summary.MonthsCount),
			Breakdown:        calculator.CalculateItemBreakdown(in.items, in.baseMonthlyCost, in.summary.TotalActualCost, p.DiscountRate),
		}
		if showIncentive {
			shot, run := p.SignupIncentive, p.MonthlyIncentive
			pd.SignupIncentive = &shot
			pd.MonthlyIncentive = &run
		}
		resp.Plans = append(resp.Plans, pd)
	}

	c.JSON(http.StatusOK, resp)
}
