package model

import (
	"fmt"
	"math"
)

// ContractType 料金マスター中的契约种别
type ContractType string

const (
	ContractHighVoltage ContractType = "High Voltage" // 高压：基本料金按力率调整
	ContractLowVoltage  ContractType = "Low Voltage"  // 低压
)

// RequiresPowerFactor 是否适用力率割引/割增
func (t ContractType) RequiresPowerFactor() bool {
	return t == ContractHighVoltage
}

// Plan 简易模式下的比较方案
type Plan struct {
	Name             string  `json:"name"`
	DiscountRate     float64 `json:"discountRate"`     // 0.75 = 现状的 75%
	SignupIncentive  float64 `json:"signupIncentive"`  // 一次性
	MonthlyIncentive float64 `json:"monthlyIncentive"` // 每月
}

// Validate 校验方案参数
func (p Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("方案名称为空")
	}
	if math.IsNaN(p.DiscountRate) || p.DiscountRate <= 0 || p.DiscountRate > 1 {
		return fmt.Errorf("方案 %q: 割引率 %v 超出范围 (0,1]", p.Name, p.DiscountRate)
	}
	if p.SignupIncentive < 0 || p.MonthlyIncentive < 0 {
		return fmt.Errorf("方案 %q: インセンティブ不能为负数", p.Name)
	}
	return nil
}

// PlanKey 料金マスターの复合键
type PlanKey struct {
	CompanyName  string       `json:"companyName"`
	ContractType ContractType `json:"contractType"`
}

func (k PlanKey) String() string {
	return k.CompanyName + " - " + string(k.ContractType)
}

// CatalogPlan 料金マスターの一行
type CatalogPlan struct {
	CompanyName      string       `json:"companyName"`
	ContractType     ContractType `json:"contractType"`
	BaseUnitPrice    float64      `json:"baseUnitPrice"`
	EnergyUnitPrice  float64      `json:"energyUnitPrice"`
	IncentiveShot    float64      `json:"incentiveShot"`
	IncentiveRunning float64      `json:"incentiveRunning"`

	// 读取时无法解析的单元格，非空时该行在计算时报错
	Problems []string `json:"problems,omitempty"`
}

// Key 行的复合键
func (p CatalogPlan) Key() PlanKey {
	return PlanKey{CompanyName: p.CompanyName, ContractType: p.ContractType}
}

// Malformed 是否存在解析失败的字段
func (p CatalogPlan) Malformed() bool {
	return len(p.Problems) > 0
}
