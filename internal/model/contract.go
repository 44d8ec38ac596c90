package model

import (
	"fmt"
	"math"
)

// Category 契约区分
type Category string

const (
	CategoryLowMetered Category = "低圧（従量）"
	CategoryLowPower   Category = "低圧（動力）"
	CategoryHigh       Category = "高圧"
)

// Areas 电力使用区域
var Areas = []string{"北海道", "東北", "東京", "中部", "北陸", "関西", "中国", "四国", "九州", "沖縄"}

// IsKnownArea 区域是否有效
func IsKnownArea(area string) bool {
	for _, a := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

// ContractType 区分对应的料金マスター契约种别
func (c Category) ContractType() ContractType {
	if c == CategoryHigh {
		return ContractHighVoltage
	}
	return ContractLowVoltage
}

// UsesPowerFactor 是否需要输入力率（動力 仅作为参考显示）
func (c Category) UsesPowerFactor() bool {
	return c == CategoryLowPower || c == CategoryHigh
}

// ContractProfile 当前契约信息
type ContractProfile struct {
	Area           string   `json:"area"`
	Category       Category `json:"category"`
	ContractDetail string   `json:"contractDetail"`
	UnitLabel      string   `json:"unitLabel"`
	Capacity       float64  `json:"capacity"`
	PowerFactorPct *float64 `json:"powerFactorPct,omitempty"`
}

// Validate 校验契约参数
func (p ContractProfile) Validate() error {
	if !IsKnownArea(p.Area) {
		return fmt.Errorf("未知的エリア: %q", p.Area)
	}
	switch p.Category {
	case CategoryLowMetered, CategoryLowPower, CategoryHigh:
	default:
		return fmt.Errorf("未知的契约种别: %q", p.Category)
	}
	if math.IsNaN(p.Capacity) || p.Capacity < 0 {
		return fmt.Errorf("契约容量不能为负数")
	}
	if p.PowerFactorPct != nil {
		pf := *p.PowerFactorPct
		if math.IsNaN(pf) || pf < 0 || pf > 100 {
			return fmt.Errorf("力率 %v 超出范围 [0,100]", pf)
		}
	}
	if p.Category.ContractType().RequiresPowerFactor() && p.PowerFactorPct == nil {
		return fmt.Errorf("%s 必须填写力率", p.Category)
	}
	return nil
}
