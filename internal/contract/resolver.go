package contract

import (
	"fmt"
	"strings"

	"dennki/internal/calculator"
	"dennki/internal/model"
)

// 高压 A/B 的分界（kW）
const HighVoltageBThresholdKW = 500

// DefaultPowerFactor 力率输入的初始值
const DefaultPowerFactor = 85.0

// Option 契约种别的选项
type Option struct {
	Detail          string  `json:"detail"`
	UnitLabel       string  `json:"unitLabel"`
	DefaultCapacity float64 `json:"defaultCapacity"`
	CapacityFixed   bool    `json:"capacityFixed"`
}

// Resolution 区域 + 区分 + 契约种别 的解析结果
type Resolution struct {
	Area                string             `json:"area"`
	Category            model.Category     `json:"category"`
	ContractDetail      string             `json:"contractDetail"`
	ContractType        model.ContractType `json:"contractType"`
	UnitLabel           string             `json:"unitLabel"`
	DefaultCapacity     float64            `json:"defaultCapacity"`
	CapacityEditable    bool               `json:"capacityEditable"`
	PowerFactorUsed     bool               `json:"powerFactorUsed"`
	PowerFactorRequired bool               `json:"powerFactorRequired"`
	Options             []Option           `json:"options"`
}

// 最低料金制（従量電灯A）仅存在于这三个区域
var minimumChargeAreas = map[string]bool{"関西": true, "中国": true, "四国": true}

// Options 区域与区分下可选的契约种别
func Options(area string, category model.Category) []Option {
	switch category {
	case model.CategoryLowMetered:
		if minimumChargeAreas[area] {
			return []Option{
				{Detail: "従量電灯A（最低料金制）", UnitLabel: "1契約（固定）", DefaultCapacity: 1, CapacityFixed: true},
				{Detail: "従量電灯B（基本料金制）", UnitLabel: "kVA", DefaultCapacity: 6},
			}
		}
		return []Option{
			{Detail: "従量電灯B（アンペア制）", UnitLabel: "A", DefaultCapacity: 30},
			{Detail: "従量電灯C（kVA制）", UnitLabel: "kVA", DefaultCapacity: 10},
		}
	case model.CategoryLowPower:
		return []Option{
			{Detail: "低圧電力（動力）", UnitLabel: "kW", DefaultCapacity: 10},
		}
	case model.CategoryHigh:
		return []Option{
			{Detail: "高圧電力A (50kW以上500kW未満)", UnitLabel: "kW", DefaultCapacity: 10},
			{Detail: "高圧電力B (500kW以上2000kW未満)", UnitLabel: "kW", DefaultCapacity: 10},
		}
	default:
		return nil
	}
}

// Resolve 解析契约种别；detail 为空时取第一个选项
func Resolve(area string, category model.Category, detail string) (Resolution, error) {
	if !model.IsKnownArea(area) {
		return Resolution{}, fmt.Errorf("未知的エリア: %q", area)
	}
	opts := Options(area, category)
	if len(opts) == 0 {
		return Resolution{}, fmt.Errorf("未知的契约种别: %q", category)
	}

	chosen := opts[0]
	if detail != "" {
		found := false
		for _, o := range opts {
			// 兼容只传前缀（如 "従量電灯B"）
			if o.Detail == detail || strings.HasPrefix(o.Detail, detail) {
				chosen = o
				found = true
				break
			}
		}
		if !found {
			return Resolution{}, fmt.Errorf("%s/%s 不支持契约明细 %q", area, category, detail)
		}
	}

	return Resolution{
		Area:                area,
		Category:            category,
		ContractDetail:      chosen.Detail,
		ContractType:        category.ContractType(),
		UnitLabel:           chosen.UnitLabel,
		DefaultCapacity:     chosen.DefaultCapacity,
		CapacityEditable:    !chosen.CapacityFixed,
		PowerFactorUsed:     category.UsesPowerFactor(),
		PowerFactorRequired: category.ContractType().RequiresPowerFactor(),
		Options:             opts,
	}, nil
}

// Profile 用解析结果补全契约信息；容量固定的契约忽略输入的容量
func (r Resolution) Profile(capacity float64, powerFactorPct *float64) model.ContractProfile {
	if !r.CapacityEditable {
		capacity = r.DefaultCapacity
	}
	if r.PowerFactorRequired && powerFactorPct == nil {
		pf := DefaultPowerFactor
		powerFactorPct = &pf
	}
	if !r.PowerFactorUsed {
		powerFactorPct = nil
	}
	return model.ContractProfile{
		Area:           r.Area,
		Category:       r.Category,
		ContractDetail: r.ContractDetail,
		UnitLabel:      r.UnitLabel,
		Capacity:       capacity,
		PowerFactorPct: powerFactorPct,
	}
}

// SuggestHighVoltageDetail 按容量给出高压 A/B 的建议
func SuggestHighVoltageDetail(capacityKW float64) string {
	if capacityKW >= HighVoltageBThresholdKW {
		return "高圧電力B (500kW以上2000kW未満)"
	}
	return "高圧電力A (50kW以上500kW未満)"
}

// PowerFactorNote 力率割引/割増的说明文字
func PowerFactorNote(category model.Category, powerFactorPct float64) string {
	switch category {
	case model.CategoryLowPower:
		return fmt.Sprintf("※力率割引/割増: %.2f倍", calculator.PowerFactorMultiplier(powerFactorPct))
	case model.CategoryHigh:
		return "※力率割引/割増適用"
	default:
		return ""
	}
}
