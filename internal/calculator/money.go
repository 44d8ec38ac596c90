package calculator

import "github.com/shopspring/decimal"

// FloorMul ⌊v × rate⌋
func FloorMul(v, rate float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(rate)).Floor().IntPart()
}

// FloorAmount 金额取整（向下）
func FloorAmount(v float64) int64 {
	return decimal.NewFromFloat(v).Floor().IntPart()
}

// floorDiv ⌊a / b⌋，b 为 0 时返回 0
func floorDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromInt(a).Div(decimal.NewFromInt(b)).Floor().IntPart()
}

// floorShare ⌊part × total / whole⌋，先乘后除
func floorShare(part, whole, total float64) int64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromFloat(part).
		Mul(decimal.NewFromFloat(total)).
		Div(decimal.NewFromFloat(whole)).
		Floor().
		IntPart()
}
