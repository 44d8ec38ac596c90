package util

import (
	"fmt"
	"math"
	"strconv"
)

// FormatYen 円表示（千分位，向下取整）: 12345.6 → ¥12,345
func FormatYen(value float64) string {
	v := int64(math.Floor(value))
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "¥" + groupThousands(strconv.FormatInt(v, 10))
}

// FormatPercent 百分比（一位小数）: 25 → 25.0%
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	out := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}
