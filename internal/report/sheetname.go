package report

import (
	"fmt"
	"strings"
)

const (
	// 方案名截取长度，保证加后缀后不超过 Excel 的 31 字符限制
	maxPlanNameRunes = 15

	monthlySuffix   = "_月別"
	breakdownSuffix = "_内訳"
)

var invalidSheetChars = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetNamer 分配工作表名，截取后重名时追加 (2)、(3)…
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]bool)}
}

// pair 返回方案的 (月别, 内訳) 工作表名
func (n *sheetNamer) pair(planName string) (string, string) {
	base := truncateRunes(invalidSheetChars.Replace(strings.TrimSpace(planName)), maxPlanNameRunes)
	// Excel 不允许工作表名以 ' 开头或结尾
	base = strings.Trim(base, "'")
	if base == "" {
		base = "プラン"
	}

	candidate := base
	for i := 2; n.taken(candidate); i++ {
		candidate = fmt.Sprintf("%s(%d)", base, i)
	}

	monthly := candidate + monthlySuffix
	breakdown := candidate + breakdownSuffix
	n.used[strings.ToLower(monthly)] = true
	n.used[strings.ToLower(breakdown)] = true
	return monthly, breakdown
}

// Excel 工作表名不区分大小写
func (n *sheetNamer) taken(base string) bool {
	return n.used[strings.ToLower(base+monthlySuffix)] || n.used[strings.ToLower(base+breakdownSuffix)]
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
