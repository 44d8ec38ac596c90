package calculator

import (
	"errors"
	"fmt"
	"strings"

	"dennki/internal/model"
)

// ErrInvalidUsage 月别使用量不是 12 个月或含负值
var ErrInvalidUsage = errors.New("月别使用量必须为 12 个非负数")

// ErrInvalidCapacity 契约容量为负或不是有限数
var ErrInvalidCapacity = errors.New("契约容量必须为非负有限数")

// ErrInvalidPowerFactor 力率不在 0〜100 之间或不是有限数
var ErrInvalidPowerFactor = errors.New("力率必须在 0 到 100 之间")

// ErrCostOverflow 年间料金超出浮点数范围
var ErrCostOverflow = errors.New("年间料金超出可计算范围")

// MissingParameterError 高压契约未提供力率
type MissingParameterError struct {
	Parameter string
	Key       model.PlanKey
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s 缺少参数: %s", e.Key, e.Parameter)
}

// PlanNotFoundError 料金マスターに該当プランなし
type PlanNotFoundError struct {
	Key model.PlanKey
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("料金マスター中没有该方案: %s", e.Key)
}

// MalformedPlanError 料金マスターの行に解析できない値がある
type MalformedPlanError struct {
	Key      model.PlanKey
	Problems []string
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("方案数据格式错误 %s: %s", e.Key, strings.Join(e.Problems, "; "))
}

// InvalidMonthError 月度输入的年月不合法
type InvalidMonthError struct {
	Year  int
	Month int
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("无效的年月: %d/%d", e.Year, e.Month)
}
