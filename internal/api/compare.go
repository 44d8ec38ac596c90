package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dennki/internal/calculator"
	"dennki/internal/model"
)

// CompareRequest 料金マスター比较输入
type CompareRequest struct {
	ContractType   model.ContractType `json:"contractType" binding:"required"`
	Capacity       float64            `json:"capacity" binding:"gte=0"`
	MonthlyUsage   []float64          `json:"monthlyUsage" binding:"len=12,dive,gte=0"`
	PowerFactorPct *float64           `json:"powerFactorPct" binding:"omitempty,gte=0,lte=100"`
}

// TariffRequest 单方案料金计算输入
type TariffRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	CompareRequest
}

// Compare 指定契约种别下全部方案的年间比较
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "未加载料金マスター"})
		return
	}

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result := h.engine.Compare(req.ContractType, req.Capacity, req.MonthlyUsage, req.PowerFactorPct)
	c.JSON(http.StatusOK, result)
}

// Tariff 单个方案的 12 个月料金
// POST /api/tariff
func (h *Handler) Tariff(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "未加载料金マスター"})
		return
	}

	var req TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	key := model.PlanKey{CompanyName: req.CompanyName, ContractType: req.ContractType}
	cost, err := calculator.CalculateTariffCost(h.catalog, key, req.Capacity, req.MonthlyUsage, req.PowerFactorPct)
	if err != nil {
		c.JSON(tariffErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cost)
}

func tariffErrorStatus(err error) int {
	var notFound *calculator.PlanNotFoundError
	var malformed *calculator.MalformedPlanError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity
	default:
		// MissingParameterError / ErrInvalidUsage
		return http.StatusBadRequest
	}
}
