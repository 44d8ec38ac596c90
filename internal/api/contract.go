package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dennki/internal/contract"
	"dennki/internal/model"
)

// ContractRequest 契约信息输入
type ContractRequest struct {
	Area           string         `json:"area" binding:"required"`
	Category       model.Category `json:"category" binding:"required"`
	ContractDetail string         `json:"contractDetail"`
	Capacity       *float64       `json:"capacity" binding:"omitempty,gte=0"`
	PowerFactorPct *float64       `json:"powerFactorPct" binding:"omitempty,gte=0,lte=100"`
}

// ResolveContractResponse 契约解析响应
type ResolveContractResponse struct {
	contract.Resolution
	Profile         model.ContractProfile `json:"profile"`
	PowerFactorNote string                `json:"powerFactorNote,omitempty"`
	SuggestedDetail string                `json:"suggestedDetail,omitempty"`
}

// resolveProfile 解析并校验契约信息
func resolveProfile(req ContractRequest) (contract.Resolution, model.ContractProfile, error) {
	res, err := contract.Resolve(req.Area, req.Category, req.ContractDetail)
	if err != nil {
		return contract.Resolution{}, model.ContractProfile{}, err
	}

	capacity := res.DefaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	profile := res.Profile(capacity, req.PowerFactorPct)
	if err := profile.Validate(); err != nil {
		return contract.Resolution{}, model.ContractProfile{}, err
	}
	return res, profile, nil
}

// ResolveContract 区域/区分/契约种别 → 单位、默认容量、力率要求
// POST /api/contract/resolve
func (h *Handler) ResolveContract(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	res, profile, err := resolveProfile(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := ResolveContractResponse{
		Resolution: res,
		Profile:    profile,
	}
	if profile.PowerFactorPct != nil {
		resp.PowerFactorNote = contract.PowerFactorNote(profile.Category, *profile.PowerFactorPct)
	}
	if profile.Category == model.CategoryHigh {
		resp.SuggestedDetail = contract.SuggestHighVoltageDetail(profile.Capacity)
	}
	c.JSON(http.StatusOK, resp)
}

// ListPresets 区分对应的默认比较方案与默认明细
// GET /api/presets?category=高圧
func (h *Handler) ListPresets(c *gin.Context) {
	category := model.Category(c.DefaultQuery("category", string(model.CategoryLowMetered)))
	switch category {
	case model.CategoryLowMetered, model.CategoryLowPower, model.CategoryHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的契约区分: " + string(category)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":     category,
		"areas":        model.Areas,
		"plans":        model.DefaultPlans(category),
		"billingItems": model.DefaultBillingItems(),
	})
}
