package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContractTypeCount 契约种别与行数
type ContractTypeCount struct {
	ContractType string `json:"contractType"`
	Plans        int    `json:"plans"`
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	CatalogLoaded    bool                `json:"catalogLoaded"`
	CatalogSource    string              `json:"catalogSource,omitempty"`
	CatalogRows      int                 `json:"catalogRows"`
	ContractTypes    []ContractTypeCount `json:"contractTypes"`
	ReportName       string              `json:"reportName"`
	IncentiveDisplay bool                `json:"incentiveDisplay"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		ContractTypes:    []ContractTypeCount{},
		ReportName:       h.reportName(),
		IncentiveDisplay: h.report.IncentiveDisplay,
	}

	if h.catalog != nil {
		resp.CatalogLoaded = true
		resp.CatalogSource = h.catalog.Source()
		resp.CatalogRows = h.catalog.Len()

		order, counts := h.catalog.ContractTypes()
		for _, ct := range order {
			resp.ContractTypes = append(resp.ContractTypes, ContractTypeCount{
				ContractType: string(ct),
				Plans:        counts[ct],
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
