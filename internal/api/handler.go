package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dennki/internal/catalog"
	"dennki/internal/comparison"
	"dennki/internal/config"
	"dennki/internal/exporter"
)

// Options 处理器依赖
type Options struct {
	// 可为 nil：未配置料金マスター时只提供简易模式
	Catalog *catalog.Catalog
	Report  config.ReportConfig
	Logger  zerolog.Logger
}

// Handler API 处理器
//
// 每个请求独立计算；进程内唯一的共享状态是一次性下载表。
type Handler struct {
	catalog   *catalog.Catalog
	engine    *comparison.Engine
	exporter  *exporter.Exporter
	report    config.ReportConfig
	downloads *exportDownloadStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	h := &Handler{
		catalog:   opts.Catalog,
		exporter:  exporter.NewExporter(),
		report:    opts.Report,
		downloads: newExportDownloadStore(),
		logger:    opts.Logger,
		now:       time.Now,
	}
	if opts.Catalog != nil {
		h.engine = comparison.NewEngine(opts.Catalog, opts.Logger)
	}
	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 契约与默认方案
	router.GET("/presets", h.ListPresets)
	router.POST("/contract/resolve", h.ResolveContract)

	// 简易诊断
	router.POST("/diagnosis", h.Diagnose)

	// 料金マスター比较
	router.POST("/compare", h.Compare)
	router.POST("/tariff", h.Tariff)

	// 报表导出
	router.POST("/report", h.DownloadReport)
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
