package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dennki/internal/exporter"
	"dennki/internal/report"
)

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func (h *Handler) reportName() string {
	if h.report.Name == "" {
		return report.DefaultName
	}
	return h.report.Name
}

// bindReport 解析输入并生成报表；失败时已写出响应
func (h *Handler) bindReport(c *gin.Context) (*diagnosisInput, report.Report, bool) {
	var req DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return nil, report.Report{}, false
	}

	in, err := prepareDiagnosis(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, report.Report{}, false
	}
	if len(in.plans) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有可导出的方案", "warning": NoPlansWarning})
		return nil, report.Report{}, false
	}
	return in, in.buildReport(), true
}

func (h *Handler) renderReport(c *gin.Context, r report.Report, opts exporter.Options) ([]byte, bool) {
	data, err := h.exporter.ExportBytes(r, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, exporter.ErrEmptyReport) {
			status = http.StatusBadRequest
		}
		h.logger.Error().Err(err).Msg("生成报表失败")
		c.JSON(status, gin.H{"error": "生成报表失败: " + err.Error()})
		return nil, false
	}
	return data, true
}

// DownloadReport 直接下载 xlsx
// POST /api/report
func (h *Handler) DownloadReport(c *gin.Context) {
	in, r, ok := h.bindReport(c)
	if !ok {
		return
	}
	data, ok := h.renderReport(c, r, exporter.Options{})
	if !ok {
		return
	}

	filename := report.Filename(h.reportName(), in.profile.Area, h.now())
	c.Header("Content-Disposition", report.ContentDisposition(filename))
	c.Data(http.StatusOK, report.ContentType, data)
}

// Export 生成报表并返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	in, r, ok := h.bindReport(c)
	if !ok {
		return
	}
	data, ok := h.renderReport(c, r, exporter.Options{})
	if !ok {
		return
	}

	now := h.now()
	filename := report.Filename(h.reportName(), in.profile.Area, now)
	token := h.downloads.put(filename, data, now, exportDownloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"filename":    filename,
		"downloadUrl": downloadURL(c, token),
		"expiresAt":   now.Add(exportDownloadTTL).Format(time.RFC3339),
	})
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供下载地址）
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	in, r, ok := h.bindReport(c)
	if !ok {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "开始导出",
		Data:      map[string]any{"plans": len(r.Plans)},
		Timestamp: h.now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: h.now(),
		})
	}

	data, err := h.exporter.ExportBytes(r, exporter.Options{Progress: progressFn})
	if err != nil {
		h.logger.Error().Err(err).Msg("生成报表失败")
		send(exportProgressEvent{
			Type:      "error",
			Message:   "导出失败: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: h.now(),
		})
		return
	}

	now := h.now()
	filename := report.Filename(h.reportName(), in.profile.Area, now)
	token := h.downloads.put(filename, data, now, exportDownloadTTL)

	send(exportProgressEvent{
		Type:    "done",
		Message: "导出完成",
		Data: map[string]any{
			"percent":     100,
			"filename":    filename,
			"downloadUrl": downloadURL(c, token),
		},
		Timestamp: now,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token, h.now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	c.Header("Content-Disposition", report.ContentDisposition(item.filename))
	c.Data(http.StatusOK, report.ContentType, item.data)
}

// 与当前请求同一路由组下的下载地址
func downloadURL(c *gin.Context, token string) string {
	prefix := strings.TrimSuffix(c.FullPath(), "/export")
	prefix = strings.TrimSuffix(prefix, "/export/stream")
	if prefix == "" {
		prefix = "/api"
	}
	return fmt.Sprintf("%s/export/download/%s", prefix, token)
}
