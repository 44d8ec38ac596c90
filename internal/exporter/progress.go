package exporter

// 导出阶段
const (
	StageStart = "开始生成报表"
	StageSheet = "写入工作表: "
	StageDone  = "报表生成完成"
)

// ProgressEvent 导出进度事件（用于 SSE 推送）
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	progress(ProgressEvent{
		Percent: clampPercent(percent),
		Stage:   stage,
	})
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
