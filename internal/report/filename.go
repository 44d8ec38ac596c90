package report

import (
	"fmt"
	"net/url"
	"time"
)

// ContentType xlsx 的 MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultName 默认报表名
const DefaultName = "電力削減診断"

// Filename <报表名>_<区域>_<YYYYMMDD>.xlsx
func Filename(reportName, area string, at time.Time) string {
	if reportName == "" {
		reportName = DefaultName
	}
	return fmt.Sprintf("%s_%s_%s.xlsx", reportName, area, at.Format("20060102"))
}

// ContentDisposition 下载用响应头（含 RFC 5987 编码的文件名）
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"report.xlsx\"; filename*=UTF-8''%s", url.PathEscape(filename))
}
