package catalog

import (
	"fmt"
	"strings"
)

// NotFoundError 料金マスターのソースが存在しない
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("料金マスター不存在: %s", e.Path)
}

// SchemaError 必須カラムが不足している
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("料金マスター缺少必需列: %s", strings.Join(e.Missing, ", "))
}
