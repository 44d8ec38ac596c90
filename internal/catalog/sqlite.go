package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// TableName SQLite 料金マスターの表名
const TableName = "master_prices"

// loadSQLite 以只读方式读取 master_prices 表
func loadSQLite(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("打开料金マスター数据库失败: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("连接料金マスター数据库失败: %w", err)
	}

	header, err := tableColumns(db)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, want := range RequiredColumns {
		if !present[want] {
			// 交给 fromTable 统一生成 SchemaError
			return fromTable(path, header, nil)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(RequiredColumns, ", "), TableName)
	rs, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("查询 %s 失败: %w", TableName, err)
	}
	defer rs.Close()

	records := make([][]string, 0)
	for rs.Next() {
		vals := make([]any, len(RequiredColumns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("读取 %s 行失败: %w", TableName, err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = sqlValueString(v)
		}
		records = append(records, rec)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("遍历 %s 失败: %w", TableName, err)
	}

	return fromTable(path, RequiredColumns, records)
}

func tableColumns(db *sql.DB) ([]string, error) {
	rs, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", TableName))
	if err != nil {
		return nil, fmt.Errorf("读取 %s 表结构失败: %w", TableName, err)
	}
	defer rs.Close()

	cols := make([]string, 0)
	for rs.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rs.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("读取 %s 表结构失败: %w", TableName, err)
		}
		cols = append(cols, name)
	}
	return cols, rs.Err()
}

func sqlValueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
