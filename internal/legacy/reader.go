// Package legacy 读取旧版 SQLite 数据库并转换为当前 PostgreSQL 表结构
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Row 旧表中的一行，列名 → 原始值
type Row map[string]any

// Reader 只读访问旧版 SQLite 文件
type Reader struct {
	db *sql.DB
}

// OpenReader 以只读方式打开 SQLite 文件
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败 %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接 SQLite 失败 %q: %w", path, err)
	}
	return &Reader{db: db}, nil
}

// NewReader 包装已打开的连接（测试使用内存库）
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Close 关闭连接
func (r *Reader) Close() error {
	return r.db.Close()
}

// TableExists 旧库中是否存在该表
func (r *Reader) TableExists(ctx context.Context, table string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Fetch 按 id 顺序读出整张表
// 表结构在旧系统中经历过加列，因此列清单取自 PRAGMA 而非写死
func (r *Reader) Fetch(ctx context.Context, table string) ([]Row, error) {
	cols, err := r.columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(cols, ", "), table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("读取 %s 失败: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *Reader) columns(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("读取 %s 列信息失败: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// ── 取值 ──

// String 文本值，NULL 与缺列为空串
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Text 可空文本；空串与旧系统的占位值转为 nil
func (r Row) Text(col string) *string {
	s := r.String(col)
	if isSentinel(s) {
		return nil
	}
	return &s
}

// Int 整数值，无法解析时 ok=false
func (r Row) Int(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	n, err := strconv.ParseInt(r.String(col), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool 旧库用 0 / 1 存布尔；缺列时取 def
func (r Row) Bool(col string, def bool) bool {
	if _, ok := r[col]; !ok || r[col] == nil {
		return def
	}
	n, ok := r.Int(col)
	if !ok {
		return def
	}
	return n != 0
}

// isSentinel 旧界面写入的“无值”占位
func isSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "none", "null", "nan":
		return true
	}
	return false
}
