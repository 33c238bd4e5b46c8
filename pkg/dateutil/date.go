package dateutil

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOLayout 存储与接口统一使用的日期格式
const ISOLayout = "2006-01-02"

// BRLayout 旧系统界面使用的日/月/年格式
const BRLayout = "02/01/2006"

// ErrEmptyDate 日期字符串为空
var ErrEmptyDate = errors.New("日期不能为空")

// Date 不含时分秒的自然日，零值表示“未设置”（数据库中为 NULL）。
type Date time.Time

// New 构造指定年月日（UTC 零点）
func New(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime 取 t 在其自身时区中的年月日
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today 返回 loc 时区下的今天；loc 为 nil 时使用 UTC
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(time.Now().In(loc))
}

// Parse 解析 YYYY-MM-DD 或 DD/MM/YYYY；带时间部分的 ISO 字符串只取日期
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyDate
	}
	if len(s) > len(ISOLayout) && (s[len(ISOLayout)] == 'T' || s[len(ISOLayout)] == ' ') {
		s = s[:len(ISOLayout)]
	}
	for _, layout := range []string{ISOLayout, BRLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("无法解析日期 %q", s)
}

// ParseOptional 宽松解析：空串或非法值返回零值
func ParseOptional(s string) Date {
	d, err := Parse(s)
	if err != nil {
		return Date{}
	}
	return d
}

// Time 返回 UTC 零点的 time.Time
func (d Date) Time() time.Time { return time.Time(d) }

// IsZero 是否未设置
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Valid 是否为可参与计算的日期
func (d Date) Valid() bool { return !d.IsZero() }

// AddDays 加减天数；零值保持为零值
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date(time.Time(d).AddDate(0, 0, n))
}

// Compare 比较两个日期：d<o 返回 -1，相等返回 0，d>o 返回 1
func (d Date) Compare(o Date) int {
	return time.Time(d).Compare(time.Time(o))
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// Weekday 星期几（Go 约定，周日为 0）
func (d Date) Weekday() time.Weekday { return time.Time(d).Weekday() }

// ISOWeekday 星期几（1=周一 … 7=周日）
func (d Date) ISOWeekday() int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DaysUntil 从 d 到 o 相差的天数
func (d Date) DaysUntil(o Date) int {
	return int(time.Time(o).Sub(time.Time(d)).Hours() / 24)
}

// Format 按 layout 格式化；零值返回空串
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return time.Time(d).Format(layout)
}

// String 返回 YYYY-MM-DD；零值返回空串
func (d Date) String() string { return d.Format(ISOLayout) }

// Ptr 零值返回 nil，便于在响应中省略
func (d Date) Ptr() *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

// ── 区间判断 ──

// Within 闭区间 [start, end]
func (d Date) Within(start, end Date) bool {
	if d.IsZero() || start.IsZero() || end.IsZero() {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// WithinHalfOpen 半开区间 [start, end)
func (d Date) WithinHalfOpen(start, end Date) bool {
	if d.IsZero() || start.IsZero() || end.IsZero() {
		return false
	}
	return !d.Before(start) && d.Before(end)
}

// ── JSON ──

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ── GORM / database/sql ──

// Scan 宽松读取：历史数据中的非法日期视为未设置
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = FromTime(v)
	case []byte:
		*d = ParseOptional(string(v))
	case string:
		*d = ParseOptional(v)
	default:
		*d = Date{}
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (Date) GormDataType() string {
	return "DATE"
}

// MustParse 解析失败时 panic，仅用于常量与测试
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
