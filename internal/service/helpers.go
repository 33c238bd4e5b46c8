package service

import (
	"errors"

	"gorm.io/gorm"

	"jr-escala/backend/pkg/dateutil"
	pkgerrors "jr-escala/backend/pkg/errors"
)

// ── 通用业务错误 ──

var (
	ErrDateRequired = pkgerrors.Validation("日期不能为空")
	ErrInvalidDate  = pkgerrors.Validation("日期格式错误，应为 YYYY-MM-DD 或 DD/MM/YYYY")
)

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

func isDuplicate(err error) bool { return errors.Is(err, gorm.ErrDuplicatedKey) }

// ParseDateParam 解析查询参数中的日期
func ParseDateParam(s string) (dateutil.Date, error) {
	d, err := dateutil.Parse(s)
	if err != nil {
		if errors.Is(err, dateutil.ErrEmptyDate) {
			return dateutil.Date{}, ErrDateRequired
		}
		return dateutil.Date{}, ErrInvalidDate
	}
	return d, nil
}

// parseOptionalDateParam 空串返回零值，非法格式报错
func parseOptionalDateParam(s string) (dateutil.Date, error) {
	if s == "" {
		return dateutil.Date{}, nil
	}
	return ParseDateParam(s)
}

func requireDate(d dateutil.Date) error {
	if d.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// occupancyDates 派车占用的全部日期：登记日 ∪ [出发日, 出发日+days)
// days < 0 为已取消行程，不占用任何日期
func occupancyDates(registered, departure dateutil.Date, days int) []dateutil.Date {
	if registered.IsZero() || days < 0 {
		return nil
	}
	dates := []dateutil.Date{registered}
	for i := 0; i < days; i++ {
		d := departure.AddDays(i)
		if !d.Equal(registered) {
			dates = append(dates, d)
		}
	}
	return dates
}
