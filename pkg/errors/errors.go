package errors

import "errors"

// ── 错误类别 ──
//
// 业务错误均包装以下类别之一，Handler 通过 errors.Is 映射 HTTP 状态码：
//   - ErrValidation → 400，写入前拒绝
//   - ErrConflict   → 409，人员或车辆已被占用
//   - ErrNotFound   → 404
// 未包装任何类别的错误视为存储错误（500）。

var (
	ErrValidation = errors.New("参数校验失败")
	ErrConflict   = errors.New("资源冲突")
	ErrNotFound   = errors.New("记录不存在")
)

type categorized struct {
	category error
	msg      string
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.category }

// Validation 创建校验类错误
func Validation(msg string) error { return &categorized{category: ErrValidation, msg: msg} }

// Conflict 创建冲突类错误
func Conflict(msg string) error { return &categorized{category: ErrConflict, msg: msg} }

// NotFound 创建不存在类错误
func NotFound(msg string) error { return &categorized{category: ErrNotFound, msg: msg} }

// IsValidation 是否为校验类错误
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsConflict 是否为冲突类错误
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsNotFound 是否为不存在类错误
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
