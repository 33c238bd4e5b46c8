package dto

import "jr-escala/backend/pkg/dateutil"

// ── 每周线路模板 DTO ──

// CreateWeeklyRouteRequest 新增模板请求
type CreateWeeklyRouteRequest struct {
	Weekday     int    `json:"weekday"      binding:"required,min=1,max=7"`
	RouteNumber string `json:"route_number" binding:"max=20"`
	Destination string `json:"destination"  binding:"required,max=120"`
	Note        string `json:"note"         binding:"omitempty,max=500"`
}

// UpdateWeeklyRouteRequest 更新模板请求
type UpdateWeeklyRouteRequest struct {
	Weekday     *int    `json:"weekday"      binding:"omitempty,min=1,max=7"`
	RouteNumber *string `json:"route_number" binding:"omitempty,max=20"`
	Destination *string `json:"destination"  binding:"omitempty,min=1,max=120"`
	Note        *string `json:"note"         binding:"omitempty,max=500"`
}

// WeeklyRouteListRequest 模板列表查询参数
type WeeklyRouteListRequest struct {
	Weekday *int `form:"weekday" binding:"omitempty,min=1,max=7"`
}

// WeeklyRouteResponse 模板信息响应
type WeeklyRouteResponse struct {
	ID          int64  `json:"id"`
	Weekday     int    `json:"weekday"`
	RouteNumber string `json:"route_number"`
	Destination string `json:"destination"`
	Label       string `json:"label"`
	Note        string `json:"note,omitempty"`
}

// MaterializeRequest 按模板生成派车
type MaterializeRequest struct {
	Date          dateutil.Date `json:"date"`
	DepartureDate dateutil.Date `json:"departure_date"`
}

// MaterializeResponse 生成结果
type MaterializeResponse struct {
	Date     string `json:"date"`
	Inserted int    `json:"inserted"`
}

// SuppressRouteRequest 屏蔽某日线路
type SuppressRouteRequest struct {
	Date        dateutil.Date `json:"date"`
	RouteNumber string        `json:"route_number" binding:"max=20"`
	Destination string        `json:"destination"  binding:"required,max=120"`
}

// ClearSuppressedResponse 清除屏蔽结果
type ClearSuppressedResponse struct {
	Date    string `json:"date"`
	Deleted int64  `json:"deleted"`
}
