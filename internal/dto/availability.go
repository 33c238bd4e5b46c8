package dto

// AvailabilityRequest 占用查询参数
type AvailabilityRequest struct {
	Date string `form:"date" binding:"required"`
	IgnoreQuery
}

// AvailabilityResponse 指定日期不可用的司机 / 助手 / 车辆
type AvailabilityResponse struct {
	Date    string   `json:"date"`
	Drivers []int64  `json:"drivers"`
	Helpers []int64  `json:"helpers"`
	Trucks  []string `json:"trucks"`
}
