package dto

// ── 人员模块 DTO ──

// CreateCollaboratorRequest 新增人员请求
type CreateCollaboratorRequest struct {
	Name      string `json:"name"       binding:"required,max=120"`
	Role      string `json:"role"       binding:"required,oneof=driver helper"`
	CanAssist bool   `json:"can_assist"`
	Note      string `json:"note"       binding:"omitempty,max=500"`
}

// UpdateCollaboratorRequest 更新人员请求
type UpdateCollaboratorRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=120"`
	Role      *string `json:"role"       binding:"omitempty,oneof=driver helper"`
	CanAssist *bool   `json:"can_assist"`
	Note      *string `json:"note"       binding:"omitempty,max=500"`
	Active    *bool   `json:"active"`
}

// CollaboratorListRequest 人员列表查询参数
type CollaboratorListRequest struct {
	Role       string `form:"role"        binding:"omitempty,oneof=driver helper"`
	ActiveOnly bool   `form:"active_only"`
}

// AvailableCollaboratorsRequest 可用人员查询参数
// role=helper 时包含可兼任助手的司机
type AvailableCollaboratorsRequest struct {
	Role string `form:"role" binding:"required,oneof=driver helper"`
	Date string `form:"date" binding:"required"`
	IgnoreQuery
}

// CollaboratorResponse 人员信息响应
type CollaboratorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	CanAssist   bool   `json:"can_assist"`
	Note        string `json:"note,omitempty"`
	Active      bool   `json:"active"`
}
