package model

// ── 人员角色 ──

const (
	RoleDriver = "driver"
	RoleHelper = "helper"
)

// ValidRole 角色是否合法
func ValidRole(role string) bool {
	return role == RoleDriver || role == RoleHelper
}

// Collaborator 人员表 — 对应 collaborators
// CanAssist 为 true 的司机也可作为助手出车
type Collaborator struct {
	ID        int64  `gorm:"primaryKey"                      json:"id"`
	Name      string `gorm:"type:varchar(120);not null"       json:"name"`
	Role      string `gorm:"type:varchar(16);not null"        json:"role"`
	CanAssist bool   `gorm:"not null;default:false"           json:"can_assist"`
	Note      string `gorm:"type:text"                        json:"note,omitempty"`
	Active    bool   `gorm:"not null;default:true"            json:"active"`
	BaseModel
}

// TableName 指定表名
func (Collaborator) TableName() string { return "collaborators" }

// CanServeAs 是否可以担任指定角色
func (c *Collaborator) CanServeAs(role string) bool {
	switch role {
	case RoleDriver:
		return c.Role == RoleDriver
	case RoleHelper:
		return c.Role == RoleHelper || (c.Role == RoleDriver && c.CanAssist)
	}
	return false
}

// DisplayName 助手列表中兼任的司机带 "(mot.)" 后缀
func (c *Collaborator) DisplayName(asRole string) string {
	if asRole == RoleHelper && c.Role == RoleDriver {
		return c.Name + " (mot.)"
	}
	return c.Name
}
