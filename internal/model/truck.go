package model

import "strings"

// Truck 车辆表 — 对应 trucks
type Truck struct {
	ID     int64  `gorm:"primaryKey"                       json:"id"`
	Plate  string `gorm:"type:varchar(16);not null;unique" json:"plate"`
	Model  string `gorm:"type:varchar(80)"                 json:"model,omitempty"`
	Note   string `gorm:"type:text"                        json:"note,omitempty"`
	Active bool   `gorm:"not null;default:true"            json:"active"`
	BaseModel
}

// TableName 指定表名
func (Truck) TableName() string { return "trucks" }

// NormalizePlate 车牌规范形式：去空白并转大写
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// NormalizePlatePtr 可选车牌的规范形式；空串视为未设置
func NormalizePlatePtr(plate *string) *string {
	if plate == nil {
		return nil
	}
	p := NormalizePlate(*plate)
	if p == "" {
		return nil
	}
	return &p
}
