package model

import "strings"

// RouteCategory 线路行程类别，决定计划封锁天数
type RouteCategory string

const (
	CategoryNone      RouteCategory = "none"
	CategoryDayTrip   RouteCategory = "day_trip"
	CategoryTwoDays   RouteCategory = "two_days"
	CategoryThreeDays RouteCategory = "three_days"
	CategoryFourDays  RouteCategory = "four_days"
	CategoryFiveDays  RouteCategory = "five_days"
)

// 出发日之后的计划占用天数（登记当天另算）
var plannedDays = map[RouteCategory]int{
	CategoryNone:      0,
	CategoryDayTrip:   0,
	CategoryTwoDays:   1,
	CategoryThreeDays: 2,
	CategoryFourDays:  3,
	CategoryFiveDays:  4,
}

// 旧系统界面中的类别文本
var legacyLabels = map[RouteCategory]string{
	CategoryNone:      "0",
	CategoryDayTrip:   "ROTA 1 DIA (BATE E VOLTA)",
	CategoryTwoDays:   "ROTA 2 DIAS",
	CategoryThreeDays: "ROTA 3 DIAS",
	CategoryFourDays:  "ROTA 4 DIAS",
	CategoryFiveDays:  "ROTA 5 DIAS",
}

// AllCategories 按计划天数排序的全部类别
func AllCategories() []RouteCategory {
	return []RouteCategory{
		CategoryNone, CategoryDayTrip, CategoryTwoDays,
		CategoryThreeDays, CategoryFourDays, CategoryFiveDays,
	}
}

// Valid 是否为已知类别
func (c RouteCategory) Valid() bool {
	_, ok := plannedDays[c]
	return ok
}

// PlannedDays 计划天数；未知类别为 0
func (c RouteCategory) PlannedDays() int {
	return plannedDays[c]
}

// LegacyLabel 旧系统类别文本
func (c RouteCategory) LegacyLabel() string {
	if l, ok := legacyLabels[c]; ok {
		return l
	}
	return legacyLabels[CategoryNone]
}

// ParseLegacyCategory 将旧系统类别文本映射为类别；无法识别时为 none
func ParseLegacyCategory(label string) RouteCategory {
	norm := strings.ToUpper(strings.TrimSpace(label))
	for c, l := range legacyLabels {
		if l == norm {
			return c
		}
	}
	if RouteCategory(strings.ToLower(norm)).Valid() {
		return RouteCategory(strings.ToLower(norm))
	}
	return CategoryNone
}
