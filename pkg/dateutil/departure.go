package dateutil

import "time"

// DefaultDeparture 默认出发日：周五登记的线路下周一出发，其余为次日
func DefaultDeparture(registered Date) Date {
	if registered.IsZero() {
		return Date{}
	}
	if registered.Weekday() == time.Friday {
		return registered.AddDays(3)
	}
	return registered.AddDays(1)
}

// ResolveDeparture 出发日缺失或早于登记日时回落到默认出发日
func ResolveDeparture(registered, departure Date) Date {
	if registered.IsZero() {
		return Date{}
	}
	if departure.IsZero() || departure.Before(registered) {
		return DefaultDeparture(registered)
	}
	return departure
}
