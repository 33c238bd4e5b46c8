package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
)

// TripLogService 行程日志接口
type TripLogService interface {
	// Query 按登记日倒序列出行程及其状态；in_progress 过滤时已配车 / 配人的行程排在前面
	Query(ctx context.Context, req *dto.TripLogRequest) ([]dto.TripLogEntry, error)
}

type tripLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	today  func() dateutil.Date
}

// NewTripLogService 创建 TripLogService 实例
func NewTripLogService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) TripLogService {
	s := &tripLogService{repo: repo, logger: logger, loc: loc}
	s.today = func() dateutil.Date { return dateutil.Today(s.loc) }
	return s
}

func (s *tripLogService) Query(ctx context.Context, req *dto.TripLogRequest) ([]dto.TripLogEntry, error) {
	from, err := parseOptionalDateParam(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDateParam(req.To)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.RouteAssignment.List(ctx, repository.RouteAssignmentFilter{
		From:       from,
		To:         to,
		DriverID:   req.DriverID,
		TruckPlate: model.NormalizePlate(req.Plate),
	})
	if err != nil {
		s.logger.Error("查询行程日志失败", zap.Error(err))
		return nil, err
	}
	if len(list) == 0 {
		return []dto.TripLogEntry{}, nil
	}

	ids := make([]int64, 0, len(list))
	personIDs := make([]int64, 0, len(list)*2)
	for i := range list {
		ids = append(ids, list[i].ID)
		personIDs = append(personIDs, list[i].CrewIDs()...)
	}
	adjustments, err := s.repo.DurationAdjustment.ListByAssignments(ctx, ids)
	if err != nil {
		s.logger.Error("查询行程调整失败", zap.Error(err))
		return nil, err
	}
	people, err := s.repo.Collaborator.ListByIDs(ctx, personIDs)
	if err != nil {
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	today := s.today()
	result := make([]dto.TripLogEntry, 0, len(list))
	for i := range list {
		entry := buildTripLogEntry(&list[i], adjustments[list[i].ID], people, today)
		if !matchesTripStatus(entry.Status, req.Status) {
			continue
		}
		result = append(result, entry)
	}

	if req.Status == dto.TripStatusInProgress {
		sort.SliceStable(result, func(i, j int) bool {
			return !result[i].Empty && result[j].Empty
		})
	}
	return result, nil
}

// buildTripLogEntry 计划 / 有效天数、起止日、状态与剩余天数
func buildTripLogEntry(a *model.RouteAssignment, adjustments []model.DurationAdjustment, people map[int64]model.Collaborator, today dateutil.Date) dto.TripLogEntry {
	planned := a.Category.PlannedDays()
	effective := planned
	if n := len(adjustments); n > 0 {
		effective = adjustments[n-1].NewDays
	}

	start := a.EffectiveDeparture()
	if start.IsZero() {
		start = today
	}
	end := start.AddDays(effective)

	finishedManually := len(adjustments) > 0 && effective <= 0
	status := dto.TripStatusFinished
	if !finishedManually && (today.Before(start) || today.Before(end)) {
		status = dto.TripStatusInProgress
	}

	remaining := today.DaysUntil(end)
	if remaining < 0 {
		remaining = 0
	}

	return dto.TripLogEntry{
		RouteAssignmentID: a.ID,
		Date:              a.Date.String(),
		DepartureDate:     start.String(),
		EndDate:           end.String(),
		Label:             a.Label(),
		TruckPlate:        a.TruckPlate,
		DriverID:          a.DriverID,
		DriverName:        collaboratorName(people, a.DriverID),
		HelperID:          a.HelperID,
		HelperName:        collaboratorName(people, a.HelperID),
		Category:          string(a.Category),
		PlannedDays:       planned,
		EffectiveDays:     effective,
		Status:            status,
		RemainingDays:     remaining,
		Summary:           summarizeAdjustments(planned, adjustments),
		Empty:             a.TruckPlate == nil && a.DriverID == nil && a.HelperID == nil,
		Adjustments:       toAdjustmentResponses(adjustments),
	}
}

func matchesTripStatus(status, filter string) bool {
	switch filter {
	case "", "all":
		return true
	}
	return status == filter
}

func collaboratorName(people map[int64]model.Collaborator, id *int64) string {
	if id == nil {
		return ""
	}
	if c, ok := people[*id]; ok {
		return c.Name
	}
	return ""
}
