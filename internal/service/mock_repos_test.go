package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/internal/repository"
	"jr-escala/backend/pkg/dateutil"
)

// ── Mock 聚合 ──

type mockRepos struct {
	collaborators *mockCollaboratorRepo
	trucks        *mockTruckRepo
	routes        *mockRouteAssignmentRepo
	adjustments   *mockDurationAdjustmentRepo
	blocks        *mockBlockingEntryRepo
	vacations     *mockVacationRepo
	daysOff       *mockDayOffRepo
	workshops     *mockWorkshopVisitRepo
	cdDuties      *mockCDDutyRepo
	weekly        *mockWeeklyRouteRepo
	suppressed    *mockSuppressedRouteRepo
}

func newMockRepos() *mockRepos {
	routes := &mockRouteAssignmentRepo{items: make(map[int64]model.RouteAssignment)}
	return &mockRepos{
		collaborators: &mockCollaboratorRepo{items: make(map[int64]model.Collaborator)},
		trucks:        &mockTruckRepo{items: make(map[int64]model.Truck)},
		routes:        routes,
		adjustments:   &mockDurationAdjustmentRepo{items: make(map[int64]model.DurationAdjustment), routes: routes},
		blocks:        &mockBlockingEntryRepo{items: make(map[int64]model.BlockingEntry)},
		vacations:     &mockVacationRepo{items: make(map[int64]model.Vacation)},
		daysOff:       &mockDayOffRepo{items: make(map[int64]model.DayOff)},
		workshops:     &mockWorkshopVisitRepo{items: make(map[int64]model.WorkshopVisit)},
		cdDuties:      &mockCDDutyRepo{items: make(map[int64]model.CDDuty)},
		weekly:        &mockWeeklyRouteRepo{items: make(map[int64]model.WeeklyRoute)},
		suppressed:    &mockSuppressedRouteRepo{},
	}
}

// repository 组装未绑定数据库的 Repository；Transaction 直接执行回调
func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Collaborator:       m.collaborators,
		Truck:              m.trucks,
		RouteAssignment:    m.routes,
		DurationAdjustment: m.adjustments,
		BlockingEntry:      m.blocks,
		Vacation:           m.vacations,
		DayOff:             m.daysOff,
		WorkshopVisit:      m.workshops,
		CDDuty:             m.cdDuties,
		WeeklyRoute:        m.weekly,
		SuppressedRoute:    m.suppressed,
	}
}

func sortedKeys[T any](items map[int64]T) []int64 {
	keys := make([]int64, 0, len(items))
	for id := range items {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ── Mock CollaboratorRepository ──

type mockCollaboratorRepo struct {
	items  map[int64]model.Collaborator
	nextID int64
}

func (m *mockCollaboratorRepo) Create(_ context.Context, c *model.Collaborator) error {
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	} else if c.ID > m.nextID {
		m.nextID = c.ID
	}
	m.items[c.ID] = *c
	return nil
}

func (m *mockCollaboratorRepo) GetByID(_ context.Context, id int64) (*model.Collaborator, error) {
	if c, ok := m.items[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollaboratorRepo) List(_ context.Context, filter repository.CollaboratorFilter) ([]model.Collaborator, error) {
	var result []model.Collaborator
	for _, id := range sortedKeys(m.items) {
		c := m.items[id]
		if filter.Role != "" && c.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !c.Active {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCollaboratorRepo) ListByIDs(_ context.Context, ids []int64) (map[int64]model.Collaborator, error) {
	result := make(map[int64]model.Collaborator)
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

func (m *mockCollaboratorRepo) Update(_ context.Context, c *model.Collaborator) error {
	m.items[c.ID] = *c
	return nil
}

func (m *mockCollaboratorRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

// ── Mock TruckRepository ──

type mockTruckRepo struct {
	items  map[int64]model.Truck
	nextID int64
}

func (m *mockTruckRepo) plateTaken(plate string, selfID int64) bool {
	for id, t := range m.items {
		if id != selfID && t.Plate == plate {
			return true
		}
	}
	return false
}

func (m *mockTruckRepo) Create(_ context.Context, t *model.Truck) error {
	if m.plateTaken(t.Plate, 0) {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	t.ID = m.nextID
	m.items[t.ID] = *t
	return nil
}

func (m *mockTruckRepo) GetByID(_ context.Context, id int64) (*model.Truck, error) {
	if t, ok := m.items[id]; ok {
		return &t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTruckRepo) GetByPlate(_ context.Context, plate string) (*model.Truck, error) {
	for _, t := range m.items {
		if t.Plate == model.NormalizePlate(plate) {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTruckRepo) List(_ context.Context, activeOnly bool) ([]model.Truck, error) {
	var result []model.Truck
	for _, id := range sortedKeys(m.items) {
		t := m.items[id]
		if activeOnly && !t.Active {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTruckRepo) Update(_ context.Context, t *model.Truck) error {
	if m.plateTaken(t.Plate, t.ID) {
		return gorm.ErrDuplicatedKey
	}
	m.items[t.ID] = *t
	return nil
}

func (m *mockTruckRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

// ── Mock RouteAssignmentRepository ──

type mockRouteAssignmentRepo struct {
	items  map[int64]model.RouteAssignment
	nextID int64

	// beforeCreate 在写入前调用，返回非 nil 时 Create 直接返回该错误（模拟并发写入同一标签）
	beforeCreate  func(a *model.RouteAssignment) error
	listUpToCalls int
}

func (m *mockRouteAssignmentRepo) labelTaken(a *model.RouteAssignment) bool {
	for id, o := range m.items {
		if id != a.ID && o.Date.Equal(a.Date) && o.RouteNumber == a.RouteNumber && o.Destination == a.Destination {
			return true
		}
	}
	return false
}

func (m *mockRouteAssignmentRepo) Create(_ context.Context, a *model.RouteAssignment) error {
	if m.beforeCreate != nil {
		if err := m.beforeCreate(a); err != nil {
			return err
		}
	}
	if m.labelTaken(a) {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	a.ID = m.nextID
	m.items[a.ID] = *a
	return nil
}

func (m *mockRouteAssignmentRepo) GetByID(_ context.Context, id int64) (*model.RouteAssignment, error) {
	if a, ok := m.items[id]; ok {
		return &a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRouteAssignmentRepo) Update(_ context.Context, a *model.RouteAssignment) error {
	if m.labelTaken(a) {
		return gorm.ErrDuplicatedKey
	}
	m.items[a.ID] = *a
	return nil
}

func (m *mockRouteAssignmentRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockRouteAssignmentRepo) ListByDate(_ context.Context, date dateutil.Date) ([]model.RouteAssignment, error) {
	var result []model.RouteAssignment
	for _, id := range sortedKeys(m.items) {
		if a := m.items[id]; a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRouteAssignmentRepo) ListUpTo(_ context.Context, date dateutil.Date) ([]model.RouteAssignment, error) {
	m.listUpToCalls++
	var result []model.RouteAssignment
	for _, id := range sortedKeys(m.items) {
		if a := m.items[id]; !a.Date.After(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRouteAssignmentRepo) List(_ context.Context, filter repository.RouteAssignmentFilter) ([]model.RouteAssignment, error) {
	var result []model.RouteAssignment
	for _, id := range sortedKeys(m.items) {
		a := m.items[id]
		if filter.From.Valid() && a.Date.Before(filter.From) {
			continue
		}
		if filter.To.Valid() && a.Date.After(filter.To) {
			continue
		}
		if filter.DriverID != nil && !model.SameID(a.DriverID, filter.DriverID) {
			continue
		}
		if filter.TruckPlate != "" && (a.TruckPlate == nil || *a.TruckPlate != filter.TruckPlate) {
			continue
		}
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockRouteAssignmentRepo) FindByLabel(_ context.Context, date dateutil.Date, routeNumber, destination string) (*model.RouteAssignment, error) {
	for _, id := range sortedKeys(m.items) {
		a := m.items[id]
		if a.Date.Equal(date) && a.RouteNumber == routeNumber && a.Destination == destination {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRouteAssignmentRepo) ClearCollaborator(_ context.Context, collaboratorID int64) error {
	for id, a := range m.items {
		if a.DriverID != nil && *a.DriverID == collaboratorID {
			a.DriverID = nil
		}
		if a.HelperID != nil && *a.HelperID == collaboratorID {
			a.HelperID = nil
		}
		m.items[id] = a
	}
	return nil
}

// ── Mock DurationAdjustmentRepository ──

type mockDurationAdjustmentRepo struct {
	items  map[int64]model.DurationAdjustment
	nextID int64
	routes *mockRouteAssignmentRepo
}

func (m *mockDurationAdjustmentRepo) Create(_ context.Context, adj *model.DurationAdjustment) error {
	m.nextID++
	adj.ID = m.nextID
	m.items[adj.ID] = *adj
	return nil
}

func (m *mockDurationAdjustmentRepo) ListByAssignment(_ context.Context, assignmentID int64) ([]model.DurationAdjustment, error) {
	var result []model.DurationAdjustment
	for _, id := range sortedKeys(m.items) {
		if adj := m.items[id]; adj.RouteAssignmentID == assignmentID {
			result = append(result, adj)
		}
	}
	return result, nil
}

func (m *mockDurationAdjustmentRepo) Latest(ctx context.Context, assignmentID int64) (*model.DurationAdjustment, error) {
	list, _ := m.ListByAssignment(ctx, assignmentID)
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[len(list)-1], nil
}

func (m *mockDurationAdjustmentRepo) LatestUpTo(ctx context.Context, date dateutil.Date) (map[int64]model.DurationAdjustment, error) {
	result := make(map[int64]model.DurationAdjustment)
	for _, id := range sortedKeys(m.items) {
		adj := m.items[id]
		a, ok := m.routes.items[adj.RouteAssignmentID]
		if !ok || a.Date.After(date) {
			continue
		}
		result[adj.RouteAssignmentID] = adj
	}
	return result, nil
}

func (m *mockDurationAdjustmentRepo) ListByAssignments(ctx context.Context, assignmentIDs []int64) (map[int64][]model.DurationAdjustment, error) {
	result := make(map[int64][]model.DurationAdjustment)
	for _, aid := range assignmentIDs {
		if list, _ := m.ListByAssignment(ctx, aid); len(list) > 0 {
			result[aid] = list
		}
	}
	return result, nil
}

func (m *mockDurationAdjustmentRepo) DeleteByAssignment(_ context.Context, assignmentID int64) error {
	for id, adj := range m.items {
		if adj.RouteAssignmentID == assignmentID {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock BlockingEntryRepository ──

type mockBlockingEntryRepo struct {
	items  map[int64]model.BlockingEntry
	nextID int64
}

func (m *mockBlockingEntryRepo) CreateBatch(_ context.Context, entries []model.BlockingEntry) error {
	for i := range entries {
		m.nextID++
		entries[i].ID = m.nextID
		m.items[entries[i].ID] = entries[i]
	}
	return nil
}

func (m *mockBlockingEntryRepo) GetByID(_ context.Context, id int64) (*model.BlockingEntry, error) {
	if b, ok := m.items[id]; ok {
		return &b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockingEntryRepo) List(_ context.Context, filter repository.BlockingEntryFilter) ([]model.BlockingEntry, error) {
	var result []model.BlockingEntry
	for _, id := range sortedKeys(m.items) {
		b := m.items[id]
		if filter.CollaboratorID != nil && b.CollaboratorID != *filter.CollaboratorID {
			continue
		}
		if filter.StandaloneOnly && !b.Standalone() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockBlockingEntryRepo) ListByAssignment(_ context.Context, assignmentID int64) ([]model.BlockingEntry, error) {
	var result []model.BlockingEntry
	for _, id := range sortedKeys(m.items) {
		b := m.items[id]
		if b.RouteAssignmentID != nil && *b.RouteAssignmentID == assignmentID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBlockingEntryRepo) ListStandaloneCovering(_ context.Context, date dateutil.Date) ([]model.BlockingEntry, error) {
	var result []model.BlockingEntry
	for _, id := range sortedKeys(m.items) {
		if b := m.items[id]; b.Standalone() && b.Covers(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBlockingEntryRepo) UpdateEndByAssignment(_ context.Context, assignmentID int64, end dateutil.Date) (int64, error) {
	var n int64
	for id, b := range m.items {
		if b.RouteAssignmentID != nil && *b.RouteAssignmentID == assignmentID {
			b.EndDate = end
			m.items[id] = b
			n++
		}
	}
	return n, nil
}

func (m *mockBlockingEntryRepo) DeleteByAssignment(_ context.Context, assignmentID int64) (int64, error) {
	var n int64
	for id, b := range m.items {
		if b.RouteAssignmentID != nil && *b.RouteAssignmentID == assignmentID {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *mockBlockingEntryRepo) DeleteByCollaborator(_ context.Context, collaboratorID int64) error {
	for id, b := range m.items {
		if b.CollaboratorID == collaboratorID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockBlockingEntryRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockBlockingEntryRepo) DeleteExpired(_ context.Context, today dateutil.Date) (int64, error) {
	var n int64
	for id, b := range m.items {
		if !b.EndDate.After(today) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// ── Mock VacationRepository ──

type mockVacationRepo struct {
	items  map[int64]model.Vacation
	nextID int64
}

func (m *mockVacationRepo) Create(_ context.Context, v *model.Vacation) error {
	m.nextID++
	v.ID = m.nextID
	m.items[v.ID] = *v
	return nil
}

func (m *mockVacationRepo) CreateBatch(ctx context.Context, list []model.Vacation) error {
	for i := range list {
		if err := m.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockVacationRepo) GetByID(_ context.Context, id int64) (*model.Vacation, error) {
	if v, ok := m.items[id]; ok {
		return &v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVacationRepo) List(_ context.Context, collaboratorID *int64) ([]model.Vacation, error) {
	var result []model.Vacation
	for _, id := range sortedKeys(m.items) {
		v := m.items[id]
		if collaboratorID != nil && v.CollaboratorID != *collaboratorID {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (m *mockVacationRepo) ListCovering(_ context.Context, date dateutil.Date) ([]model.Vacation, error) {
	var result []model.Vacation
	for _, id := range sortedKeys(m.items) {
		if v := m.items[id]; v.Covers(date) {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *mockVacationRepo) Update(_ context.Context, v *model.Vacation) error {
	m.items[v.ID] = *v
	return nil
}

func (m *mockVacationRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockVacationRepo) DeleteByCollaborator(_ context.Context, collaboratorID int64) error {
	for id, v := range m.items {
		if v.CollaboratorID == collaboratorID {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock DayOffRepository ──

type mockDayOffRepo struct {
	items  map[int64]model.DayOff
	nextID int64
}

func (m *mockDayOffRepo) taken(d *model.DayOff) bool {
	for id, o := range m.items {
		if id != d.ID && o.Date.Equal(d.Date) && o.CollaboratorID == d.CollaboratorID {
			return true
		}
	}
	return false
}

func (m *mockDayOffRepo) Create(_ context.Context, d *model.DayOff) error {
	if m.taken(d) {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	d.ID = m.nextID
	m.items[d.ID] = *d
	return nil
}

func (m *mockDayOffRepo) GetByID(_ context.Context, id int64) (*model.DayOff, error) {
	if d, ok := m.items[id]; ok {
		return &d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayOffRepo) ListByDate(_ context.Context, date dateutil.Date) ([]model.DayOff, error) {
	var result []model.DayOff
	for _, id := range sortedKeys(m.items) {
		d := m.items[id]
		if date.Valid() && !d.Date.Equal(date) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

func (m *mockDayOffRepo) Update(_ context.Context, d *model.DayOff) error {
	if m.taken(d) {
		return gorm.ErrDuplicatedKey
	}
	m.items[d.ID] = *d
	return nil
}

func (m *mockDayOffRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockDayOffRepo) DeleteByCollaborator(_ context.Context, collaboratorID int64) error {
	for id, d := range m.items {
		if d.CollaboratorID == collaboratorID {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock WorkshopVisitRepository ──

type mockWorkshopVisitRepo struct {
	items  map[int64]model.WorkshopVisit
	nextID int64
}

func (m *mockWorkshopVisitRepo) taken(w *model.WorkshopVisit) bool {
	for id, o := range m.items {
		if id != w.ID && o.Date.Equal(w.Date) && o.TruckPlate == w.TruckPlate {
			return true
		}
	}
	return false
}

func (m *mockWorkshopVisitRepo) Create(_ context.Context, w *model.WorkshopVisit) error {
	if m.taken(w) {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	w.ID = m.nextID
	m.items[w.ID] = *w
	return nil
}

func (m *mockWorkshopVisitRepo) GetByID(_ context.Context, id int64) (*model.WorkshopVisit, error) {
	if w, ok := m.items[id]; ok {
		return &w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkshopVisitRepo) ListByDate(_ context.Context, date dateutil.Date) ([]model.WorkshopVisit, error) {
	var result []model.WorkshopVisit
	for _, id := range sortedKeys(m.items) {
		w := m.items[id]
		if date.Valid() && !w.Date.Equal(date) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func (m *mockWorkshopVisitRepo) Update(_ context.Context, w *model.WorkshopVisit) error {
	if m.taken(w) {
		return gorm.ErrDuplicatedKey
	}
	m.items[w.ID] = *w
	return nil
}

func (m *mockWorkshopVisitRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockWorkshopVisitRepo) ClearDriver(_ context.Context, collaboratorID int64) error {
	for id, w := range m.items {
		if w.DriverID != nil && *w.DriverID == collaboratorID {
			w.DriverID = nil
			m.items[id] = w
		}
	}
	return nil
}

// ── Mock CDDutyRepository ──

type mockCDDutyRepo struct {
	items  map[int64]model.CDDuty
	nextID int64
}

func (m *mockCDDutyRepo) Create(_ context.Context, d *model.CDDuty) error {
	m.nextID++
	d.ID = m.nextID
	m.items[d.ID] = *d
	return nil
}

func (m *mockCDDutyRepo) GetByID(_ context.Context, id int64) (*model.CDDuty, error) {
	if d, ok := m.items[id]; ok {
		return &d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCDDutyRepo) ListByDate(_ context.Context, date dateutil.Date) ([]model.CDDuty, error) {
	var result []model.CDDuty
	for _, id := range sortedKeys(m.items) {
		if d := m.items[id]; d.Date.Equal(date) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockCDDutyRepo) Update(_ context.Context, d *model.CDDuty) error {
	m.items[d.ID] = *d
	return nil
}

func (m *mockCDDutyRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockCDDutyRepo) ClearCollaborator(_ context.Context, collaboratorID int64) error {
	for id, d := range m.items {
		if d.DriverID != nil && *d.DriverID == collaboratorID {
			d.DriverID = nil
		}
		if d.HelperID != nil && *d.HelperID == collaboratorID {
			d.HelperID = nil
		}
		m.items[id] = d
	}
	return nil
}

// ── Mock WeeklyRouteRepository ──

type mockWeeklyRouteRepo struct {
	items  map[int64]model.WeeklyRoute
	nextID int64
}

func (m *mockWeeklyRouteRepo) Create(_ context.Context, w *model.WeeklyRoute) error {
	m.nextID++
	w.ID = m.nextID
	m.items[w.ID] = *w
	return nil
}

func (m *mockWeeklyRouteRepo) GetByID(_ context.Context, id int64) (*model.WeeklyRoute, error) {
	if w, ok := m.items[id]; ok {
		return &w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklyRouteRepo) List(_ context.Context, weekday *int) ([]model.WeeklyRoute, error) {
	var result []model.WeeklyRoute
	for _, id := range sortedKeys(m.items) {
		w := m.items[id]
		if weekday != nil && w.Weekday != *weekday {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func (m *mockWeeklyRouteRepo) Update(_ context.Context, w *model.WeeklyRoute) error {
	m.items[w.ID] = *w
	return nil
}

func (m *mockWeeklyRouteRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

// ── Mock SuppressedRouteRepository ──

type mockSuppressedRouteRepo struct {
	items []model.SuppressedRoute
}

func (m *mockSuppressedRouteRepo) Create(_ context.Context, s *model.SuppressedRoute) error {
	for _, o := range m.items {
		if o.Date.Equal(s.Date) && o.RouteNumber == s.RouteNumber && o.Destination == s.Destination {
			return nil
		}
	}
	s.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *s)
	return nil
}

func (m *mockSuppressedRouteRepo) ListByDate(_ context.Context, date dateutil.Date) ([]model.SuppressedRoute, error) {
	var result []model.SuppressedRoute
	for _, s := range m.items {
		if s.Date.Equal(date) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSuppressedRouteRepo) DeleteByDate(_ context.Context, date dateutil.Date) (int64, error) {
	kept := m.items[:0]
	var n int64
	for _, s := range m.items {
		if s.Date.Equal(date) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	m.items = kept
	return n, nil
}
