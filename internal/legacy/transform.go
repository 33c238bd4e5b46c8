package legacy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/dateutil"
)

// errSkip 该行无法映射到新结构，计入跳过数
var errSkip = errors.New("skip")

// Table 一张旧表到新表的映射
type Table struct {
	Source  string
	Target  string
	Columns []string
	convert func(st *State, row Row) ([]any, error)
}

// State 跨表转换状态：已导入的主键与唯一键
type State struct {
	collaborators map[int64]struct{}
	assignments   map[int64]struct{}
	uniques       map[string]struct{}
}

// NewState 创建空的转换状态
func NewState() *State {
	return &State{
		collaborators: make(map[int64]struct{}),
		assignments:   make(map[int64]struct{}),
		uniques:       make(map[string]struct{}),
	}
}

// Convert 转换一行；返回 ok=false 表示跳过
func (t Table) Convert(st *State, row Row) ([]any, bool, error) {
	values, err := t.convert(st, row)
	if errors.Is(err, errSkip) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s #%v: %w", t.Source, row["id"], err)
	}
	return values, true, nil
}

// Tables 按外键依赖排序的全部映射
func Tables() []Table {
	return []Table{
		{
			Source:  "colaboradores",
			Target:  "collaborators",
			Columns: []string{"id", "name", "role", "can_assist", "note", "active"},
			convert: convertCollaborator,
		},
		{
			Source:  "caminhoes",
			Target:  "trucks",
			Columns: []string{"id", "plate", "model", "note", "active"},
			convert: convertTruck,
		},
		{
			Source:  "rotas_semanais",
			Target:  "weekly_routes",
			Columns: []string{"id", "weekday", "route_number", "destination", "note"},
			convert: convertWeeklyRoute,
		},
		{
			Source:  "rotas_suprimidas",
			Target:  "suppressed_routes",
			Columns: []string{"id", "date", "route_number", "destination"},
			convert: convertSuppressedRoute,
		},
		{
			Source: "carregamentos",
			Target: "route_assignments",
			Columns: []string{
				"id", "date", "departure_date", "route_number", "destination",
				"truck_plate", "driver_id", "helper_id", "category", "note", "reviewed",
			},
			convert: convertRouteAssignment,
		},
		{
			Source:  "oficinas",
			Target:  "workshop_visits",
			Columns: []string{"id", "date", "truck_plate", "driver_id", "departure_date", "note"},
			convert: convertWorkshopVisit,
		},
		{
			Source:  "folgas",
			Target:  "days_off",
			Columns: []string{"id", "date", "collaborator_id", "end_date", "departure_date", "note"},
			convert: convertDayOff,
		},
		{
			Source:  "ferias",
			Target:  "vacations",
			Columns: []string{"id", "collaborator_id", "start_date", "end_date", "note"},
			convert: convertVacation,
		},
		{
			Source:  "escala_cd",
			Target:  "cd_duties",
			Columns: []string{"id", "date", "driver_id", "helper_id", "note"},
			convert: convertCDDuty,
		},
		{
			Source:  "bloqueios",
			Target:  "blocking_entries",
			Columns: []string{"id", "collaborator_id", "start_date", "end_date", "reason", "route_assignment_id"},
			convert: convertBlockingEntry,
		},
		{
			Source:  "ajustes_rotas",
			Target:  "duration_adjustments",
			Columns: []string{"id", "route_assignment_id", "adjusted_at", "previous_days", "new_days", "note"},
			convert: convertAdjustment,
		},
	}
}

// ── 各表转换 ──

func convertCollaborator(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	if !ok {
		return nil, errSkip
	}
	name := row.String("nome")
	if name == "" {
		return nil, errSkip
	}
	st.collaborators[id] = struct{}{}
	return []any{id, name, ParseRole(row.String("funcao")), false, row.Text("observacao"), row.Bool("ativo", true)}, nil
}

func convertTruck(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	plate := model.NormalizePlate(row.String("placa"))
	if !ok || plate == "" || !st.unique("truck", plate) {
		return nil, errSkip
	}
	return []any{id, plate, row.Text("modelo"), row.Text("observacao"), row.Bool("ativo", true)}, nil
}

func convertWeeklyRoute(_ *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	if !ok {
		return nil, errSkip
	}
	number, destination := model.SplitLabel(row.String("rota"))
	if d := row.String("destino"); !isSentinel(d) {
		number, destination = row.String("rota"), d
	}
	if number == "" || destination == "" {
		return nil, errSkip
	}
	return []any{id, ParseWeekday(row.String("dia_semana")), number, destination, row.Text("observacao")}, nil
}

func convertSuppressedRoute(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	date := parseDate(row, "data")
	number, destination := model.SplitLabel(row.String("rota"))
	if !ok || date == nil || destination == "" {
		return nil, errSkip
	}
	if !st.unique("suppressed", date.Format(dateutil.ISOLayout), number, destination) {
		return nil, errSkip
	}
	return []any{id, *date, number, destination}, nil
}

func convertRouteAssignment(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	date := parseDate(row, "data")
	number, destination := model.SplitLabel(row.String("rota"))
	if !ok || date == nil || destination == "" {
		return nil, errSkip
	}
	// 旧库唯一键含车牌，新库按 日期+线路 唯一，后到的重复行丢弃
	if !st.unique("assignment", date.Format(dateutil.ISOLayout), number, destination) {
		return nil, errSkip
	}

	driver := st.collaboratorRef(row, "motorista_id")
	helper := st.collaboratorRef(row, "ajudante_id")
	if model.SameID(driver, helper) {
		helper = nil
	}

	st.assignments[id] = struct{}{}
	return []any{
		id, *date, parseDate(row, "data_saida"), number, destination,
		model.NormalizePlatePtr(row.Text("placa")), driver, helper,
		string(model.ParseLegacyCategory(row.String("observacao"))),
		row.Text("observacao_extra"), row.Bool("revisado", false),
	}, nil
}

func convertWorkshopVisit(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	date := parseDate(row, "data")
	plate := model.NormalizePlate(row.String("placa"))
	if !ok || date == nil || plate == "" {
		return nil, errSkip
	}
	if !st.unique("workshop", date.Format(dateutil.ISOLayout), plate) {
		return nil, errSkip
	}
	return []any{
		id, *date, plate, st.collaboratorRef(row, "motorista_id"), parseDate(row, "data_saida"),
		CombineNotes(row.String("observacao"), row.String("observacao_extra")),
	}, nil
}

func convertDayOff(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	date := parseDate(row, "data")
	collaborator := st.collaboratorRef(row, "colaborador_id")
	if !ok || date == nil || collaborator == nil {
		return nil, errSkip
	}
	if !st.unique("day_off", date.Format(dateutil.ISOLayout), fmt.Sprint(*collaborator)) {
		return nil, errSkip
	}
	return []any{
		id, *date, *collaborator, parseDate(row, "data_fim"), parseDate(row, "data_saida"),
		CombineNotes(row.String("observacao_padrao"), row.String("observacao_extra")),
	}, nil
}

func convertVacation(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	collaborator := st.collaboratorRef(row, "colaborador_id")
	start, end := parseDate(row, "data_inicio"), parseDate(row, "data_fim")
	if !ok || collaborator == nil || start == nil || end == nil || end.Before(*start) {
		return nil, errSkip
	}
	return []any{id, *collaborator, *start, *end, row.Text("observacao")}, nil
}

func convertCDDuty(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	date := parseDate(row, "data")
	if !ok || date == nil {
		return nil, errSkip
	}
	driver := st.collaboratorRef(row, "motorista_id")
	helper := st.collaboratorRef(row, "ajudante_id")
	if model.SameID(driver, helper) {
		helper = nil
	}
	return []any{id, *date, driver, helper, row.Text("observacao")}, nil
}

func convertBlockingEntry(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	collaborator := st.collaboratorRef(row, "colaborador_id")
	start, end := parseDate(row, "data_inicio"), parseDate(row, "data_fim")
	if !ok || collaborator == nil || start == nil || end == nil {
		return nil, errSkip
	}
	// 指向已丢弃派车的封锁没有归属，不再导入
	var assignment *int64
	if ref, has := row.Int("carregamento_id"); has {
		if _, known := st.assignments[ref]; !known {
			return nil, errSkip
		}
		assignment = &ref
	}
	return []any{id, *collaborator, *start, *end, row.Text("motivo"), assignment}, nil
}

func convertAdjustment(st *State, row Row) ([]any, error) {
	id, ok := row.Int("id")
	ref, hasRef := row.Int("carregamento_id")
	if !ok || !hasRef {
		return nil, errSkip
	}
	if _, known := st.assignments[ref]; !known {
		return nil, errSkip
	}
	previous, ok1 := row.Int("duracao_anterior")
	next, ok2 := row.Int("duracao_nova")
	if !ok1 || !ok2 {
		return nil, errSkip
	}
	return []any{id, ref, ParseTimestamp(row.String("data_ajuste")), previous, next, row.Text("observacao_ajuste")}, nil
}

// ── 旧约定 ──

// ParseRole 旧库 funcao：以 "motor" 开头为司机，其余为助手
func ParseRole(funcao string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(funcao)), "motor") {
		return model.RoleDriver
	}
	return model.RoleHelper
}

var weekdays = map[string]int{
	"segunda": 1, "terca": 2, "quarta": 3, "quinta": 4, "sexta": 5, "sabado": 6, "domingo": 7,
}

// ParseWeekday 葡语星期名 → ISO 星期（周一=1）；无法识别时为周一
func ParseWeekday(name string) int {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("ç", "c", "á", "a").Replace(s)
	s = strings.TrimSuffix(s, "-feira")
	if d, ok := weekdays[s]; ok {
		return d
	}
	return 1
}

// CombineNotes 合并旧库的标准备注与补充备注
func CombineNotes(standard, extra string) *string {
	var parts []string
	for _, s := range []string{standard, extra} {
		if !isSentinel(s) {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " - ")
	return &joined
}

// ParseTimestamp 旧库调整时间；无法解析时取当前时间
func ParseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", dateutil.ISOLayout} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// parseDate 可空日期列，返回 UTC 零点
func parseDate(row Row, col string) *time.Time {
	s := row.String(col)
	if isSentinel(s) {
		return nil
	}
	d, err := dateutil.Parse(s)
	if err != nil {
		return nil
	}
	t := d.Time()
	return &t
}

// collaboratorRef 外键引用；指向不存在人员时置空
func (st *State) collaboratorRef(row Row, col string) *int64 {
	if row[col] == nil {
		return nil
	}
	id, ok := row.Int(col)
	if !ok {
		return nil
	}
	if _, known := st.collaborators[id]; !known {
		return nil
	}
	return &id
}

// unique 记录唯一键，重复时返回 false
func (st *State) unique(parts ...string) bool {
	key := strings.Join(parts, "\x00")
	if _, dup := st.uniques[key]; dup {
		return false
	}
	st.uniques[key] = struct{}{}
	return true
}
