package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jr-escala/backend/internal/dto"
	"jr-escala/backend/internal/service"
	"jr-escala/backend/pkg/dateutil"
	"jr-escala/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AvailabilityService ──

type mockAvailabilityService struct {
	checkResult *service.Unavailability
	checkErr    error

	gotDate   dateutil.Date
	gotIgnore *service.IgnoreKey
}

func (m *mockAvailabilityService) Check(_ context.Context, date dateutil.Date, ignore *service.IgnoreKey) (*service.Unavailability, error) {
	m.gotDate = date
	m.gotIgnore = ignore
	return m.checkResult, m.checkErr
}
func (m *mockAvailabilityService) EnsureAvailable(_ context.Context, _ []dateutil.Date, _ *service.IgnoreKey, _ service.Crew) error {
	return nil
}

// ── Mock RouteAssignmentService ──

type mockRouteAssignmentService struct {
	createResult *dto.RouteAssignmentResponse
	createErr    error
	getResult    *dto.RouteAssignmentResponse
	getErr       error
	deleteErr    error
	dupResult    *dto.RouteAssignmentResponse
	dupErr       error

	gotID int64
}

func (m *mockRouteAssignmentService) Create(_ context.Context, _ *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRouteAssignmentService) Get(_ context.Context, id int64) (*dto.RouteAssignmentResponse, error) {
	m.gotID = id
	return m.getResult, m.getErr
}
func (m *mockRouteAssignmentService) ListByDate(_ context.Context, _ dateutil.Date) ([]dto.RouteAssignmentResponse, error) {
	return nil, nil
}
func (m *mockRouteAssignmentService) Update(_ context.Context, _ int64, _ *dto.SaveRouteAssignmentRequest) (*dto.RouteAssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRouteAssignmentService) Delete(_ context.Context, id int64) error {
	m.gotID = id
	return m.deleteErr
}
func (m *mockRouteAssignmentService) Duplicate(_ context.Context, _ int64) (*dto.RouteAssignmentResponse, error) {
	return m.dupResult, m.dupErr
}

// ── Mock DurationService ──

type mockDurationService struct {
	adjustResult *dto.AdjustmentResponse
	adjustErr    error

	gotDays int
	gotNote string
}

func (m *mockDurationService) CurrentEffectiveDuration(_ context.Context, _ int64) (int, error) {
	return 0, nil
}
func (m *mockDurationService) GetDuration(_ context.Context, _ int64) (*dto.DurationResponse, error) {
	return &dto.DurationResponse{}, nil
}
func (m *mockDurationService) RegisterAdjustment(_ context.Context, _ int64, newDays int, note string) (*dto.AdjustmentResponse, error) {
	m.gotDays = newDays
	m.gotNote = note
	return m.adjustResult, m.adjustErr
}
func (m *mockDurationService) ReleaseNow(_ context.Context, _ int64) (*dto.AdjustmentResponse, error) {
	return m.adjustResult, m.adjustErr
}
func (m *mockDurationService) ListAdjustments(_ context.Context, _ int64) (*dto.AdjustmentListResponse, error) {
	return &dto.AdjustmentListResponse{}, nil
}

// ── Mock VacationService ──

type mockVacationService struct {
	importResult *dto.ImportVacationsResponse
	importErr    error

	gotCollaboratorID int64
	gotContent        string
}

func (m *mockVacationService) Create(_ context.Context, _ *dto.SaveVacationRequest) (*dto.VacationResponse, error) {
	return nil, nil
}
func (m *mockVacationService) List(_ context.Context, _ *dto.VacationListRequest) ([]dto.VacationResponse, error) {
	return nil, nil
}
func (m *mockVacationService) Update(_ context.Context, _ int64, _ *dto.SaveVacationRequest) (*dto.VacationResponse, error) {
	return nil, nil
}
func (m *mockVacationService) Delete(_ context.Context, _ int64) error {
	return nil
}
func (m *mockVacationService) ImportICS(_ context.Context, collaboratorID int64, reader io.Reader) (*dto.ImportVacationsResponse, error) {
	m.gotCollaboratorID = collaboratorID
	b, _ := io.ReadAll(reader)
	m.gotContent = string(b)
	return m.importResult, m.importErr
}

// ── Mock TruckService ──

type mockTruckService struct {
	maintenanceResult *dto.MaintenanceResponse
	maintenanceErr    error

	gotPlate string
}

func (m *mockTruckService) Create(_ context.Context, _ *dto.CreateTruckRequest) (*dto.TruckResponse, error) {
	return nil, nil
}
func (m *mockTruckService) Get(_ context.Context, _ int64) (*dto.TruckResponse, error) {
	return nil, nil
}
func (m *mockTruckService) List(_ context.Context, _ *dto.TruckListRequest) ([]dto.TruckResponse, error) {
	return nil, nil
}
func (m *mockTruckService) Update(_ context.Context, _ int64, _ *dto.UpdateTruckRequest) (*dto.TruckResponse, error) {
	return nil, nil
}
func (m *mockTruckService) Delete(_ context.Context, _ int64) error {
	return nil
}
func (m *mockTruckService) ListAvailable(_ context.Context, _ dateutil.Date, _ *service.IgnoreKey) ([]dto.TruckResponse, error) {
	return nil, nil
}
func (m *mockTruckService) InMaintenance(_ context.Context, plate string, _ dateutil.Date) (*dto.MaintenanceResponse, error) {
	m.gotPlate = plate
	return m.maintenanceResult, m.maintenanceErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// handleServiceError
// ═══════════════════════════════════════════════════════════

func TestHandleServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"validation", service.ErrInvalidDate, http.StatusBadRequest, codeRouteAssignment + 1},
		{"wrapped validation", fmt.Errorf("%w: x", service.ErrInvalidTripDays), http.StatusBadRequest, codeRouteAssignment + 1},
		{"not found", service.ErrAssignmentNotFound, http.StatusNotFound, codeRouteAssignment + 4},
		{"conflict", fmt.Errorf("%w: 司机 #1", service.ErrDriverUnavailable), http.StatusConflict, codeRouteAssignment + 9},
		{"internal", errors.New("db down"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, w := setupGin()
			c.Request = httptest.NewRequest("GET", "/", nil)

			handleServiceError(c, codeRouteAssignment, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// AvailabilityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAvailabilityHandler_Check_Success(t *testing.T) {
	mock := &mockAvailabilityService{checkResult: &service.Unavailability{}}
	h := NewAvailabilityHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/availability?date=06/05/2024&ignore_kind=route&ignore_id=7", nil)

	r := gin.New()
	r.GET("/availability", h.Check)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotDate.String() != "2024-05-06" {
		t.Errorf("expected date 2024-05-06, got %s", mock.gotDate)
	}
	if mock.gotIgnore == nil || mock.gotIgnore.Kind != service.IgnoreRoute || mock.gotIgnore.ID != 7 {
		t.Errorf("expected ignore route #7, got %+v", mock.gotIgnore)
	}
}

func TestAvailabilityHandler_Check_MissingDate(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/availability", nil)

	r := gin.New()
	r.GET("/availability", h.Check)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != codeAvailability {
		t.Errorf("expected code %d, got %d", codeAvailability, resp.Code)
	}
}

func TestAvailabilityHandler_Check_InvalidDate(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/availability?date=2024-13-45", nil)

	r := gin.New()
	r.GET("/availability", h.Check)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != codeAvailability+1 {
		t.Errorf("expected code %d, got %d", codeAvailability+1, resp.Code)
	}
}

func TestAvailabilityHandler_Check_UnknownIgnoreKind(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/availability?date=2024-05-06&ignore_kind=holiday&ignore_id=1", nil)

	r := gin.New()
	r.GET("/availability", h.Check)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RouteAssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRouteAssignmentHandler_Get_BadID(t *testing.T) {
	h := NewRouteAssignmentHandler(&mockRouteAssignmentService{}, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/route-assignments/abc", nil)

	r := gin.New()
	r.GET("/route-assignments/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRouteAssignmentHandler_Get_NotFound(t *testing.T) {
	mock := &mockRouteAssignmentService{getErr: service.ErrAssignmentNotFound}
	h := NewRouteAssignmentHandler(mock, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/route-assignments/42", nil)

	r := gin.New()
	r.GET("/route-assignments/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if mock.gotID != 42 {
		t.Errorf("expected id 42, got %d", mock.gotID)
	}
}

func TestRouteAssignmentHandler_Create_Conflict(t *testing.T) {
	mock := &mockRouteAssignmentService{createErr: fmt.Errorf("%w: 司机 #3", service.ErrDriverUnavailable)}
	h := NewRouteAssignmentHandler(mock, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/route-assignments", bytes.NewReader([]byte(
		`{"date":"2024-05-06","departure_date":"2024-05-07","route_number":"1","destination":"Santos","driver_id":3}`,
	)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/route-assignments", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != codeRouteAssignment+9 {
		t.Errorf("expected code %d, got %d", codeRouteAssignment+9, resp.Code)
	}
}

func TestRouteAssignmentHandler_Create_MissingDestination(t *testing.T) {
	h := NewRouteAssignmentHandler(&mockRouteAssignmentService{}, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/route-assignments", bytes.NewReader([]byte(`{"date":"2024-05-06"}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/route-assignments", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRouteAssignmentHandler_Create_BodyTooLarge(t *testing.T) {
	h := NewRouteAssignmentHandler(&mockRouteAssignmentService{}, &mockDurationService{})

	_, _, w := setupGin()
	body := `{"date":"2024-05-06","route_number":"1","destination":"` + string(bytes.Repeat([]byte("x"), 256)) + `"}`
	req := httptest.NewRequest("POST", "/route-assignments", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	req.Body = http.MaxBytesReader(w, req.Body, 64)

	r := gin.New()
	r.POST("/route-assignments", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp.Code != 10005 {
		t.Errorf("expected code 10005, got %d", resp.Code)
	}
}

func TestRouteAssignmentHandler_Delete_Success(t *testing.T) {
	mock := &mockRouteAssignmentService{}
	h := NewRouteAssignmentHandler(mock, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/route-assignments/5", nil)

	r := gin.New()
	r.DELETE("/route-assignments/:id", h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotID != 5 {
		t.Errorf("expected id 5, got %d", mock.gotID)
	}
}

func TestRouteAssignmentHandler_RegisterAdjustment_Success(t *testing.T) {
	dur := &mockDurationService{adjustResult: &dto.AdjustmentResponse{NewDays: 4}}
	h := NewRouteAssignmentHandler(&mockRouteAssignmentService{}, dur)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/route-assignments/1/adjustments", jsonBody(map[string]interface{}{
		"new_days": 4,
		"note":     "chuva",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/route-assignments/:id/adjustments", h.RegisterAdjustment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if dur.gotDays != 4 || dur.gotNote != "chuva" {
		t.Errorf("expected 4 days with note, got %d %q", dur.gotDays, dur.gotNote)
	}
}

func TestRouteAssignmentHandler_RegisterAdjustment_MissingDays(t *testing.T) {
	h := NewRouteAssignmentHandler(&mockRouteAssignmentService{}, &mockDurationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/route-assignments/1/adjustments", jsonBody(map[string]string{"note": "x"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/route-assignments/:id/adjustments", h.RegisterAdjustment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TruckHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTruckHandler_InMaintenance_Success(t *testing.T) {
	visitID := int64(9)
	mock := &mockTruckService{maintenanceResult: &dto.MaintenanceResponse{
		Plate: "ABC1D23", Date: "2024-05-06", InMaintenance: true, WorkshopVisitID: &visitID,
	}}
	h := NewTruckHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/trucks/maintenance?plate=abc1d23&date=2024-05-06", nil)

	r := gin.New()
	r.GET("/trucks/maintenance", h.InMaintenance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotPlate != "abc1d23" {
		t.Errorf("expected plate passed through, got %q", mock.gotPlate)
	}
}

// ═══════════════════════════════════════════════════════════
// VacationHandler Tests
// ═══════════════════════════════════════════════════════════

func newICSUpload(t *testing.T, collaboratorID, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if collaboratorID != "" {
		mw.WriteField("collaborator_id", collaboratorID)
	}
	fw, err := mw.CreateFormFile("file", "ferias.ics")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest("POST", "/vacations/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVacationHandler_ImportICS_Upload(t *testing.T) {
	mock := &mockVacationService{importResult: &dto.ImportVacationsResponse{Imported: 1}}
	h := NewVacationHandler(mock)

	_, _, w := setupGin()
	req := newICSUpload(t, "3", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	r := gin.New()
	r.POST("/vacations/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotCollaboratorID != 3 {
		t.Errorf("expected collaborator 3, got %d", mock.gotCollaboratorID)
	}
	if mock.gotContent != "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n" {
		t.Errorf("unexpected uploaded content %q", mock.gotContent)
	}
}

func TestVacationHandler_ImportICS_UploadMissingCollaborator(t *testing.T) {
	h := NewVacationHandler(&mockVacationService{})

	_, _, w := setupGin()
	req := newICSUpload(t, "", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	r := gin.New()
	r.POST("/vacations/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestVacationHandler_ImportICS_NoValidEvents(t *testing.T) {
	mock := &mockVacationService{importErr: service.ErrICSNoValidEvents}
	h := NewVacationHandler(mock)

	_, _, w := setupGin()
	req := newICSUpload(t, "3", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	r := gin.New()
	r.POST("/vacations/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != codeVacation+1 {
		t.Errorf("expected code %d, got %d", codeVacation+1, resp.Code)
	}
}

func TestVacationHandler_ImportICS_NoFileNoURL(t *testing.T) {
	h := NewVacationHandler(&mockVacationService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/vacations/import", jsonBody(map[string]int{"collaborator_id": 3}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/vacations/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
