package service

import (
	"context"
	"errors"
	"testing"

	"jr-escala/backend/internal/model"
)

func createTrip(t *testing.T, env *testEnv, category model.RouteCategory) (int64, int64) {
	t.Helper()
	driver := env.addCollaborator("Carlos", model.RoleDriver, false)
	req := routeRequest("2024-05-06", "20", "Marilia")
	req.DepartureDate = day("2024-05-07")
	req.DriverID = &driver
	req.Category = string(category)

	resp, err := env.routes.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	return resp.ID, driver
}

func TestDurationService_CurrentEffectiveDuration_Planned(t *testing.T) {
	env := setupTestEnv()
	id, _ := createTrip(t, env, model.CategoryFourDays)

	days, err := env.duration.CurrentEffectiveDuration(context.Background(), id)
	if err != nil {
		t.Fatalf("CurrentEffectiveDuration 应成功: %v", err)
	}
	if days != 3 {
		t.Errorf("无调整时应为计划天数 3，实际=%d", days)
	}
}

func TestDurationService_RegisterAdjustment_LastWins(t *testing.T) {
	env := setupTestEnv()
	id, _ := createTrip(t, env, model.CategoryTwoDays)

	for _, n := range []int{4, 2, 5} {
		if _, err := env.duration.RegisterAdjustment(context.Background(), id, n, ""); err != nil {
			t.Fatalf("RegisterAdjustment(%d) 应成功: %v", n, err)
		}
	}

	days, _ := env.duration.CurrentEffectiveDuration(context.Background(), id)
	if days != 5 {
		t.Errorf("有效天数应为最后一次调整 5，实际=%d", days)
	}

	list, err := env.duration.ListAdjustments(context.Background(), id)
	if err != nil {
		t.Fatalf("ListAdjustments 应成功: %v", err)
	}
	want := [][2]int{{1, 4}, {4, 2}, {2, 5}}
	if len(list.Adjustments) != len(want) {
		t.Fatalf("期望 %d 条调整，实际 %d", len(want), len(list.Adjustments))
	}
	for i, adj := range list.Adjustments {
		if adj.PreviousDays != want[i][0] || adj.NewDays != want[i][1] {
			t.Errorf("第 %d 条调整期望 %v，实际 %d→%d", i, want[i], adj.PreviousDays, adj.NewDays)
		}
	}
	if list.Summary != "原 2 天，延长 +3 至 5 天" {
		t.Errorf("摘要不符: %s", list.Summary)
	}

	blocks, _ := env.repos.blocks.ListByAssignment(context.Background(), id)
	if len(blocks) != 1 || !blocks[0].EndDate.Equal(day("2024-05-12")) {
		t.Errorf("封锁结束日应为出发日+5 = 05-12，实际 %+v", blocks)
	}
}

func TestDurationService_ReleaseNow(t *testing.T) {
	env := setupTestEnv()
	id, driver := createTrip(t, env, model.CategoryFiveDays)

	adj, err := env.duration.ReleaseNow(context.Background(), id)
	if err != nil {
		t.Fatalf("ReleaseNow 应成功: %v", err)
	}
	if adj.PreviousDays != 4 || adj.NewDays != 0 {
		t.Errorf("期望 4→0，实际 %d→%d", adj.PreviousDays, adj.NewDays)
	}
	if blocks, _ := env.repos.blocks.ListByAssignment(context.Background(), id); len(blocks) != 0 {
		t.Error("立即释放后封锁应被删除")
	}
	if env.check(t, "2024-05-08", nil).PersonUnavailable(driver) {
		t.Error("立即释放后行程期间司机应可用")
	}
	if !env.check(t, "2024-05-06", nil).PersonUnavailable(driver) {
		t.Error("登记日仍占用司机")
	}
}

func TestDurationService_RegisterAdjustment_InvalidDays(t *testing.T) {
	env := setupTestEnv()
	id, _ := createTrip(t, env, model.CategoryTwoDays)

	for _, n := range []int{-2, 61} {
		if _, err := env.duration.RegisterAdjustment(context.Background(), id, n, ""); !errors.Is(err, ErrInvalidTripDays) {
			t.Errorf("天数 %d 期望 ErrInvalidTripDays，实际: %v", n, err)
		}
	}
}

func TestDurationService_NotFound(t *testing.T) {
	env := setupTestEnv()
	if _, err := env.duration.GetDuration(context.Background(), 7); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
	if _, err := env.duration.RegisterAdjustment(context.Background(), 7, 1, ""); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

func TestSummarizeAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		planned int
		list    []model.DurationAdjustment
		want    string
	}{
		{"无调整", 2, nil, "计划 2 天"},
		{"延长", 1, []model.DurationAdjustment{{NewDays: 3}}, "原 1 天，延长 +2 至 3 天"},
		{"提前返回", 3, []model.DurationAdjustment{{NewDays: 1}}, "原 3 天，提前至 1 天返回"},
		{"保持", 2, []model.DurationAdjustment{{NewDays: 2}}, "已调整，保持 2 天"},
		{"以最后一次为准", 2, []model.DurationAdjustment{{NewDays: 4}, {NewDays: 0}}, "原 4 天，提前至 0 天返回"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summarizeAdjustments(tt.planned, tt.list); got != tt.want {
				t.Errorf("期望 %q，实际 %q", tt.want, got)
			}
		})
	}
}
