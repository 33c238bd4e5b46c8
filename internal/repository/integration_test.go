//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jr-escala/backend/config"
	"jr-escala/backend/internal/model"
	"jr-escala/backend/pkg/database"
	"jr-escala/backend/pkg/dateutil"
)

// startPostgres 启动一次性 PostgreSQL 容器并执行迁移
func startPostgres(t *testing.T) *Repository {
	t.Helper()
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "jr_escala",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("启动 PostgreSQL 容器失败: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("关闭容器失败: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("获取容器地址失败: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("获取映射端口失败: %v", err)
	}
	portNum, _ := strconv.Atoi(port.Port())

	cfg := &config.DatabaseConfig{
		Host: host, Port: portNum, Name: "jr_escala", User: "postgres", Password: "postgres",
		SSLMode: "disable", Timezone: "UTC",
	}
	logger := zap.NewNop()
	db, err := database.NewDB(cfg, "error", logger)
	if err != nil {
		t.Fatalf("连接数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return NewRepository(db)
}

func TestIntegration_BlockingLedger(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	driver := &model.Collaborator{Name: "João", Role: model.RoleDriver, Active: true}
	if err := repo.Collaborator.Create(ctx, driver); err != nil {
		t.Fatalf("创建人员失败: %v", err)
	}

	assignment := &model.RouteAssignment{
		Date:          dateutil.MustParse("2024-05-06"),
		DepartureDate: dateutil.MustParse("2024-05-07"),
		RouteNumber:   "12",
		Destination:   "Campinas",
		DriverID:      &driver.ID,
		Category:      model.CategoryThreeDays,
	}
	if err := repo.RouteAssignment.Create(ctx, assignment); err != nil {
		t.Fatalf("创建派车失败: %v", err)
	}

	// 同日同线路违反唯一约束
	dup := *assignment
	dup.ID = 0
	if err := repo.RouteAssignment.Create(ctx, &dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 ErrDuplicatedKey，实际: %v", err)
	}

	err := repo.Transaction(ctx, func(tx *Repository) error {
		return tx.BlockingEntry.CreateBatch(ctx, []model.BlockingEntry{
			{
				CollaboratorID:    driver.ID,
				StartDate:         dateutil.MustParse("2024-05-06"),
				EndDate:           dateutil.MustParse("2024-05-09"),
				Reason:            "Rota 12 - Campinas",
				RouteAssignmentID: &assignment.ID,
			},
			{
				CollaboratorID: driver.ID,
				StartDate:      dateutil.MustParse("2024-05-01"),
				EndDate:        dateutil.MustParse("2024-05-03"),
				Reason:         "Manual",
			},
		})
	})
	if err != nil {
		t.Fatalf("写入封锁失败: %v", err)
	}

	n, err := repo.BlockingEntry.UpdateEndByAssignment(ctx, assignment.ID, dateutil.MustParse("2024-05-12"))
	if err != nil || n != 1 {
		t.Fatalf("更新封锁结束日: n=%d err=%v", n, err)
	}
	owned, _ := repo.BlockingEntry.ListByAssignment(ctx, assignment.ID)
	if len(owned) != 1 || owned[0].EndDate.String() != "2024-05-12" {
		t.Errorf("期望结束日 2024-05-12，实际 %+v", owned)
	}

	covering, err := repo.BlockingEntry.ListStandaloneCovering(ctx, dateutil.MustParse("2024-05-02"))
	if err != nil || len(covering) != 1 {
		t.Errorf("期望 1 条独立封锁覆盖 05-02，实际 %d (%v)", len(covering), err)
	}
	covering, _ = repo.BlockingEntry.ListStandaloneCovering(ctx, dateutil.MustParse("2024-05-03"))
	if len(covering) != 0 {
		t.Errorf("结束日不占用，实际 %d 条", len(covering))
	}

	deleted, err := repo.BlockingEntry.DeleteExpired(ctx, dateutil.MustParse("2024-05-10"))
	if err != nil || deleted != 1 {
		t.Errorf("期望清理 1 条过期封锁，实际 %d (%v)", deleted, err)
	}

	// 删除派车级联删除其封锁
	if err := repo.RouteAssignment.Delete(ctx, assignment.ID); err != nil {
		t.Fatalf("删除派车失败: %v", err)
	}
	left, _ := repo.BlockingEntry.List(ctx, BlockingEntryFilter{})
	if len(left) != 0 {
		t.Errorf("期望封锁全部删除，剩余 %d 条", len(left))
	}
}

func TestIntegration_DurationAdjustments_LatestUpTo(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	newAssignment := func(date, number string) *model.RouteAssignment {
		a := &model.RouteAssignment{
			Date:        dateutil.MustParse(date),
			RouteNumber: number,
			Destination: "Campinas",
			Category:    model.CategoryTwoDays,
		}
		if err := repo.RouteAssignment.Create(ctx, a); err != nil {
			t.Fatalf("创建派车失败: %v", err)
		}
		return a
	}
	a1 := newAssignment("2024-05-06", "1")
	a2 := newAssignment("2024-05-07", "2")
	a3 := newAssignment("2024-05-10", "3")

	adjust := func(a *model.RouteAssignment, previous, days int) {
		adj := &model.DurationAdjustment{RouteAssignmentID: a.ID, PreviousDays: previous, NewDays: days}
		if err := repo.DurationAdjustment.Create(ctx, adj); err != nil {
			t.Fatalf("写入调整失败: %v", err)
		}
	}
	adjust(a1, 1, 2)
	adjust(a1, 2, 4)
	adjust(a2, 1, -1)
	adjust(a3, 1, 3)

	latest, err := repo.DurationAdjustment.LatestUpTo(ctx, dateutil.MustParse("2024-05-07"))
	if err != nil {
		t.Fatalf("LatestUpTo 失败: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("期望 2 个派车有调整，实际 %d", len(latest))
	}
	if latest[a1.ID].NewDays != 4 || latest[a2.ID].NewDays != -1 {
		t.Errorf("最新调整不符: %+v", latest)
	}
	if _, ok := latest[a3.ID]; ok {
		t.Error("登记日晚于目标日的派车不应出现")
	}

	// 超过单语句绑定参数上限的 ID 列表分批查询
	ids := make([]int64, 70000)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	all, err := repo.DurationAdjustment.ListByAssignments(ctx, ids)
	if err != nil {
		t.Fatalf("ListByAssignments 失败: %v", err)
	}
	if len(all[a1.ID]) != 2 || len(all[a2.ID]) != 1 || len(all[a3.ID]) != 1 {
		t.Errorf("调整日志数量不符: %+v", all)
	}
	people, err := repo.Collaborator.ListByIDs(ctx, ids)
	if err != nil || len(people) != 0 {
		t.Errorf("期望 0 个人员，实际 %d (%v)", len(people), err)
	}
}

func TestIntegration_Transaction_Rollback(t *testing.T) {
	repo := startPostgres(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.Truck.Create(ctx, &model.Truck{Plate: "ABC1D23", Active: true}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("期望返回 fn 的错误，实际: %v", err)
	}

	trucks, err := repo.Truck.List(ctx, false)
	if err != nil {
		t.Fatalf("列出车辆失败: %v", err)
	}
	if len(trucks) != 0 {
		t.Errorf("事务回滚后不应有车辆，实际 %d", len(trucks))
	}
}
