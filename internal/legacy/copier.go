package legacy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DefaultBatchSize 每批 COPY 的行数
const DefaultBatchSize = 500

// TableReport 单表导入统计
type TableReport struct {
	Table    string
	Read     int
	Inserted int64
	Skipped  int
}

// Options 导入选项
type Options struct {
	// Replace 导入前清空目标表并重置序列
	Replace   bool
	BatchSize int
}

// Copier 把旧库数据 COPY 进 PostgreSQL，保留原主键
type Copier struct {
	conn   *pgx.Conn
	logger *zap.Logger
}

// NewCopier 创建 Copier
func NewCopier(conn *pgx.Conn, logger *zap.Logger) *Copier {
	return &Copier{conn: conn, logger: logger}
}

// Run 依次导入全部表，最后把各表序列推进到最大 id
func (c *Copier) Run(ctx context.Context, src *Reader, opts Options) ([]TableReport, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	tables := Tables()

	if opts.Replace {
		if err := c.truncate(ctx, tables); err != nil {
			return nil, err
		}
	}

	st := NewState()
	reports := make([]TableReport, 0, len(tables))
	for _, t := range tables {
		report, err := c.copyTable(ctx, src, st, t, opts.BatchSize)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	if err := c.resetSequences(ctx, tables); err != nil {
		return reports, err
	}
	return reports, nil
}

func (c *Copier) copyTable(ctx context.Context, src *Reader, st *State, t Table, batchSize int) (TableReport, error) {
	report := TableReport{Table: t.Target}

	exists, err := src.TableExists(ctx, t.Source)
	if err != nil {
		return report, err
	}
	if !exists {
		c.logger.Warn("旧库缺少该表，跳过", zap.String("table", t.Source))
		return report, nil
	}

	rows, err := src.Fetch(ctx, t.Source)
	if err != nil {
		return report, err
	}
	report.Read = len(rows)

	batch := make([][]any, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.copyBatch(ctx, t, batch)
		if err != nil {
			return err
		}
		report.Inserted += n
		batch = batch[:0]
		return nil
	}

	for _, row := range rows {
		values, ok, err := t.Convert(st, row)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Skipped++
			continue
		}
		batch = append(batch, values)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := flush(); err != nil {
		return report, err
	}

	c.logger.Info("表导入完成",
		zap.String("table", t.Target),
		zap.Int("read", report.Read),
		zap.Int64("inserted", report.Inserted),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// copyBatch 先 COPY 进临时表，再 INSERT ... ON CONFLICT DO NOTHING，
// 目标库已有相同主键或唯一键的行保持不变
func (c *Copier) copyBatch(ctx context.Context, t Table, batch [][]any) (int64, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stage := "stage_" + t.Target
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP", stage, t.Target,
	)); err != nil {
		return 0, fmt.Errorf("创建临时表 %s 失败: %w", stage, err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{stage}, t.Columns, pgx.CopyFromRows(batch)); err != nil {
		return 0, fmt.Errorf("COPY %s 失败: %w", t.Target, err)
	}

	cols := strings.Join(t.Columns, ", ")
	tag, err := tx.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT DO NOTHING", t.Target, cols, cols, stage,
	))
	if err != nil {
		return 0, fmt.Errorf("写入 %s 失败: %w", t.Target, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *Copier) truncate(ctx context.Context, tables []Table) error {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Target)
	}
	_, err := c.conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(names, ", ")))
	if err != nil {
		return fmt.Errorf("清空目标表失败: %w", err)
	}
	c.logger.Info("目标表已清空", zap.Strings("tables", names))
	return nil
}

func (c *Copier) resetSequences(ctx context.Context, tables []Table) error {
	for _, t := range tables {
		_, err := c.conn.Exec(ctx, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			t.Target, t.Target,
		))
		if err != nil {
			return fmt.Errorf("重置 %s 序列失败: %w", t.Target, err)
		}
	}
	return nil
}
