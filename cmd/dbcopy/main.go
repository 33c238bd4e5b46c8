// dbcopy 把旧版 SQLite 数据库复制到 PostgreSQL，保留原主键
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jr-escala/backend/config"
	"jr-escala/backend/internal/legacy"
	"jr-escala/backend/pkg/database"
	applogger "jr-escala/backend/pkg/logger"
)

var (
	sqlitePath  string
	databaseURL string
	replace     bool
	batchSize   int
	migrate     bool
)

var rootCmd = &cobra.Command{
	Use:   "dbcopy",
	Short: "Copy the legacy SQLite database into PostgreSQL",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "legacy SQLite file")
	rootCmd.Flags().StringVar(&databaseURL, "database-url", "", "target PostgreSQL URL (defaults to DATABASE_URL or config)")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "truncate target tables before copying")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", legacy.DefaultBatchSize, "rows per COPY batch")
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations before copying")
	_ = rootCmd.MarkFlagRequired("sqlite")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if _, err := os.Stat(sqlitePath); err != nil {
		return fmt.Errorf("sqlite file: %w", err)
	}
	url := resolveURL(cfg)

	if migrate {
		if err := runMigrations(url, logger); err != nil {
			return err
		}
	}

	src, err := legacy.OpenReader(sqlitePath)
	if err != nil {
		return err
	}
	defer src.Close()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(context.Background())

	reports, err := legacy.NewCopier(conn, logger).Run(ctx, src, legacy.Options{
		Replace:   replace,
		BatchSize: batchSize,
	})
	for _, r := range reports {
		cmd.Printf("%-22s read=%-6d inserted=%-6d skipped=%d\n", r.Table, r.Read, r.Inserted, r.Skipped)
	}
	if err != nil {
		return err
	}
	logger.Info("迁移完成", zap.String("sqlite", sqlitePath), zap.Bool("replace", replace))
	return nil
}

// resolveURL 优先级：--database-url > 环境变量 > 配置文件
func resolveURL(cfg *config.Config) string {
	if strings.TrimSpace(databaseURL) != "" {
		return databaseURL
	}
	for _, key := range []string{"DATABASE_URL", "JR_ESCALA_DATABASE_URL"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return cfg.Database.URL()
}

func runMigrations(url string, logger *zap.Logger) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return database.RunMigrations(db, logger)
}
