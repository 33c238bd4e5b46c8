package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("默认配置应加载成功: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("期望默认限流窗口 1m，实际=%s", cfg.RateLimit.Window)
	}
	if cfg.Dispatch.Location().String() != "America/Sao_Paulo" {
		t.Errorf("期望默认时区 America/Sao_Paulo，实际=%s", cfg.Dispatch.Location())
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("显式指定的配置文件不存在时应报错")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9090\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("JR_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望端口 9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("环境变量应覆盖配置文件，实际=%s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Port: 8080},
		Dispatch: DispatchConfig{Timezone: "UTC"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	bad := cfg
	bad.Server.Port = 70000
	if bad.Validate() == nil {
		t.Error("非法端口应报错")
	}

	bad = cfg
	bad.Dispatch.Timezone = "Mars/Olympus"
	if bad.Validate() == nil {
		t.Error("非法时区应报错")
	}

	bad = cfg
	bad.RateLimit = RateLimitConfig{Enabled: true, Limit: 0, Window: time.Minute}
	if bad.Validate() == nil {
		t.Error("限流数值非法应报错")
	}

	bad = cfg
	bad.Metrics = MetricsConfig{Enabled: true, Path: "metrics"}
	if bad.Validate() == nil {
		t.Error("metrics.path 非法应报错")
	}
}
