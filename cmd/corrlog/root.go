package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"corrlog/config"
	"corrlog/internal/report"
	"corrlog/internal/repository"
	"corrlog/internal/service"
	"corrlog/pkg/database"
	apperrors "corrlog/pkg/errors"
	applogger "corrlog/pkg/logger"
	"corrlog/pkg/response"
)

// 不需要打开数据库的命令在 Annotations 中标记
const annotationNoDB = "corrlog/no-db"

// app 一次命令调用的依赖集合，由 PersistentPreRunE 装配
type app struct {
	configPath string
	envFile    string
	format     string

	in     io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	svc    *service.Service
	out    *response.Writer
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrlog",
		Short: "通信枢纽值班负载登记",
		Long: `corrlog 登记通信枢纽值班员及其每班收发的通信量，
按日期区间检索、按 (类型, 紧急程度) 汇总，并导出 PDF 报表。

数据保存在单个 SQLite 文件中（默认 ./correspondence.db），
可通过 --config 指定配置文件，或使用 CORRLOG_ 前缀的环境变量覆盖。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "配置文件路径（默认查找 ./config/corrlog.yaml 与 ./corrlog.yaml）")
	flags.StringVar(&a.envFile, "env-file", ".env", "启动前加载的环境变量文件，不存在时忽略")
	flags.StringVar(&a.format, "format", string(response.FormatHuman), "输出格式：human 或 json")

	cmd.AddCommand(
		newOfficerCmd(a),
		newRecordCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newCatalogCmd(a),
	)
	return cmd
}

// setup 装配配置 → 日志 → 数据库 → Repository → Service
func (a *app) setup(cmd *cobra.Command) error {
	format, err := response.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.out = response.NewWriter(a.stdout, a.stderr, format)

	// 1. 加载 .env（可选）
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("加载环境变量文件失败: %w", err)
		}
	}

	// 2. 加载配置
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	a.cfg = cfg

	// 3. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	a.logger = applogger.WithRunID(logger).With(zap.String("command", cmd.CommandPath()))

	if cmd.Annotations[annotationNoDB] == "true" {
		return nil
	}

	// 4. 打开数据库并确保表结构存在
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, a.logger)
	if err != nil {
		return apperrors.Storage("db.open", err)
	}
	a.db = db
	if err := database.EnsureSchema(cmd.Context(), db, a.logger); err != nil {
		return err
	}

	// 5. 依赖注入: Repository → Service
	renderer, err := report.NewRenderer(cfg.Report, a.logger)
	if err != nil {
		return err
	}
	a.svc = service.NewService(cfg, repository.NewRepository(db), renderer, a.logger)

	a.logger.Debug("初始化完成", zap.String("db", cfg.Database.Path))
	return nil
}

// writer 返回输出器；装配前出错时退回 human 格式
func (a *app) writer() *response.Writer {
	if a.out == nil {
		return response.NewWriter(a.stdout, a.stderr, response.FormatHuman)
	}
	return a.out
}

// close 释放数据库连接并刷新日志
func (a *app) close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil && a.logger != nil {
			a.logger.Warn("关闭数据库失败", zap.Error(err))
		}
		a.db = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
