package database

import (
	"context"
	_ "embed"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "corrlog/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Tables 应用拥有的全部数据表
var Tables = []string{"duty_dus", "correspondence"}

// EnsureSchema 建表（若不存在），可在每次启动时重复调用
// 不维护版本表：结构变更需人工处理
func EnsureSchema(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	stmts := splitStatements(schemaSQL)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("创建数据表失败", zap.Error(err))
		return apperrors.Storage("schema.ensure", err)
	}

	logger.Debug("数据表已就绪", zap.Strings("tables", Tables))
	return nil
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
