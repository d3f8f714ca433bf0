package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"corrlog/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "warn", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化应成功: %v", format, err)
		}
		if l.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("format=%s 级别 warn 时不应启用 info", format)
		}
		if !l.Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("format=%s 应启用 error", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("无效级别应返回错误")
	}
}

func TestWithRunID(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("初始化应成功: %v", err)
	}
	if WithRunID(l) == l {
		t.Error("WithRunID 应返回新的日志实例")
	}
}
