package configs

import (
	"testing"

	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("KURSUSKU_TEST_KEY", "nilai")

	if got := GetEnv("KURSUSKU_TEST_KEY"); got != "nilai" {
		t.Errorf("Expected %q, got %q", "nilai", got)
	}

	// key tidak ada, tanpa default → kosong
	if got := GetEnv("KURSUSKU_TEST_MISSING"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}

	// key tidak ada, dengan default → default
	if got := GetEnv("KURSUSKU_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected %q, got %q", "fallback", got)
	}

	// key ada tapi kosong → nilai kosong menang atas default
	t.Setenv("KURSUSKU_TEST_EMPTY", "")
	if got := GetEnv("KURSUSKU_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("Expected empty string for set-but-empty key, got %q", got)
	}
}

func TestGormLoggerLogMode(t *testing.T) {
	l := &GormLogger{LogLevel: gormLogger.Info}

	out := l.LogMode(gormLogger.Silent)
	if out == nil {
		t.Fatalf("Expected logger instance, got nil")
	}
	if l.LogLevel != gormLogger.Silent {
		t.Errorf("Expected LogLevel to be Silent, got %v", l.LogLevel)
	}
}
