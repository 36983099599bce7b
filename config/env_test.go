package config_test

import (
	"testing"

	"github.com/uyumazulvi/eticaret-stok-yonetim/config"
)

func TestLogMongoDefaults(t *testing.T) {
	if got := config.LogMongoURI(); got != "" {
		t.Errorf("LogMongoURI default = %q, want empty (sink disabled)", got)
	}
	if got := config.LogMongoDatabase(); got != "stok_logs" {
		t.Errorf("LogMongoDatabase default = %q, want stok_logs", got)
	}
	if got := config.LogMongoCollection(); got != "app_logs" {
		t.Errorf("LogMongoCollection default = %q, want app_logs", got)
	}
}

func TestDatabaseDriverFallsBackOnUnknown(t *testing.T) {
	if got := config.DatabaseDriver(); got != "sqlite" {
		t.Errorf("DatabaseDriver default = %q, want sqlite", got)
	}
}
