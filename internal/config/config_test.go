package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IBRAPRO_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.DBPath != "./data/ibrapro.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("IBRAPRO_DB_PATH", "/tmp/custom.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
