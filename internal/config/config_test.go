package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Database.Host == "" || cfg.Database.Port == "" {
		t.Errorf("database defaults missing: %+v", cfg.Database)
	}
	if cfg.LogLevel == "" {
		t.Error("log level default missing")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USERNAME", "reader")
	t.Setenv("DB_NAME", "quran")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != "5433" {
		t.Errorf("database host/port = %s:%s", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.User != "reader" || cfg.Database.Database != "quran" {
		t.Errorf("database user/name = %s/%s", cfg.Database.User, cfg.Database.Database)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %s; want debug", cfg.LogLevel)
	}
}
