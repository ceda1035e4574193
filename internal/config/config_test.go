package config

import (
	"strings"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if !strings.HasSuffix(s.DBPath, "sessions.db") {
		t.Errorf("DBPath = %q, want a sessions.db path", s.DBPath)
	}
	if s.CacheSize != defaultCacheSize {
		t.Errorf("CacheSize = %d, want %d", s.CacheSize, defaultCacheSize)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvCacheSize, "")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.CacheSize != defaultCacheSize {
		t.Errorf("CacheSize = %d, want default %d", s.CacheSize, defaultCacheSize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/custom.db")
	t.Setenv(EnvCacheSize, "8")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", s.DBPath)
	}
	if s.CacheSize != 8 {
		t.Errorf("CacheSize = %d, want 8", s.CacheSize)
	}
}

func TestLoad_BadCacheSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "eight"},
		{"zero", "0"},
		{"negative", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvCacheSize, tt.value)
			if _, err := Load(); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}
