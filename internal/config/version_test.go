package config

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name       string
		envVersion string
		want       string
	}{
		{
			name:       "version from environment variable",
			envVersion: "1.2.3",
			want:       "1.2.3",
		},
		{
			name:       "version from environment with build number",
			envVersion: "2.0.0-beta.1",
			want:       "2.0.0-beta.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_VERSION", tt.envVersion)
			if got := GetVersion(); got != tt.want {
				t.Errorf("Expected version '%s', got '%s'", tt.want, got)
			}
		})
	}

	t.Run("fallback without env var", func(t *testing.T) {
		t.Setenv("APP_VERSION", "")
		if got := GetVersion(); len(got) < 3 {
			t.Errorf("Expected a version string, got '%s'", got)
		}
	})
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name string
		read func() (*debug.BuildInfo, bool)
		want string
	}{
		{
			name: "no build info",
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			want: "0.1.0",
		},
		{
			name: "devel build",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
			},
			want: "0.1.0",
		},
		{
			name: "tagged module",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "v1.3.0"}}, true
			},
			want: "1.3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildVersion(tt.read); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}
