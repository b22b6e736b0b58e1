package config

import (
	"os"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns version from environment variable or the module build info
func GetVersion() string {
	// set by CI/CD
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}
	return buildVersion(debug.ReadBuildInfo)
}

func buildVersion(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok || info == nil {
		return fallbackVersion
	}
	v := strings.TrimPrefix(info.Main.Version, "v")
	if v == "" || v == "(devel)" {
		return fallbackVersion
	}
	return v
}
