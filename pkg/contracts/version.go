package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the metadash release
	Version = "0.3.0"

	// AppName is used in logs, telemetry and the page footer
	AppName = "metadash"
)

// Set with -ldflags "-X metadash/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the build information of the running binary
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersionString returns "metadash v<version>"
func GetVersionString() string {
	return fmt.Sprintf("%s v%s", AppName, Version)
}
