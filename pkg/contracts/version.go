// Package contracts holds the types shared by the binaries and the HTTP API.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	Version = "1.0.0"

	// DataFormatVersion tracks the expected dataset column layout
	DataFormatVersion = "v1"

	// APIVersion tracks the /api routes
	APIVersion = "v1"
)

// Stamped by build.go through -ldflags -X
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
	APIVersion   string `json:"api_version"`
}

// Build returns the build information of the running binary
func Build() BuildInfo {
	return BuildInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
		APIVersion:   APIVersion,
	}
}

// String renders b on one line, as printed by -version
func (b BuildInfo) String() string {
	return fmt.Sprintf("procurepulse v%s (built: %s, commit: %s, go: %s, os: %s/%s)",
		b.Version, b.BuildTime, b.GitCommit, b.GoVersion, b.OS, b.Architecture)
}
