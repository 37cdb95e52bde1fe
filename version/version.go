// Package version reports build metadata for the consentlens binary.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/consentlens/inference"
)

// Set at build time via -ldflags "-X github.com/teranos/consentlens/version.Version=...".
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash    string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime     string `json:"build_time" yaml:"build_time"`
	Version       string `json:"version" yaml:"version"`
	GoVersion     string `json:"go_version" yaml:"go_version"`
	Platform      string `json:"platform" yaml:"platform"`
	BundleFormats string `json:"bundle_formats" yaml:"bundle_formats"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:    CommitHash,
		BuildTime:     BuildTime,
		Version:       Version,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		BundleFormats: inference.SupportedFormat,
	}
}

// Release parses Version as semver. Development builds return false.
func (i Info) Release() (*semver.Version, bool) {
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, false
	}
	return v, true
}

// String returns a human-readable version string
func (i Info) String() string {
	if v, ok := i.Release(); ok {
		return fmt.Sprintf("consentlens v%s (commit %s, built %s)", v, i.Short(), i.BuildTime)
	}
	return fmt.Sprintf("consentlens %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
