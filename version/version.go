// Package version reports the fetchkit release a binary was built with.
package version

import (
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of the fetchkit module.
const ModulePath = "github.com/kbukum/fetchkit"

// Version is the release set at build time:
//
//	go build -ldflags "-X github.com/kbukum/fetchkit/version.Version=v1.2.0"
//
// When left at "dev" the version is read from the build info of the
// binary that imports fetchkit.
var Version = "dev"

var (
	once     sync.Once
	resolved string
)

// Get returns the fetchkit version, or "dev" for an unversioned build.
func Get() string {
	if Version != "dev" {
		return Version
	}
	once.Do(func() {
		resolved = fromBuildInfo(debug.ReadBuildInfo)
	})
	return resolved
}

// UserAgent returns "fetchkit/<version>".
func UserAgent() string {
	return "fetchkit/" + Get()
}

func fromBuildInfo(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok {
		return "dev"
	}
	if info.Main.Path == ModulePath {
		return moduleVersion(&info.Main)
	}
	for _, dep := range info.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil {
			return moduleVersion(dep.Replace)
		}
		return moduleVersion(dep)
	}
	return "dev"
}

func moduleVersion(m *debug.Module) string {
	if m.Version == "" || m.Version == "(devel)" {
		return "dev"
	}
	return m.Version
}
