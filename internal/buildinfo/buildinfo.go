// Package buildinfo reports the tool version embedded at build time.
package buildinfo

import "runtime/debug"

var version = "dev"

// SetVersion lets build scripts override the reported version via
// -ldflags "-X ...buildinfo.version=v1.2.3".
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Version returns the semantic version or module version associated
// with the build.
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
