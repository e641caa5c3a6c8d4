package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, settings ...debug.BuildSetting) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{GoVersion: "go1.26.0", Settings: settings}, true
	}
	t.Cleanup(func() { readBuildInfo = orig })
}

func setVars(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	v, c, b := Version, Commit, BuildTime
	Version, Commit, BuildTime = version, commit, buildTime
	t.Cleanup(func() { Version, Commit, BuildTime = v, c, b })
}

func TestGetFromVCS(t *testing.T) {
	setVars(t, "dev", "", "")
	stubBuildInfo(t,
		debug.BuildSetting{Key: "vcs.revision", Value: "3f2a9c1d0e4b"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	)

	info := Get()
	if info.Commit != "3f2a9c1" || !info.Dirty || info.BuildTime != "2026-10-01T12:00:00Z" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.GoVersion != "go1.26.0" || info.Release {
		t.Errorf("unexpected info: %+v", info)
	}
	if got := info.String(); got != "dev (3f2a9c1, dirty)" {
		t.Errorf("String() = %q", got)
	}
}

func TestGetLdflagsWin(t *testing.T) {
	setVars(t, "1.4.0", "abcdef0123", "2026-09-30")
	stubBuildInfo(t,
		debug.BuildSetting{Key: "vcs.revision", Value: "ffffffffff"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	)

	info := Get()
	if info.Commit != "abcdef0" || info.BuildTime != "2026-09-30" || !info.Release {
		t.Errorf("unexpected info: %+v", info)
	}
	if got := info.String(); got != "1.4.0 (abcdef0)" {
		t.Errorf("String() = %q", got)
	}
}

func TestStringPlain(t *testing.T) {
	if got := (Info{Version: "1.0.0"}).String(); got != "1.0.0" {
		t.Errorf("String() = %q", got)
	}
}
