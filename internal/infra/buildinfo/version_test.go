package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString(t *testing.T) {
	s := String()

	if !strings.HasPrefix(s, Version+" (") {
		t.Errorf("String() = %q, want version prefix", s)
	}
	if !strings.HasSuffix(s, "built at "+BuildTime) {
		t.Errorf("String() = %q, want build time suffix", s)
	}
}

func TestCommit_ExplicitWins(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "abc1234"
	if got := Get().Commit; got != "abc1234" {
		t.Errorf("Commit = %q, want abc1234", got)
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.0"
	if got := UserAgent("wildwave-cli"); got != "wildwave-cli/v1.2.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
