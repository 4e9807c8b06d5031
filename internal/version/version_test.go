package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPrettyWithoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	tests := []struct{ in, want string }{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Pretty(); got != tt.want {
			t.Errorf("Pretty() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVersionCanBeOverridden(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "1.2.3"
	GitCommit = "abc123"
	if Version != "1.2.3" || GitCommit != "abc123" {
		t.Fatal("override failed")
	}
}
