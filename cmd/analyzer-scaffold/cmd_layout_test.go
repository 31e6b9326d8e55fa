package main

import (
	"strings"
	"testing"
)

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
	}{
		{"default tree", []string{"layout"}, "└── tests/", 0},
		{"yaml", []string{"layout", "--format", "yaml"}, "directories:", 0},
		{"unknown format", []string{"layout", "-o", "xml"}, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("execute(%v) exit code = %d, want %d\nstderr:\n%s", tt.args, code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("execute(%v) output missing %q:\n%s", tt.args, tt.want, stdout)
			}
		})
	}
}
