package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "hello.py")
	touch(t, src)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "help", args: []string{"--help"}, wantCode: ExitSuccess, wantStdout: "Usage: litdoc"},
		{name: "version", args: []string{"--version"}, wantCode: ExitSuccess, wantStdout: "litdoc dev"},
		{name: "unknown flag", args: []string{"--nope"}, wantCode: ExitUsage, wantStderr: "unknown flag"},
		{name: "no input", wantCode: ExitIO, wantStderr: "no input specified"},
		{name: "missing file", args: []string{src + ".missing"}, wantCode: ExitIO},
		{name: "convert", args: []string{"--no-style", src}, wantCode: ExitSuccess, wantStdout: "Created "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := run(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestVerboseRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-v", "a.py"}, true},
		{[]string{"a.py", "--verbose"}, true},
		{[]string{"a.py"}, false},
		{[]string{"--", "-v"}, false},
	}
	for _, tt := range tests {
		if got := verboseRequested(tt.args); got != tt.want {
			t.Errorf("verboseRequested(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
