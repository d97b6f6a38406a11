package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestCaptureOutput(t *testing.T) {
	stdout, stderr := CaptureOutput(t, func() {
		fmt.Fprint(os.Stdout, "to stdout")
		fmt.Fprint(os.Stderr, "to stderr")
	})

	if stdout != "to stdout" {
		t.Errorf("stdout = %q, want %q", stdout, "to stdout")
	}
	if stderr != "to stderr" {
		t.Errorf("stderr = %q, want %q", stderr, "to stderr")
	}
}

func TestCaptureOutput_LargerThanPipeBuffer(t *testing.T) {
	// Pipe buffers are 64KiB on Linux; writing more blocks unless drained
	big := strings.Repeat("x", 256*1024)

	stdout, stderr := CaptureOutput(t, func() {
		fmt.Fprint(os.Stdout, big)
		fmt.Fprint(os.Stderr, big)
	})

	if len(stdout) != len(big) {
		t.Errorf("stdout length = %d, want %d", len(stdout), len(big))
	}
	if len(stderr) != len(big) {
		t.Errorf("stderr length = %d, want %d", len(stderr), len(big))
	}
}

func TestCaptureOutput_RestoresStreams(t *testing.T) {
	oldStdout, oldStderr := os.Stdout, os.Stderr

	CaptureOutput(t, func() {})

	if os.Stdout != oldStdout || os.Stderr != oldStderr {
		t.Error("Expected stdout and stderr to be restored")
	}
}
