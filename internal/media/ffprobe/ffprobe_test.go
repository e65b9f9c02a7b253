package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, script string) string {
	t.Helper()
	binDir := t.TempDir()
	target := filepath.Join(binDir, "ffprobe")
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return target
}

func TestDurationParsesPlainText(t *testing.T) {
	stub := writeStub(t, "#!/bin/sh\necho 123.45\n")
	cli := NewCLI(WithBinary(stub))

	got := cli.Duration(context.Background(), "/some/file.webm")
	if got != 123.45 {
		t.Fatalf("Duration = %v, want 123.45", got)
	}
}

func TestDurationTrimsWhitespace(t *testing.T) {
	stub := writeStub(t, "#!/bin/sh\nprintf '  42.0\\n\\n'\n")
	cli := NewCLI(WithBinary(stub))

	if got := cli.Duration(context.Background(), "input.mkv"); got != 42.0 {
		t.Fatalf("Duration = %v, want 42", got)
	}
}

func TestDurationReturnsZeroOnFailure(t *testing.T) {
	cases := []struct {
		name   string
		script string
	}{
		{"non-zero exit", "#!/bin/sh\nexit 1\n"},
		{"garbage output", "#!/bin/sh\necho N/A\n"},
		{"empty output", "#!/bin/sh\nexit 0\n"},
		{"negative duration", "#!/bin/sh\necho -3\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cli := NewCLI(WithBinary(writeStub(t, tc.script)))
			if got := cli.Duration(context.Background(), "input.mkv"); got != 0 {
				t.Fatalf("Duration = %v, want 0", got)
			}
		})
	}
}

func TestDurationReturnsZeroForMissingBinary(t *testing.T) {
	cli := NewCLI(WithBinary(filepath.Join(t.TempDir(), "no-such-ffprobe")))
	if got := cli.Duration(context.Background(), "input.mkv"); got != 0 {
		t.Fatalf("Duration = %v, want 0", got)
	}
}

func TestDurationReturnsZeroForEmptyPath(t *testing.T) {
	cli := NewCLI()
	if got := cli.Duration(context.Background(), "  "); got != 0 {
		t.Fatalf("Duration = %v, want 0", got)
	}
}
