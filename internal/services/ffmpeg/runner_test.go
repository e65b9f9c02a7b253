package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"videoforge/internal/services"
)

type scriptedExecutor struct {
	lines    []string
	exitCode int
	err      error

	gotBinary string
	gotArgs   []string
}

func (s *scriptedExecutor) Run(_ context.Context, binary string, args []string, onLine func(string)) (int, error) {
	s.gotBinary = binary
	s.gotArgs = args
	for _, line := range s.lines {
		onLine(line)
	}
	return s.exitCode, s.err
}

func newTestRunner(t *testing.T, exec services.Executor) *Runner {
	t.Helper()
	runner, err := NewRunner("ffmpeg", WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return runner
}

func TestRunInjectsProgressFlagsBeforeOutput(t *testing.T) {
	exec := &scriptedExecutor{}
	runner := newTestRunner(t, exec)

	args := []string{"-i", "in.mkv", "-c:v", "libvpx", "-y", "out.webm"}
	if err := runner.Run(context.Background(), args, 10, Callbacks{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	joined := strings.Join(exec.gotArgs, " ")
	want := "-i in.mkv -c:v libvpx -progress pipe:1 -nostats -hide_banner -loglevel error -y out.webm"
	if joined != want {
		t.Fatalf("args = %q, want %q", joined, want)
	}
	if exec.gotBinary != "ffmpeg" {
		t.Fatalf("binary = %q", exec.gotBinary)
	}
}

func TestRunCoalescesProgressByIntegerPercent(t *testing.T) {
	exec := &scriptedExecutor{lines: []string{
		"out_time_ms=1000000",  // 1s of 10s = 10%
		"out_time_ms=1040000",  // still 10%
		"out_time_ms=2000000",  // 20%
		"progress=continue",    // ignored
		"out_time_ms=20000000", // clamped to 100%
		"progress=end",
	}}
	runner := newTestRunner(t, exec)

	var got []float64
	cb := Callbacks{Progress: func(p float64) { got = append(got, p) }}
	if err := runner.Run(context.Background(), []string{"-i", "in", "-y", "out"}, 10, cb); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []float64{10, 20, 100, 100}
	if len(got) != len(want) {
		t.Fatalf("progress = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("progress[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunUnknownDurationStaysZeroThenForcesHundred(t *testing.T) {
	exec := &scriptedExecutor{lines: []string{
		"out_time_ms=1000000",
		"out_time_ms=2000000",
	}}
	runner := newTestRunner(t, exec)

	var got []float64
	cb := Callbacks{Progress: func(p float64) { got = append(got, p) }}
	if err := runner.Run(context.Background(), []string{"-i", "in", "-y", "out"}, 0, cb); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 0 emitted once (coalesced from -1), then the forced terminal 100.
	want := []float64{0, 100}
	if len(got) != len(want) {
		t.Fatalf("progress = %v, want %v", got, want)
	}
	if got[0] != 0 || got[1] != 100 {
		t.Fatalf("progress = %v, want %v", got, want)
	}
}

func TestRunReportsExitCodeAndDiagnostic(t *testing.T) {
	exec := &scriptedExecutor{
		lines: []string{
			"out_time_ms=500000",
			"in.mkv: Invalid data found when processing input",
		},
		exitCode: 1,
	}
	runner := newTestRunner(t, exec)

	var last float64 = -1
	err := runner.Run(context.Background(), []string{"-i", "in", "-y", "out"}, 10, Callbacks{
		Progress: func(p float64) { last = p },
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 1 {
		t.Fatalf("Code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(exitErr.Diagnostic, "Invalid data") {
		t.Fatalf("Diagnostic = %q", exitErr.Diagnostic)
	}
	if !strings.Contains(err.Error(), "code 1") {
		t.Fatalf("message should include exit code: %q", err.Error())
	}
	// Terminal 100 is emitted even for failed runs.
	if last != 100 {
		t.Fatalf("last progress = %v, want 100", last)
	}
}

func TestRunForwardsEveryLineToDebug(t *testing.T) {
	exec := &scriptedExecutor{lines: []string{
		"out_time_ms=1000000",
		"progress=continue",
		"some warning",
	}}
	runner := newTestRunner(t, exec)

	var debug []string
	cb := Callbacks{Debug: func(line string) { debug = append(debug, line) }}
	if err := runner.Run(context.Background(), []string{"-i", "in", "-y", "out"}, 10, cb); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(debug) != 3 {
		t.Fatalf("debug lines = %v", debug)
	}
}

func TestRunEmitsStatus(t *testing.T) {
	runner := newTestRunner(t, &scriptedExecutor{})
	var status []string
	cb := Callbacks{Status: func(s string) { status = append(status, s) }}
	if err := runner.Run(context.Background(), []string{"-i", "in", "-y", "out"}, 0, cb); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(status) != 1 || status[0] != "Encoding..." {
		t.Fatalf("status = %v", status)
	}
}

func TestNewRunnerRequiresBinary(t *testing.T) {
	if _, err := NewRunner("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
