package encoding

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"videoforge/internal/services"
	"videoforge/internal/services/ffmpeg"
)

type fakeRunner struct {
	gotArgs     []string
	gotExpected float64
	calls       int
	err         error
}

func (f *fakeRunner) Run(_ context.Context, args []string, expected float64, cb ffmpeg.Callbacks) error {
	f.calls++
	f.gotArgs = args
	f.gotExpected = expected
	if cb.Progress != nil {
		cb.Progress(100)
	}
	return f.err
}

type fakeProber struct {
	duration float64
	calls    int
}

func (f *fakeProber) Duration(context.Context, string) float64 {
	f.calls++
	return f.duration
}

func newTestEncoder(t *testing.T, prober Prober, runner Runner) *Encoder {
	t.Helper()
	enc, err := New(prober, runner)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return enc
}

func TestValidateTrimPad(t *testing.T) {
	if err := ValidateTrimPad(1, 2); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("trim+pad err = %v", err)
	}
	if err := ValidateTrimPad(-1, 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("negative trim err = %v", err)
	}
	if err := ValidateTrimPad(1, 0); err != nil {
		t.Fatalf("trim only: %v", err)
	}
	if err := ValidateTrimPad(0, 2); err != nil {
		t.Fatalf("pad only: %v", err)
	}
}

func TestEncodeWebMRejectsTrimPlusPadBeforeSpawning(t *testing.T) {
	runner := &fakeRunner{}
	prober := &fakeProber{duration: 60}
	enc := newTestEncoder(t, prober, runner)

	err := enc.EncodeWebM(context.Background(), "in.mkv", "out.webm", 1, 2, true, Callbacks{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if runner.calls != 0 || prober.calls != 0 {
		t.Fatalf("nothing should run on validation failure (runner=%d probe=%d)", runner.calls, prober.calls)
	}
}

func TestEncodeWebMExpectedDuration(t *testing.T) {
	runner := &fakeRunner{}
	enc := newTestEncoder(t, &fakeProber{duration: 60}, runner)

	if err := enc.EncodeWebM(context.Background(), "in.mkv", "out.webm", 10, 0, true, Callbacks{}); err != nil {
		t.Fatalf("EncodeWebM: %v", err)
	}
	if runner.gotExpected != 50 {
		t.Fatalf("expected duration = %v, want 50", runner.gotExpected)
	}
}

func TestEncodeWebMUnknownDuration(t *testing.T) {
	runner := &fakeRunner{}
	enc := newTestEncoder(t, &fakeProber{duration: 0}, runner)

	var last float64
	cb := Callbacks{Progress: func(p float64) { last = p }}
	if err := enc.EncodeWebM(context.Background(), "in.mkv", "out.webm", 0, 0, false, cb); err != nil {
		t.Fatalf("EncodeWebM: %v", err)
	}
	if runner.gotExpected != 0 {
		t.Fatalf("expected duration = %v, want 0", runner.gotExpected)
	}
	if last != 100 {
		t.Fatalf("last progress = %v, want 100", last)
	}
}

func TestEncodeWebMShortInputFloor(t *testing.T) {
	runner := &fakeRunner{}
	enc := newTestEncoder(t, &fakeProber{duration: 5}, runner)

	if err := enc.EncodeWebM(context.Background(), "in.mkv", "out.webm", 10, 0, true, Callbacks{}); err != nil {
		t.Fatalf("EncodeWebM: %v", err)
	}
	// Over-trimmed input floors at 0.1 rather than going non-positive.
	if runner.gotExpected != 0.1 {
		t.Fatalf("expected duration = %v, want 0.1", runner.gotExpected)
	}
}

func TestEncodeWebMWrapsExitError(t *testing.T) {
	runner := &fakeRunner{err: &ffmpeg.ExitError{Code: 1, Diagnostic: "bad input"}}
	enc := newTestEncoder(t, nil, runner)

	err := enc.EncodeWebM(context.Background(), "in.mkv", "out.webm", 0, 0, true, Callbacks{})
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
	var exitErr *ffmpeg.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("exit error lost: %v", err)
	}
}

func TestEncodeMP4FastPathRenamesWithoutSpawning(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(input, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	runner := &fakeRunner{}
	prober := &fakeProber{duration: 60}
	enc := newTestEncoder(t, prober, runner)

	var last float64
	var status []string
	cb := Callbacks{
		Progress: func(p float64) { last = p },
		Status:   func(s string) { status = append(status, s) },
	}
	if err := enc.EncodeMP4(context.Background(), input, output, 0, 0, cb); err != nil {
		t.Fatalf("EncodeMP4: %v", err)
	}

	if runner.calls != 0 || prober.calls != 0 {
		t.Fatalf("fast path must not probe or spawn (runner=%d probe=%d)", runner.calls, prober.calls)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Fatalf("input should be gone: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil || string(data) != "payload" {
		t.Fatalf("output = %q, %v", data, err)
	}
	if last != 100 {
		t.Fatalf("progress = %v, want 100", last)
	}
	if len(status) != 1 || status[0] != "Saved to: "+output {
		t.Fatalf("status = %v", status)
	}
}

func TestEncodeMP4FastPathRenameFailure(t *testing.T) {
	dir := t.TempDir()
	enc := newTestEncoder(t, nil, &fakeRunner{})

	err := enc.EncodeMP4(context.Background(), filepath.Join(dir, "missing.mp4"), filepath.Join(dir, "out.mp4"), 0, 0, Callbacks{})
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("err = %v, want ErrFilesystem", err)
	}
}

func TestEncodeMP4WithPadSpawns(t *testing.T) {
	runner := &fakeRunner{}
	enc := newTestEncoder(t, &fakeProber{duration: 30}, runner)

	if err := enc.EncodeMP4(context.Background(), "in.mkv", "out.mp4", 0, 2, Callbacks{}); err != nil {
		t.Fatalf("EncodeMP4: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d", runner.calls)
	}
	if runner.gotExpected != 32 {
		t.Fatalf("expected duration = %v, want 32", runner.gotExpected)
	}
}

func TestNewRequiresRunner(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
