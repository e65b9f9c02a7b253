package encoding

import (
	"strings"
	"testing"
)

func TestWebMArgsWithAudio(t *testing.T) {
	got := strings.Join(webmArgs("in.mkv", "out.webm", 0, 0, true), " ")
	want := "-i in.mkv -c:v libvpx -b:v 6000k -g 30 -pix_fmt yuv420p -cpu-used 4 " +
		"-c:a libvorbis -b:a 192k -y out.webm"
	if got != want {
		t.Fatalf("args = %q, want %q", got, want)
	}
}

func TestWebMArgsSilent(t *testing.T) {
	got := strings.Join(webmArgs("in.mkv", "out.webm", 0, 0, false), " ")
	if !strings.Contains(got, " -an ") {
		t.Fatalf("expected -an in %q", got)
	}
	if strings.Contains(got, "libvorbis") {
		t.Fatalf("unexpected audio codec in %q", got)
	}
}

func TestWebMArgsTrimPrecedesInput(t *testing.T) {
	got := strings.Join(webmArgs("in.mkv", "out.webm", 1.5, 0, true), " ")
	if !strings.HasPrefix(got, "-ss 1.5 -i in.mkv ") {
		t.Fatalf("seek must come before input: %q", got)
	}
}

func TestWebMArgsPadFilters(t *testing.T) {
	got := strings.Join(webmArgs("in.mkv", "out.webm", 0, 2, true), " ")
	if !strings.Contains(got, "-vf tpad=start_duration=2:color=black") {
		t.Fatalf("missing video pad filter: %q", got)
	}
	if !strings.Contains(got, "-af adelay=2000|2000") {
		t.Fatalf("missing audio pad filter: %q", got)
	}
}

func TestWebMArgsPadSilentSkipsAudioFilter(t *testing.T) {
	got := strings.Join(webmArgs("in.mkv", "out.webm", 0, 2, false), " ")
	if strings.Contains(got, "adelay") {
		t.Fatalf("silent output must not carry an audio filter: %q", got)
	}
	if !strings.Contains(got, "tpad=start_duration=2") {
		t.Fatalf("missing video pad filter: %q", got)
	}
}

func TestMP4Args(t *testing.T) {
	got := strings.Join(mp4Args("in.mkv", "out.mp4", 0, 0.5), " ")
	want := "-i in.mkv -vf tpad=start_duration=0.5:color=black -af adelay=500|500 " +
		"-c:v libx264 -preset veryfast -pix_fmt yuv420p -c:a aac -b:a 192k " +
		"-movflags +faststart -y out.mp4"
	if got != want {
		t.Fatalf("args = %q, want %q", got, want)
	}
}

func TestMP4ArgsTrim(t *testing.T) {
	got := strings.Join(mp4Args("in.mkv", "out.mp4", 3, 0), " ")
	if !strings.HasPrefix(got, "-ss 3 -i in.mkv ") {
		t.Fatalf("seek must come before input: %q", got)
	}
	if strings.Contains(got, "tpad") || strings.Contains(got, "adelay") {
		t.Fatalf("trim-only run must not carry pad filters: %q", got)
	}
}
