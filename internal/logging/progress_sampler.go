package logging

import (
	"math"
	"strings"
)

// ProgressSampler rate-limits progress log lines. External tools report
// percentages far more often than a log file wants to see them, so the
// sampler only passes a value through when it enters a new step of the
// configured width, or when the reported stage changes. A terminal 100 is
// always its own step so the final value is never swallowed.
type ProgressSampler struct {
	stepWidth float64
	stage     string
	lastStep  int
}

// NewProgressSampler returns a sampler with the given step width in percent.
// Widths of zero or below fall back to 5.
func NewProgressSampler(stepWidth float64) *ProgressSampler {
	if stepWidth <= 0 {
		stepWidth = 5
	}
	return &ProgressSampler{stepWidth: stepWidth, lastStep: -1}
}

// ShouldLog reports whether this progress value is worth a log line.
// Negative percentages mean the tool could not estimate progress; they log
// once per stage and are then suppressed. A nil sampler passes everything.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	emit := false
	if name := strings.TrimSpace(stage); name != "" && name != s.stage {
		s.stage = name
		s.lastStep = -1
		emit = true
	}
	if percent < 0 {
		return emit
	}
	if step := s.step(percent); step > s.lastStep {
		s.lastStep = step
		emit = true
	}
	return emit
}

func (s *ProgressSampler) step(percent float64) int {
	return int(math.Min(percent, 100) / s.stepWidth)
}

// Reset prepares the sampler for the next job.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.stage = ""
	s.lastStep = -1
}
