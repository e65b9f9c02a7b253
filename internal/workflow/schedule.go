package workflow

// StageWeight names one pipeline stage and its share of whole-job progress.
type StageWeight struct {
	Name   string
	Weight float64
}

// Schedule remaps stage-local percentages into the unified 0-100 range using
// explicit per-stage weights.
type Schedule struct {
	names   []string
	offsets []float64
	spans   []float64
}

// NewSchedule builds a schedule from ordered stage weights. Non-positive
// weights contribute a zero-width span.
func NewSchedule(stages ...StageWeight) Schedule {
	total := 0.0
	for _, stage := range stages {
		if stage.Weight > 0 {
			total += stage.Weight
		}
	}
	s := Schedule{
		names:   make([]string, len(stages)),
		offsets: make([]float64, len(stages)),
		spans:   make([]float64, len(stages)),
	}
	offset := 0.0
	for i, stage := range stages {
		s.names[i] = stage.Name
		s.offsets[i] = offset
		if total > 0 && stage.Weight > 0 {
			s.spans[i] = stage.Weight / total * 100
		}
		offset += s.spans[i]
	}
	return s
}

// Remap converts a stage-local percent (0-100) into whole-job percent.
func (s Schedule) Remap(stage int, percent float64) float64 {
	if stage < 0 || stage >= len(s.spans) {
		return 0
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return s.offsets[stage] + percent/100*s.spans[stage]
}

// StageName returns the stage's name, or "" when out of range.
func (s Schedule) StageName(stage int) string {
	if stage < 0 || stage >= len(s.names) {
		return ""
	}
	return s.names[stage]
}

var (
	downloadSchedule = NewSchedule(
		StageWeight{Name: "fetch", Weight: 1},
		StageWeight{Name: "encode", Weight: 1},
	)
	adjustSchedule = NewSchedule(
		StageWeight{Name: "encode", Weight: 1},
	)
)
