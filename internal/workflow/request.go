package workflow

import (
	"fmt"
	"path/filepath"
	"strings"

	"videoforge/internal/encoding"
	"videoforge/internal/services"
)

// Mode selects the job pipeline.
type Mode int

const (
	// ModeDownload fetches a source URL and transcodes the artifact.
	ModeDownload Mode = iota
	// ModeAdjust transcodes an existing local file.
	ModeAdjust
)

func (m Mode) String() string {
	switch m {
	case ModeDownload:
		return "download"
	case ModeAdjust:
		return "adjust"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Target selects the output container and codec pair for download jobs.
type Target int

const (
	// TargetWebM produces VP8 video with optional Vorbis audio.
	TargetWebM Target = iota
	// TargetMP4 produces H.264 with AAC audio, always kept.
	TargetMP4
)

func (t Target) String() string {
	switch t {
	case TargetWebM:
		return "webm"
	case TargetMP4:
		return "mp4"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ParseTarget maps a user-facing format name to a Target.
func ParseTarget(value string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "webm":
		return TargetWebM, nil
	case "mp4":
		return TargetMP4, nil
	default:
		return TargetWebM, services.Wrap(services.ErrValidation, "", "", fmt.Sprintf("unknown target format %q", value), nil)
	}
}

// Request describes one job. Build it once and submit it once.
type Request struct {
	Mode       Mode
	Source     string
	OutputPath string
	TrimStart  float64
	PadStart   float64
	KeepAudio  bool
	Target     Target
}

// Normalize trims surrounding whitespace and, for download jobs, appends the
// target's extension when the output path has none.
func (r *Request) Normalize() {
	r.Source = strings.TrimSpace(r.Source)
	r.OutputPath = strings.TrimSpace(r.OutputPath)
	if r.Mode == ModeDownload && r.OutputPath != "" && filepath.Ext(r.OutputPath) == "" {
		r.OutputPath += "." + r.Target.String()
	}
}

// Validate rejects unusable requests before any process spawns.
func (r Request) Validate() error {
	switch r.Mode {
	case ModeDownload, ModeAdjust:
	default:
		return services.Wrap(services.ErrValidation, "", "", "unknown job mode", nil)
	}
	if strings.TrimSpace(r.Source) == "" {
		return services.Wrap(services.ErrValidation, "", "", "source required", nil)
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "", "", "output path required", nil)
	}
	if err := encoding.ValidateTrimPad(r.TrimStart, r.PadStart); err != nil {
		return err
	}
	if r.Mode == ModeDownload {
		switch r.Target {
		case TargetWebM, TargetMP4:
		default:
			return services.Wrap(services.ErrValidation, "", "", "unknown target format", nil)
		}
	}
	return nil
}

// IncludeAudio reports whether the fetch stage must keep an audio stream. MP4
// output always carries audio even when the caller did not ask to keep it.
func (r Request) IncludeAudio() bool {
	return r.KeepAudio || r.Target == TargetMP4
}
