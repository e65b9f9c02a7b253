package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"videoforge/internal/config"
)

// Requirement defines an external dependency videoforge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the configured toolchain.
func Requirements(cfg *config.Config) []Requirement {
	var tools config.Tools
	if cfg != nil {
		tools = cfg.Tools
	}
	return []Requirement{
		{Name: "Fetch tool", Command: tools.FetchBinary, Description: "Downloads source media (yt-dlp)"},
		{Name: "Encode tool", Command: tools.EncodeBinary, Description: "Transcodes media (ffmpeg)"},
		{Name: "Probe tool", Command: tools.ProbeBinary, Description: "Reads media duration (ffprobe)", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
