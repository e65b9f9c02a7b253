// Package ffmpeg runs the external encode tool and translates its
// machine-progress output into percentage callbacks.
//
// The runner owns the progress-flag injection, the out_time_ms line protocol,
// integer-percent coalescing, and the guarantee that every run ends with a
// 100% progress emission regardless of how accurate the duration estimate
// was. Command construction lives with the callers (internal/encoding).
package ffmpeg
