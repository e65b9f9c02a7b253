// Package ffprobe queries media duration through the external probe tool.
//
// The probe is strictly best-effort: any failure (missing binary, missing
// file, unparseable output) yields a duration of 0, which downstream code
// treats as "unknown" and compensates for by forcing 100% at stage end.
package ffprobe
