// Package services holds the shared error taxonomy for pipeline stages.
//
// Stage implementations tag failures with one of the exported sentinel errors
// so the workflow manager can classify a terminal result without inspecting
// error strings. Tool clients live in subpackages (ffmpeg, ytdlp).
package services
