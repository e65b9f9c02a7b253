// Package encoding builds encode-tool command lines for the two output
// targets and drives them through the process runner.
//
// The WebM target produces VP8 video with optional Vorbis audio and supports
// fully silent output. The MP4 target produces H.264 with AAC audio and has a
// pass-through path that renames the input into place when no trim or pad is
// requested. Both targets share the trim and lead-in padding rules: a seek
// offset ahead of the input for trims, a black tpad video filter plus a
// matching adelay audio filter for pads.
package encoding
