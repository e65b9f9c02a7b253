// Package ytdlp runs the external fetch tool and translates its line
// protocol into percentage and status callbacks. Format selection is fixed
// per job: best video capped at the configured height, with best audio
// merged in when the job needs it.
package ytdlp
