// Package workflow orchestrates one media job at a time: fetch then encode
// for download jobs, encode alone for adjust jobs. A dedicated worker
// goroutine runs the external tools and posts a tagged event stream
// (Progress | Status | Debug | Done) to the controller over a channel. Every
// job ends with exactly one Done event carrying the terminal result, after
// which the channel closes.
package workflow
