// Command videoforge downloads and transcodes media files through external
// fetch and encode tools, reporting unified job progress on the terminal.
package main
