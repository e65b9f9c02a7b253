package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"videoforge/internal/encoding"
	"videoforge/internal/logging"
	"videoforge/internal/services"
	"videoforge/internal/services/ytdlp"
)

const (
	toolWorker = "worker"
	toolFetch  = "yt-dlp"
	toolEncode = "ffmpeg"
)

// runDownload fetches the source into a temp artifact, resolves whatever file
// the fetch tool actually produced, transcodes it to the requested target, and
// removes the artifact on a best-effort basis.
func (m *Manager) runDownload(ctx context.Context, req Request, em *emitter) (string, error) {
	base := fmt.Sprintf("forge_%d", m.now().Unix())
	requested := filepath.Join(m.workDir, base+".mkv")
	em.debug(toolWorker, "temp base: "+requested)

	err := m.fetcher.Fetch(ctx, req.Source, requested, req.IncludeAudio(), ytdlp.Callbacks{
		Progress: func(p float64) {
			em.progress(downloadSchedule.StageName(0), downloadSchedule.Remap(0, p))
		},
		Status: em.status,
		Debug:  func(line string) { em.debug(toolFetch, line) },
	})
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "", "", err)
	}
	// The fetch tool does not always print a final 100% line, so close out
	// the stage ourselves before the encode stage starts.
	em.progress(downloadSchedule.StageName(0), downloadSchedule.Remap(0, 100))

	input, err := resolveArtifact(m.workDir, base, requested)
	if err != nil {
		return "", err
	}
	if input != requested {
		em.debug(toolWorker, "using downloaded file: "+input)
	}

	cb := encoding.Callbacks{
		Progress: func(p float64) {
			em.progress(downloadSchedule.StageName(1), downloadSchedule.Remap(1, p))
		},
		Status: em.status,
		Debug:  func(line string) { em.debug(toolEncode, line) },
	}
	switch req.Target {
	case TargetMP4:
		err = m.encoder.EncodeMP4(ctx, input, req.OutputPath, req.TrimStart, req.PadStart, cb)
	default:
		err = m.encoder.EncodeWebM(ctx, input, req.OutputPath, req.TrimStart, req.PadStart, req.KeepAudio, cb)
	}
	if err != nil {
		return "", err
	}

	// The MP4 fast path consumes the artifact by renaming it, so a missing
	// file here is fine.
	switch removeErr := os.Remove(input); {
	case removeErr == nil:
		em.debug(toolWorker, "deleted temp file: "+input)
	case os.IsNotExist(removeErr):
	default:
		em.logger.Warn("temp cleanup failed",
			logging.String("path", input),
			logging.Error(removeErr))
		em.debug(toolWorker, "failed to delete temp file: "+removeErr.Error())
	}

	em.status("Saved to: " + req.OutputPath)
	return req.OutputPath, nil
}

// runAdjust transcodes a local file. Writing back onto the input path goes
// through a timestamp-salted sibling temp file followed by an atomic replace,
// never directly onto a file currently open for reading.
func (m *Manager) runAdjust(ctx context.Context, req Request, em *emitter) (string, error) {
	input, err := filepath.Abs(req.Source)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "adjust", "resolve input path", req.Source, err)
	}
	output, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "adjust", "resolve output path", req.OutputPath, err)
	}

	em.status("Adjusting video...")
	cb := encoding.Callbacks{
		Progress: func(p float64) {
			em.progress(adjustSchedule.StageName(0), adjustSchedule.Remap(0, p))
		},
		Status: em.status,
		Debug:  func(line string) { em.debug(toolEncode, line) },
	}

	if input == output {
		tmp := siblingTempPath(input, m.now())
		if err := m.encoder.EncodeWebM(ctx, input, tmp, req.TrimStart, req.PadStart, req.KeepAudio, cb); err != nil {
			return "", err
		}
		if err := os.Rename(tmp, input); err != nil {
			return "", services.Wrap(services.ErrFilesystem, "adjust", "replace original", input, err)
		}
	} else {
		if err := m.encoder.EncodeWebM(ctx, input, output, req.TrimStart, req.PadStart, req.KeepAudio, cb); err != nil {
			return "", err
		}
	}

	em.status("Saved to: " + output)
	return output, nil
}

// resolveArtifact locates the file the fetch tool actually wrote. The exact
// requested path wins; otherwise the newest file sharing the artifact's base
// name (the tool may substitute its own extension).
func resolveArtifact(dir, base, requested string) (string, error) {
	if _, err := os.Stat(requested); err == nil {
		return requested, nil
	}
	matches, _ := filepath.Glob(filepath.Join(dir, base+".*"))
	newest := ""
	var newestMod time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = match
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", services.Wrap(services.ErrMissingArtifact, "fetch", "", "download file not found: "+requested, nil)
	}
	return newest, nil
}

// siblingTempPath builds a unique temp name next to path, keeping the replace
// rename on the same filesystem.
func siblingTempPath(path string, now time.Time) string {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, fmt.Sprintf("%s.tmp_%d.webm", stem, now.Unix()))
}
