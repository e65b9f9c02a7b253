package encoding

import (
	"fmt"
	"strconv"
)

const (
	webmVideoCodec       = "libvpx"
	webmVideoBitrate     = "6000k"
	webmKeyframeInterval = "30"
	webmSpeedTradeoff    = "4"
	webmAudioCodec       = "libvorbis"

	mp4VideoCodec = "libx264"
	mp4Preset     = "veryfast"
	mp4AudioCodec = "aac"

	pixelFormat  = "yuv420p"
	audioBitrate = "192k"
)

// webmArgs builds the VP8/Vorbis command line. Audio is dropped entirely when
// keepAudio is false.
func webmArgs(input, output string, trimStart, padStart float64, keepAudio bool) []string {
	args := make([]string, 0, 24)
	if trimStart > 0 {
		args = append(args, "-ss", formatSeconds(trimStart))
	}
	args = append(args, "-i", input)
	args = append(args,
		"-c:v", webmVideoCodec,
		"-b:v", webmVideoBitrate,
		"-g", webmKeyframeInterval,
		"-pix_fmt", pixelFormat,
		"-cpu-used", webmSpeedTradeoff,
	)
	if keepAudio {
		args = append(args, "-c:a", webmAudioCodec, "-b:a", audioBitrate)
	} else {
		args = append(args, "-an")
	}
	if padStart > 0 {
		args = append(args, "-vf", videoPadFilter(padStart))
		if keepAudio {
			args = append(args, "-af", audioPadFilter(padStart))
		}
	}
	return append(args, "-y", output)
}

// mp4Args builds the H.264/AAC command line. Audio is always kept; faststart
// relocates the index for progressive playback.
func mp4Args(input, output string, trimStart, padStart float64) []string {
	args := make([]string, 0, 24)
	if trimStart > 0 {
		args = append(args, "-ss", formatSeconds(trimStart))
	}
	args = append(args, "-i", input)
	if padStart > 0 {
		args = append(args, "-vf", videoPadFilter(padStart))
		args = append(args, "-af", audioPadFilter(padStart))
	}
	args = append(args,
		"-c:v", mp4VideoCodec,
		"-preset", mp4Preset,
		"-pix_fmt", pixelFormat,
		"-c:a", mp4AudioCodec,
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
	)
	return append(args, "-y", output)
}

func videoPadFilter(padStart float64) string {
	return fmt.Sprintf("tpad=start_duration=%s:color=black", formatSeconds(padStart))
}

// audioPadFilter delays both stereo channels by the same amount so the audio
// lead-in stays aligned with the black video lead-in.
func audioPadFilter(padStart float64) string {
	delayMS := int(padStart * 1000)
	return fmt.Sprintf("adelay=%d|%d", delayMS, delayMS)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
