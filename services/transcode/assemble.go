package transcode

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/services/ffmpeg"
)

// AssembleShots concatenates the per-shot clips in shot order, inserting
// the configured transition at every boundary. Hard cuts go through the
// concat filter, cross-fades through an xfade chain with running offsets.
// The result's duration is the clip duration sum minus the transition
// overlaps.
func AssembleShots(input common.AssembleInput, cb ffmpeg.ProgressCallback) (*common.AssembleResult, error) {
	if len(input.Clips) == 0 {
		return nil, merry.Wrap(ErrAssembly, merry.AppendMessage("no clips to assemble"))
	}
	if len(input.Shots) > 0 && len(input.Shots) != len(input.Clips) {
		return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(
			fmt.Sprintf("%d clips for %d shots", len(input.Clips), len(input.Shots))))
	}

	durations := make([]float64, len(input.Clips))
	for i, clip := range input.Clips {
		info, err := ffmpeg.GetStreamInfo(clip.Local())
		if err != nil {
			return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(fmt.Sprintf("clip %s unreadable: %s", clip.Base(), err.Error())))
		}
		if !info.HasVideo || info.TotalSeconds <= 0 {
			return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(fmt.Sprintf("clip %s has no video", clip.Base())))
		}
		durations[i] = info.TotalSeconds
	}

	transitions := effectiveTransitions(durations, input.TransitionType, input.TransitionDuration)

	var filter string
	if input.TransitionType == common.TransitionCut || input.TransitionDuration <= 0 || len(input.Clips) == 1 {
		filter = concatFilter(len(input.Clips))
	} else {
		filter = xfadeFilter(durations, transitions, xfadeName(input.TransitionType))
	}

	totalDuration := 0.0
	for _, d := range durations {
		totalDuration += d
	}
	for _, t := range transitions {
		totalDuration -= t
	}

	outputPath := input.DestinationPath.Append(filepath.Clean(input.Title) + "_assembled.mp4")

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
	}
	for _, clip := range input.Clips {
		params = append(params, "-i", clip.Local())
	}
	params = append(params,
		"-filter_complex", filter,
		"-map", "[v]",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "18",
		"-r", fmt.Sprintf("%d", input.FrameRate),
		"-pix_fmt", "yuv420p",
		"-y", outputPath.Local(),
	)

	_, err := ffmpeg.Do(params, ffmpeg.StreamInfo{
		TotalSeconds: totalDuration,
	}, cb)
	if err != nil {
		return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &common.AssembleResult{
		OutputPath:      outputPath,
		DurationSeconds: totalDuration,
	}, nil
}

// effectiveTransitions returns the overlap applied at each of the n-1
// boundaries. A configured duration longer than either adjacent clip
// clamps to half the shorter clip's length.
func effectiveTransitions(durations []float64, transitionType common.TransitionType, duration float64) []float64 {
	if len(durations) < 2 {
		return nil
	}

	out := make([]float64, len(durations)-1)
	if transitionType == common.TransitionCut || duration <= 0 {
		return out
	}

	for i := range out {
		shorter := math.Min(durations[i], durations[i+1])
		td := duration
		if td > shorter {
			td = shorter / 2
		}
		out[i] = td
	}
	return out
}

func xfadeName(t common.TransitionType) string {
	if t == common.TransitionFade {
		return "fadeblack"
	}
	return "fade"
}

func concatFilter(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("[%d:v]", i))
	}
	sb.WriteString(fmt.Sprintf("concat=n=%d:v=1:a=0[v]", n))
	return sb.String()
}

// xfadeFilter chains one xfade per boundary. Each fade starts at the
// running output duration minus its overlap, which keeps every later
// offset aware of the time the earlier fades absorbed.
func xfadeFilter(durations, transitions []float64, transition string) string {
	var parts []string
	previous := "[0:v]"
	offset := durations[0]

	for i := 1; i < len(durations); i++ {
		td := transitions[i-1]
		offset -= td

		out := fmt.Sprintf("[x%d]", i)
		if i == len(durations)-1 {
			out = "[v]"
		}
		parts = append(parts, fmt.Sprintf("%s[%d:v]xfade=transition=%s:duration=%.3f:offset=%.3f%s",
			previous, i, transition, td, offset, out))

		previous = out
		offset += durations[i]
	}

	return strings.Join(parts, ";")
}
