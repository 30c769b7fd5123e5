package transcode

import (
	"fmt"
	"os"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ffmpeg"
	"github.com/reelkit/media-assembly/services/motion"
)

type RenderKeyframeClipInput struct {
	Transition      motion.PlannedTransition
	Width           int
	Height          int
	FrameRate       int
	DestinationPath paths.Path
}

type RenderKeyframeClipResult struct {
	OutputPath paths.Path
	FrameCount int
}

// RenderKeyframeClip renders one planned transition into a silent clip with
// the exact frame count the plan assigned. The still is upscaled before
// zoompan so sub-pixel crop positions don't jitter, then sampled back down
// to the target resolution.
func RenderKeyframeClip(input RenderKeyframeClipInput, cb ffmpeg.ProgressCallback) (*RenderKeyframeClipResult, error) {
	t := input.Transition
	if t.FrameCount < 1 {
		return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(fmt.Sprintf("transition %d has no frames", t.Index)))
	}

	outputPath := input.DestinationPath.Append(fmt.Sprintf("clip_%03d.mp4", t.Index))

	filter := fmt.Sprintf("scale=%d:-2,%s,format=yuv420p",
		input.Width*4,
		zoompanFilter(t.Curve, t.FrameCount, input.Width, input.Height, input.FrameRate),
	)

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-loop", "1",
		"-i", t.FromImage.Local(),
		"-vf", filter,
		"-frames:v", fmt.Sprintf("%d", t.FrameCount),
		"-r", fmt.Sprintf("%d", input.FrameRate),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "18",
		"-an",
		"-y", outputPath.Local(),
	}

	_, err := ffmpeg.Do(params, ffmpeg.StreamInfo{
		TotalFrames:  t.FrameCount,
		TotalSeconds: t.DurationSeconds,
	}, cb)
	if err != nil {
		return nil, merry.Wrap(ErrAssembly, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &RenderKeyframeClipResult{
		OutputPath: outputPath,
		FrameCount: t.FrameCount,
	}, nil
}

// zoompanFilter translates a motion curve into the zoompan expressions.
// The crop window position interpolates inside the pannable range
// (iw-iw/zoom), so any curve with positions in [0,1] stays within the
// source image regardless of zoom.
func zoompanFilter(c motion.Curve, frames, width, height, fps int) string {
	progress := "0"
	if frames > 1 {
		progress = fmt.Sprintf("on/%d", frames-1)
	}

	z := fmt.Sprintf("%.4f+(%.4f-%.4f)*%s", c.StartScale, c.EndScale, c.StartScale, progress)
	x := fmt.Sprintf("(iw-iw/zoom)*(%.4f+(%.4f-%.4f)*%s)", c.StartX, c.EndX, c.StartX, progress)
	y := fmt.Sprintf("(ih-ih/zoom)*(%.4f+(%.4f-%.4f)*%s)", c.StartY, c.EndY, c.StartY, progress)

	return fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=%d:s=%dx%d:fps=%d",
		z, x, y, frames, width, height, fps)
}
