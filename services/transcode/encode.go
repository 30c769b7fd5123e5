package transcode

import (
	"fmt"
	"os"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ffmpeg"
	"github.com/reelkit/media-assembly/utils"
)

// FinalEncode renders the composed timeline to the delivery target. The
// source is fitted into the target frame with letterboxing, never a
// stretch; when the padding the fit would need exceeds the configured
// tolerance the encode refuses up front. Output goes through a temporary
// file and renames into place only on success, so a failed encode leaves
// nothing behind.
func FinalEncode(input common.EncodeInput, cb ffmpeg.ProgressCallback) (*common.EncodeResult, error) {
	info, err := ffmpeg.GetStreamInfo(input.VideoPath.Local())
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}
	if !info.HasVideo {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(fmt.Sprintf("%s has no video stream", input.VideoPath.Base())))
	}

	source := utils.Resolution{Width: info.Width, Height: info.Height}
	target := utils.Resolution{Width: input.Width, Height: input.Height}

	paddedShare, ok := letterboxWithinTolerance(source, target, input.LetterboxTolerance)
	if !ok {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(fmt.Sprintf(
			"source %dx%d needs %.0f%% padding in %dx%d, tolerance is %.0f%%",
			source.Width, source.Height, paddedShare*100, target.Width, target.Height, input.LetterboxTolerance*100)))
	}

	err = os.MkdirAll(input.OutputPath.Dir().Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	tempPath := input.OutputPath.Dir().Append(".encoding_" + input.OutputPath.Base())

	_, err = ffmpeg.Do(encodeParams(input, tempPath), info, cb)
	if err != nil {
		// no partial output on failure
		_ = os.Remove(tempPath.Local())
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	err = os.Rename(tempPath.Local(), input.OutputPath.Local())
	if err != nil {
		_ = os.Remove(tempPath.Local())
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(input.OutputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	outInfo, err := ffmpeg.GetStreamInfo(input.OutputPath.Local())
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}
	stat, err := os.Stat(input.OutputPath.Local())
	if err != nil {
		return nil, err
	}

	return &common.EncodeResult{
		OutputPath:      input.OutputPath,
		DurationSeconds: outInfo.TotalSeconds,
		FileSizeBytes:   stat.Size(),
	}, nil
}

// encodeParams builds the encoder invocation. Streams are mapped
// explicitly: the subtitle stream the compositor muxed into the source in
// soft mode must survive into the output, so subtitles ride along whenever
// the source carries them.
func encodeParams(input common.EncodeInput, outFile paths.Path) []string {
	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", input.VideoPath.Local(),
	}
	hasAudio := input.AudioPath.Path != ""
	if hasAudio {
		params = append(params, "-i", input.AudioPath.Local())
	}

	params = append(params,
		"-map", "0:v",
		"-map", "0:s?",
	)
	if hasAudio {
		params = append(params, "-map", "1:a")
	}

	params = append(params,
		"-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			input.Width, input.Height, input.Width, input.Height),
		"-c:v", "libx264",
		"-preset", "slow",
		"-b:v", input.VideoBitrate,
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", input.FrameRate),
		"-c:s", "mov_text",
	)
	if hasAudio {
		params = append(params,
			"-c:a", "aac",
			"-b:a", input.AudioBitrate,
			"-shortest",
		)
	}
	return append(params,
		"-movflags", "+faststart",
		"-y", outFile.Local(),
	)
}

// letterboxWithinTolerance reports the padding share a letterboxed fit
// would need and whether it stays inside the tolerance. Fitting never
// stretches, so exceeding the tolerance is a refusal, not a fallback.
func letterboxWithinTolerance(source, target utils.Resolution, tolerance float64) (float64, bool) {
	share := source.PaddedShareIn(target)
	return share, share <= tolerance
}
