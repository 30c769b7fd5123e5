package transcode

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/services/ffmpeg"
)

// AdjustAudioLevel adjusts the audio level of the input file by the given adjustment in dB
// without changing the dynamic range. This function does not protect against clipping!
func AdjustAudioLevel(input common.AudioInput, adjustment float64, cb ffmpeg.ProgressCallback) (*common.AudioResult, error) {
	base := input.Path.Base()
	ext := filepath.Ext(base)
	outputPath := input.DestinationPath.Append(base[:len(base)-len(ext)] + "_normalized" + ext)

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", input.Path.Local(),
		"-af", fmt.Sprintf("volume=%.2fdB", adjustment),
		"-y", outputPath.Local(),
	}

	info, err := ffmpeg.GetStreamInfo(input.Path.Local())
	if err != nil {
		return nil, err
	}

	_, err = ffmpeg.Do(params, info, cb)
	if err != nil {
		return nil, err
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &common.AudioResult{
		OutputPath: outputPath,
	}, nil
}
