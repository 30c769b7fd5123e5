package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ffmpeg"
)

type AnalyzeFileParams struct {
	FilePath paths.Path
}

func AnalyzeFile(ctx context.Context, input AnalyzeFileParams) (*ffmpeg.StreamInfo, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting AnalyzeFileActivity")

	info, err := ffmpeg.GetStreamInfo(input.FilePath.Local())
	if err != nil {
		return nil, err
	}
	return &info, nil
}
