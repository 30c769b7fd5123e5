package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/services/transcode"
)

func RenderKeyframeClipActivity(ctx context.Context, input transcode.RenderKeyframeClipInput) (*transcode.RenderKeyframeClipResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "RenderKeyframeClip")
	log.Info("Starting RenderKeyframeClipActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.RenderKeyframeClip(input, progressCallback)
}

func AssembleShotsActivity(ctx context.Context, input common.AssembleInput) (*common.AssembleResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "AssembleShots")
	log.Info("Starting AssembleShotsActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.AssembleShots(input, progressCallback)
}

func ComposeSubtitlesActivity(ctx context.Context, input common.SubtitleInput) (*common.SubtitleResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "ComposeSubtitles")
	log.Info("Starting ComposeSubtitlesActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.ComposeSubtitles(input, progressCallback)
}

func FinalEncodeActivity(ctx context.Context, input common.EncodeInput) (*common.EncodeResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "FinalEncode")
	log.Info("Starting FinalEncodeActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.FinalEncode(input, progressCallback)
}
