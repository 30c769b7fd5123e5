package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/captions"
)

type SegmentCaptionsParams struct {
	Words       []common.WordTimestamp
	Constraints common.CaptionConstraints
}

func SegmentCaptionsActivity(_ context.Context, input SegmentCaptionsParams) ([]common.CaptionSegment, error) {
	return captions.Segment(input.Words, input.Constraints)
}

type WriteCaptionFilesParams struct {
	Segments        []common.CaptionSegment
	DestinationPath paths.Path
	BaseName        string
}

type WriteCaptionFilesResult struct {
	SRTPath paths.Path
	VTTPath paths.Path
}

// WriteCaptionFiles writes the segments as both SRT and VTT next to each
// other, the SRT feeds the burn-in and the VTT ships with the delivery.
func WriteCaptionFiles(ctx context.Context, input WriteCaptionFilesParams) (*WriteCaptionFilesResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "WriteCaptionFiles")
	log.Info("Starting WriteCaptionFilesActivity")

	srtPath := input.DestinationPath.Append(input.BaseName + ".srt")
	err := captions.WriteSRT(srtPath, input.Segments)
	if err != nil {
		return nil, err
	}

	vttPath := input.DestinationPath.Append(input.BaseName + ".vtt")
	err = captions.WriteVTT(vttPath, input.Segments)
	if err != nil {
		return nil, err
	}

	return &WriteCaptionFilesResult{
		SRTPath: srtPath,
		VTTPath: vttPath,
	}, nil
}
