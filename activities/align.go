package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/align"
	"github.com/reelkit/media-assembly/services/ffmpeg"
)

type AlignNarrationParams struct {
	NarrationPath paths.Path
	ScriptText    string
	Language      string
	OutputFolder  paths.Path
}

type AlignNarrationResult struct {
	Transcript common.Transcript
	// Coverage is the share of script words the alignment covered, callers
	// decide whether a partial alignment is good enough.
	Coverage float64
}

// AlignNarration runs forced alignment against the speech service and
// validates the word document it produced.
func AlignNarration(ctx context.Context, input AlignNarrationParams) (*AlignNarrationResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "AlignNarration")
	log.Info("Starting AlignNarrationActivity")

	job, err := align.DoAlign(ctx,
		input.NarrationPath.Local(),
		input.ScriptText,
		input.OutputFolder.Local(),
		input.Language,
		func() {
			activity.RecordHeartbeat(ctx, "AlignNarration")
		},
	)
	if err != nil {
		return nil, err
	}

	transcript, err := align.ReadAlignmentFile(job.Result)
	if err != nil {
		return nil, err
	}

	err = align.ValidateWords(transcript.Words)
	if err != nil {
		return nil, err
	}

	return &AlignNarrationResult{
		Transcript: *transcript,
		Coverage:   align.CoverageShare(transcript.Words, input.ScriptText),
	}, nil
}

type UniformTranscriptParams struct {
	NarrationPath  paths.Path
	ScriptText     string
	WordsPerMinute float64
}

// UniformTranscript distributes the script words evenly over the narration
// duration. It is the timing fallback when alignment is unavailable or came
// back unusable.
func UniformTranscript(ctx context.Context, input UniformTranscriptParams) (*common.Transcript, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "UniformTranscript")
	log.Info("Starting UniformTranscriptActivity")

	info, err := ffmpeg.GetStreamInfo(input.NarrationPath.Local())
	if err != nil {
		return nil, err
	}

	words := align.UniformWords(input.ScriptText, info.TotalSeconds, input.WordsPerMinute)
	return &common.Transcript{
		Words: words,
	}, nil
}
