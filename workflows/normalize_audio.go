package workflows

import (
	"math"

	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	wfutils "github.com/reelkit/media-assembly/utils/workflows"
)

type NormalizeAudioParams struct {
	FilePath              string
	TargetLUFS            float64
	PerformOutputAnalysis bool
}

type NormalizeAudioResult struct {
	FilePath       string
	InputAnalysis  *activities.AnalyzeEBUR128Result
	OutputAnalysis *activities.AnalyzeEBUR128Result
}

// NormalizeAudioLevelWorkflow measures a file against the target loudness
// and writes an adjusted copy when the gap is audible. Useful on its own
// for narration stems that arrive too hot or too quiet.
func NormalizeAudioLevelWorkflow(
	ctx workflow.Context,
	params NormalizeAudioParams,
) (*NormalizeAudioResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting NormalizeAudio workflow")

	ctx = workflow.WithActivityOptions(ctx, wfutils.GetDefaultActivityOptions())
	out := &NormalizeAudioResult{}

	filePath, err := paths.Parse(params.FilePath)
	if err != nil {
		return nil, err
	}

	r128Result, err := wfutils.Execute(ctx, activities.AnalyzeEBUR128Activity, activities.AnalyzeEBUR128Params{
		FilePath:       filePath.Local(),
		TargetLoudness: params.TargetLUFS,
	}).Result(ctx)
	if err != nil {
		return nil, err
	}

	out.InputAnalysis = r128Result
	outputFolder, err := wfutils.GetWorkflowTempFolder(ctx)
	if err != nil {
		return nil, err
	}

	// Don't adjust if the suggested adjustment is less than 0.01 Db
	if math.Abs(r128Result.SuggestedAdjustment) > minLoudnessAdjustmentDb {
		adjustResult, err := wfutils.Execute(ctx, activities.AdjustAudioLevelActivity, activities.AdjustAudioLevelParams{
			Input: common.AudioInput{
				Path:            filePath,
				DestinationPath: outputFolder,
			},
			Adjustment: r128Result.SuggestedAdjustment,
		}).Result(ctx)
		if err != nil {
			return nil, err
		}
		filePath = adjustResult.OutputPath
	}

	out.FilePath = filePath.Local()

	if params.PerformOutputAnalysis {
		r128Result, err := wfutils.Execute(ctx, activities.AnalyzeEBUR128Activity, activities.AnalyzeEBUR128Params{
			FilePath:       filePath.Local(),
			TargetLoudness: params.TargetLUFS,
		}).Result(ctx)
		if err != nil {
			return nil, err
		}

		out.OutputAnalysis = r128Result
	}

	return out, err
}
