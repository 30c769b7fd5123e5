package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/services/ffmpeg"
	"github.com/reelkit/media-assembly/services/transcode"
)

func MixAudioActivity(ctx context.Context, input common.MixInput) (*common.MixResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "MixAudio")
	log.Info("Starting MixAudioActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.MixAudio(input, progressCallback)
}

type AnalyzeEBUR128Params struct {
	FilePath       string
	TargetLoudness float64
}

type AnalyzeEBUR128Result struct {
	IntegratedLoudness  float64
	TruePeak            float64
	LoudnessRange       float64
	SuggestedAdjustment float64
}

func AnalyzeEBUR128Activity(ctx context.Context, input AnalyzeEBUR128Params) (*AnalyzeEBUR128Result, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "AnalyzeEBUR128")
	log.Info("Starting AnalyzeEBUR128Activity")

	stop := simpleHeartBeater(ctx)
	defer close(stop)

	analyzeResult, err := ffmpeg.AnalyzeEBUR128(input.FilePath)
	if err != nil {
		return nil, err
	}

	out := &AnalyzeEBUR128Result{
		IntegratedLoudness:  analyzeResult.InputIntegratedLoudnes,
		TruePeak:            analyzeResult.InputTruePeak,
		LoudnessRange:       analyzeResult.InputLoudnesRange,
		SuggestedAdjustment: 0.0,
	}

	// The suggested adjustmnet attempts to hit the target loudness
	// but never suggests above -0.9 dBTP. This means it may suggest a
	// negative adjustment if the input according to TP mesaurements is already too loud,
	// event if the integrated loudness is below the target.
	out.SuggestedAdjustment = input.TargetLoudness - analyzeResult.InputIntegratedLoudnes

	if analyzeResult.InputTruePeak+out.SuggestedAdjustment > -0.9 {
		out.SuggestedAdjustment = -0.9 - analyzeResult.InputTruePeak
	}

	return out, nil
}

type AdjustAudioLevelParams struct {
	Input      common.AudioInput
	Adjustment float64
}

func AdjustAudioLevelActivity(ctx context.Context, input AdjustAudioLevelParams) (*common.AudioResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "AdjustAudioLevel")
	log.Info("Starting AdjustAudioLevelActivity")

	stopChan, progressCallback := registerProgressCallback(ctx)
	defer close(stopChan)

	return transcode.AdjustAudioLevel(input.Input, input.Adjustment, progressCallback)
}
