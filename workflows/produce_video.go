package workflows

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/environment"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/motion"
	"github.com/reelkit/media-assembly/services/notifications"
	"github.com/reelkit/media-assembly/services/transcode"
	wfutils "github.com/reelkit/media-assembly/utils/workflows"
)

type ProduceVideoParams struct {
	Config common.ProductionConfig
}

// Alignments covering less of the script than this are treated as failed
// and replaced by script-derived uniform timing.
const minAlignmentCoverage = 0.5

// Loudness adjustments below this are inaudible and skipped.
const minLoudnessAdjustmentDb = 0.01

// ProduceVideo assembles one title: narration is aligned and segmented into
// captions, captions are mapped onto the shotlist, keyframes are rendered
// into motion clips and assembled, audio is mixed and normalized, and the
// two tracks meet in the final encode. Failures end the workflow with a
// ProductionResult carrying the stage, not a workflow error, so batch runs
// keep going.
func ProduceVideo(ctx workflow.Context, params ProduceVideoParams) (*common.ProductionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting ProduceVideo")

	ctx = workflow.WithActivityOptions(ctx, wfutils.GetDefaultActivityOptions())

	config := params.Config.Normalized()
	err := config.Validate()
	if err != nil {
		return failProduction(ctx, config, "config", err, nil), nil
	}

	var notes []common.Note

	tempFolder, err := wfutils.GetWorkflowTempFolder(ctx)
	if err != nil {
		return failProduction(ctx, config, "setup", err, notes), nil
	}
	defer func() {
		// cleanup must run on cancellation too
		dCtx, _ := workflow.NewDisconnectedContext(ctx)
		dCtx = workflow.WithActivityOptions(dCtx, wfutils.GetDefaultActivityOptions())
		cleanupErr := wfutils.DeletePath(dCtx, tempFolder)
		if cleanupErr != nil {
			logger.Error("Temp cleanup failed", "error", cleanupErr)
		}
	}()

	narrationInfo, err := wfutils.Execute(ctx, activities.AnalyzeFile, activities.AnalyzeFileParams{
		FilePath: config.NarrationPath,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "analyze", err, notes), nil
	}

	transcript, alignNotes, err := resolveTranscript(ctx, config, tempFolder)
	if err != nil {
		return failProduction(ctx, config, "alignment", err, notes), nil
	}
	notes = append(notes, alignNotes...)

	segments, err := wfutils.Execute(ctx, activities.SegmentCaptionsActivity, activities.SegmentCaptionsParams{
		Words:       transcript.Words,
		Constraints: config.CaptionConstraints(),
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "segmentation", err, notes), nil
	}

	shotlist, err := wfutils.Execute(ctx, activities.LoadShotlistActivity, activities.LoadShotlistParams{
		ShotlistPath: config.ShotlistPath,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "shotlist", err, notes), nil
	}
	if math.Abs(shotlist.TotalDuration-narrationInfo.TotalSeconds) > 1 {
		notes = append(notes, common.Note{
			Stage: "shotlist",
			Message: fmt.Sprintf("shotlist covers %.2fs but narration runs %.2fs",
				shotlist.TotalDuration, narrationInfo.TotalSeconds),
		})
	}

	// the mapping document and caption files land next to the final draft,
	// the folder has to exist before the first write
	outputFolder := config.OutputPath().Dir()
	err = wfutils.CreateFolder(ctx, outputFolder)
	if err != nil {
		return failProduction(ctx, config, "setup", err, notes), nil
	}

	mapped, err := wfutils.Execute(ctx, activities.MapShots, activities.MapShotsParams{
		TitleID:         config.TitleID,
		Segments:        segments,
		Shotlist:        *shotlist,
		DestinationPath: outputFolder,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "shot_mapping", err, notes), nil
	}
	logger.Info("Mapped captions to shots", "segments", len(segments), "mappings", len(mapped.Mappings))

	captionFiles, err := wfutils.Execute(ctx, activities.WriteCaptionFiles, activities.WriteCaptionFilesParams{
		Segments:        segments,
		DestinationPath: outputFolder,
		BaseName:        config.TitleID,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "captions", err, notes), nil
	}

	// the audio chain runs concurrently with clip rendering and assembly
	var audio *audioChainOutput
	var audioErr error
	audioDone := false
	workflow.Go(ctx, func(ctx workflow.Context) {
		audio, audioErr = runAudioChain(ctx, config, tempFolder)
		audioDone = true
	})

	assembled, videoErr := runVideoChain(ctx, config, *shotlist, tempFolder)

	awaitErr := workflow.Await(ctx, func() bool {
		return audioDone
	})
	if awaitErr != nil {
		return failProduction(ctx, config, "audio_mix", awaitErr, notes), nil
	}
	if audioErr != nil {
		return failProduction(ctx, config, "audio_mix", audioErr, notes), nil
	}
	notes = append(notes, audio.Notes...)
	if videoErr != nil {
		return failProduction(ctx, config, "assembly", videoErr, notes), nil
	}

	subtitled, err := wfutils.Execute(ctx, activities.ComposeSubtitlesActivity, common.SubtitleInput{
		VideoPath:       assembled.OutputPath,
		SubtitlePath:    captionFiles.SRTPath,
		Mode:            config.SubtitleMode,
		Language:        transcript.Language,
		SafeMarginPx:    config.SafeMarginPx,
		FontName:        config.FontName,
		FontSize:        config.FontSize,
		DestinationPath: tempFolder,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "subtitles", err, notes), nil
	}

	encoded, err := wfutils.Execute(ctx, activities.FinalEncodeActivity, common.EncodeInput{
		VideoPath:          subtitled.OutputPath,
		AudioPath:          audio.Path,
		OutputPath:         config.OutputPath(),
		Width:              config.Width,
		Height:             config.Height,
		FrameRate:          config.FrameRate,
		VideoBitrate:       config.VideoBitrate,
		AudioBitrate:       config.AudioBitrate,
		LetterboxTolerance: config.LetterboxTolerance,
	}).Result(ctx)
	if err != nil {
		return failProduction(ctx, config, "encode", err, notes), nil
	}

	notes = append(notes, deliverDraft(ctx, config, encoded.OutputPath)...)

	result := &common.ProductionResult{
		TitleID:         config.TitleID,
		OutputPath:      encoded.OutputPath.Local(),
		Success:         true,
		DurationSeconds: encoded.DurationSeconds,
		FileSizeBytes:   encoded.FileSizeBytes,
		Notes:           notes,
	}

	err = wfutils.PublishEvent(ctx, "production.completed", result)
	if err != nil {
		logger.Error("Failed to publish completion event", "error", err)
	}

	err = wfutils.Execute(ctx, activities.NotifyProductionCompleted, activities.NotifyProductionCompletedInput{
		Targets: notificationTargets(),
		Message: notifications.ProductionCompleted{
			TitleID:         config.TitleID,
			OutputPath:      result.OutputPath,
			DurationSeconds: result.DurationSeconds,
			FileSizeBytes:   result.FileSizeBytes,
			Notes: lo.Map(notes, func(n common.Note, _ int) string {
				return n.Message
			}),
		},
	}).Wait(ctx)
	if err != nil {
		logger.Error("Failed to send completion notification", "error", err)
	}

	return result, nil
}

// resolveTranscript prefers forced alignment and falls back to uniform
// script timing when no speech service is configured or the alignment
// came back unusable.
func resolveTranscript(ctx workflow.Context, config common.ProductionConfig, tempFolder paths.Path) (*common.Transcript, []common.Note, error) {
	logger := workflow.GetLogger(ctx)

	var scriptText string
	if config.ScriptPath.Path != "" {
		data, err := wfutils.ReadFile(ctx, config.ScriptPath)
		if err != nil {
			return nil, nil, err
		}
		scriptText = string(data)
	}

	if environment.GetSpeechServiceBaseURL() == "" {
		transcript, err := wfutils.Execute(ctx, activities.UniformTranscript, activities.UniformTranscriptParams{
			NarrationPath:  config.NarrationPath,
			ScriptText:     scriptText,
			WordsPerMinute: config.WordsPerMinute,
		}).Result(ctx)
		if err != nil {
			return nil, nil, err
		}
		return transcript, []common.Note{{
			Stage:   "alignment",
			Message: "no speech service configured, caption timing estimated from script",
		}}, nil
	}

	aligned, err := wfutils.Execute(ctx, activities.AlignNarration, activities.AlignNarrationParams{
		NarrationPath: config.NarrationPath,
		ScriptText:    scriptText,
		OutputFolder:  tempFolder,
	}).Result(ctx)
	if err == nil && aligned.Coverage >= minAlignmentCoverage {
		transcript := aligned.Transcript
		var notes []common.Note
		if aligned.Coverage < 1 {
			transcript.Partial = true
			notes = append(notes, common.Note{
				Stage:   "alignment",
				Message: fmt.Sprintf("alignment covered %.0f%% of the script", aligned.Coverage*100),
			})
		}
		return &transcript, notes, nil
	}

	if err != nil {
		logger.Warn("Alignment failed, falling back to uniform timing", "error", err)
	} else {
		logger.Warn("Alignment coverage too low, falling back to uniform timing", "coverage", aligned.Coverage)
	}

	transcript, err := wfutils.Execute(ctx, activities.UniformTranscript, activities.UniformTranscriptParams{
		NarrationPath:  config.NarrationPath,
		ScriptText:     scriptText,
		WordsPerMinute: config.WordsPerMinute,
	}).Result(ctx)
	if err != nil {
		return nil, nil, err
	}
	return transcript, []common.Note{{
		Stage:   "alignment",
		Message: "alignment unusable, caption timing estimated from script",
	}}, nil
}

type audioChainOutput struct {
	Path  paths.Path
	Notes []common.Note
}

// runAudioChain mixes the track and normalizes its loudness with the
// two-pass analyze/adjust approach.
func runAudioChain(ctx workflow.Context, config common.ProductionConfig, tempFolder paths.Path) (*audioChainOutput, error) {
	mixed, err := wfutils.Execute(ctx, activities.MixAudioActivity, common.MixInput{
		Track:           config.Audio(),
		SampleRate:      config.SampleRate,
		DestinationPath: tempFolder,
	}).Result(ctx)
	if err != nil {
		return nil, err
	}

	out := &audioChainOutput{
		Path:  mixed.OutputPath,
		Notes: mixed.Notes,
	}

	analysis, err := wfutils.Execute(ctx, activities.AnalyzeEBUR128Activity, activities.AnalyzeEBUR128Params{
		FilePath:       mixed.OutputPath.Local(),
		TargetLoudness: config.TargetLoudness,
	}).Result(ctx)
	if err != nil {
		return nil, err
	}

	if math.Abs(analysis.SuggestedAdjustment) > minLoudnessAdjustmentDb {
		adjusted, err := wfutils.Execute(ctx, activities.AdjustAudioLevelActivity, activities.AdjustAudioLevelParams{
			Input: common.AudioInput{
				Path:            mixed.OutputPath,
				DestinationPath: tempFolder,
			},
			Adjustment: analysis.SuggestedAdjustment,
		}).Result(ctx)
		if err != nil {
			return nil, err
		}
		out.Path = adjusted.OutputPath
	}

	return out, nil
}

// runVideoChain plans the keyframe motion, renders every transition clip in
// parallel and assembles them in shot order.
func runVideoChain(ctx workflow.Context, config common.ProductionConfig, shotlist common.Shotlist, tempFolder paths.Path) (*common.AssembleResult, error) {
	weights := config.KeyframeWeights
	if len(weights) == 0 && len(shotlist.Shots) == len(config.KeyframePaths)-1 {
		// no explicit weights, let the shotlist pace the clips so each one
		// lines up with its shot
		weights = lo.Map(shotlist.Shots, func(s common.Shot, _ int) float64 {
			return s.Duration()
		})
	}

	plan, err := wfutils.Execute(ctx, activities.PlanMotion, activities.PlanMotionParams{
		Sequence: common.KeyframeSequence{
			Images:        config.KeyframePaths,
			TotalDuration: shotlist.TotalDuration,
			Weights:       weights,
		},
		MotionType: config.MotionType,
		Intensity:  config.MotionIntensity,
		FrameRate:  config.FrameRate,
	}).Result(ctx)
	if err != nil {
		return nil, err
	}

	futures := lo.Map(plan.Transitions, func(t motion.PlannedTransition, _ int) wfutils.Future[*transcode.RenderKeyframeClipResult] {
		return wfutils.Execute(ctx, activities.RenderKeyframeClipActivity, transcode.RenderKeyframeClipInput{
			Transition:      t,
			Width:           config.Width,
			Height:          config.Height,
			FrameRate:       config.FrameRate,
			DestinationPath: tempFolder,
		})
	})

	clips := make([]paths.Path, 0, len(futures))
	for _, future := range futures {
		res, err := future.Result(ctx)
		if err != nil {
			return nil, err
		}
		clips = append(clips, res.OutputPath)
	}

	return wfutils.Execute(ctx, activities.AssembleShotsActivity, common.AssembleInput{
		Title:              config.TitleID,
		Clips:              clips,
		Shots:              shotlist.Shots,
		TransitionType:     config.TransitionType,
		TransitionDuration: config.TransitionDuration,
		FrameRate:          config.FrameRate,
		VideoBitrate:       config.VideoBitrate,
		DestinationPath:    tempFolder,
	}).Result(ctx)
}

// deliverDraft pushes the final file to the optional FTP/S3 targets.
// Delivery failures degrade to notes, the render itself succeeded.
func deliverDraft(ctx workflow.Context, config common.ProductionConfig, output paths.Path) []common.Note {
	logger := workflow.GetLogger(ctx)
	var notes []common.Note

	if config.DeliverFTPDir != "" {
		_, err := wfutils.Execute(ctx, activities.DeliverFTP, activities.DeliverFTPParams{
			Path:      output,
			RemoteDir: config.DeliverFTPDir,
		}).Result(ctx)
		if err != nil {
			logger.Error("FTP delivery failed", "error", err)
			notes = append(notes, common.Note{
				Stage:   "delivery",
				Message: fmt.Sprintf("ftp delivery failed: %s", err.Error()),
			})
		}
	}

	if config.DeliverS3Bucket != "" {
		_, err := wfutils.Execute(ctx, activities.DeliverS3, activities.DeliverS3Params{
			Path:   output,
			Bucket: config.DeliverS3Bucket,
		}).Result(ctx)
		if err != nil {
			logger.Error("S3 delivery failed", "error", err)
			notes = append(notes, common.Note{
				Stage:   "delivery",
				Message: fmt.Sprintf("s3 delivery failed: %s", err.Error()),
			})
		}
	}

	return notes
}

// failProduction terminates the job with a failure result. The workflow
// itself completes so batch parents collect the result instead of an error.
func failProduction(ctx workflow.Context, config common.ProductionConfig, stage string, err error, notes []common.Note) *common.ProductionResult {
	logger := workflow.GetLogger(ctx)
	logger.Error("Production failed", "stage", stage, "error", err)

	result := &common.ProductionResult{
		TitleID:      config.TitleID,
		Success:      false,
		ErrorStage:   stage,
		ErrorMessage: err.Error(),
		Notes:        notes,
	}

	pubErr := wfutils.PublishEvent(ctx, "production.failed", result)
	if pubErr != nil {
		logger.Error("Failed to publish failure event", "error", pubErr)
	}

	notifyErr := wfutils.Execute(ctx, activities.NotifyProductionFailed, activities.NotifyProductionFailedInput{
		Targets: notificationTargets(),
		Message: notifications.ProductionFailed{
			TitleID:      config.TitleID,
			Stage:        stage,
			ErrorMessage: err.Error(),
		},
	}).Wait(ctx)
	if notifyErr != nil {
		logger.Error("Failed to send failure notification", "error", notifyErr)
	}

	return result
}
