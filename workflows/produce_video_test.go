package workflows

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ffmpeg"
	"github.com/reelkit/media-assembly/services/motion"
	"github.com/reelkit/media-assembly/services/transcode"
)

type ProduceVideoTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env *testsuite.TestWorkflowEnvironment
}

func (s *ProduceVideoTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
}

func (s *ProduceVideoTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func testConfig() common.ProductionConfig {
	return common.ProductionConfig{
		TitleID:       "ep001",
		Segment:       "news",
		AgeRating:     "all",
		NarrationPath: paths.New(paths.AssetDrive, "ep001/narration.wav"),
		ScriptPath:    paths.New(paths.AssetDrive, "ep001/script.txt"),
		ShotlistPath:  paths.New(paths.AssetDrive, "ep001/shotlist.json"),
		KeyframePaths: []paths.Path{
			paths.New(paths.AssetDrive, "ep001/kf_000.png"),
			paths.New(paths.AssetDrive, "ep001/kf_001.png"),
			paths.New(paths.AssetDrive, "ep001/kf_002.png"),
		},
	}
}

func testShotlist() *common.Shotlist {
	return &common.Shotlist{
		Shots: []common.Shot{
			{ShotNumber: 1, StartSeconds: 0, EndSeconds: 12, SceneDescription: "intro"},
			{ShotNumber: 2, StartSeconds: 12, EndSeconds: 30, SceneDescription: "main"},
		},
		TotalDuration: 30,
	}
}

func testTranscript() *common.Transcript {
	return &common.Transcript{
		Words: []common.WordTimestamp{
			{Text: "hello", StartSeconds: 0.1, EndSeconds: 0.5},
			{Text: "world", StartSeconds: 0.6, EndSeconds: 1.1},
		},
		Language: "en",
	}
}

// mockPipeline wires the full set of activity mocks for a run that makes
// it all the way to the final encode.
func (s *ProduceVideoTestSuite) mockPipeline() {
	tempOut := paths.New(paths.WorkDrive, "workflows/test-run")

	s.env.OnActivity(activities.CreateFolder, mock.Anything, mock.Anything).
		Return(&activities.FileResult{}, nil)
	s.env.OnActivity(activities.AnalyzeFile, mock.Anything, mock.Anything).
		Return(&ffmpeg.StreamInfo{TotalSeconds: 30, HasAudio: true}, nil)
	s.env.OnActivity(activities.ReadFile, mock.Anything, mock.Anything).
		Return([]byte("hello world"), nil)
	// no speech service configured in tests, timing comes from the script
	s.env.OnActivity(activities.UniformTranscript, mock.Anything, mock.Anything).
		Return(testTranscript(), nil)
	s.env.OnActivity(activities.SegmentCaptionsActivity, mock.Anything, mock.Anything).
		Return([]common.CaptionSegment{
			{Text: "hello world", StartSeconds: 0.1, EndSeconds: 1.1},
		}, nil)
	s.env.OnActivity(activities.LoadShotlistActivity, mock.Anything, mock.Anything).
		Return(testShotlist(), nil)
	s.env.OnActivity(activities.MapShots, mock.Anything, mock.Anything).
		Return(&activities.MapShotsResult{
			Mappings: []common.ShotMapping{
				{CaptionSegmentIndex: 0, ShotNumber: 1},
			},
			DocumentPath: paths.New(paths.OutputDrive, "news/all/ep001_mapping.json"),
		}, nil)
	s.env.OnActivity(activities.WriteCaptionFiles, mock.Anything, mock.Anything).
		Return(&activities.WriteCaptionFilesResult{
			SRTPath: paths.New(paths.OutputDrive, "news/all/ep001.srt"),
			VTTPath: paths.New(paths.OutputDrive, "news/all/ep001.vtt"),
		}, nil)
	s.env.OnActivity(activities.MixAudioActivity, mock.Anything, mock.Anything).
		Return(&common.MixResult{
			OutputPath:      tempOut.Append("ep001_mix.wav"),
			DurationSeconds: 30,
		}, nil)
	s.env.OnActivity(activities.AnalyzeEBUR128Activity, mock.Anything, mock.Anything).
		Return(&activities.AnalyzeEBUR128Result{
			IntegratedLoudness:  -17.2,
			TruePeak:            -4.1,
			SuggestedAdjustment: 3.2,
		}, nil)
	s.env.OnActivity(activities.AdjustAudioLevelActivity, mock.Anything, mock.Anything).
		Return(&common.AudioResult{
			OutputPath: tempOut.Append("ep001_mix_adjusted.wav"),
		}, nil)
	s.env.OnActivity(activities.PlanMotion, mock.Anything, mock.Anything).
		Return(&motion.Plan{
			Transitions: []motion.PlannedTransition{
				{Index: 0, FrameCount: 360},
				{Index: 1, FrameCount: 540},
			},
			FrameRate:   30,
			TotalFrames: 900,
		}, nil)
	s.env.OnActivity(activities.RenderKeyframeClipActivity, mock.Anything, mock.Anything).
		Times(2).
		Return(&transcode.RenderKeyframeClipResult{
			OutputPath: tempOut.Append("clip_000.mp4"),
		}, nil)
	s.env.OnActivity(activities.AssembleShotsActivity, mock.Anything, mock.Anything).
		Return(&common.AssembleResult{
			OutputPath:      tempOut.Append("ep001_assembled.mp4"),
			DurationSeconds: 30,
		}, nil)
	s.env.OnActivity(activities.ComposeSubtitlesActivity, mock.Anything, mock.Anything).
		Return(&common.SubtitleResult{
			OutputPath: tempOut.Append("ep001_assembled.subs.mp4"),
		}, nil)
	s.env.OnActivity(activities.FinalEncodeActivity, mock.Anything, mock.Anything).
		Return(&common.EncodeResult{
			OutputPath:      paths.New(paths.OutputDrive, "news/all/ep001_draft.mp4"),
			DurationSeconds: 30,
			FileSizeBytes:   22_000_000,
		}, nil)
	s.env.OnActivity(activities.PubsubPublish, mock.Anything, mock.Anything).
		Return(&activities.PublishResult{MessageID: "m1"}, nil)
	s.env.OnActivity(activities.NotifyProductionCompleted, mock.Anything, mock.Anything).
		Return(&activities.NotifyResult{}, nil)
	s.env.OnActivity(activities.DeletePath, mock.Anything, mock.Anything).
		Return(&activities.FileResult{}, nil)
}

func (s *ProduceVideoTestSuite) Test_HappyPath() {
	s.mockPipeline()

	s.env.ExecuteWorkflow(ProduceVideo, ProduceVideoParams{Config: testConfig()})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result common.ProductionResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.True(result.Success)
	s.Equal("ep001", result.TitleID)
	s.Equal(float64(30), result.DurationSeconds)
	s.Equal(int64(22_000_000), result.FileSizeBytes)
	s.Empty(result.ErrorStage)

	// no speech service configured, so timing degraded to the script estimate
	s.NotEmpty(result.Notes)
	s.Equal("alignment", result.Notes[0].Stage)
}

// Caption and mapping files go to a segment/age folder that may not exist
// yet, the workflow has to create it before the first write.
func (s *ProduceVideoTestSuite) Test_CreatesOutputFolder() {
	s.env.OnActivity(activities.CreateFolder, mock.Anything, activities.CreateFolderInput{
		Destination: paths.New(paths.OutputDrive, "news/all"),
	}).Once().Return(&activities.FileResult{}, nil)

	s.mockPipeline()

	s.env.ExecuteWorkflow(ProduceVideo, ProduceVideoParams{Config: testConfig()})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result common.ProductionResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.True(result.Success)
}

func (s *ProduceVideoTestSuite) Test_InvalidConfig() {
	s.env.OnActivity(activities.PubsubPublish, mock.Anything, mock.Anything).
		Return(&activities.PublishResult{}, nil)
	s.env.OnActivity(activities.NotifyProductionFailed, mock.Anything, mock.Anything).
		Return(&activities.NotifyResult{}, nil)

	config := testConfig()
	config.TitleID = ""

	s.env.ExecuteWorkflow(ProduceVideo, ProduceVideoParams{Config: config})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result common.ProductionResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.False(result.Success)
	s.Equal("config", result.ErrorStage)
	s.Contains(result.ErrorMessage, "titleId is required")
}

func (s *ProduceVideoTestSuite) Test_ShotlistFailureEndsWithStage() {
	s.env.OnActivity(activities.CreateFolder, mock.Anything, mock.Anything).
		Return(&activities.FileResult{}, nil)
	s.env.OnActivity(activities.AnalyzeFile, mock.Anything, mock.Anything).
		Return(&ffmpeg.StreamInfo{TotalSeconds: 30, HasAudio: true}, nil)
	s.env.OnActivity(activities.ReadFile, mock.Anything, mock.Anything).
		Return([]byte("hello world"), nil)
	s.env.OnActivity(activities.UniformTranscript, mock.Anything, mock.Anything).
		Return(testTranscript(), nil)
	s.env.OnActivity(activities.SegmentCaptionsActivity, mock.Anything, mock.Anything).
		Return([]common.CaptionSegment{
			{Text: "hello world", StartSeconds: 0.1, EndSeconds: 1.1},
		}, nil)
	s.env.OnActivity(activities.LoadShotlistActivity, mock.Anything, mock.Anything).
		Return((*common.Shotlist)(nil), temporal.NewNonRetryableApplicationError(
			"shotlist does not cover the narration", "ShotMappingError", nil))
	s.env.OnActivity(activities.PubsubPublish, mock.Anything, mock.Anything).
		Return(&activities.PublishResult{}, nil)
	s.env.OnActivity(activities.NotifyProductionFailed, mock.Anything, mock.Anything).
		Return(&activities.NotifyResult{}, nil)
	s.env.OnActivity(activities.DeletePath, mock.Anything, mock.Anything).
		Return(&activities.FileResult{}, nil)

	s.env.ExecuteWorkflow(ProduceVideo, ProduceVideoParams{Config: testConfig()})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result common.ProductionResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.False(result.Success)
	s.Equal("shotlist", result.ErrorStage)
	s.Contains(result.ErrorMessage, "shotlist does not cover the narration")
}

func Test_ProduceVideoTestSuite(t *testing.T) {
	suite.Run(t, new(ProduceVideoTestSuite))
}
