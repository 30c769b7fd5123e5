package common

import (
	"encoding/json"
	"fmt"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/reelkit/media-assembly/paths"
)

type SubtitleMode enum.Member[string]

//goland:noinspection GoMixedReceiverTypes
func (m SubtitleMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Value)
}

//goland:noinspection GoMixedReceiverTypes
func (m *SubtitleMode) UnmarshalJSON(value []byte) error {
	var stringValue string
	err := json.Unmarshal(value, &stringValue)
	if err != nil {
		return err
	}
	mode := SubtitleModes.Parse(stringValue)
	if mode == nil {
		return ErrSubtitleModeNotFound
	}
	*m = *mode
	return nil
}

var (
	SubtitlesBurned = SubtitleMode{Value: "burned"}
	SubtitlesSoft   = SubtitleMode{Value: "soft"}
	SubtitlesOff    = SubtitleMode{Value: "off"}
	SubtitleModes   = enum.New(SubtitlesBurned, SubtitlesSoft, SubtitlesOff)

	ErrSubtitleModeNotFound = merry.Sentinel("subtitle mode not found")
)

type TransitionType enum.Member[string]

//goland:noinspection GoMixedReceiverTypes
func (t TransitionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

//goland:noinspection GoMixedReceiverTypes
func (t *TransitionType) UnmarshalJSON(value []byte) error {
	var stringValue string
	err := json.Unmarshal(value, &stringValue)
	if err != nil {
		return err
	}
	transition := TransitionTypes.Parse(stringValue)
	if transition == nil {
		return ErrTransitionTypeNotFound
	}
	*t = *transition
	return nil
}

var (
	TransitionCut       = TransitionType{Value: "cut"}
	TransitionCrossfade = TransitionType{Value: "crossfade"}
	TransitionFade      = TransitionType{Value: "fade"}
	TransitionTypes     = enum.New(TransitionCut, TransitionCrossfade, TransitionFade)

	ErrTransitionTypeNotFound = merry.Sentinel("transition type not found")
)

var ErrConfigInvalid = merry.Sentinel("production config invalid")

// ProductionConfig is the single configuration value a caller supplies
// for one job. It is immutable for the job's lifetime; every other
// entity is derived from it or from the files it references.
type ProductionConfig struct {
	// Title identity, also the output path components.
	TitleID   string `json:"titleId"`
	Segment   string `json:"segment"`
	AgeRating string `json:"ageRating"`

	// Inputs.
	NarrationPath paths.Path   `json:"narrationPath"`
	ScriptPath    paths.Path   `json:"scriptPath,omitempty"`
	ShotlistPath  paths.Path   `json:"shotlistPath"`
	KeyframePaths []paths.Path `json:"keyframePaths"`
	// KeyframeWeights has one entry per adjacent keyframe pair.
	KeyframeWeights []float64  `json:"keyframeWeights,omitempty"`
	MusicPath       paths.Path `json:"musicPath,omitempty"`
	SFX             []SFXCue   `json:"sfx,omitempty"`

	// Output target.
	OutputRoot   paths.Path `json:"outputRoot,omitempty"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	FrameRate    int        `json:"frameRate"`
	VideoBitrate string     `json:"videoBitrate"`
	AudioBitrate string     `json:"audioBitrate"`
	Container    string     `json:"container"`
	SampleRate   int        `json:"sampleRate"`
	// LetterboxTolerance is the maximum padded share of the frame area
	// before the encoder refuses the source.
	LetterboxTolerance float64 `json:"letterboxTolerance"`

	// Subtitles.
	SubtitleMode SubtitleMode `json:"subtitleMode"`
	SafeMarginPx int          `json:"safeMarginPx"`
	FontName     string       `json:"fontName"`
	FontSize     int          `json:"fontSize"`

	// Captions.
	MinCaptionDuration float64 `json:"minCaptionDuration"`
	MaxCaptionDuration float64 `json:"maxCaptionDuration"`
	MaxCaptionWords    int     `json:"maxCaptionWords"`
	MaxCaptionChars    int     `json:"maxCaptionChars"`
	CaptionGap         float64 `json:"captionGap"`
	ReadingSpeedWPS    float64 `json:"readingSpeedWps"`
	// WordsPerMinute drives the script-derived timing fallback when no
	// speech service is available.
	WordsPerMinute float64 `json:"wordsPerMinute"`

	// Motion.
	MotionType      MotionType `json:"motionType"`
	MotionIntensity float64    `json:"motionIntensity"`

	// Assembly.
	TransitionType     TransitionType `json:"transitionType"`
	TransitionDuration float64        `json:"transitionDuration"`

	// Audio.
	TargetLoudness float64 `json:"targetLoudness"`
	MusicVolume    float64 `json:"musicVolume"`
	DuckingEnabled bool    `json:"duckingEnabled"`

	// Optional post-encode delivery. Empty means off.
	DeliverFTPDir   string `json:"deliverFtpDir,omitempty"`
	DeliverS3Bucket string `json:"deliverS3Bucket,omitempty"`
}

func DefaultConfig() ProductionConfig {
	return ProductionConfig{
		OutputRoot:         paths.New(paths.OutputDrive, ""),
		Width:              1080,
		Height:             1920,
		FrameRate:          30,
		VideoBitrate:       "6M",
		AudioBitrate:       "192k",
		Container:          "mp4",
		SampleRate:         48000,
		LetterboxTolerance: 0.25,
		SubtitleMode:       SubtitlesBurned,
		SafeMarginPx:       120,
		FontName:           "Barlow",
		FontSize:           48,
		MinCaptionDuration: 0.8,
		MaxCaptionDuration: 5.0,
		MaxCaptionWords:    8,
		MaxCaptionChars:    50,
		CaptionGap:         0.1,
		ReadingSpeedWPS:    2.5,
		WordsPerMinute:     150,
		MotionType:         MotionDynamic,
		MotionIntensity:    0.5,
		TransitionType:     TransitionCrossfade,
		TransitionDuration: 0.5,
		TargetLoudness:     -14,
		MusicVolume:        0.2,
		DuckingEnabled:     true,
	}
}

// Normalized returns a copy with zero values replaced by defaults. The
// receiver is never mutated.
func (c ProductionConfig) Normalized() ProductionConfig {
	def := DefaultConfig()
	if c.OutputRoot == (paths.Path{}) {
		c.OutputRoot = def.OutputRoot
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.FrameRate == 0 {
		c.FrameRate = def.FrameRate
	}
	if c.VideoBitrate == "" {
		c.VideoBitrate = def.VideoBitrate
	}
	if c.AudioBitrate == "" {
		c.AudioBitrate = def.AudioBitrate
	}
	if c.Container == "" {
		c.Container = def.Container
	}
	if c.SampleRate == 0 {
		c.SampleRate = def.SampleRate
	}
	if c.LetterboxTolerance == 0 {
		c.LetterboxTolerance = def.LetterboxTolerance
	}
	if c.SubtitleMode == (SubtitleMode{}) {
		c.SubtitleMode = def.SubtitleMode
	}
	if c.SafeMarginPx == 0 {
		c.SafeMarginPx = def.SafeMarginPx
	}
	if c.FontName == "" {
		c.FontName = def.FontName
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	if c.MinCaptionDuration == 0 {
		c.MinCaptionDuration = def.MinCaptionDuration
	}
	if c.MaxCaptionDuration == 0 {
		c.MaxCaptionDuration = def.MaxCaptionDuration
	}
	if c.MaxCaptionWords == 0 {
		c.MaxCaptionWords = def.MaxCaptionWords
	}
	if c.MaxCaptionChars == 0 {
		c.MaxCaptionChars = def.MaxCaptionChars
	}
	if c.CaptionGap == 0 {
		c.CaptionGap = def.CaptionGap
	}
	if c.ReadingSpeedWPS == 0 {
		c.ReadingSpeedWPS = def.ReadingSpeedWPS
	}
	if c.WordsPerMinute == 0 {
		c.WordsPerMinute = def.WordsPerMinute
	}
	if c.MotionType == (MotionType{}) {
		c.MotionType = def.MotionType
	}
	if c.MotionIntensity == 0 {
		c.MotionIntensity = def.MotionIntensity
	}
	if c.TransitionType == (TransitionType{}) {
		c.TransitionType = def.TransitionType
	}
	if c.TransitionDuration == 0 {
		c.TransitionDuration = def.TransitionDuration
	}
	if c.TargetLoudness == 0 {
		c.TargetLoudness = def.TargetLoudness
	}
	if c.MusicVolume == 0 {
		c.MusicVolume = def.MusicVolume
	}
	return c
}

func (c ProductionConfig) Validate() error {
	if c.TitleID == "" {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("titleId is required"))
	}
	if c.Segment == "" || c.AgeRating == "" {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("segment and ageRating are required"))
	}
	if c.NarrationPath.Path == "" {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("narrationPath is required"))
	}
	if len(c.KeyframePaths) == 0 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("at least one keyframe is required"))
	}
	if len(c.KeyframeWeights) > 0 && len(c.KeyframeWeights) != len(c.KeyframePaths)-1 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage(
			fmt.Sprintf("keyframeWeights must have %d entries, got %d", len(c.KeyframePaths)-1, len(c.KeyframeWeights))))
	}
	if c.Width <= 0 || c.Height <= 0 || c.FrameRate <= 0 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("width, height and frameRate must be positive"))
	}
	if c.MotionIntensity < 0 || c.MotionIntensity > 1 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("motionIntensity must be within [0,1]"))
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("musicVolume must be within [0,1]"))
	}
	if c.LetterboxTolerance < 0 || c.LetterboxTolerance > 1 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("letterboxTolerance must be within [0,1]"))
	}
	if c.MinCaptionDuration >= c.MaxCaptionDuration {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("minCaptionDuration must be below maxCaptionDuration"))
	}
	if c.TransitionDuration < 0 {
		return merry.Wrap(ErrConfigInvalid, merry.AppendMessage("transitionDuration must not be negative"))
	}
	return nil
}

// OutputPath is {outputRoot}/{segment}/{age}/{titleId}_draft.{ext}.
func (c ProductionConfig) OutputPath() paths.Path {
	return c.OutputRoot.Append(c.Segment, c.AgeRating, fmt.Sprintf("%s_draft.%s", c.TitleID, c.Container))
}

func (c ProductionConfig) CaptionConstraints() CaptionConstraints {
	return CaptionConstraints{
		MinDuration:     c.MinCaptionDuration,
		MaxDuration:     c.MaxCaptionDuration,
		MaxWords:        c.MaxCaptionWords,
		MaxChars:        c.MaxCaptionChars,
		Gap:             c.CaptionGap,
		ReadingSpeedWPS: c.ReadingSpeedWPS,
	}
}

func (c ProductionConfig) Audio() AudioTrack {
	return AudioTrack{
		NarrationPath:  c.NarrationPath,
		MusicPath:      c.MusicPath,
		SFX:            c.SFX,
		TargetLoudness: c.TargetLoudness,
		MusicVolume:    c.MusicVolume,
		DuckingEnabled: c.DuckingEnabled,
	}
}
