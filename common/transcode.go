package common

import (
	"github.com/reelkit/media-assembly/paths"
)

type AudioInput struct {
	Path            paths.Path
	DestinationPath paths.Path
	Bitrate         string
}

type AudioResult struct {
	OutputPath paths.Path
}

type MixInput struct {
	Track           AudioTrack
	SampleRate      int
	DestinationPath paths.Path
	// Sidechain envelope in milliseconds. Zero values fall back to
	// pumping-safe defaults.
	DuckAttackMs  int
	DuckReleaseMs int
}

type MixResult struct {
	OutputPath      paths.Path
	DurationSeconds float64
	// Notes record non-fatal degradations, e.g. music that failed to probe
	// and was left out of the mix.
	Notes []Note
}

type AssembleInput struct {
	Title              string
	Clips              []paths.Path
	Shots              []Shot
	TransitionType     TransitionType
	TransitionDuration float64
	FrameRate          int
	VideoBitrate       string
	DestinationPath    paths.Path
}

type AssembleResult struct {
	OutputPath      paths.Path
	DurationSeconds float64
}

type SubtitleInput struct {
	VideoPath       paths.Path
	SubtitlePath    paths.Path
	Mode            SubtitleMode
	Language        string
	SafeMarginPx    int
	FontName        string
	FontSize        int
	DestinationPath paths.Path
}

type SubtitleResult struct {
	OutputPath paths.Path
}

type EncodeInput struct {
	VideoPath          paths.Path
	AudioPath          paths.Path
	OutputPath         paths.Path
	Width              int
	Height             int
	FrameRate          int
	VideoBitrate       string
	AudioBitrate       string
	LetterboxTolerance float64
}

type EncodeResult struct {
	OutputPath      paths.Path
	DurationSeconds float64
	FileSizeBytes   int64
}
