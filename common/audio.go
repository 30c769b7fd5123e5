package common

import (
	"github.com/reelkit/media-assembly/paths"
)

// SFXCue places one sound effect at an explicit narration offset.
type SFXCue struct {
	Path          paths.Path `json:"path"`
	OffsetSeconds float64    `json:"offsetSeconds"`
}

// AudioTrack describes the mix inputs for one job. It is owned by that
// job's audio pipeline and never shared across concurrent jobs.
type AudioTrack struct {
	NarrationPath  paths.Path `json:"narrationPath"`
	MusicPath      paths.Path `json:"musicPath,omitempty"`
	SFX            []SFXCue   `json:"sfx,omitempty"`
	TargetLoudness float64    `json:"targetLoudness"`
	MusicVolume    float64    `json:"musicVolume"`
	DuckingEnabled bool       `json:"duckingEnabled"`
}

func (t AudioTrack) HasMusic() bool {
	return t.MusicPath.Path != ""
}
