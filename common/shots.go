package common

// Shot is a contiguous time interval of the final video tied to one
// scene. Shots are externally authored and read-only here.
type Shot struct {
	ShotNumber       int     `json:"shotNumber"`
	StartSeconds     float64 `json:"start"`
	EndSeconds       float64 `json:"end"`
	SceneDescription string  `json:"sceneDescription"`
}

func (s Shot) Duration() float64 {
	return s.EndSeconds - s.StartSeconds
}

func (s Shot) Contains(seconds float64) bool {
	return seconds >= s.StartSeconds && seconds < s.EndSeconds
}

// Shotlist is the ordered shot sequence covering [0, TotalDuration].
type Shotlist struct {
	Shots         []Shot  `json:"shots"`
	TotalDuration float64 `json:"totalDuration"`
}

// ShotMapping assigns one caption segment to exactly one shot.
type ShotMapping struct {
	CaptionSegmentIndex int `json:"captionSegmentIndex"`
	ShotNumber          int `json:"shotNumber"`
}
