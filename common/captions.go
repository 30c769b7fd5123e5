package common

// CaptionSegment is a span of on-screen text with its own time window.
// Segments never overlap and are separated by the configured gap.
type CaptionSegment struct {
	Index        int             `json:"index"`
	Text         string          `json:"text"`
	StartSeconds float64         `json:"start"`
	EndSeconds   float64         `json:"end"`
	Words        []WordTimestamp `json:"words"`
}

func (s CaptionSegment) Duration() float64 {
	return s.EndSeconds - s.StartSeconds
}

// CaptionConstraints bound what the segmenter may emit.
type CaptionConstraints struct {
	MinDuration     float64
	MaxDuration     float64
	MaxWords        int
	MaxChars        int
	Gap             float64
	ReadingSpeedWPS float64
}

func DefaultCaptionConstraints() CaptionConstraints {
	return CaptionConstraints{
		MinDuration:     0.8,
		MaxDuration:     5.0,
		MaxWords:        8,
		MaxChars:        50,
		Gap:             0.1,
		ReadingSpeedWPS: 2.5,
	}
}
