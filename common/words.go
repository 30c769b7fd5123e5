package common

// WordTimestamp is one aligned word. Produced once by the aligner and
// immutable afterwards. Words are ordered, non-overlapping, and have
// monotonically non-decreasing start times.
type WordTimestamp struct {
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
	Confidence   float64 `json:"confidence"`
}

func (w WordTimestamp) Duration() float64 {
	return w.EndSeconds - w.StartSeconds
}

// Transcript bundles the aligned words for one narration file.
// Partial marks a result where only a prefix of the audio could be
// aligned. Callers decide whether a partial alignment suffices.
type Transcript struct {
	Words    []WordTimestamp `json:"words"`
	Language string          `json:"language"`
	Partial  bool            `json:"partial"`
}

func (t Transcript) DurationSeconds() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].EndSeconds
}
