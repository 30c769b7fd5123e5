package common

import (
	"encoding/json"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/reelkit/media-assembly/paths"
)

type MotionType enum.Member[string]

//goland:noinspection GoMixedReceiverTypes
func (m MotionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Value)
}

//goland:noinspection GoMixedReceiverTypes
func (m *MotionType) UnmarshalJSON(value []byte) error {
	var stringValue string
	err := json.Unmarshal(value, &stringValue)
	if err != nil {
		return err
	}
	motion := MotionTypes.Parse(stringValue)
	if motion == nil {
		return ErrMotionTypeNotFound
	}
	*m = *motion
	return nil
}

var (
	MotionNone       = MotionType{Value: "none"}
	MotionZoomIn     = MotionType{Value: "zoom_in"}
	MotionZoomOut    = MotionType{Value: "zoom_out"}
	MotionPanLeft    = MotionType{Value: "pan_left"}
	MotionPanRight   = MotionType{Value: "pan_right"}
	MotionZoomAndPan = MotionType{Value: "zoom_and_pan"}
	MotionDynamic    = MotionType{Value: "dynamic"}
	MotionTypes      = enum.New(
		MotionNone,
		MotionZoomIn,
		MotionZoomOut,
		MotionPanLeft,
		MotionPanRight,
		MotionZoomAndPan,
		MotionDynamic,
	)
	ErrMotionTypeNotFound = merry.Sentinel("motion type not found")
)

// KeyframeSequence is the ordered still-image input for one job.
// Weights, when present, has one entry per adjacent image pair and
// skews the time slice distribution; otherwise slices are equal.
type KeyframeSequence struct {
	Images        []paths.Path `json:"images"`
	TotalDuration float64      `json:"totalDuration"`
	Weights       []float64    `json:"weights,omitempty"`
}

// Transition is one adjacent keyframe pair with its camera motion.
type Transition struct {
	FromImage       paths.Path `json:"fromImage"`
	ToImage         paths.Path `json:"toImage"`
	DurationSeconds float64    `json:"durationSeconds"`
	MotionType      MotionType `json:"motionType"`
	Intensity       float64    `json:"intensity"`
}
