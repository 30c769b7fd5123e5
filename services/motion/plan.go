package motion

import (
	"fmt"
	"math"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
)

var ErrMotionPlan = merry.Sentinel("motion planning failed")

// Bounds on how far a transition may push into the source image. Intensity
// scales these down, so at intensity 1.0 a zoom tops out at 1.5x and the
// crop window never leaves the image.
const (
	maxZoomBoost    = 0.5
	panZoomBoost    = 0.25
	zoomAndPanBoost = 0.35
)

// dynamicCycle is the deterministic order Dynamic motion walks through.
// All entries are distinct so the modulo walk cannot repeat consecutively,
// the skip in pickMotion guards the invariant anyway.
var dynamicCycle = []common.MotionType{
	common.MotionZoomIn,
	common.MotionPanLeft,
	common.MotionZoomOut,
	common.MotionPanRight,
	common.MotionZoomAndPan,
}

// Curve is the interpolation envelope of one transition. Scale is the crop
// zoom factor, X and Y are the crop window position as a fraction of the
// available travel range, 0.5 being centered. Keeping positions inside
// [0,1] guarantees no sampled frame exceeds the source image bounds.
type Curve struct {
	StartScale float64 `json:"startScale"`
	EndScale   float64 `json:"endScale"`
	StartX     float64 `json:"startX"`
	EndX       float64 `json:"endX"`
	StartY     float64 `json:"startY"`
	EndY       float64 `json:"endY"`
}

// PlannedTransition is one keyframe pair with its resolved motion, frame
// budget and interpolation curve, ready for the renderer.
type PlannedTransition struct {
	common.Transition
	Index      int   `json:"index"`
	FrameCount int   `json:"frameCount"`
	Curve      Curve `json:"curve"`
}

type Plan struct {
	Transitions []PlannedTransition `json:"transitions"`
	FrameRate   int                 `json:"frameRate"`
	TotalFrames int                 `json:"totalFrames"`
}

type PlanOptions struct {
	MotionType common.MotionType
	Intensity  float64
	FrameRate  int
}

// PlanSequence slices the keyframe sequence into per-pair transitions and
// assigns each a motion. Slices are equal (totalDuration / (n-1)) unless
// per-pair weights skew them. Frame counts round to the configured rate.
func PlanSequence(seq common.KeyframeSequence, opts PlanOptions) (*Plan, error) {
	if len(seq.Images) < 2 {
		return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage(fmt.Sprintf("need at least 2 keyframes, got %d", len(seq.Images))))
	}
	if seq.TotalDuration <= 0 {
		return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage("total duration must be positive"))
	}
	if opts.FrameRate <= 0 {
		return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage("frame rate must be positive"))
	}
	if opts.Intensity < 0 || opts.Intensity > 1 {
		return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage(fmt.Sprintf("intensity %.2f outside [0,1]", opts.Intensity)))
	}

	pairs := len(seq.Images) - 1
	if len(seq.Weights) > 0 && len(seq.Weights) != pairs {
		return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage(fmt.Sprintf("expected %d weights, got %d", pairs, len(seq.Weights))))
	}

	slices, err := timeSlices(seq.TotalDuration, pairs, seq.Weights)
	if err != nil {
		return nil, err
	}

	plan := &Plan{FrameRate: opts.FrameRate}
	previous := common.MotionType{}
	for i := 0; i < pairs; i++ {
		motionType := pickMotion(opts.MotionType, i, previous)
		previous = motionType

		t := PlannedTransition{
			Transition: common.Transition{
				FromImage:       seq.Images[i],
				ToImage:         seq.Images[i+1],
				DurationSeconds: slices[i],
				MotionType:      motionType,
				Intensity:       opts.Intensity,
			},
			Index:      i,
			FrameCount: int(math.Round(slices[i] * float64(opts.FrameRate))),
			Curve:      curveFor(motionType, opts.Intensity),
		}
		plan.Transitions = append(plan.Transitions, t)
		plan.TotalFrames += t.FrameCount
	}

	return plan, nil
}

func timeSlices(total float64, pairs int, weights []float64) ([]float64, error) {
	slices := make([]float64, pairs)

	if len(weights) == 0 {
		for i := range slices {
			slices[i] = total / float64(pairs)
		}
		return slices, nil
	}

	var sum float64
	for i, w := range weights {
		if w <= 0 {
			return nil, merry.Wrap(ErrMotionPlan, merry.AppendMessage(fmt.Sprintf("weight %d must be positive", i)))
		}
		sum += w
	}
	for i, w := range weights {
		slices[i] = total * w / sum
	}
	return slices, nil
}

// pickMotion resolves the configured motion for transition i. Dynamic walks
// the cycle by index and skips ahead when the walk would repeat the
// previous transition's motion.
func pickMotion(configured common.MotionType, i int, previous common.MotionType) common.MotionType {
	if configured != common.MotionDynamic {
		return configured
	}
	m := dynamicCycle[i%len(dynamicCycle)]
	if m == previous {
		m = dynamicCycle[(i+1)%len(dynamicCycle)]
	}
	return m
}

func curveFor(m common.MotionType, intensity float64) Curve {
	centered := Curve{
		StartScale: 1, EndScale: 1,
		StartX: 0.5, EndX: 0.5,
		StartY: 0.5, EndY: 0.5,
	}

	switch m {
	case common.MotionZoomIn:
		c := centered
		c.EndScale = 1 + maxZoomBoost*intensity
		return c
	case common.MotionZoomOut:
		c := centered
		c.StartScale = 1 + maxZoomBoost*intensity
		return c
	case common.MotionPanLeft:
		zoom := 1 + panZoomBoost*intensity
		return Curve{
			StartScale: zoom, EndScale: zoom,
			StartX: 1, EndX: 0,
			StartY: 0.5, EndY: 0.5,
		}
	case common.MotionPanRight:
		zoom := 1 + panZoomBoost*intensity
		return Curve{
			StartScale: zoom, EndScale: zoom,
			StartX: 0, EndX: 1,
			StartY: 0.5, EndY: 0.5,
		}
	case common.MotionZoomAndPan:
		return Curve{
			StartScale: 1, EndScale: 1 + zoomAndPanBoost*intensity,
			StartX: 0, EndX: 1,
			StartY: 0.5, EndY: 0.5,
		}
	}

	return centered
}
