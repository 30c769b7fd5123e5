package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
)

func keyframes(n int) []paths.Path {
	out := make([]paths.Path, n)
	for i := range out {
		out[i] = paths.New(paths.AssetDrive, "frames/frame_00"+string(rune('0'+i))+".png")
	}
	return out
}

func Test_PlanEqualSlices(t *testing.T) {
	seq := common.KeyframeSequence{
		Images:        keyframes(5),
		TotalDuration: 30,
	}

	plan, err := PlanSequence(seq, PlanOptions{
		MotionType: common.MotionDynamic,
		Intensity:  0.5,
		FrameRate:  30,
	})
	assert.NoError(t, err)
	assert.Len(t, plan.Transitions, 4)

	for i, tr := range plan.Transitions {
		assert.InDelta(t, 7.5, tr.DurationSeconds, 0.0001)
		assert.Equal(t, 225, tr.FrameCount)
		assert.Equal(t, seq.Images[i], tr.FromImage)
		assert.Equal(t, seq.Images[i+1], tr.ToImage)
		if i > 0 {
			assert.NotEqual(t, plan.Transitions[i-1].MotionType, tr.MotionType,
				"dynamic motion repeated consecutively at transition %d", i)
		}
	}
	assert.Equal(t, 900, plan.TotalFrames)
}

func Test_PlanWeightedSlices(t *testing.T) {
	seq := common.KeyframeSequence{
		Images:        keyframes(4),
		TotalDuration: 24,
		Weights:       []float64{1, 2, 1},
	}

	plan, err := PlanSequence(seq, PlanOptions{
		MotionType: common.MotionZoomIn,
		Intensity:  1,
		FrameRate:  25,
	})
	assert.NoError(t, err)
	assert.Len(t, plan.Transitions, 3)
	assert.InDelta(t, 6, plan.Transitions[0].DurationSeconds, 0.0001)
	assert.InDelta(t, 12, plan.Transitions[1].DurationSeconds, 0.0001)
	assert.InDelta(t, 6, plan.Transitions[2].DurationSeconds, 0.0001)
	assert.Equal(t, 150+300+150, plan.TotalFrames)
}

func Test_PlanDynamicIsDeterministic(t *testing.T) {
	seq := common.KeyframeSequence{
		Images:        keyframes(8),
		TotalDuration: 56,
	}
	opts := PlanOptions{MotionType: common.MotionDynamic, Intensity: 0.7, FrameRate: 30}

	a, err := PlanSequence(seq, opts)
	assert.NoError(t, err)
	b, err := PlanSequence(seq, opts)
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	// the cycle wraps after five transitions without introducing a repeat
	for i := 1; i < len(a.Transitions); i++ {
		assert.NotEqual(t, a.Transitions[i-1].MotionType, a.Transitions[i].MotionType)
	}
}

func Test_PlanCurveStaysInBounds(t *testing.T) {
	seq := common.KeyframeSequence{
		Images:        keyframes(6),
		TotalDuration: 30,
	}

	plan, err := PlanSequence(seq, PlanOptions{
		MotionType: common.MotionDynamic,
		Intensity:  1,
		FrameRate:  30,
	})
	assert.NoError(t, err)

	for _, tr := range plan.Transitions {
		c := tr.Curve
		assert.GreaterOrEqual(t, c.StartScale, 1.0)
		assert.GreaterOrEqual(t, c.EndScale, 1.0)
		assert.LessOrEqual(t, c.StartScale, 1.5)
		assert.LessOrEqual(t, c.EndScale, 1.5)
		for _, pos := range []float64{c.StartX, c.EndX, c.StartY, c.EndY} {
			assert.GreaterOrEqual(t, pos, 0.0)
			assert.LessOrEqual(t, pos, 1.0)
		}
	}
}

func Test_PlanStaticHold(t *testing.T) {
	seq := common.KeyframeSequence{
		Images:        keyframes(3),
		TotalDuration: 10,
	}

	plan, err := PlanSequence(seq, PlanOptions{
		MotionType: common.MotionNone,
		Intensity:  0.5,
		FrameRate:  30,
	})
	assert.NoError(t, err)
	for _, tr := range plan.Transitions {
		assert.Equal(t, common.MotionNone, tr.MotionType)
		assert.Equal(t, 1.0, tr.Curve.StartScale)
		assert.Equal(t, 1.0, tr.Curve.EndScale)
	}
}

func Test_PlanRejectsBadInput(t *testing.T) {
	_, err := PlanSequence(common.KeyframeSequence{Images: keyframes(1), TotalDuration: 10},
		PlanOptions{MotionType: common.MotionNone, FrameRate: 30})
	assert.ErrorIs(t, err, ErrMotionPlan)

	_, err = PlanSequence(common.KeyframeSequence{Images: keyframes(3), TotalDuration: 0},
		PlanOptions{MotionType: common.MotionNone, FrameRate: 30})
	assert.ErrorIs(t, err, ErrMotionPlan)

	_, err = PlanSequence(common.KeyframeSequence{Images: keyframes(3), TotalDuration: 10, Weights: []float64{1}},
		PlanOptions{MotionType: common.MotionNone, FrameRate: 30})
	assert.ErrorIs(t, err, ErrMotionPlan)

	_, err = PlanSequence(common.KeyframeSequence{Images: keyframes(3), TotalDuration: 10},
		PlanOptions{MotionType: common.MotionNone, Intensity: 1.5, FrameRate: 30})
	assert.ErrorIs(t, err, ErrMotionPlan)
}
