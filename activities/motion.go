package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/services/motion"
)

type PlanMotionParams struct {
	Sequence   common.KeyframeSequence
	MotionType common.MotionType
	Intensity  float64
	FrameRate  int
}

func PlanMotion(ctx context.Context, input PlanMotionParams) (*motion.Plan, error) {
	log := activity.GetLogger(ctx)
	log.Info("Starting PlanMotionActivity")

	return motion.PlanSequence(input.Sequence, motion.PlanOptions{
		MotionType: input.MotionType,
		Intensity:  input.Intensity,
		FrameRate:  input.FrameRate,
	})
}
