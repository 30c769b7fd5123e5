package transcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/common"
)

func Test_EffectiveTransitions(t *testing.T) {
	durations := []float64{7.5, 7.5, 7.5, 7.5}

	out := effectiveTransitions(durations, common.TransitionCrossfade, 0.5)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, out)

	// cuts have no overlap
	out = effectiveTransitions(durations, common.TransitionCut, 0.5)
	assert.Equal(t, []float64{0, 0, 0}, out)

	// a single clip has no boundaries
	assert.Nil(t, effectiveTransitions([]float64{10}, common.TransitionCrossfade, 0.5))
}

func Test_EffectiveTransitionsClamp(t *testing.T) {
	// a 1s clip cannot carry a 2s fade on either side
	durations := []float64{10, 1, 10}
	out := effectiveTransitions(durations, common.TransitionCrossfade, 2)

	assert.Equal(t, []float64{0.5, 0.5}, out)

	// boundaries away from the short clip keep the full duration
	out = effectiveTransitions([]float64{10, 10, 1}, common.TransitionCrossfade, 2)
	assert.Equal(t, []float64{2, 0.5}, out)
}

func Test_ConcatFilter(t *testing.T) {
	assert.Equal(t, "[0:v][1:v][2:v]concat=n=3:v=1:a=0[v]", concatFilter(3))
	assert.Equal(t, "[0:v]concat=n=1:v=1:a=0[v]", concatFilter(1))
}

func Test_XfadeFilterOffsets(t *testing.T) {
	durations := []float64{7.5, 7.5, 7.5}
	transitions := []float64{0.5, 0.5}

	filter := xfadeFilter(durations, transitions, "fade")
	parts := strings.Split(filter, ";")
	assert.Len(t, parts, 2)

	// first fade starts 0.5s before the first clip ends
	assert.Equal(t, "[0:v][1:v]xfade=transition=fade:duration=0.500:offset=7.000[x1]", parts[0])
	// second offset accounts for the time the first fade absorbed:
	// 7.0 + 7.5 - 0.5 = 14.0
	assert.Equal(t, "[x1][2:v]xfade=transition=fade:duration=0.500:offset=14.000[v]", parts[1])
}

func Test_XfadeFilterDeterministic(t *testing.T) {
	durations := []float64{5, 6, 7, 8}
	transitions := effectiveTransitions(durations, common.TransitionCrossfade, 0.75)

	a := xfadeFilter(durations, transitions, "fade")
	b := xfadeFilter(durations, transitions, "fade")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, strings.Count(a, "[v]"))
}

func Test_XfadeName(t *testing.T) {
	assert.Equal(t, "fadeblack", xfadeName(common.TransitionFade))
	assert.Equal(t, "fade", xfadeName(common.TransitionCrossfade))
}
