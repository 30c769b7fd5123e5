package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/services/motion"
)

func Test_ZoompanFilter(t *testing.T) {
	curve := motion.Curve{
		StartScale: 1.0,
		EndScale:   1.25,
		StartX:     0.5,
		EndX:       0.5,
		StartY:     0.5,
		EndY:       0.5,
	}

	filter := zoompanFilter(curve, 225, 1080, 1920, 30)

	assert.Contains(t, filter, "z='1.0000+(1.2500-1.0000)*on/224'")
	// crop position interpolates inside the pannable range
	assert.Contains(t, filter, "x='(iw-iw/zoom)*(0.5000+(0.5000-0.5000)*on/224)'")
	assert.Contains(t, filter, "d=225")
	assert.Contains(t, filter, "s=1080x1920")
	assert.Contains(t, filter, "fps=30")
}

func Test_ZoompanFilterSingleFrame(t *testing.T) {
	filter := zoompanFilter(motion.Curve{StartScale: 1, EndScale: 1.5}, 1, 1080, 1920, 30)

	// a single frame has no progression to divide over
	assert.Contains(t, filter, "*0'")
	assert.NotContains(t, filter, "on/0")
}

func Test_ZoompanFilterDeterministic(t *testing.T) {
	curve := motion.Curve{StartScale: 1, EndScale: 1.35, StartX: 0, EndX: 1, StartY: 0.5, EndY: 0.5}
	assert.Equal(t,
		zoompanFilter(curve, 120, 1080, 1920, 24),
		zoompanFilter(curve, 120, 1080, 1920, 24))
}
