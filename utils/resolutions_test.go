package utils

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolution(t *testing.T) {
	for i := 0; i < 10; i++ {
		x := rand.Int()
		y := rand.Int()

		resolution, err := ResolutionFromString(fmt.Sprintf("%dx%d", x, y))
		assert.NoError(t, err)
		assert.Equal(t, x, resolution.Width)
		assert.Equal(t, y, resolution.Height)

		assert.Equal(t, resolution.FFMpegString(), fmt.Sprintf("%dx%d", x, y))

		MustResolution(fmt.Sprintf("%dx%d", x, y))

		resolution.EnsureEven()

		assert.Equal(t, resolution.Height%2, 0)
		assert.Equal(t, resolution.Width%2, 0)
	}

	for i := 0; i < 10; i++ {
		x := rand.Float32()
		y := rand.Float32()

		resolution, err := ResolutionFromString(fmt.Sprintf("%fx%f", x, y))
		assert.Error(t, err)
		assert.Nil(t, resolution)
	}
}

func TestResolutionToFit(t *testing.T) {
	type testCase struct {
		Source   Resolution
		Target   Resolution
		Expected Resolution
	}

	testCases := []testCase{

		// Same resolution
		{
			Source:   Resolution{Width: 1920, Height: 1080},
			Target:   Resolution{Width: 1920, Height: 1080},
			Expected: Resolution{Width: 1920, Height: 1080},
		},

		// Same aspect ratio
		{
			Source:   Resolution{Width: 1920, Height: 1080},
			Target:   Resolution{Width: 1280, Height: 720},
			Expected: Resolution{Width: 1280, Height: 720},
		},

		// Landscape into portrait
		{
			Source:   Resolution{Width: 1920, Height: 1080},
			Target:   Resolution{Width: 480, Height: 640},
			Expected: Resolution{Width: 480, Height: 270},
		},

		// 4:3 into vertical
		{
			Source:   Resolution{Width: 1440, Height: 1080},
			Target:   Resolution{Width: 1080, Height: 1920},
			Expected: Resolution{Width: 1080, Height: 810},
		},
	}

	for _, tc := range testCases {
		out := tc.Source.ResizedToFit(tc.Target)
		assert.Equal(t, tc.Expected, out)
		assert.LessOrEqual(t, out.Width, tc.Target.Width)
		assert.LessOrEqual(t, out.Height, tc.Target.Height)
		assert.InDelta(t, float64(out.Width)/float64(out.Height), tc.Source.AspectRatio(), 0.01)
	}
}

func TestPaddedShare(t *testing.T) {
	// Matching aspect pads nothing.
	src := Resolution{Width: 540, Height: 960}
	assert.InDelta(t, 0, src.PaddedShareIn(*ResolutionVertical), 0.001)

	// A 4:3 source letterboxed into 9:16 leaves more than half the
	// frame as padding.
	src = Resolution{Width: 1440, Height: 1080}
	share := src.PaddedShareIn(*ResolutionVertical)
	assert.Greater(t, share, 0.5)
	assert.Less(t, share, 0.6)
}
