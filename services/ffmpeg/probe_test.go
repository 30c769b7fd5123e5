package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/utils/testutils"
)

func Test_GetStreamInfo(t *testing.T) {
	if !testutils.HasFfmpeg() {
		t.Skip("ffmpeg not available")
	}
	file := testutils.GenerateVideoFile("./testdata/generated/probe_input.mp4", testutils.VideoGeneratorParams{
		Duration:  2,
		FrameRate: 25,
		Width:     640,
		Height:    360,
	})

	info, err := GetStreamInfo(file)
	assert.NoError(t, err)

	assert.True(t, info.HasVideo)
	assert.False(t, info.HasAudio)
	assert.Len(t, info.VideoStreams, 1)
	assert.Equal(t, 640, info.VideoStreams[0].Width)
	assert.Equal(t, 360, info.VideoStreams[0].Height)
	assert.InDelta(t, 2.0, info.TotalSeconds, 0.2)

	// second probe of the same path comes from the cache
	cached, err := GetStreamInfo(file)
	assert.NoError(t, err)
	assert.Equal(t, info, cached)
}
