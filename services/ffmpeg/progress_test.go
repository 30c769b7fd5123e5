package ffmpeg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseProgressCallback(t *testing.T) {
	var last Progress
	parse := parseProgressCallback([]string{"ffmpeg", "-i", "in.mp4"}, StreamInfo{
		TotalFrames:  300,
		TotalSeconds: 10,
	}, func(p Progress) {
		last = p
	})

	parse("frame=150")
	parse("bitrate=6000.0kbits/s")
	parse("speed=2.5x")
	parse("progress=continue")

	assert.Equal(t, 150, last.CurrentFrame)
	assert.Equal(t, 50.0, last.Percent)
	assert.Equal(t, "6000.0kbits/s", last.Bitrate)
	assert.Equal(t, "2.5x", last.Speed)

	parse("out_time_us=10000000")
	parse("progress=end")

	assert.Equal(t, 100.0, last.Percent)
	assert.Equal(t, 10, last.CurrentSeconds)
}

const sampleProbeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1080,
      "height": 1920,
      "pix_fmt": "yuv420p",
      "field_order": "progressive",
      "r_frame_rate": "30/1",
      "duration": "42.5",
      "nb_frames": "1275"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "48000",
      "duration": "42.5"
    }
  ],
  "format": {
    "filename": "story-0042_draft.mp4",
    "nb_streams": 2,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "42.5",
    "size": "31850000",
    "bit_rate": "5995294"
  }
}`

func Test_ProbeResultToInfo(t *testing.T) {
	var probed FFProbeResult
	err := json.Unmarshal([]byte(sampleProbeJSON), &probed)
	assert.NoError(t, err)

	info := ProbeResultToInfo(&probed)

	assert.True(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.False(t, info.HasAlpha)
	assert.True(t, info.Progressive)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1920, info.Height)
	assert.Equal(t, 30, info.FrameRate)
	assert.Equal(t, 1275, info.TotalFrames)
	assert.Equal(t, 42.5, info.TotalSeconds)
	assert.Len(t, info.AudioStreams, 1)
	assert.Equal(t, 2, info.AudioStreams[0].Channels)
}
