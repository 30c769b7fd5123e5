package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/utils/testutils"
)

func Test_AnalyzeEBUR128_Tone(t *testing.T) {
	if !testutils.HasFfmpeg() {
		t.Skip("ffmpeg not available")
	}
	tone := testutils.GenerateToneAudioFile("./testdata/generated/tone_stereo.wav", 5)

	res, err := AnalyzeEBUR128(tone)
	assert.NoError(t, err)
	assert.NotNil(t, res)

	assert.Less(t, res.InputIntegratedLoudnes, 0.0)
	assert.Greater(t, res.InputIntegratedLoudnes, -90.0)
	assert.Less(t, res.InputTruePeak, 3.0)
}

func Test_AnalyzeEBUR128_Silence(t *testing.T) {
	if !testutils.HasFfmpeg() {
		t.Skip("ffmpeg not available")
	}
	silence := testutils.GenerateSilenceAudioFile("./testdata/generated/silence_stereo.wav", 5)

	res, err := AnalyzeEBUR128(silence)
	assert.NoError(t, err)
	assert.NotNil(t, res)

	// -inf gets mapped to -99 so downstream math stays finite
	assert.Equal(t, -99.0, res.InputIntegratedLoudnes)
}
