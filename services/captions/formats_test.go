package captions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/common"
)

func formatSegments() []common.CaptionSegment {
	return []common.CaptionSegment{
		{Index: 1, Text: "the quick brown fox", StartSeconds: 0.120, EndSeconds: 2.5},
		{Index: 2, Text: "jumps over\nthe lazy dog", StartSeconds: 2.6, EndSeconds: 5.0005},
		{Index: 3, Text: "and stops", StartSeconds: 3661.25, EndSeconds: 3663.0},
	}
}

func Test_SRTRoundTrip(t *testing.T) {
	in := formatSegments()

	out, err := ParseSRT(FormatSRT(in))
	assert.NoError(t, err)
	assert.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].Index, out[i].Index)
		assert.Equal(t, in[i].Text, out[i].Text)
		assert.InDelta(t, in[i].StartSeconds, out[i].StartSeconds, 0.001)
		assert.InDelta(t, in[i].EndSeconds, out[i].EndSeconds, 0.001)
	}
}

func Test_VTTRoundTrip(t *testing.T) {
	in := formatSegments()

	out, err := ParseVTT(FormatVTT(in))
	assert.NoError(t, err)
	assert.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].Index, out[i].Index)
		assert.Equal(t, in[i].Text, out[i].Text)
		assert.InDelta(t, in[i].StartSeconds, out[i].StartSeconds, 0.001)
		assert.InDelta(t, in[i].EndSeconds, out[i].EndSeconds, 0.001)
	}
}

// The two formats must place every cue boundary on the same millisecond, so a
// file converted between them never drifts against the burned-in render.
func Test_FormatsAgreeOnBoundaries(t *testing.T) {
	in := formatSegments()

	fromSRT, err := ParseSRT(FormatSRT(in))
	assert.NoError(t, err)
	fromVTT, err := ParseVTT(FormatVTT(in))
	assert.NoError(t, err)

	for i := range fromSRT {
		assert.Equal(t, fromSRT[i].StartSeconds, fromVTT[i].StartSeconds)
		assert.Equal(t, fromSRT[i].EndSeconds, fromVTT[i].EndSeconds)
	}
}

func Test_ParseVTTRejectsMissingHeader(t *testing.T) {
	_, err := ParseVTT("1\n00:00:00.000 --> 00:00:01.000\nhello\n")
	assert.ErrorIs(t, err, ErrSegmentation)
}

func Test_ParseVTTSkipsNoteAndHourlessTimestamps(t *testing.T) {
	data := "WEBVTT\n\nNOTE internal\n\n00:01.500 --> 00:03.000\nhello there\n"
	out, err := ParseVTT(data)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.InDelta(t, 1.5, out[0].StartSeconds, 0.0001)
	assert.InDelta(t, 3.0, out[0].EndSeconds, 0.0001)
	assert.Equal(t, "hello there", out[0].Text)
}
