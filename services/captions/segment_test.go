package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelkit/media-assembly/common"
)

func spokenWords(texts []string, start, speech, pause float64) []common.WordTimestamp {
	words := make([]common.WordTimestamp, len(texts))
	at := start
	for i, t := range texts {
		words[i] = common.WordTimestamp{
			Text:         t,
			StartSeconds: at,
			EndSeconds:   at + speech,
			Confidence:   0.95,
		}
		at += speech + pause
	}
	return words
}

func Test_SegmentBounds(t *testing.T) {
	texts := strings.Fields("the quick brown fox jumps over the lazy dog runs far past the old red barn")
	words := spokenWords(texts, 0, 0.25, 0.25)

	c := common.DefaultCaptionConstraints()
	segments, err := Segment(words, c)
	assert.NoError(t, err)
	assert.Len(t, segments, 2)

	for i, seg := range segments {
		assert.GreaterOrEqual(t, seg.Duration(), c.MinDuration)
		assert.LessOrEqual(t, seg.Duration(), c.MaxDuration)
		assert.LessOrEqual(t, len(seg.Words), c.MaxWords)
		assert.LessOrEqual(t, len(seg.Text), c.MaxChars)
		assert.Equal(t, i+1, seg.Index)
		if i > 0 {
			gap := seg.StartSeconds - segments[i-1].EndSeconds
			assert.GreaterOrEqual(t, gap, c.Gap-0.0001)
		}
	}

	assert.Equal(t, "the quick brown fox jumps over the lazy", segments[0].Text)
	assert.Equal(t, "dog runs far past the old red barn", segments[1].Text)
}

func Test_SegmentMergesShortForward(t *testing.T) {
	words := []common.WordTimestamp{
		{Text: "supercalifragilistic", StartSeconds: 0, EndSeconds: 0.25},
		{Text: "expialidocious", StartSeconds: 0.25, EndSeconds: 0.5},
		{Text: "a", StartSeconds: 0.5, EndSeconds: 0.75},
		{Text: "b", StartSeconds: 0.75, EndSeconds: 1.0},
		{Text: "c", StartSeconds: 1.0, EndSeconds: 1.25},
		{Text: "d", StartSeconds: 1.25, EndSeconds: 1.5},
	}

	segments, err := Segment(words, common.DefaultCaptionConstraints())
	assert.NoError(t, err)
	assert.Len(t, segments, 1)
	assert.Equal(t, "supercalifragilistic expialidocious a b c d", segments[0].Text)
	assert.InDelta(t, 0.0, segments[0].StartSeconds, 0.0001)
	assert.InDelta(t, 1.5, segments[0].EndSeconds, 0.0001)
	assert.Len(t, segments[0].Words, 6)
}

func Test_SegmentStretchesShortTail(t *testing.T) {
	texts := strings.Fields("one two three four five six seven eight nine")
	words := spokenWords(texts, 0, 0.125, 0)

	segments, err := Segment(words, common.DefaultCaptionConstraints())
	assert.NoError(t, err)
	assert.Len(t, segments, 2)

	tail := segments[1]
	assert.Equal(t, "nine", tail.Text)
	assert.InDelta(t, 1.0, tail.StartSeconds, 0.0001)
	// stretched to the minimum display duration, nothing follows to stop it
	assert.InDelta(t, 1.8, tail.EndSeconds, 0.0001)
}

func Test_SegmentForceClosesLongWord(t *testing.T) {
	words := []common.WordTimestamp{
		{Text: "Nooooooo", StartSeconds: 0, EndSeconds: 6.0},
		{Text: "he", StartSeconds: 6.25, EndSeconds: 6.5},
		{Text: "said", StartSeconds: 6.5, EndSeconds: 6.75},
	}

	c := common.DefaultCaptionConstraints()
	segments, err := Segment(words, c)
	assert.NoError(t, err)
	assert.Len(t, segments, 2)

	// the drawn-out word keeps its own over-long caption
	assert.Equal(t, "Nooooooo", segments[0].Text)
	assert.Greater(t, segments[0].Duration(), c.MaxDuration)

	assert.Equal(t, "he said", segments[1].Text)
	assert.GreaterOrEqual(t, segments[1].Duration(), c.MinDuration)
}

func Test_SegmentRejectsOversizedWord(t *testing.T) {
	words := []common.WordTimestamp{
		{Text: strings.Repeat("x", 51), StartSeconds: 0, EndSeconds: 2},
	}
	_, err := Segment(words, common.DefaultCaptionConstraints())
	assert.ErrorIs(t, err, ErrSegmentation)
}

func Test_SegmentRejectsThreeLineWrap(t *testing.T) {
	words := []common.WordTimestamp{
		{Text: "sixteencharwords", StartSeconds: 0, EndSeconds: 1},
		{Text: "sixteencharacter", StartSeconds: 1, EndSeconds: 2},
		{Text: "sixteenlongwords", StartSeconds: 2, EndSeconds: 3},
	}
	_, err := Segment(words, common.DefaultCaptionConstraints())
	assert.ErrorIs(t, err, ErrSegmentation)
}

func Test_SegmentUnsatisfiableMinimum(t *testing.T) {
	// both captions too short, merge blocked by the character bound,
	// stretch blocked by the following caption
	words := []common.WordTimestamp{
		{Text: "supercalifragilistic", StartSeconds: 0, EndSeconds: 0.2},
		{Text: "expialidocious", StartSeconds: 0.2, EndSeconds: 0.4},
		{Text: "anthropomorphically", StartSeconds: 0.4, EndSeconds: 0.6},
		{Text: "incomprehensibilities", StartSeconds: 0.6, EndSeconds: 0.8},
	}
	_, err := Segment(words, common.DefaultCaptionConstraints())
	assert.ErrorIs(t, err, ErrSegmentation)
}

func Test_SegmentEmptyInput(t *testing.T) {
	segments, err := Segment(nil, common.DefaultCaptionConstraints())
	assert.NoError(t, err)
	assert.Empty(t, segments)
}

func Test_WrapLines(t *testing.T) {
	assert.Equal(t, []string{"short"}, WrapLines("short", 25))
	assert.Equal(t, []string{"the quick brown fox jumps", "over the lazy dog"}, WrapLines("the quick brown fox jumps over the lazy dog", 25))
	assert.Nil(t, WrapLines("", 25))
}
