package captions

import (
	"fmt"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
)

var ErrSegmentation = merry.Sentinel("caption segmentation failed")

// Segment groups aligned words into caption segments. Words accumulate
// greedily until the next word would break a bound (duration, word count,
// character count), then the segment closes at the last clause boundary in
// the accumulated run, or after the last accepted word when the run holds
// no boundary. Words past the close point carry over into the next caption.
// Consecutive captions keep at least the configured gap between them.
// Captions shorter than MinDuration merge into the following caption when
// the result stays within every bound, otherwise they stretch into the gap
// budget toward their reading-time target. A single word spanning more than
// MaxDuration gets a segment of its own.
func Segment(words []common.WordTimestamp, c common.CaptionConstraints) ([]common.CaptionSegment, error) {
	c = withDefaults(c)

	if c.MinDuration > c.MaxDuration {
		return nil, merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("min duration %.2f exceeds max duration %.2f", c.MinDuration, c.MaxDuration)))
	}

	if len(words) == 0 {
		return nil, nil
	}

	for _, w := range words {
		if len(w.Text) > c.MaxChars {
			return nil, merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("word %q exceeds the %d character bound", w.Text, c.MaxChars)))
		}
	}

	var segments []common.CaptionSegment

	i := 0
	for i < len(words) {
		// a word longer than the whole caption budget stands alone
		if words[i].Duration() > c.MaxDuration {
			segments = append(segments, segmentFromWords(words[i:i+1]))
			i++
			continue
		}

		chars := len(words[i].Text)
		j := i + 1
		for j < len(words) {
			w := words[j]
			if j-i+1 > c.MaxWords ||
				chars+1+len(w.Text) > c.MaxChars ||
				w.EndSeconds-words[i].StartSeconds > c.MaxDuration {
				break
			}
			chars += 1 + len(w.Text)
			j++
		}

		cut := j
		if j < len(words) {
			// closed on a violation, prefer the last clause boundary so
			// captions end where the sentence breathes
			if k := lastClauseEnd(words[i:j]); k >= 0 && i+k+1 < j {
				cut = i + k + 1
			}
		}

		segments = append(segments, segmentFromWords(words[i:cut]))
		i = cut
	}

	trimGaps(segments, c)

	segments, err := mergeOrStretchShort(segments, c)
	if err != nil {
		return nil, err
	}

	for i := range segments {
		segments[i].Index = i + 1
		if err := checkWrap(segments[i].Text, c.MaxChars); err != nil {
			return nil, err
		}
	}

	return segments, nil
}

func withDefaults(c common.CaptionConstraints) common.CaptionConstraints {
	def := common.DefaultCaptionConstraints()
	if c.MinDuration == 0 {
		c.MinDuration = def.MinDuration
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = def.MaxDuration
	}
	if c.MaxWords == 0 {
		c.MaxWords = def.MaxWords
	}
	if c.MaxChars == 0 {
		c.MaxChars = def.MaxChars
	}
	if c.Gap == 0 {
		c.Gap = def.Gap
	}
	if c.ReadingSpeedWPS == 0 {
		c.ReadingSpeedWPS = def.ReadingSpeedWPS
	}
	return c
}

// lastClauseEnd returns the index of the last word in the run that closes a
// clause, -1 when none does.
func lastClauseEnd(words []common.WordTimestamp) int {
	for k := len(words) - 1; k >= 0; k-- {
		if endsClause(words[k].Text) {
			return k
		}
	}
	return -1
}

func endsClause(text string) bool {
	text = strings.TrimRight(text, "\"'”’»)]")
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return strings.HasSuffix(text, "…")
}

func segmentFromWords(words []common.WordTimestamp) common.CaptionSegment {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return common.CaptionSegment{
		Text:         strings.Join(texts, " "),
		StartSeconds: words[0].StartSeconds,
		EndSeconds:   words[len(words)-1].EndSeconds,
		Words:        append([]common.WordTimestamp{}, words...),
	}
}

// trimGaps pulls caption ends back so consecutive captions never sit closer
// than the configured gap.
func trimGaps(segments []common.CaptionSegment, c common.CaptionConstraints) {
	for i := 0; i < len(segments)-1; i++ {
		limit := segments[i+1].StartSeconds - c.Gap
		if segments[i].EndSeconds > limit {
			segments[i].EndSeconds = limit
			if segments[i].EndSeconds < segments[i].StartSeconds {
				segments[i].EndSeconds = segments[i].StartSeconds
			}
		}
	}
}

// mergeOrStretchShort handles captions below MinDuration. Merging forward
// wins when the combined caption still fits every bound, otherwise the
// caption stretches toward its reading-time target as far as the gap to the
// next caption allows. A caption that still cannot reach MinDuration means
// the constraints cannot be satisfied for this input.
func mergeOrStretchShort(segments []common.CaptionSegment, c common.CaptionConstraints) ([]common.CaptionSegment, error) {
	out := make([]common.CaptionSegment, 0, len(segments))

	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg.Duration() >= c.MinDuration {
			out = append(out, seg)
			continue
		}

		if i+1 < len(segments) {
			merged, ok := tryMerge(seg, segments[i+1], c)
			if ok {
				segments[i+1] = merged
				continue
			}
		}

		target := float64(len(seg.Words)) / c.ReadingSpeedWPS
		if target < c.MinDuration {
			target = c.MinDuration
		}
		if target > c.MaxDuration {
			target = c.MaxDuration
		}

		limit := seg.StartSeconds + target
		if i+1 < len(segments) {
			nextLimit := segments[i+1].StartSeconds - c.Gap
			if limit > nextLimit {
				limit = nextLimit
			}
		}
		if limit > seg.EndSeconds {
			seg.EndSeconds = limit
		}

		if seg.Duration() < c.MinDuration {
			return nil, merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("caption %q cannot reach the %.2fs minimum duration", seg.Text, c.MinDuration)))
		}
		out = append(out, seg)
	}

	return out, nil
}

func tryMerge(a, b common.CaptionSegment, c common.CaptionConstraints) (common.CaptionSegment, bool) {
	if len(a.Words)+len(b.Words) > c.MaxWords {
		return common.CaptionSegment{}, false
	}
	if len(a.Text)+1+len(b.Text) > c.MaxChars {
		return common.CaptionSegment{}, false
	}
	if b.EndSeconds-a.StartSeconds > c.MaxDuration {
		return common.CaptionSegment{}, false
	}
	if len(WrapLines(a.Text+" "+b.Text, (c.MaxChars+1)/2)) > 2 {
		return common.CaptionSegment{}, false
	}

	words := append(append([]common.WordTimestamp{}, a.Words...), b.Words...)
	return common.CaptionSegment{
		Text:         a.Text + " " + b.Text,
		StartSeconds: a.StartSeconds,
		EndSeconds:   b.EndSeconds,
		Words:        words,
	}, true
}

// checkWrap verifies the caption fits two rendered lines. The renderer
// wraps greedily at half the character budget, so a text that needs a third
// line here would also need one on screen.
func checkWrap(text string, maxChars int) error {
	lines := WrapLines(text, (maxChars+1)/2)
	if len(lines) > 2 {
		return merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("caption %q wraps to %d lines", text, len(lines))))
	}
	return nil
}

// WrapLines splits text into display lines of at most lineLimit characters.
// A single word longer than the limit takes a line of its own.
func WrapLines(text string, lineLimit int) []string {
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > lineLimit {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
