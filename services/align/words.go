package align

import (
	"fmt"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
)

// ValidateWords checks the ordering contract on an aligned word sequence.
// Start times must be non-decreasing and no word may overlap its successor.
func ValidateWords(words []common.WordTimestamp) error {
	for i, w := range words {
		if w.EndSeconds < w.StartSeconds {
			return merry.Wrap(ErrAlignment, merry.AppendMessage(fmt.Sprintf("word %d (%q) ends before it starts", i, w.Text)))
		}
		if i == 0 {
			continue
		}
		prev := words[i-1]
		if w.StartSeconds < prev.StartSeconds {
			return merry.Wrap(ErrAlignment, merry.AppendMessage(fmt.Sprintf("word %d (%q) starts before word %d", i, w.Text, i-1)))
		}
		if w.StartSeconds < prev.EndSeconds {
			return merry.Wrap(ErrAlignment, merry.AppendMessage(fmt.Sprintf("word %d (%q) overlaps word %d", i, w.Text, i-1)))
		}
	}
	return nil
}

// SplitScript tokenizes a narration script into spoken words, dropping
// anything that is only punctuation.
func SplitScript(script string) []string {
	fields := strings.Fields(script)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimFunc(f, func(r rune) bool {
			return !isWordRune(r)
		})
		if trimmed == "" {
			continue
		}
		words = append(words, trimmed)
	}
	return words
}

func isWordRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	// non-ASCII letters pass through untouched
	return r > 127
}

// CoverageShare reports how much of the script the alignment resolved, as a
// fraction of script word count. Partial alignments keep their prefix, this
// tells the caller how much is missing.
func CoverageShare(words []common.WordTimestamp, script string) float64 {
	scriptWords := SplitScript(script)
	if len(scriptWords) == 0 {
		return 1
	}
	share := float64(len(words)) / float64(len(scriptWords))
	if share > 1 {
		return 1
	}
	return share
}

// UniformWords synthesizes a word sequence from the script alone, spreading
// words evenly across the narration duration. Used when no alignment service
// is configured or the aligned prefix is too short to ship. Confidence is
// zero on every word so downstream stages know the timing is estimated.
func UniformWords(script string, durationSeconds float64, wordsPerMinute float64) []common.WordTimestamp {
	scriptWords := SplitScript(script)
	if len(scriptWords) == 0 {
		return nil
	}

	if durationSeconds <= 0 {
		if wordsPerMinute <= 0 {
			wordsPerMinute = 150
		}
		durationSeconds = float64(len(scriptWords)) / (wordsPerMinute / 60.0)
	}

	slice := durationSeconds / float64(len(scriptWords))
	out := make([]common.WordTimestamp, len(scriptWords))
	for i, w := range scriptWords {
		out[i] = common.WordTimestamp{
			Text:         w,
			StartSeconds: float64(i) * slice,
			EndSeconds:   float64(i+1) * slice,
			Confidence:   0,
		}
	}
	return out
}
