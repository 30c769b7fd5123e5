package captions

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
)

// Timestamps go through whole milliseconds in both directions so converting
// between the caption file formats never drifts.
func toMillis(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

func formatTimestamp(seconds float64, msSeparator byte) string {
	ms := toMillis(seconds)
	hours := ms / 3600000
	minutes := ms / 60000 % 60
	wholeSeconds := ms / 1000 % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, wholeSeconds, msSeparator, millis)
}

func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	hms := strings.Split(timeParts[0], ":")
	var hours, minutes, seconds int
	var errH, errM, errS error
	switch len(hms) {
	case 3:
		hours, errH = strconv.Atoi(hms[0])
		minutes, errM = strconv.Atoi(hms[1])
		seconds, errS = strconv.Atoi(hms[2])
	case 2:
		// WebVTT allows dropping the hour
		minutes, errM = strconv.Atoi(hms[0])
		seconds, errS = strconv.Atoi(hms[1])
	default:
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return float64(hours*3600000+minutes*60000+seconds*1000+millis) / 1000, nil
}

// FormatSRT renders segments as numbered SRT blocks.
func FormatSRT(segments []common.CaptionSegment) string {
	var sb strings.Builder
	for i, seg := range segments {
		index := seg.Index
		if index == 0 {
			index = i + 1
		}
		sb.WriteString(strconv.Itoa(index))
		sb.WriteString("\n")
		sb.WriteString(formatTimestamp(seg.StartSeconds, ','))
		sb.WriteString(" --> ")
		sb.WriteString(formatTimestamp(seg.EndSeconds, ','))
		sb.WriteString("\n")
		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func WriteSRT(out paths.Path, segments []common.CaptionSegment) error {
	return os.WriteFile(out.Local(), []byte(FormatSRT(segments)), os.ModePerm)
}

// ParseSRT reads numbered SRT blocks back into segments. The block index is
// kept when present, re-numbered otherwise. Word-level timing is not part of
// the format and comes back empty.
func ParseSRT(data string) ([]common.CaptionSegment, error) {
	content := strings.ReplaceAll(data, "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	var segments []common.CaptionSegment
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		seg, err := parseBlock(block)
		if err != nil {
			return nil, err
		}
		if seg.Index == 0 {
			seg.Index = len(segments) + 1
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

func parseBlock(block string) (common.CaptionSegment, error) {
	lines := strings.Split(block, "\n")

	seg := common.CaptionSegment{}
	timingLine := -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			timingLine = i
			break
		}
	}
	if timingLine == -1 {
		return seg, merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("cue without timing line: %q", block)))
	}

	// anything before the timing line is a numeric index or a cue identifier
	for _, line := range lines[:timingLine] {
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			seg.Index = n
		}
	}

	parts := strings.Split(lines[timingLine], "-->")
	if len(parts) != 2 {
		return seg, merry.Wrap(ErrSegmentation, merry.AppendMessage(fmt.Sprintf("invalid timing line %q", lines[timingLine])))
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return seg, merry.Wrap(ErrSegmentation, merry.AppendMessage(err.Error()))
	}
	// cue settings may follow the end timestamp
	endText := strings.TrimSpace(parts[1])
	if idx := strings.IndexByte(endText, ' '); idx != -1 {
		endText = endText[:idx]
	}
	end, err := parseTimestamp(endText)
	if err != nil {
		return seg, merry.Wrap(ErrSegmentation, merry.AppendMessage(err.Error()))
	}

	seg.StartSeconds = start
	seg.EndSeconds = end
	seg.Text = strings.Join(lines[timingLine+1:], "\n")
	return seg, nil
}
