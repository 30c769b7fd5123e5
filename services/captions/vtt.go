package captions

import (
	"os"
	"strconv"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
)

// FormatVTT renders segments as WebVTT cues. Boundaries match the SRT
// rendering of the same segments to the millisecond.
func FormatVTT(segments []common.CaptionSegment) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, seg := range segments {
		index := seg.Index
		if index == 0 {
			index = i + 1
		}
		sb.WriteString(strconv.Itoa(index))
		sb.WriteString("\n")
		sb.WriteString(formatTimestamp(seg.StartSeconds, '.'))
		sb.WriteString(" --> ")
		sb.WriteString(formatTimestamp(seg.EndSeconds, '.'))
		sb.WriteString("\n")
		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func WriteVTT(out paths.Path, segments []common.CaptionSegment) error {
	return os.WriteFile(out.Local(), []byte(FormatVTT(segments)), os.ModePerm)
}

// ParseVTT reads WebVTT cues back into segments, tolerating NOTE and STYLE
// blocks and hour-less timestamps.
func ParseVTT(data string) ([]common.CaptionSegment, error) {
	content := strings.ReplaceAll(data, "\r\n", "\n")
	content = strings.TrimSpace(content)

	header, _, found := strings.Cut(content, "\n")
	if !found {
		header = content
	}
	if !strings.HasPrefix(header, "WEBVTT") {
		return nil, merry.Wrap(ErrSegmentation, merry.AppendMessage("missing WEBVTT header"))
	}

	var segments []common.CaptionSegment
	blocks := strings.Split(content, "\n\n")
	for i, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(block, "WEBVTT") {
			continue
		}
		if strings.HasPrefix(block, "NOTE") || strings.HasPrefix(block, "STYLE") || strings.HasPrefix(block, "REGION") {
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
