package shotmap

import (
	"github.com/samber/lo"

	"github.com/reelkit/media-assembly/common"
)

// MappingDocument is the shot-to-caption mapping handed to downstream
// collaborators alongside the caption files.
type MappingDocument struct {
	TitleID       string          `json:"titleId"`
	TotalDuration float64         `json:"totalDuration"`
	Segments      []MappedSegment `json:"segments"`
}

type MappedSegment struct {
	Index      int                    `json:"index"`
	Text       string                 `json:"text"`
	Start      float64                `json:"start"`
	End        float64                `json:"end"`
	ShotNumber int                    `json:"shotNumber"`
	Words      []common.WordTimestamp `json:"words"`
}

func BuildMappingDocument(titleID string, segments []common.CaptionSegment, mappings []common.ShotMapping, totalDuration float64) MappingDocument {
	byIndex := lo.SliceToMap(mappings, func(m common.ShotMapping) (int, int) {
		return m.CaptionSegmentIndex, m.ShotNumber
	})

	doc := MappingDocument{
		TitleID:       titleID,
		TotalDuration: totalDuration,
	}
	for _, seg := range segments {
		doc.Segments = append(doc.Segments, MappedSegment{
			Index:      seg.Index,
			Text:       seg.Text,
			Start:      seg.StartSeconds,
			End:        seg.EndSeconds,
			ShotNumber: byIndex[seg.Index],
			Words:      seg.Words,
		})
	}
	return doc
}
