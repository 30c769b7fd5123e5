package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/shotmap"
	"github.com/reelkit/media-assembly/utils"
)

type LoadShotlistParams struct {
	ShotlistPath paths.Path
}

func LoadShotlistActivity(ctx context.Context, input LoadShotlistParams) (*common.Shotlist, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "LoadShotlist")
	log.Info("Starting LoadShotlistActivity")

	list, err := shotmap.LoadShotlist(input.ShotlistPath)
	if err != nil {
		return nil, err
	}

	err = shotmap.ValidateShotlist(*list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

type MapShotsParams struct {
	TitleID         string
	Segments        []common.CaptionSegment
	Shotlist        common.Shotlist
	DestinationPath paths.Path
}

type MapShotsResult struct {
	Mappings     []common.ShotMapping
	DocumentPath paths.Path
}

// MapShots assigns every caption segment to exactly one shot and writes
// the mapping document for downstream review.
func MapShots(ctx context.Context, input MapShotsParams) (*MapShotsResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "MapShots")
	log.Info("Starting MapShotsActivity")

	mappings, err := shotmap.Map(input.Segments, input.Shotlist)
	if err != nil {
		return nil, err
	}

	doc := shotmap.BuildMappingDocument(input.TitleID, input.Segments, mappings, input.Shotlist.TotalDuration)
	docPath := input.DestinationPath.Append(input.TitleID + "_mapping.json")
	err = utils.StructToJsonFile(docPath.Local(), doc)
	if err != nil {
		return nil, err
	}

	return &MapShotsResult{
		Mappings:     mappings,
		DocumentPath: docPath,
	}, nil
}
