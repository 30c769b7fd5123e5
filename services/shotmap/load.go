package shotmap

import (
	"os"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/gocarina/gocsv"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/utils"
)

type shotRow struct {
	ShotNumber       int     `csv:"shotNumber"`
	StartSeconds     float64 `csv:"startSeconds"`
	EndSeconds       float64 `csv:"endSeconds"`
	SceneDescription string  `csv:"sceneDescription"`
}

// LoadShotlist reads an authored shotlist file, JSON or CSV by extension,
// and validates it before returning.
func LoadShotlist(file paths.Path) (*common.Shotlist, error) {
	var list *common.Shotlist
	var err error
	switch strings.ToLower(file.Ext()) {
	case ".csv":
		list, err = loadShotlistCSV(file)
	default:
		list, err = loadShotlistJSON(file)
	}
	if err != nil {
		return nil, err
	}

	if list.TotalDuration == 0 && len(list.Shots) > 0 {
		list.TotalDuration = list.Shots[len(list.Shots)-1].EndSeconds
	}

	if err := ValidateShotlist(*list); err != nil {
		return nil, err
	}
	return list, nil
}

func loadShotlistJSON(file paths.Path) (*common.Shotlist, error) {
	list := &common.Shotlist{}
	err := utils.JsonFileToStruct(file.Local(), list)
	if err != nil {
		return nil, merry.Wrap(ErrShotMapping, merry.AppendMessage(err.Error()))
	}
	return list, nil
}

func loadShotlistCSV(file paths.Path) (*common.Shotlist, error) {
	f, err := os.Open(file.Local())
	if err != nil {
		return nil, merry.Wrap(ErrShotMapping, merry.AppendMessage(err.Error()))
	}
	defer f.Close()

	var rows []shotRow
	err = gocsv.UnmarshalFile(f, &rows)
	if err != nil {
		return nil, merry.Wrap(ErrShotMapping, merry.AppendMessage(err.Error()))
	}

	list := &common.Shotlist{}
	for _, r := range rows {
		list.Shots = append(list.Shots, common.Shot{
			ShotNumber:       r.ShotNumber,
			StartSeconds:     r.StartSeconds,
			EndSeconds:       r.EndSeconds,
			SceneDescription: r.SceneDescription,
		})
	}
	return list, nil
}
