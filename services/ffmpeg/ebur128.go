package ffmpeg

import (
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/reelkit/media-assembly/utils"
)

type loudnormResult struct {
	InputIntegratedLoudnes string `json:"input_i"`
	InputTruePeak          string `json:"input_tp"`
	InputLoudnesRange      string `json:"input_lra"`
	InputThreshold         string `json:"input_thresh"`
}

type AnalyzeEBUR128Result struct {
	InputIntegratedLoudnes float64
	InputTruePeak          float64
	InputLoudnesRange      float64
	InputThreshold         float64
}

// floatOrZero parses a loudnorm measurement. Silence reports "-inf",
// which gets clamped to loudnorm's -99 floor so downstream math stays
// finite.
func floatOrZero(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	if math.IsInf(f, -1) {
		return -99
	}
	if math.IsInf(f, 1) || math.IsNaN(f) {
		return 0
	}
	return f
}

func AnalyzeEBUR128(path string) (*AnalyzeEBUR128Result, error) {
	cmd := exec.Command(
		"ffmpeg",
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-af", "loudnorm=print_format=json",
		"-f", "null",
		"-",
	)

	spew.Dump(strings.Join(cmd.Args, " "))
	result, err := utils.ExecuteAnalysisCmd(cmd, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't execute ffmpeg %s, %s", path, err.Error())
	}

	var analyzeResult loudnormResult
	err = json.Unmarshal([]byte(result), &analyzeResult)

	out := AnalyzeEBUR128Result{}
	out.InputIntegratedLoudnes = floatOrZero(analyzeResult.InputIntegratedLoudnes)
	out.InputTruePeak = floatOrZero(analyzeResult.InputTruePeak)
	out.InputLoudnesRange = floatOrZero(analyzeResult.InputLoudnesRange)
	out.InputThreshold = floatOrZero(analyzeResult.InputThreshold)

	return &out, err
}
