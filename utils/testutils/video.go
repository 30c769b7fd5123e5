package testutils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

type VideoGeneratorParams struct {
	Duration  float64
	FrameRate int
	Width     int
	Height    int
}

func GenerateVideoFile(outFile string, videoParams VideoGeneratorParams) string {
	_ = os.MkdirAll(filepath.Dir(outFile), 0755)
	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=size=%dx%d:rate=%d:duration=%f", videoParams.Width, videoParams.Height, videoParams.FrameRate, videoParams.Duration),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y", outFile,
	}

	cmd := exec.Command("ffmpeg", args...)
	err := cmd.Run()
	if err != nil {
		panic(err)
	}

	return outFile
}
