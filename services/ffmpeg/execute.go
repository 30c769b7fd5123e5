package ffmpeg

import (
	"os/exec"

	"github.com/reelkit/media-assembly/utils"
)

func Do(arguments []string, info StreamInfo, progressCallback ProgressCallback) (string, error) {
	cmd := exec.Command("ffmpeg", arguments...)

	return utils.ExecuteCmd(cmd, parseProgressCallback(arguments, info, progressCallback))
}
