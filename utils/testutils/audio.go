package testutils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// HasFfmpeg reports whether the ffmpeg binary is available. Tests that
// synthesize media should skip when it is not.
func HasFfmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// GenerateToneAudioFile writes a stereo PCM wav with two merged sine tones.
// Panics on failure, tests depending on it cannot proceed anyway.
func GenerateToneAudioFile(outFile string, length float64) string {
	_ = os.MkdirAll(filepath.Dir(outFile), 0755)

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("sine=frequency=300:duration=%.2f:sample_rate=48000", length),
		"-f", "lavfi",
		"-i", fmt.Sprintf("sine=frequency=1000:duration=%.2f:sample_rate=48000", length),
		"-filter_complex", "[0:a][1:a]amerge=inputs=2[a]",
		"-map", "[a]",
		"-c:a", "pcm_s16le",
		"-y", outFile,
	}

	cmd := exec.Command("ffmpeg", args...)
	err := cmd.Run()
	if err != nil {
		panic(err)
	}

	return outFile
}

// GenerateSilenceAudioFile writes a stereo PCM wav containing only silence.
func GenerateSilenceAudioFile(outFile string, length float64) string {
	_ = os.MkdirAll(filepath.Dir(outFile), 0755)

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=48000:duration=%.2f", length),
		"-c:a", "pcm_s16le",
		"-y", outFile,
	}

	cmd := exec.Command("ffmpeg", args...)
	err := cmd.Run()
	if err != nil {
		panic(err)
	}

	return outFile
}
