package transcode

import (
	"fmt"
	"os"
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ffmpeg"
)

// libass renders styles against a 288-line script resolution by default,
// pixel margins scale down to that space.
const assPlayResY = 288

// ComposeSubtitles overlays the caption file onto the assembled video in
// the configured mode: burned into the pixels or muxed as a timed-text
// stream. Mode off returns the input untouched.
func ComposeSubtitles(input common.SubtitleInput, cb ffmpeg.ProgressCallback) (*common.SubtitleResult, error) {
	switch input.Mode {
	case common.SubtitlesOff:
		return &common.SubtitleResult{OutputPath: input.VideoPath}, nil
	case common.SubtitlesSoft:
		return muxSoftSubtitles(input, cb)
	default:
		return burnInSubtitles(input, cb)
	}
}

// burnInSubtitles bakes the captions into the video with the subtitles
// filter. The force_style centers text at the bottom and keeps it above
// the configured safe margin so platform UI never covers it.
func burnInSubtitles(input common.SubtitleInput, cb ffmpeg.ProgressCallback) (*common.SubtitleResult, error) {
	info, err := ffmpeg.GetStreamInfo(input.VideoPath.Local())
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	marginV := input.SafeMarginPx
	if info.Height > 0 {
		marginV = input.SafeMarginPx * assPlayResY / info.Height
	}

	style := strings.Join([]string{
		fmt.Sprintf("FontName=%s", input.FontName),
		fmt.Sprintf("FontSize=%d", input.FontSize),
		"PrimaryColour=&H00FFFFFF",
		"OutlineColour=&H80000000",
		"BorderStyle=1",
		"Outline=2",
		"Alignment=2",
		fmt.Sprintf("MarginV=%d", marginV),
	}, ",")

	outputPath := input.DestinationPath.Append(subsFilename(input.VideoPath))

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", input.VideoPath.Local(),
		"-vf", fmt.Sprintf("subtitles='%s':force_style='%s'", escapeFilterPath(input.SubtitlePath.Local()), style),
		"-c:a", "copy",
		"-y", outputPath.Local(),
	}

	_, err = ffmpeg.Do(params, info, cb)
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &common.SubtitleResult{OutputPath: outputPath}, nil
}

func muxSoftSubtitles(input common.SubtitleInput, cb ffmpeg.ProgressCallback) (*common.SubtitleResult, error) {
	info, err := ffmpeg.GetStreamInfo(input.VideoPath.Local())
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	language := input.Language
	if language == "" {
		language = "und"
	}

	outputPath := input.DestinationPath.Append(subsFilename(input.VideoPath))

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", input.VideoPath.Local(),
		"-i", input.SubtitlePath.Local(),
		"-map", "0",
		"-map", "1:s",
		"-c", "copy",
		"-c:s", "mov_text",
		"-metadata:s:s:0", fmt.Sprintf("language=%s", language),
		"-y", outputPath.Local(),
	}

	_, err = ffmpeg.Do(params, info, cb)
	if err != nil {
		return nil, merry.Wrap(ErrEncode, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return &common.SubtitleResult{OutputPath: outputPath}, nil
}

func subsFilename(video paths.Path) string {
	base := video.Base()
	return base[:len(base)-len(video.Ext())] + ".subs" + video.Ext()
}

// escapeFilterPath escapes the characters the subtitles filter treats
// specially inside a quoted filename.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `'`, `\'`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return path
}
