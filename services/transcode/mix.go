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

const (
	defaultDuckAttackMs  = 50
	defaultDuckReleaseMs = 400
)

// MixAudio combines narration, optional looped music and optional SFX cues
// into a single PCM track of exactly the narration's length. Narration is
// the only hard requirement: music or SFX that fail to probe are dropped
// from the graph with a note instead of failing the job. Loudness is
// normalized afterwards with the analyze/adjust pass, not here.
func MixAudio(input common.MixInput, cb ffmpeg.ProgressCallback) (*common.MixResult, error) {
	track := input.Track

	if track.NarrationPath.Path == "" {
		return nil, merry.Wrap(ErrAudioMix, merry.AppendMessage("narration path is empty"))
	}

	narrationInfo, err := ffmpeg.GetStreamInfo(track.NarrationPath.Local())
	if err != nil {
		return nil, merry.Wrap(ErrAudioMix, merry.AppendMessage(fmt.Sprintf("narration unreadable: %s", err.Error())))
	}
	if !narrationInfo.HasAudio || narrationInfo.TotalSeconds <= 0 {
		return nil, merry.Wrap(ErrAudioMix, merry.AppendMessage("narration has no audio or zero length"))
	}

	result := &common.MixResult{
		DurationSeconds: narrationInfo.TotalSeconds,
	}

	music := track.HasMusic()
	if music {
		info, err := ffmpeg.GetStreamInfo(track.MusicPath.Local())
		if err != nil || !info.HasAudio {
			music = false
			result.Notes = append(result.Notes, common.Note{
				Stage:   "audio_mix",
				Message: fmt.Sprintf("music %s unusable, mixing narration only", track.MusicPath.Base()),
			})
		}
	}

	var sfx []common.SFXCue
	for _, cue := range track.SFX {
		info, err := ffmpeg.GetStreamInfo(cue.Path.Local())
		if err != nil || !info.HasAudio {
			result.Notes = append(result.Notes, common.Note{
				Stage:   "audio_mix",
				Message: fmt.Sprintf("sfx %s unusable, skipped", cue.Path.Base()),
			})
			continue
		}
		sfx = append(sfx, cue)
	}

	params := []string{
		"-progress", "pipe:1",
		"-hide_banner",
		"-i", track.NarrationPath.Local(),
	}
	if music {
		// loop the music indefinitely, the amix duration=first trims it
		// to the narration
		params = append(params, "-stream_loop", "-1", "-i", track.MusicPath.Local())
	}
	for _, cue := range sfx {
		params = append(params, "-i", cue.Path.Local())
	}

	attack := input.DuckAttackMs
	if attack == 0 {
		attack = defaultDuckAttackMs
	}
	release := input.DuckReleaseMs
	if release == 0 {
		release = defaultDuckReleaseMs
	}

	filter := buildMixFilter(mixGraphParams{
		Music:         music,
		MusicVolume:   track.MusicVolume,
		Ducking:       track.DuckingEnabled,
		DuckAttackMs:  attack,
		DuckReleaseMs: release,
		SFXOffsets:    sfxOffsetsMs(sfx),
		SampleRate:    input.SampleRate,
	})

	outputPath := input.DestinationPath.Append(mixFilename(track.NarrationPath))

	params = append(params,
		"-filter_complex", filter,
		"-map", "[mix]",
		"-c:a", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", input.SampleRate),
		"-t", fmt.Sprintf("%.3f", narrationInfo.TotalSeconds),
		"-y", outputPath.Local(),
	)

	_, err = ffmpeg.Do(params, narrationInfo, cb)
	if err != nil {
		return nil, merry.Wrap(ErrAudioMix, merry.AppendMessage(err.Error()))
	}

	err = os.Chmod(outputPath.Local(), os.ModePerm)
	if err != nil {
		return nil, err
	}

	result.OutputPath = outputPath
	return result, nil
}

func mixFilename(narration paths.Path) string {
	base := narration.Base()
	return base[:len(base)-len(narration.Ext())] + "_mix.wav"
}

func sfxOffsetsMs(sfx []common.SFXCue) []int {
	out := make([]int, len(sfx))
	for i, cue := range sfx {
		out[i] = int(cue.OffsetSeconds * 1000)
	}
	return out
}

type mixGraphParams struct {
	Music         bool
	MusicVolume   float64
	Ducking       bool
	DuckAttackMs  int
	DuckReleaseMs int
	SFXOffsets    []int
	SampleRate    int
}

// buildMixFilter constructs the filter_complex for the mix. Input 0 is
// narration, input 1 music when present, SFX follow. With ducking the
// narration doubles as the sidechain key that compresses the music during
// active speech.
func buildMixFilter(p mixGraphParams) string {
	var parts []string
	mixTags := []string{"[nar]"}

	if p.Music && p.Ducking {
		parts = append(parts, fmt.Sprintf("[0:a]aresample=%d,asplit=2[nar][duckkey]", p.SampleRate))
		parts = append(parts, fmt.Sprintf("[1:a]aresample=%d,volume=%.2f[mus0]", p.SampleRate, p.MusicVolume))
		parts = append(parts, fmt.Sprintf(
			"[mus0][duckkey]sidechaincompress=threshold=0.015:ratio=8:attack=%d:release=%d[mus]",
			p.DuckAttackMs, p.DuckReleaseMs))
		mixTags = append(mixTags, "[mus]")
	} else if p.Music {
		parts = append(parts, fmt.Sprintf("[0:a]aresample=%d[nar]", p.SampleRate))
		parts = append(parts, fmt.Sprintf("[1:a]aresample=%d,volume=%.2f[mus]", p.SampleRate, p.MusicVolume))
		mixTags = append(mixTags, "[mus]")
	} else {
		parts = append(parts, fmt.Sprintf("[0:a]aresample=%d[nar]", p.SampleRate))
	}

	sfxInputOffset := 1
	if p.Music {
		sfxInputOffset = 2
	}
	for i, delay := range p.SFXOffsets {
		tag := fmt.Sprintf("[sfx%d]", i)
		parts = append(parts, fmt.Sprintf("[%d:a]aresample=%d,adelay=%d|%d%s",
			sfxInputOffset+i, p.SampleRate, delay, delay, tag))
		mixTags = append(mixTags, tag)
	}

	if len(mixTags) == 1 {
		parts[0] = strings.Replace(parts[0], "[nar]", "[mix]", 1)
		return strings.Join(parts, ";")
	}

	parts = append(parts, fmt.Sprintf("%samix=inputs=%d:duration=first:normalize=0[mix]",
		strings.Join(mixTags, ""), len(mixTags)))

	return strings.Join(parts, ";")
}
