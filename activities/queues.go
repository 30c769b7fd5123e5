package activities

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/samber/lo"

	"github.com/reelkit/media-assembly/environment"
)

func GetAudioTranscodeActivities() []any {
	return []any{
		MixAudioActivity,
		AnalyzeEBUR128Activity,
		AdjustAudioLevelActivity,
		AnalyzeFile,
	}
}

func GetVideoTranscodeActivities() []any {
	return []any{
		RenderKeyframeClipActivity,
		AssembleShotsActivity,
		ComposeSubtitlesActivity,
		FinalEncodeActivity,
	}
}

func getFunctionName(i any) string {
	if fullName, ok := i.(string); ok {
		return fullName
	}
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	elements := strings.Split(fullName, ".")
	shortName := elements[len(elements)-1]
	return strings.TrimSuffix(shortName, "-fm")
}

var audioActivities = lo.Map(GetAudioTranscodeActivities(), func(i any, _ int) string {
	return getFunctionName(i)
})

var videoActivities = lo.Map(GetVideoTranscodeActivities(), func(i any, _ int) string {
	return getFunctionName(i)
})

func GetQueueForActivity(activity any) string {
	f := getFunctionName(activity)
	if lo.Contains(audioActivities, f) {
		return environment.GetAudioQueue()
	}
	if lo.Contains(videoActivities, f) {
		return environment.GetVideoQueue()
	}
	return environment.GetWorkerQueue()
}
