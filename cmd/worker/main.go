package main

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/analytics"
	"github.com/reelkit/media-assembly/environment"
	wfutils "github.com/reelkit/media-assembly/utils/workflows"
	"github.com/reelkit/media-assembly/workflows"
)

var utilActivities = []any{
	activities.MoveFile,
	activities.CopyFile,
	activities.CreateFolder,
	activities.WriteFile,
	activities.ReadFile,
	activities.DeletePath,
	activities.StandardizeFileName,
	activities.DeleteOldFiles,
	activities.AlignNarration,
	activities.UniformTranscript,
	activities.SegmentCaptionsActivity,
	activities.WriteCaptionFiles,
	activities.LoadShotlistActivity,
	activities.MapShots,
	activities.PlanMotion,
	activities.NotifySimple,
	activities.NotifyProductionCompleted,
	activities.NotifyProductionFailed,
	activities.DeliverFTP,
	activities.DeliverS3,
	activities.PubsubPublish,
}

var videoActivities = activities.GetVideoTranscodeActivities()

var audioActivities = activities.GetAudioTranscodeActivities()

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	analytics.Init(analytics.Config{
		WriteKey:  os.Getenv("RUDDERSTACK_WRITE_KEY"),
		DataPlane: os.Getenv("RUDDERSTACK_DATA_PLANE_URL"),
	})

	c, err := client.Dial(client.Options{
		HostPort:  os.Getenv("TEMPORAL_HOST_PORT"),
		Namespace: os.Getenv("TEMPORAL_NAMESPACE"),
		Logger:    newZerologAdapter(zlog.Logger),
	})

	if err != nil {
		panic(err)
	}

	defer c.Close()

	identity := os.Getenv("IDENTITY")
	if identity == "" {
		identity = "worker"
	}

	activityCountString := os.Getenv("ACTIVITY_COUNT")
	if activityCountString == "" {
		activityCountString = "5"
	}

	activityCount, err := strconv.Atoi(activityCountString)
	if err != nil {
		panic(err)
	}

	workerOptions := worker.Options{
		DeadlockDetectionTimeout:           time.Hour * 3,
		DisableRegistrationAliasing:        true, // Recommended according to readme, default false for backwards compatibility
		EnableSessionWorker:                true,
		Identity:                           identity,
		LocalActivityWorkerOnly:            false,
		MaxConcurrentActivityExecutionSize: activityCount,
		Interceptors: []interceptor.WorkerInterceptor{
			&wfutils.AnalyticsWorkerInterceptor{},
		},
	}

	registerWorker(c, environment.GetQueue(), workerOptions)
}

func registerWorker(c client.Client, queue string, options worker.Options) {
	w := worker.New(c, queue, options)

	switch queue {
	case environment.QueueDebug:
		for _, a := range utilActivities {
			w.RegisterActivity(a)
		}

		for _, a := range videoActivities {
			w.RegisterActivity(a)
		}

		for _, a := range audioActivities {
			w.RegisterActivity(a)
		}

		for _, wf := range workflows.WorkerWorkflows {
			w.RegisterWorkflow(wf)
		}
	case environment.QueueLowPriority:
		fallthrough
	case environment.QueueWorker:
		for _, a := range utilActivities {
			w.RegisterActivity(a)
		}

		for _, wf := range workflows.WorkerWorkflows {
			w.RegisterWorkflow(wf)
		}
	case environment.QueueVideo:
		for _, a := range videoActivities {
			w.RegisterActivity(a)
		}
	case environment.QueueAudio:
		for _, a := range audioActivities {
			w.RegisterActivity(a)
		}
	}

	err := w.Run(worker.InterruptCh())

	zlog.Info().Err(err).Msg("Worker finished")
}
