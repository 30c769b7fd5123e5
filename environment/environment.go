package environment

import (
	"os"
)

const (
	QueueWorker      = "worker"
	QueueVideo       = "video"
	QueueAudio       = "audio"
	QueueLowPriority = "low_priority"
	QueueDebug       = "debug"
)

var queue = os.Getenv("QUEUE")

func GetQueue() string {
	if queue != "" {
		return queue
	}
	return QueueWorker
}

func GetWorkerQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueWorker
}

func GetVideoQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueVideo
}

func GetAudioQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueAudio
}

func GetLowPriorityQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueLowPriority
}

var assetMountPrefix = os.Getenv("ASSET_MOUNT_PREFIX")

func GetAssetMountPrefix() string {
	// For local testing
	if assetMountPrefix != "" {
		return assetMountPrefix
	}
	return "/mnt/assets"
}

var workMountPrefix = os.Getenv("WORK_MOUNT_PREFIX")

func GetWorkMountPrefix() string {
	// For local testing
	if workMountPrefix != "" {
		return workMountPrefix
	}
	return "/mnt/work"
}

var outputMountPrefix = os.Getenv("OUTPUT_MOUNT_PREFIX")

func GetOutputMountPrefix() string {
	// For local testing
	if outputMountPrefix != "" {
		return outputMountPrefix
	}
	return "/mnt/output"
}

var speechServiceBaseURL = os.Getenv("SPEECH_SERVICE_URL")

// GetSpeechServiceBaseURL returns the base URL of the word alignment
// service. Empty means alignment falls back to script-derived timing.
func GetSpeechServiceBaseURL() string {
	return speechServiceBaseURL
}
