package workflows

import (
	"github.com/reelkit/media-assembly/workflows/scheduled"
)

var TriggerableWorkflows = []any{
	ProduceVideo,
	ProduceBatch,
	NormalizeAudioLevelWorkflow,
	scheduled.CleanupTemp,
}

var WorkerWorkflows = []any{
	ProduceVideo,
	ProduceBatch,
	NormalizeAudioLevelWorkflow,
	scheduled.CleanupTemp,
}
