package scheduled

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/paths"
	wfutils "github.com/reelkit/media-assembly/utils/workflows"
)

type CleanupResult struct {
	DeletedCount int
}

// CleanupTemp sweeps stale per-run scratch folders. Normally runs drop
// their own temp folder on completion, this catches the ones that died
// before the deferred cleanup fired.
func CleanupTemp(ctx workflow.Context) (*CleanupResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting temp files cleanup")

	ctx = workflow.WithActivityOptions(ctx, wfutils.GetDefaultActivityOptions())

	foldersToCleanup := map[string]time.Time{
		"/mnt/work/workflows/": workflow.Now(ctx).Add(-14 * 24 * time.Hour),
	}

	folders, err := wfutils.GetMapKeysSafely(ctx, foldersToCleanup)
	if err != nil {
		return nil, err
	}

	res := &CleanupResult{}

	for _, folder := range folders {
		olderThan := foldersToCleanup[folder]

		deleteResult, err := wfutils.ExecuteWithLowPrioQueue(ctx, activities.DeleteOldFiles, activities.DeleteOldFilesInput{
			Root:      paths.MustParse(folder),
			OlderThan: olderThan,
		}).Result(ctx)
		if err != nil {
			logger.Error("Error during temp files cleanup", "error", err)
			return nil, err
		}

		logger.Info("Deleted files", "count", deleteResult.DeletedCount)
		res.DeletedCount += deleteResult.DeletedCount
	}

	return res, nil
}
