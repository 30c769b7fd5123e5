package workflows

import (
	"fmt"

	"github.com/samber/lo"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/common"
	wfutils "github.com/reelkit/media-assembly/utils/workflows"
)

type ProduceBatchParams struct {
	Configs []common.ProductionConfig
}

type BatchResult struct {
	Results   []common.ProductionResult `json:"results"`
	Succeeded int                       `json:"succeeded"`
	Failed    int                       `json:"failed"`
}

// ProduceBatch fans every config out as a child ProduceVideo workflow and
// collects all results. Jobs are independent, a failed title never stops
// the rest, parallelism is bounded by the worker pool rather than here.
func ProduceBatch(ctx workflow.Context, params ProduceBatchParams) (*BatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting ProduceBatch", "jobs", len(params.Configs))

	var futures []workflow.ChildWorkflowFuture
	for i, config := range params.Configs {
		childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID: fmt.Sprintf("%s-%s-%d", workflow.GetInfo(ctx).WorkflowExecution.ID, config.TitleID, i),
			RetryPolicy: &temporal.RetryPolicy{
				MaximumAttempts: 1,
			},
		})
		futures = append(futures, workflow.ExecuteChildWorkflow(childCtx, ProduceVideo, ProduceVideoParams{
			Config: config,
		}))
	}

	result := &BatchResult{}
	for i, future := range futures {
		var jobResult common.ProductionResult
		err := future.Get(ctx, &jobResult)
		if err != nil {
			// ProduceVideo reports stage failures as data, so getting here
			// means the child itself died (timeout, termination)
			jobResult = common.ProductionResult{
				TitleID:      params.Configs[i].TitleID,
				Success:      false,
				ErrorStage:   "workflow",
				ErrorMessage: err.Error(),
			}
		}
		result.Results = append(result.Results, jobResult)
	}

	result.Succeeded = lo.CountBy(result.Results, func(r common.ProductionResult) bool {
		return r.Success
	})
	result.Failed = len(result.Results) - result.Succeeded

	logger.Info("Batch finished", "succeeded", result.Succeeded, "failed", result.Failed)

	if result.Failed > 0 {
		failed := lo.Filter(result.Results, func(r common.ProductionResult, _ int) bool {
			return !r.Success
		})
		titles := lo.Map(failed, func(r common.ProductionResult, _ int) string {
			return r.TitleID
		})
		err := wfutils.NotifyTelegramChannel(ctx, fmt.Sprintf(
			"Batch finished with %d of %d titles failed: %v",
			result.Failed, len(result.Results), titles,
		))
		if err != nil {
			logger.Error("Failed to notify batch summary", "error", err)
		}
	}

	return result, nil
}
