package workflows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/common"
)

type ProduceBatchTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env *testsuite.TestWorkflowEnvironment
}

func (s *ProduceBatchTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterWorkflow(ProduceVideo)
}

func (s *ProduceBatchTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func (s *ProduceBatchTestSuite) Test_CollectsAllResults() {
	first := testConfig()
	second := testConfig()
	second.TitleID = "ep002"

	s.env.OnWorkflow(ProduceVideo, mock.Anything, ProduceVideoParams{Config: first.Normalized()}).
		Return(&common.ProductionResult{TitleID: "ep001", Success: true}, nil)
	s.env.OnWorkflow(ProduceVideo, mock.Anything, ProduceVideoParams{Config: second.Normalized()}).
		Return(&common.ProductionResult{
			TitleID:      "ep002",
			Success:      false,
			ErrorStage:   "encode",
			ErrorMessage: "encode failed",
		}, nil)
	s.env.OnActivity(activities.NotifySimple, mock.Anything, mock.Anything).
		Return(&activities.NotifyResult{}, nil)

	s.env.ExecuteWorkflow(ProduceBatch, ProduceBatchParams{
		Configs: []common.ProductionConfig{first.Normalized(), second.Normalized()},
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result BatchResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.Len(result.Results, 2)
	s.Equal(1, result.Succeeded)
	s.Equal(1, result.Failed)
	s.Equal("ep001", result.Results[0].TitleID)
	s.Equal("encode", result.Results[1].ErrorStage)
}

func (s *ProduceBatchTestSuite) Test_DeadChildBecomesFailedResult() {
	config := testConfig()

	s.env.OnWorkflow(ProduceVideo, mock.Anything, mock.Anything).
		Return((*common.ProductionResult)(nil), errors.New("workflow terminated"))
	s.env.OnActivity(activities.NotifySimple, mock.Anything, mock.Anything).
		Return(&activities.NotifyResult{}, nil)

	s.env.ExecuteWorkflow(ProduceBatch, ProduceBatchParams{
		Configs: []common.ProductionConfig{config},
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result BatchResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.Len(result.Results, 1)
	s.Equal(0, result.Succeeded)
	s.Equal(1, result.Failed)
	s.Equal("workflow", result.Results[0].ErrorStage)
	s.Equal("ep001", result.Results[0].TitleID)
}

func Test_ProduceBatchTestSuite(t *testing.T) {
	suite.Run(t, new(ProduceBatchTestSuite))
}
