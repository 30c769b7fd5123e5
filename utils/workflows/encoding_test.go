package wfutils

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
)

type UnitTestEncoding struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env *testsuite.TestWorkflowEnvironment
}

func (s *UnitTestEncoding) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
}

func (s *UnitTestEncoding) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

type testStruct struct {
	Name  string `json:"name"`
	Thing int    `json:"thing"`
}

func MarshalJSONTest(ctx workflow.Context) ([]byte, error) {
	return MarshalJson(ctx, testStruct{
		Name:  "test",
		Thing: 1,
	})
}

func UnmarshalJSONTest(ctx workflow.Context) (*testStruct, error) {
	return UnmarshalJson[testStruct](ctx, []byte("{\"name\":\"test\",\"thing\":1}"))
}

func (s *UnitTestEncoding) Test_MarshalJSON() {
	s.env.ExecuteWorkflow(MarshalJSONTest)

	var t []byte
	err := s.env.GetWorkflowResult(&t)

	s.NotEmpty(t)
	s.NoError(err)
	s.Equal("{\"name\":\"test\",\"thing\":1}", string(t))

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *UnitTestEncoding) Test_UnmarshalJSON() {
	s.env.ExecuteWorkflow(UnmarshalJSONTest)

	var t testStruct
	err := s.env.GetWorkflowResult(&t)

	s.NotEmpty(t)
	s.NoError(err)
	s.Equal(testStruct{
		Name:  "test",
		Thing: 1,
	}, t)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func TestEncodingSuite(t *testing.T) {
	suite.Run(t, new(UnitTestEncoding))
}
