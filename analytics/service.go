package analytics

import (
	"fmt"
	"sync"
	"time"

	r "github.com/rudderlabs/analytics-go/v4"
)

var (
	Instance *Service
	once     sync.Once
)

func Init(config Config) {
	once.Do(func() {
		Instance = newService(config)
	})
}

func GetService() *Service {
	return Instance
}

type Service struct {
	rudderClient r.Client
}

type Config struct {
	WriteKey  string
	DataPlane string
	Verbose   bool
}

func newService(config Config) *Service {
	if config.WriteKey == "" || config.DataPlane == "" {
		fmt.Printf("WARN: Rudderstack is not configured, data will not be sent to Rudderstack")
	}

	c, err := r.NewWithConfig(config.WriteKey,
		r.Config{
			DataPlaneUrl: config.DataPlane,
			Interval:     1 * time.Second,
			BatchSize:    100,
			Verbose:      config.Verbose,
			DisableGzip:  false,
		})

	if err != nil {
		fmt.Printf("FATAL: Failed to create rudderstack client: %v", err)
		panic(err)
	}

	return &Service{
		rudderClient: c,
	}
}

func (s *Service) track(event string, properties map[string]interface{}) {
	err := s.rudderClient.Enqueue(r.Track{
		Event:      event,
		UserId:     "analytics",
		Properties: properties,
	})

	if err != nil {
		fmt.Printf("WARN: Failed to enqueue %s event: %v\n", event, err)
	}
}

func (s *Service) WorkflowStarted(workflowType string, workflowID string, parentID string) {
	s.track("WorkflowStarted", map[string]interface{}{
		"workflowType": workflowType,
		"workflowId":   workflowID,
		"parentId":     parentID,
	})
}

func (s *Service) WorkflowFinished(workflowType string, workflowID string, parentID string, status string, executionTime int64) {
	s.track("WorkflowFinished", map[string]interface{}{
		"workflowType":  workflowType,
		"workflowId":    workflowID,
		"parentId":      parentID,
		"status":        status,
		"executionTime": executionTime,
	})
}

func (s *Service) ActivityStarted(activityName string, queue string, workflowID string) {
	s.track("ActivityStarted", map[string]interface{}{
		"activityName": activityName,
		"queue":        queue,
		"workflowId":   workflowID,
	})
}

func (s *Service) ActivityFinished(activityName string, workerId string, queue string, workflowID string, status string, executionTime int64) {
	s.track("ActivityFinished", map[string]interface{}{
		"activityName":  activityName,
		"workerId":      workerId,
		"queue":         queue,
		"workflowId":    workflowID,
		"status":        status,
		"executionTime": executionTime,
	})
}
