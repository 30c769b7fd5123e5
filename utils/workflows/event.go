package wfutils

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
)

func PublishEvent[T any](ctx workflow.Context, eventName string, data T) error {
	id, err := UUIDString(ctx)
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(id)
	event.SetSpecVersion(cloudevents.VersionV1)
	event.SetSource("media-assembly")
	event.SetType(eventName)
	err = event.SetData(
		cloudevents.ApplicationJSON,
		data,
	)
	if err != nil {
		return err
	}

	return Execute[any, *activities.PublishResult](ctx, activities.PubsubPublish, event).Wait(ctx)
}
