package activities

import (
	"context"
	"encoding/json"
	"os"

	"cloud.google.com/go/pubsub"
)

type PublishResult struct {
	MessageID string
}

func PubsubPublish(ctx context.Context, data any) (*PublishResult, error) {
	client, err := pubsub.NewClient(ctx, os.Getenv("PUBSUB_PROJECT_ID"))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	topic := client.Topic(os.Getenv("PUBSUB_TOPIC"))
	defer topic.Stop()

	msg, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	id, err := topic.Publish(ctx, &pubsub.Message{
		Data: msg,
	}).Get(ctx)
	if err != nil {
		return nil, err
	}

	return &PublishResult{
		MessageID: id,
	}, nil
}
