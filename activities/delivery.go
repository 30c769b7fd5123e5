package activities

import (
	"context"
	gopath "path"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/paths"
	"github.com/reelkit/media-assembly/services/ftp"
	"github.com/reelkit/media-assembly/services/s3"
)

type DeliverFTPParams struct {
	Path      paths.Path
	RemoteDir string
}

type DeliverResult struct {
	RemotePath string
}

func DeliverFTP(ctx context.Context, input DeliverFTPParams) (*DeliverResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "DeliverFTP")
	log.Info("Starting DeliverFTPActivity")

	stop := simpleHeartBeater(ctx)
	defer close(stop)

	client, err := ftp.Delivery()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = client.Close()
	}()

	err = client.Upload(input.Path.Local(), input.RemoteDir, input.Path.Base())
	if err != nil {
		return nil, err
	}

	return &DeliverResult{
		RemotePath: gopath.Join(input.RemoteDir, input.Path.Base()),
	}, nil
}

type DeliverS3Params struct {
	Path   paths.Path
	Bucket string
	Key    string
}

func DeliverS3(ctx context.Context, input DeliverS3Params) (*DeliverResult, error) {
	log := activity.GetLogger(ctx)
	activity.RecordHeartbeat(ctx, "DeliverS3")
	log.Info("Starting DeliverS3Activity")

	stop := simpleHeartBeater(ctx)
	defer close(stop)

	key := input.Key
	if key == "" {
		key = input.Path.Base()
	}

	err := s3.Upload(ctx, input.Path.Local(), input.Bucket, key)
	if err != nil {
		return nil, err
	}

	return &DeliverResult{
		RemotePath: input.Bucket + "/" + key,
	}, nil
}
