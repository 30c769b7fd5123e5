package s3

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

func newClient() *awss3.Client {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-north-1"
	}

	return awss3.New(awss3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			}, nil
		}),
	})
}

// Upload puts the local file at bucket/key. The whole file streams through
// a single PutObject, final renders stay well under the 5GB single-put cap.
func Upload(ctx context.Context, localPath, bucket, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func(file io.Closer) {
		_ = file.Close()
	}(file)

	client := newClient()
	_, err = client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}
