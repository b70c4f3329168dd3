package awsapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// BucketExists checks an S3 bucket via HeadBucket.
func (c *Client) BucketExists(ctx context.Context, name string) (bool, error) {
	if c == nil || c.S3 == nil {
		return false, fmt.Errorf("aws client is not initialized")
	}
	_, err := c.S3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err != nil {
		var nf *s3types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("head bucket %s: %w", name, err)
	}
	return true, nil
}

// QueueExists checks an SQS queue by resolving its URL.
func (c *Client) QueueExists(ctx context.Context, name string) (bool, error) {
	if c == nil || c.SQS == nil {
		return false, fmt.Errorf("aws client is not initialized")
	}
	_, err := c.SQS.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err != nil {
		var nf *sqstypes.QueueDoesNotExist
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("get queue url %s: %w", name, err)
	}
	return true, nil
}
