// Package awsapi wraps the AWS SDK calls the tool makes outside of
// Pulumi: reading secrets for cluster sync and verifying that deployed
// control-plane resources (buckets, queues) actually exist.
package awsapi

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Client bundles the AWS service clients used by usecases and drivers.
type Client struct {
	Region         string
	SecretsManager *secretsmanager.Client
	S3             *s3.Client
	SQS            *sqs.Client
}

// New loads the default AWS configuration chain (env, shared config,
// instance metadata) for a region and constructs the service clients.
func New(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{
		Region:         cfg.Region,
		SecretsManager: secretsmanager.NewFromConfig(cfg),
		S3:             s3.NewFromConfig(cfg),
		SQS:            sqs.NewFromConfig(cfg),
	}, nil
}
