// Package awsx builds the shared AWS SDK configuration for the DynamoDB and
// S3 clients.
package awsx

import (
	"context"
	"fmt"

	appcfg "shop-server/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadConfig resolves the AWS configuration once at startup. With
// AWS_ENDPOINT set, static credentials are used so local stacks
// (dynamodb-local, minio) work without an instance profile.
func LoadConfig(ctx context.Context, cfg *appcfg.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSEndpoint != "" && cfg.AWSAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsCfg, nil
}
