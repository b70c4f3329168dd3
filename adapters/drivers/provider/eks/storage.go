package eks

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// bucketResources pairs a created bucket with its final name.
type bucketResources struct {
	Bucket pulumi.StringOutput // final bucket name
}

// newBuckets provisions the environment's S3 buckets: versioning as
// configured, AES256 server-side encryption, public access blocked, and
// an optional lifecycle expiry.
func newBuckets(ctx *pulumi.Context, env *model.Environment) (map[string]bucketResources, error) {
	out := map[string]bucketResources{}
	if env.Storage == nil {
		return out, nil
	}
	tags := pulumi.ToStringMap(naming.Tags(env.Name))

	for _, b := range env.Storage.Buckets {
		name := naming.BucketName(env.Name, b.Name)
		bucket, err := s3.NewBucketV2(ctx, name, &s3.BucketV2Args{
			Bucket: pulumi.String(name),
			Tags:   tags,
		})
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", b.Name, err)
		}

		versioning := "Suspended"
		if b.Versioned {
			versioning = "Enabled"
		}
		if _, err := s3.NewBucketVersioningV2(ctx, name+"-versioning", &s3.BucketVersioningV2Args{
			Bucket: bucket.ID(),
			VersioningConfiguration: &s3.BucketVersioningV2VersioningConfigurationArgs{
				Status: pulumi.String(versioning),
			},
		}); err != nil {
			return nil, err
		}

		if _, err := s3.NewBucketServerSideEncryptionConfigurationV2(ctx, name+"-encryption", &s3.BucketServerSideEncryptionConfigurationV2Args{
			Bucket: bucket.ID(),
			Rules: s3.BucketServerSideEncryptionConfigurationV2RuleArray{
				&s3.BucketServerSideEncryptionConfigurationV2RuleArgs{
					ApplyServerSideEncryptionByDefault: &s3.BucketServerSideEncryptionConfigurationV2RuleApplyServerSideEncryptionByDefaultArgs{
						SseAlgorithm: pulumi.String("AES256"),
					},
					BucketKeyEnabled: pulumi.Bool(true),
				},
			},
		}); err != nil {
			return nil, err
		}

		if _, err := s3.NewBucketPublicAccessBlock(ctx, name+"-public-access-block", &s3.BucketPublicAccessBlockArgs{
			Bucket:                bucket.ID(),
			BlockPublicAcls:       pulumi.Bool(true),
			BlockPublicPolicy:     pulumi.Bool(true),
			IgnorePublicAcls:      pulumi.Bool(true),
			RestrictPublicBuckets: pulumi.Bool(true),
		}); err != nil {
			return nil, err
		}

		if b.ExpireDays > 0 {
			if _, err := s3.NewBucketLifecycleConfigurationV2(ctx, name+"-lifecycle", &s3.BucketLifecycleConfigurationV2Args{
				Bucket: bucket.ID(),
				Rules: s3.BucketLifecycleConfigurationV2RuleArray{
					&s3.BucketLifecycleConfigurationV2RuleArgs{
						Id:     pulumi.String("expire-objects"),
						Status: pulumi.String("Enabled"),
						Expiration: &s3.BucketLifecycleConfigurationV2RuleExpirationArgs{
							Days: pulumi.Int(b.ExpireDays),
						},
					},
				},
			}); err != nil {
				return nil, err
			}
		}

		out[b.Name] = bucketResources{Bucket: bucket.Bucket}
	}
	return out, nil
}
