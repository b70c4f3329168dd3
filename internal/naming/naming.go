package naming

// Package naming provides centralized generation of short deterministic
// hashes and resource names used across Kubernetes objects and cloud
// resource names / tags. Keeping the logic here allows future changes
// (length/algorithm) without touching call sites.

import (
	"crypto/sha1"
	"fmt"
)

// Hashes groups hierarchical short hashes derived from environment,
// cluster and service identifiers.
//
// Mapping (semantic scope -> field):
//
//	environment                  -> Environment
//	environment/cluster          -> Cluster
//	environment/cluster/service  -> Service
type Hashes struct {
	Environment string
	Cluster     string
	Service     string
	Namespace   string
}

// defaultLength defines the hex length of hashes (bits ~ length * 4).
const defaultLength = 6

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := fmt.Sprintf("%x", sum)
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// NewHashes computes hierarchical hashes for the given identifiers.
func NewHashes(environment, cluster, service string) Hashes {
	h := Hashes{
		Environment: ShortHash(environment, defaultLength),
		Cluster:     ShortHash(fmt.Sprintf("%s:%s", environment, cluster), defaultLength),
		Service:     ShortHash(fmt.Sprintf("%s:%s:%s", environment, cluster, service), defaultLength),
	}
	h.Namespace = Namespace(environment)
	return h
}

// StackName returns the canonical Pulumi stack name for an environment.
func StackName(environment string) string {
	return fmt.Sprintf("searchops-%s", environment)
}

// Namespace returns the Kubernetes namespace holding the application
// workloads of an environment.
func Namespace(environment string) string {
	return fmt.Sprintf("searchops-%s", environment)
}

// BucketName returns a globally scoped bucket name: the declared name
// suffixed with the environment and a short hash of both, keeping the
// declared prefix stable across deployments.
func BucketName(environment, bucket string) string {
	return fmt.Sprintf("%s-%s-%s", bucket, environment, ShortHash(fmt.Sprintf("%s:%s", environment, bucket), defaultLength))
}

// QueueName returns the SQS queue name for an environment.
func QueueName(environment, queue string) string {
	return fmt.Sprintf("searchops-%s-%s", environment, queue)
}

// DeadLetterQueueName returns the companion DLQ name for a queue.
func DeadLetterQueueName(environment, queue string) string {
	return QueueName(environment, queue) + "-dlq"
}

// SecretName returns the cloud secret store name for a declared secret.
func SecretName(environment, secret string) string {
	return fmt.Sprintf("searchops/%s/%s", environment, secret)
}

// Tags returns the canonical cloud resource tags applied to everything
// provisioned for an environment.
func Tags(environment string) map[string]string {
	return map[string]string{
		"managed-by":            "searchops",
		"searchops/environment": environment,
	}
}
