package naming

import (
	"strings"
	"testing"
)

func TestNewHashes_Deterministic(t *testing.T) {
	a := NewHashes("dev", "search", "reader")
	b := NewHashes("dev", "search", "reader")
	if a != b {
		t.Fatalf("NewHashes not deterministic: %+v vs %+v", a, b)
	}
	if len(a.Environment) != 6 || len(a.Cluster) != 6 || len(a.Service) != 6 {
		t.Errorf("unexpected hash lengths: %+v", a)
	}
	if a.Namespace != "searchops-dev" {
		t.Errorf("Namespace = %q, want searchops-dev", a.Namespace)
	}
}

func TestNewHashes_ScopeSensitivity(t *testing.T) {
	base := NewHashes("dev", "search", "reader")
	otherEnv := NewHashes("prod", "search", "reader")
	otherSvc := NewHashes("dev", "search", "writer")
	if base.Environment == otherEnv.Environment {
		t.Error("environment hash should differ across environments")
	}
	if base.Service == otherSvc.Service {
		t.Error("service hash should differ across services")
	}
	if base.Cluster != otherSvc.Cluster {
		t.Error("cluster hash should not depend on the service")
	}
}

func TestBucketName(t *testing.T) {
	name := BucketName("dev", "search-index")
	if !strings.HasPrefix(name, "search-index-dev-") {
		t.Errorf("BucketName = %q, want search-index-dev- prefix", name)
	}
	if name != BucketName("dev", "search-index") {
		t.Error("BucketName not deterministic")
	}
	if name == BucketName("prod", "search-index") {
		t.Error("BucketName should differ across environments")
	}
	if len(name) > 63 {
		t.Errorf("BucketName %q exceeds the S3 63-character limit", name)
	}
}

func TestQueueNames(t *testing.T) {
	if got := QueueName("dev", "ingest"); got != "searchops-dev-ingest" {
		t.Errorf("QueueName = %q", got)
	}
	if got := DeadLetterQueueName("dev", "ingest"); got != "searchops-dev-ingest-dlq" {
		t.Errorf("DeadLetterQueueName = %q", got)
	}
}

func TestTags(t *testing.T) {
	tags := Tags("prod")
	if tags["managed-by"] != "searchops" {
		t.Errorf("managed-by tag = %q", tags["managed-by"])
	}
	if tags["searchops/environment"] != "prod" {
		t.Errorf("environment tag = %q", tags["searchops/environment"])
	}
}
