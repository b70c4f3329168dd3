package eks

import (
	"strings"
	"testing"

	"github.com/pulumi/pulumi/sdk/v3/go/auto"

	"github.com/searchops/searchops/domain/model"
)

func TestScopeStringRoundTrip(t *testing.T) {
	for _, s := range []deployScope{scopeCluster, scopeInfra, scopeAll} {
		if got := scopeFromString(scopeString(s)); got != s {
			t.Errorf("scope %d round-tripped to %d", s, got)
		}
	}
	if got := scopeFromString("bogus"); got != -1 {
		t.Errorf("expected -1 for unknown scope, got %d", got)
	}
}

func TestTopicNames(t *testing.T) {
	m := &model.Messaging{
		Kind:   "msk",
		Topics: []model.Topic{{Name: "documents", Partitions: 6}, {Name: "reindex"}},
	}
	names := topicNames(m)
	if strings.Join(names, ",") != "documents,reindex" {
		t.Errorf("unexpected topic names %v", names)
	}
	if got := topicNames(&model.Messaging{Kind: "msk"}); len(got) != 0 {
		t.Errorf("expected no names without topics, got %v", got)
	}
}

func TestOutputStrings(t *testing.T) {
	outs := auto.OutputMap{
		outClusterName:      {Value: "search-dev"},
		outBootstrapBrokers: {Value: "b-1:9098,b-2:9098"},
		"nodeCount":         {Value: 2},
		"empty":             {Value: nil},
	}
	m := outputStrings(outs)
	if m[outClusterName] != "search-dev" {
		t.Errorf("unexpected cluster name %q", m[outClusterName])
	}
	if m["nodeCount"] != "2" {
		t.Errorf("non-string values must be formatted, got %q", m["nodeCount"])
	}
	if _, ok := m["empty"]; ok {
		t.Error("nil values must be skipped")
	}
}
