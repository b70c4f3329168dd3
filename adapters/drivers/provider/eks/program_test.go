package eks

import (
	"strings"
	"testing"

	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
)

// programMocks answers the AWS lookups the program issues for clusters
// provisioned outside the stack.
type programMocks struct{}

func (programMocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	return args.Name + "_id", args.Inputs, nil
}

func (programMocks) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	switch args.Token {
	case "aws:eks/getCluster:getCluster":
		return resource.NewPropertyMapFromMap(map[string]interface{}{
			"name":     "byo-cluster",
			"endpoint": "https://example.eks.us-west-2.amazonaws.com",
			"certificateAuthorities": []interface{}{
				map[string]interface{}{"data": "dGVzdC1jYQ=="},
			},
			"identities": []interface{}{
				map[string]interface{}{
					"oidcs": []interface{}{
						map[string]interface{}{"issuer": "https://oidc.eks.us-west-2.amazonaws.com/id/EXAMPLE"},
					},
				},
			},
			"vpcConfig": map[string]interface{}{
				"vpcId":     "vpc-0123456789abcdef0",
				"subnetIds": []interface{}{"subnet-1", "subnet-2", "subnet-3"},
			},
		}), nil
	case "aws:index/getCallerIdentity:getCallerIdentity":
		return resource.NewPropertyMapFromMap(map[string]interface{}{
			"accountId": "123456789012",
		}), nil
	}
	return resource.PropertyMap{}, nil
}

// A cluster marked existing must be looked up, not provisioned, so the
// program runs without creating cluster or network resources.
func TestStackProgram_ExistingCluster(t *testing.T) {
	env := &model.Environment{Name: "dev", Driver: "eks", Region: "us-west-2"}
	cluster := &model.Cluster{Name: "byo-cluster", Existing: true}

	err := pulumi.RunErr(
		stackProgram(env, cluster, nil, scopeCluster),
		pulumi.WithMocks("searchops", "searchops-dev", programMocks{}),
	)
	if err != nil {
		t.Fatalf("stackProgram with existing cluster: %v", err)
	}
}

func TestStackProgram_ExistingClusterNeedsName(t *testing.T) {
	env := &model.Environment{Name: "dev", Driver: "eks", Region: "us-west-2"}
	cluster := &model.Cluster{Existing: true}

	err := pulumi.RunErr(
		stackProgram(env, cluster, nil, scopeCluster),
		pulumi.WithMocks("searchops", "searchops-dev", programMocks{}),
	)
	if err == nil || !strings.Contains(err.Error(), "no cluster name") {
		t.Fatalf("expected missing-name error, got %v", err)
	}
}

// Unknown messaging kinds must fail the deploy instead of silently
// skipping the broker.
func TestStackProgram_UnsupportedMessaging(t *testing.T) {
	env := &model.Environment{
		Name:      "dev",
		Driver:    "eks",
		Region:    "us-west-2",
		Messaging: &model.Messaging{Kind: "kafka", Topics: []model.Topic{{Name: "documents"}}},
	}
	cluster := &model.Cluster{Name: "byo-cluster", Existing: true}

	err := pulumi.RunErr(
		stackProgram(env, cluster, nil, scopeInfra),
		pulumi.WithMocks("searchops", "searchops-dev", programMocks{}),
	)
	if err == nil || !strings.Contains(err.Error(), "not supported by the eks driver") {
		t.Fatalf("expected unsupported-messaging error, got %v", err)
	}
}

func TestExecKubeconfig(t *testing.T) {
	kc, err := execKubeconfig("byo-cluster", "https://example", "dGVzdA==", "us-west-2")
	if err != nil {
		t.Fatalf("execKubeconfig returned error: %v", err)
	}
	for _, want := range []string{
		`"server":"https://example"`,
		`"certificate-authority-data":"dGVzdA=="`,
		`"--cluster-name","byo-cluster"`,
		`"current-context":"byo-cluster"`,
	} {
		if !strings.Contains(kc, want) {
			t.Errorf("kubeconfig missing %s:\n%s", want, kc)
		}
	}
}
