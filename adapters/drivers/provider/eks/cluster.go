package eks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	awseksapi "github.com/pulumi/pulumi-aws/sdk/v6/go/aws/eks"
	awseks "github.com/pulumi/pulumi-eks/sdk/v2/go/eks"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// clusterResources carries outputs of the EKS cluster layer consumed by
// IRSA roles, the Kubernetes provider and the stack exports. Component
// is nil when the cluster came from a lookup.
type clusterResources struct {
	Component  *awseks.Cluster
	Name       pulumi.StringOutput
	Endpoint   pulumi.StringOutput
	Kubeconfig pulumi.StringOutput
	OidcArn    pulumi.StringOutput
	OidcURL    pulumi.StringOutput
}

// newCluster creates the EKS cluster with a managed node group and an
// OIDC provider for IRSA.
func newCluster(ctx *pulumi.Context, env *model.Environment, cluster *model.Cluster, net *networkResources) (*clusterResources, error) {
	if cluster == nil {
		return nil, fmt.Errorf("environment %s has no cluster definition", env.Name)
	}

	nodeCount := cluster.NodeCount
	if nodeCount <= 0 {
		nodeCount = 2
	}
	nodeSize := cluster.NodeSize
	if nodeSize == "" {
		nodeSize = "t3.medium"
	}

	args := &awseks.ClusterArgs{
		Name:               pulumi.String(cluster.Name),
		VpcId:              net.VpcID,
		PublicSubnetIds:    net.PublicSubnetIDs,
		PrivateSubnetIds:   net.PrivateSubnetIDs,
		InstanceType:       pulumi.String(nodeSize),
		DesiredCapacity:    pulumi.Int(nodeCount),
		MinSize:            pulumi.Int(1),
		MaxSize:            pulumi.Int(nodeCount * 2),
		CreateOidcProvider: pulumi.Bool(true),
		Tags:               pulumi.ToStringMap(naming.Tags(env.Name)),
	}
	if cluster.Version != "" {
		args.Version = pulumi.String(cluster.Version)
	}

	component, err := awseks.NewCluster(ctx, cluster.Name, args)
	if err != nil {
		return nil, err
	}

	return &clusterResources{
		Component:  component,
		Name:       component.Core.Cluster().Name(),
		Endpoint:   component.Core.Endpoint(),
		Kubeconfig: component.KubeconfigJson,
		OidcArn:    component.Core.OidcProvider().Arn(),
		OidcURL:    component.Core.OidcProvider().Url(),
	}, nil
}

// lookupCluster resolves a cluster that was provisioned outside the
// stack. Nothing is created; the cluster's own VPC and subnets back
// the layers above it, and the destroy leaves the cluster running.
func lookupCluster(ctx *pulumi.Context, env *model.Environment, cluster *model.Cluster) (*clusterResources, *networkResources, error) {
	if cluster == nil || cluster.Name == "" {
		return nil, nil, fmt.Errorf("environment %s marks its cluster existing but gives no cluster name", env.Name)
	}

	res, err := awseksapi.LookupCluster(ctx, &awseksapi.LookupClusterArgs{Name: cluster.Name})
	if err != nil {
		return nil, nil, fmt.Errorf("look up cluster %s: %w", cluster.Name, err)
	}
	if len(res.Identities) == 0 || len(res.Identities[0].Oidcs) == 0 {
		return nil, nil, fmt.Errorf("cluster %s has no OIDC identity provider; IRSA roles need one", cluster.Name)
	}
	issuer := res.Identities[0].Oidcs[0].Issuer

	caller, err := aws.GetCallerIdentity(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	oidcArn := fmt.Sprintf("arn:aws:iam::%s:oidc-provider/%s", caller.AccountId, strings.TrimPrefix(issuer, "https://"))

	var caData string
	if len(res.CertificateAuthorities) > 0 {
		caData = res.CertificateAuthorities[0].Data
	}
	kubeconfig, err := execKubeconfig(res.Name, res.Endpoint, caData, env.Region)
	if err != nil {
		return nil, nil, fmt.Errorf("kubeconfig for cluster %s: %w", cluster.Name, err)
	}

	subnets := pulumi.ToStringArray(res.VpcConfig.SubnetIds)
	net := &networkResources{
		VpcID:            pulumi.String(res.VpcConfig.VpcId).ToStringOutput(),
		PublicSubnetIDs:  subnets,
		PrivateSubnetIDs: subnets,
	}
	cl := &clusterResources{
		Name:       pulumi.String(res.Name).ToStringOutput(),
		Endpoint:   pulumi.String(res.Endpoint).ToStringOutput(),
		Kubeconfig: pulumi.String(kubeconfig).ToStringOutput(),
		OidcArn:    pulumi.String(oidcArn).ToStringOutput(),
		OidcURL:    pulumi.String(issuer).ToStringOutput(),
	}
	return cl, net, nil
}

// execKubeconfig renders a kubeconfig that authenticates through
// "aws eks get-token", the same shape the managed path exports.
func execKubeconfig(name, endpoint, caData, region string) (string, error) {
	cfg := map[string]any{
		"apiVersion": "v1",
		"kind":       "Config",
		"clusters": []map[string]any{{
			"name": name,
			"cluster": map[string]any{
				"server":                     endpoint,
				"certificate-authority-data": caData,
			},
		}},
		"contexts": []map[string]any{{
			"name":    name,
			"context": map[string]any{"cluster": name, "user": name},
		}},
		"current-context": name,
		"users": []map[string]any{{
			"name": name,
			"user": map[string]any{
				"exec": map[string]any{
					"apiVersion": "client.authentication.k8s.io/v1beta1",
					"command":    "aws",
					"args":       []string{"eks", "get-token", "--cluster-name", name, "--region", region},
				},
			},
		}},
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
