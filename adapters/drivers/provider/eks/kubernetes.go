package eks

import (
	"github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes"
	corev1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/core/v1"
	metav1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/meta/v1"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// roleAnnotation is the IRSA annotation key on service accounts.
const roleAnnotation = "eks.amazonaws.com/role-arn"

// kubernetesResources groups the provider and namespace the in-cluster
// layers deploy into.
type kubernetesResources struct {
	Provider  *kubernetes.Provider
	Namespace *corev1.Namespace
}

// newKubernetes builds a Kubernetes provider from the generated
// kubeconfig and prepares the application namespace with the service
// accounts bound to their IRSA roles.
func newKubernetes(ctx *pulumi.Context, env *model.Environment, cl *clusterResources, irsa *irsaRoles) (*kubernetesResources, error) {
	var opts []pulumi.ResourceOption
	if cl.Component != nil {
		opts = append(opts, pulumi.DependsOn([]pulumi.Resource{cl.Component}))
	}
	provider, err := kubernetes.NewProvider(ctx, "cluster", &kubernetes.ProviderArgs{
		Kubeconfig: cl.Kubeconfig,
	}, opts...)
	if err != nil {
		return nil, err
	}

	ns := naming.Namespace(env.Name)
	namespace, err := corev1.NewNamespace(ctx, ns, &corev1.NamespaceArgs{
		Metadata: &metav1.ObjectMetaArgs{
			Name:   pulumi.String(ns),
			Labels: pulumi.ToStringMap(naming.Tags(env.Name)),
		},
	}, pulumi.Provider(provider))
	if err != nil {
		return nil, err
	}

	// Application service accounts. The indexer reads/writes buckets,
	// the writer publishes to queues; each gets its IRSA role.
	if irsa.Storage != nil {
		if _, err := newServiceAccount(ctx, provider, namespace, ns, "indexer", irsa.Storage.Arn); err != nil {
			return nil, err
		}
	}
	if irsa.Queues != nil {
		if _, err := newServiceAccount(ctx, provider, namespace, ns, "writer", irsa.Queues.Arn); err != nil {
			return nil, err
		}
	}

	return &kubernetesResources{Provider: provider, Namespace: namespace}, nil
}

func newServiceAccount(ctx *pulumi.Context, provider *kubernetes.Provider, namespace *corev1.Namespace, ns, name string, roleArn pulumi.StringOutput) (*corev1.ServiceAccount, error) {
	return corev1.NewServiceAccount(ctx, ns+"-"+name, &corev1.ServiceAccountArgs{
		Metadata: &metav1.ObjectMetaArgs{
			Name:      pulumi.String(name),
			Namespace: pulumi.String(ns),
			Annotations: pulumi.StringMap{
				roleAnnotation: roleArn,
			},
		},
	}, pulumi.Provider(provider), pulumi.DependsOn([]pulumi.Resource{namespace}))
}
