package eks

import (
	"github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes"
	"github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/apiextensions"
	metav1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/meta/v1"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// newExternalSecrets wires the External Secrets Operator to Secrets
// Manager: one ClusterSecretStore for the environment, one
// ExternalSecret per sync entry.
func newExternalSecrets(ctx *pulumi.Context, env *model.Environment, k8s *kubernetesResources, charts *chartResources) error {
	if env.Secrets == nil || len(env.Secrets.Entries) == 0 {
		return nil
	}
	storeName := naming.StackName(env.Name)

	store, err := apiextensions.NewCustomResource(ctx, storeName+"-secret-store", &apiextensions.CustomResourceArgs{
		ApiVersion: pulumi.String("external-secrets.io/v1beta1"),
		Kind:       pulumi.String("ClusterSecretStore"),
		Metadata: &metav1.ObjectMetaArgs{
			Name: pulumi.String(storeName),
		},
		OtherFields: kubernetes.UntypedArgs{
			"spec": kubernetes.UntypedArgs{
				"provider": kubernetes.UntypedArgs{
					"aws": kubernetes.UntypedArgs{
						"service": "SecretsManager",
						"region":  env.Region,
						"auth": kubernetes.UntypedArgs{
							"jwt": kubernetes.UntypedArgs{
								"serviceAccountRef": kubernetes.UntypedArgs{
									"name":      extSecretsServiceAccount,
									"namespace": extSecretsNamespace,
								},
							},
						},
					},
				},
			},
		},
	}, pulumi.Provider(k8s.Provider), pulumi.DependsOnInputs(charts.ExtSecrets.Ready))
	if err != nil {
		return err
	}

	refreshInterval := env.Secrets.RefreshInterval
	if refreshInterval == "" {
		refreshInterval = "1h"
	}

	for _, e := range env.Secrets.Entries {
		ns := e.Namespace
		if ns == "" {
			ns = naming.Namespace(env.Name)
		}
		_, err := apiextensions.NewCustomResource(ctx, ns+"-"+e.TargetSecret, &apiextensions.CustomResourceArgs{
			ApiVersion: pulumi.String("external-secrets.io/v1beta1"),
			Kind:       pulumi.String("ExternalSecret"),
			Metadata: &metav1.ObjectMetaArgs{
				Name:      pulumi.String(e.TargetSecret),
				Namespace: pulumi.String(ns),
			},
			OtherFields: kubernetes.UntypedArgs{
				"spec": kubernetes.UntypedArgs{
					"refreshInterval": refreshInterval,
					"secretStoreRef": kubernetes.UntypedArgs{
						"name": storeName,
						"kind": "ClusterSecretStore",
					},
					"target": kubernetes.UntypedArgs{
						"name":           e.TargetSecret,
						"creationPolicy": "Owner",
					},
					"dataFrom": []kubernetes.UntypedArgs{{
						"extract": kubernetes.UntypedArgs{
							"key": naming.SecretName(env.Name, e.Name),
						},
					}},
				},
			},
		}, pulumi.Provider(k8s.Provider), pulumi.DependsOn([]pulumi.Resource{store, k8s.Namespace}))
		if err != nil {
			return err
		}
	}
	return nil
}
