package eks

import (
	"fmt"
	"strings"

	appsv1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/apps/v1"
	corev1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/core/v1"
	metav1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/meta/v1"
	networkingv1 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/networking/v1"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// newWorkloads deploys the application services and exposes the ones
// with an ingress host through a shared ALB. Returns the ALB hostname
// output, or nil when no service is exposed.
func newWorkloads(ctx *pulumi.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service, msg *messagingOutputs, buckets map[string]bucketResources, k8s *kubernetesResources) (pulumi.StringPtrInput, error) {
	ns := naming.Namespace(env.Name)
	var albHostname pulumi.StringPtrInput

	for _, svc := range services {
		labels := pulumi.StringMap{
			"app":                          pulumi.String(svc.Name),
			"app.kubernetes.io/managed-by": pulumi.String("searchops"),
		}

		env_ := serviceEnv(env, svc, msg, buckets)

		container := corev1.ContainerArgs{
			Name:  pulumi.String(svc.Name),
			Image: pulumi.String(svc.Image),
			Ports: corev1.ContainerPortArray{
				corev1.ContainerPortArgs{
					Name:          pulumi.String("http"),
					ContainerPort: pulumi.Int(svc.Port),
				},
			},
			Env: env_,
			ReadinessProbe: &corev1.ProbeArgs{
				HttpGet: &corev1.HTTPGetActionArgs{
					Path: pulumi.String("/readyz"),
					Port: pulumi.String("http"),
				},
			},
			LivenessProbe: &corev1.ProbeArgs{
				HttpGet: &corev1.HTTPGetActionArgs{
					Path: pulumi.String("/healthz"),
					Port: pulumi.String("http"),
				},
			},
		}

		podSpec := corev1.PodSpecArgs{
			Containers: corev1.ContainerArray{container},
		}
		if svc.ServiceAccount != "" {
			podSpec.ServiceAccountName = pulumi.String(svc.ServiceAccount)
		}

		replicas := svc.Replicas
		if replicas <= 0 {
			replicas = 1
		}

		deployment, err := appsv1.NewDeployment(ctx, ns+"-"+svc.Name, &appsv1.DeploymentArgs{
			Metadata: &metav1.ObjectMetaArgs{
				Name:      pulumi.String(svc.Name),
				Namespace: pulumi.String(ns),
				Labels:    labels,
			},
			Spec: appsv1.DeploymentSpecArgs{
				Replicas: pulumi.Int(replicas),
				Selector: &metav1.LabelSelectorArgs{
					MatchLabels: pulumi.StringMap{"app": pulumi.String(svc.Name)},
				},
				Template: &corev1.PodTemplateSpecArgs{
					Metadata: &metav1.ObjectMetaArgs{Labels: labels},
					Spec:     &podSpec,
				},
			},
		}, pulumi.Provider(k8s.Provider), pulumi.DependsOn([]pulumi.Resource{k8s.Namespace}))
		if err != nil {
			return albHostname, fmt.Errorf("deployment %s: %w", svc.Name, err)
		}

		service, err := corev1.NewService(ctx, ns+"-"+svc.Name, &corev1.ServiceArgs{
			Metadata: &metav1.ObjectMetaArgs{
				Name:      pulumi.String(svc.Name),
				Namespace: pulumi.String(ns),
				Labels:    labels,
			},
			Spec: &corev1.ServiceSpecArgs{
				Selector: pulumi.StringMap{"app": pulumi.String(svc.Name)},
				Ports: corev1.ServicePortArray{
					corev1.ServicePortArgs{
						Name:       pulumi.String("http"),
						Port:       pulumi.Int(svc.Port),
						TargetPort: pulumi.String("http"),
					},
				},
			},
		}, pulumi.Provider(k8s.Provider), pulumi.DependsOn([]pulumi.Resource{deployment}))
		if err != nil {
			return albHostname, fmt.Errorf("service %s: %w", svc.Name, err)
		}

		if svc.Ingress == nil || svc.Ingress.Host == "" {
			continue
		}

		ingress, err := newALBIngress(ctx, env, cluster, svc, ns, k8s, service)
		if err != nil {
			return albHostname, fmt.Errorf("ingress %s: %w", svc.Name, err)
		}
		if albHostname == nil {
			albHostname = ingress.Status.LoadBalancer().Ingress().Index(pulumi.Int(0)).Hostname()
		}
	}
	return albHostname, nil
}

// newALBIngress exposes one service through the shared ALB. All ingresses
// carry the same group annotation so the controller provisions a single
// load balancer for the environment.
func newALBIngress(ctx *pulumi.Context, env *model.Environment, cluster *model.Cluster, svc *model.Service, ns string, k8s *kubernetesResources, service *corev1.Service) (*networkingv1.Ingress, error) {
	scheme := "internet-facing"
	certARN := ""
	if cluster != nil && cluster.Ingress != nil {
		if cluster.Ingress.Scheme != "" {
			scheme = cluster.Ingress.Scheme
		}
		certARN = cluster.Ingress.CertificateARN
	}

	annotations := pulumi.StringMap{
		"alb.ingress.kubernetes.io/scheme":      pulumi.String(scheme),
		"alb.ingress.kubernetes.io/target-type": pulumi.String("ip"),
		"alb.ingress.kubernetes.io/group.name":  pulumi.String(naming.StackName(env.Name)),
	}
	if certARN != "" {
		annotations["alb.ingress.kubernetes.io/certificate-arn"] = pulumi.String(certARN)
		annotations["alb.ingress.kubernetes.io/listen-ports"] = pulumi.String(`[{"HTTP":80},{"HTTPS":443}]`)
		annotations["alb.ingress.kubernetes.io/ssl-redirect"] = pulumi.String("443")
	}

	pathPrefix := svc.Ingress.PathPrefix
	if pathPrefix == "" {
		pathPrefix = "/"
	}

	return networkingv1.NewIngress(ctx, ns+"-"+svc.Name, &networkingv1.IngressArgs{
		Metadata: &metav1.ObjectMetaArgs{
			Name:        pulumi.String(svc.Name),
			Namespace:   pulumi.String(ns),
			Annotations: annotations,
		},
		Spec: &networkingv1.IngressSpecArgs{
			IngressClassName: pulumi.String("alb"),
			Rules: networkingv1.IngressRuleArray{
				networkingv1.IngressRuleArgs{
					Host: pulumi.String(svc.Ingress.Host),
					Http: &networkingv1.HTTPIngressRuleValueArgs{
						Paths: networkingv1.HTTPIngressPathArray{
							networkingv1.HTTPIngressPathArgs{
								Path:     pulumi.String(pathPrefix),
								PathType: pulumi.String("Prefix"),
								Backend: &networkingv1.IngressBackendArgs{
									Service: &networkingv1.IngressServiceBackendArgs{
										Name: pulumi.String(svc.Name),
										Port: &networkingv1.ServiceBackendPortArgs{
											Number: pulumi.Int(svc.Port),
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}, pulumi.Provider(k8s.Provider), pulumi.DependsOn([]pulumi.Resource{service}))
}

// serviceEnv assembles the environment variables for one service: its
// configured values plus the messaging endpoints and bucket names the
// stack provisioned.
func serviceEnv(env *model.Environment, svc *model.Service, msg *messagingOutputs, buckets map[string]bucketResources) corev1.EnvVarArray {
	var vars corev1.EnvVarArray
	for k, v := range svc.Env {
		vars = append(vars, corev1.EnvVarArgs{
			Name:  pulumi.String(k),
			Value: pulumi.String(v),
		})
	}
	if msg != nil {
		if msg.BootstrapBrokers != nil {
			vars = append(vars, corev1.EnvVarArgs{
				Name:  pulumi.String("KAFKA_BOOTSTRAP_BROKERS"),
				Value: msg.BootstrapBrokers,
			})
		}
		for name, url := range msg.QueueURLs {
			vars = append(vars, corev1.EnvVarArgs{
				Name:  pulumi.String("QUEUE_URL_" + envKey(name)),
				Value: url,
			})
		}
	}
	for name, b := range buckets {
		vars = append(vars, corev1.EnvVarArgs{
			Name:  pulumi.String("BUCKET_" + envKey(name)),
			Value: b.Bucket,
		})
	}
	vars = append(vars,
		corev1.EnvVarArgs{
			Name:  pulumi.String("OTEL_SERVICE_NAME"),
			Value: pulumi.String(svc.Name),
		},
		corev1.EnvVarArgs{
			Name:  pulumi.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Value: pulumi.String("http://opentelemetry-collector.observability:4317"),
		},
	)
	return vars
}

func envKey(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}
