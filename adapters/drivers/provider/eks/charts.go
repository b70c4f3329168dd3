package eks

import (
	"strings"

	helm "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/helm/v3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
)

// chartResources tracks the in-cluster Helm releases so later layers can
// order themselves after them.
type chartResources struct {
	ALBController *helm.Chart
	ExtSecrets    *helm.Chart
	Collector     *helm.Chart
	Installed     string
}

// installCharts deploys the in-cluster infrastructure components:
// aws-load-balancer-controller, external-secrets and the OpenTelemetry
// collector.
func installCharts(ctx *pulumi.Context, env *model.Environment, cl *clusterResources, irsa *irsaRoles, k8s *kubernetesResources) (*chartResources, error) {
	out := &chartResources{}
	var installed []string

	alb, err := helm.NewChart(ctx, "aws-load-balancer-controller", helm.ChartArgs{
		Namespace: pulumi.String(albControllerNamespace),
		Chart:     pulumi.String("aws-load-balancer-controller"),
		FetchArgs: helm.FetchArgs{
			Repo: pulumi.String("https://aws.github.io/eks-charts"),
		},
		Values: pulumi.Map{
			"clusterName": cl.Name,
			"region":      pulumi.String(env.Region),
			"serviceAccount": pulumi.Map{
				"create": pulumi.Bool(true),
				"name":   pulumi.String(albControllerServiceAccount),
				"annotations": pulumi.Map{
					roleAnnotation: irsa.ALBController.Arn,
				},
			},
		},
	}, pulumi.Provider(k8s.Provider))
	if err != nil {
		return nil, err
	}
	out.ALBController = alb
	installed = append(installed, "aws-load-balancer-controller")

	es, err := helm.NewChart(ctx, "external-secrets", helm.ChartArgs{
		Namespace: pulumi.String(extSecretsNamespace),
		Chart:     pulumi.String("external-secrets"),
		FetchArgs: helm.FetchArgs{
			Repo: pulumi.String("https://charts.external-secrets.io"),
		},
		Values: pulumi.Map{
			"installCRDs": pulumi.Bool(true),
			"serviceAccount": pulumi.Map{
				"create": pulumi.Bool(true),
				"name":   pulumi.String(extSecretsServiceAccount),
				"annotations": pulumi.Map{
					roleAnnotation: irsa.ExternalSecrets.Arn,
				},
			},
		},
	}, pulumi.Provider(k8s.Provider))
	if err != nil {
		return nil, err
	}
	out.ExtSecrets = es
	installed = append(installed, "external-secrets")

	if env.Telemetry != nil {
		values := pulumi.Map{
			"mode": pulumi.String("deployment"),
			"config": pulumi.Map{
				"receivers": pulumi.Map{
					"otlp": pulumi.Map{
						"protocols": pulumi.Map{
							"grpc": pulumi.Map{"endpoint": pulumi.String("0.0.0.0:4317")},
							"http": pulumi.Map{"endpoint": pulumi.String("0.0.0.0:4318")},
						},
					},
				},
				"exporters": collectorExporters(env.Telemetry),
				"service": pulumi.Map{
					"pipelines": pulumi.Map{
						"traces": pulumi.Map{
							"receivers": pulumi.StringArray{pulumi.String("otlp")},
							"exporters": collectorPipelineExporters(env.Telemetry),
						},
					},
				},
			},
		}
		chartArgs := helm.ChartArgs{
			Namespace: pulumi.String("observability"),
			Chart:     pulumi.String("opentelemetry-collector"),
			FetchArgs: helm.FetchArgs{
				Repo: pulumi.String("https://open-telemetry.github.io/opentelemetry-helm-charts"),
			},
			Values: values,
		}
		if env.Telemetry.CollectorVersion != "" {
			chartArgs.Version = pulumi.String(env.Telemetry.CollectorVersion)
		}
		col, err := helm.NewChart(ctx, "opentelemetry-collector", chartArgs, pulumi.Provider(k8s.Provider))
		if err != nil {
			return nil, err
		}
		out.Collector = col
		installed = append(installed, "opentelemetry-collector")
	}

	out.Installed = strings.Join(installed, ",")
	return out, nil
}

func collectorExporters(t *model.Telemetry) pulumi.Map {
	exporters := pulumi.Map{
		"debug": pulumi.Map{},
	}
	if t.Endpoint != "" {
		exporters["otlp"] = pulumi.Map{
			"endpoint": pulumi.String(t.Endpoint),
		}
	}
	return exporters
}

func collectorPipelineExporters(t *model.Telemetry) pulumi.StringArray {
	if t.Endpoint != "" {
		return pulumi.StringArray{pulumi.String("otlp")}
	}
	return pulumi.StringArray{pulumi.String("debug")}
}
