package kindlocal

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
)

const (
	ingressNamespace  = "ingress-nginx"
	kafkaNamespace    = "messaging"
	minioNamespace    = "storage"
	otelNamespace     = "observability"
	kafkaRelease      = "kafka"
	minioRelease      = "minio"
	otelRelease       = "otel-collector"
	ingressRelease    = "ingress-nginx"
	bitnamiRepo       = "https://charts.bitnami.com/bitnami"
	ingressNginxRepo  = "https://kubernetes.github.io/ingress-nginx"
	otelChartsRepo    = "https://open-telemetry.github.io/opentelemetry-helm-charts"
	kafkaBootstrapSvc = "kafka.messaging.svc.cluster.local:9092"
	minioEndpoint     = "http://minio.storage.svc.cluster.local:9000"
	otelEndpoint      = "http://otel-collector-opentelemetry-collector.observability.svc.cluster.local:4317"
)

// ClusterInstall installs the local stand-ins: ingress-nginx, Kafka,
// MinIO and the OpenTelemetry collector. Each release is idempotent.
func (d *driver) ClusterInstall(ctx context.Context, env *model.Environment, c *model.Cluster) error {
	logger := logging.FromContext(ctx)
	_, installer, err := d.kubeClient(ctx, c)
	if err != nil {
		return err
	}

	logger.Info(ctx, "installing ingress-nginx", "cluster", d.clusterName(c))
	if err := installer.InstallChart(ctx, kube.ChartSpec{
		Release:   ingressRelease,
		Chart:     "ingress-nginx",
		RepoURL:   ingressNginxRepo,
		Namespace: ingressNamespace,
		Values: kube.HelmValues{
			"controller": map[string]any{
				"hostPort": map[string]any{"enabled": true},
				"service":  map[string]any{"type": "NodePort"},
			},
		},
	}); err != nil {
		return fmt.Errorf("install ingress-nginx: %w", err)
	}

	if env.Messaging != nil && env.Messaging.Kind != "sqs" {
		logger.Info(ctx, "installing kafka", "cluster", d.clusterName(c))
		replicas := env.Messaging.Brokers
		if replicas <= 0 {
			replicas = 1
		}
		if err := installer.InstallChart(ctx, kube.ChartSpec{
			Release:   kafkaRelease,
			Chart:     "kafka",
			RepoURL:   bitnamiRepo,
			Namespace: kafkaNamespace,
			Values: kube.HelmValues{
				"controller": map[string]any{"replicaCount": replicas},
				"listeners": map[string]any{
					// Stub services speak plaintext locally.
					"client": map[string]any{"protocol": "PLAINTEXT"},
				},
			},
		}); err != nil {
			return fmt.Errorf("install kafka: %w", err)
		}
	}

	if env.Storage != nil && len(env.Storage.Buckets) > 0 {
		logger.Info(ctx, "installing minio", "cluster", d.clusterName(c))
		var bucketNames string
		for i, b := range env.Storage.Buckets {
			if i > 0 {
				bucketNames += ","
			}
			bucketNames += b.Name
		}
		if err := installer.InstallChart(ctx, kube.ChartSpec{
			Release:   minioRelease,
			Chart:     "minio",
			RepoURL:   bitnamiRepo,
			Namespace: minioNamespace,
			Values: kube.HelmValues{
				"defaultBuckets": bucketNames,
				"auth": map[string]any{
					"rootUser":     "searchops",
					"rootPassword": "searchops-local",
				},
				"mode": "standalone",
			},
		}); err != nil {
			return fmt.Errorf("install minio: %w", err)
		}
	}

	if env.Telemetry != nil {
		logger.Info(ctx, "installing otel collector", "cluster", d.clusterName(c))
		spec := kube.ChartSpec{
			Release:   otelRelease,
			Chart:     "opentelemetry-collector",
			RepoURL:   otelChartsRepo,
			Namespace: otelNamespace,
			Values: kube.HelmValues{
				"mode": "deployment",
				"config": map[string]any{
					"receivers": map[string]any{
						"otlp": map[string]any{
							"protocols": map[string]any{
								"grpc": map[string]any{"endpoint": "0.0.0.0:4317"},
								"http": map[string]any{"endpoint": "0.0.0.0:4318"},
							},
						},
					},
					"exporters": map[string]any{"debug": map[string]any{}},
					"service": map[string]any{
						"pipelines": map[string]any{
							"traces": map[string]any{
								"receivers": []string{"otlp"},
								"exporters": []string{"debug"},
							},
						},
					},
				},
			},
		}
		if env.Telemetry.CollectorVersion != "" {
			spec.Version = env.Telemetry.CollectorVersion
		}
		if err := installer.InstallChart(ctx, spec); err != nil {
			return fmt.Errorf("install otel collector: %w", err)
		}
	}

	return nil
}

// ClusterUninstall removes the installed components. Missing releases
// are treated as already uninstalled.
func (d *driver) ClusterUninstall(ctx context.Context, env *model.Environment, c *model.Cluster) error {
	_, installer, err := d.kubeClient(ctx, c)
	if err != nil {
		return err
	}
	for _, r := range []struct{ ns, release string }{
		{otelNamespace, otelRelease},
		{minioNamespace, minioRelease},
		{kafkaNamespace, kafkaRelease},
		{ingressNamespace, ingressRelease},
	} {
		if err := installer.UninstallChart(ctx, r.ns, r.release); err != nil {
			return err
		}
	}
	return nil
}
