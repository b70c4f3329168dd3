package kube

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	helmdriver "helm.sh/helm/v3/pkg/storage/driver"
)

// HelmValues represents Helm chart values as a generic map.
// Keep it simple to interop with Helm SDK (yaml.Values).
type HelmValues map[string]any

// ChartSpec describes one Helm release to install or upgrade.
type ChartSpec struct {
	Release   string
	Chart     string
	RepoURL   string
	Version   string
	Namespace string
	Values    HelmValues
	// Timeout bounds the atomic install/upgrade. Zero means 5 minutes.
	Timeout time.Duration
}

// Installer provides common in-cluster install/uninstall operations.
// It is intended to be called from provider drivers' Install/Uninstall.
type Installer struct {
	Client *Client
	// Kubeconfig holds raw kubeconfig bytes used for Helm operations.
	// When empty, Helm-based operations will fail with an error.
	Kubeconfig []byte
}

// NewInstaller constructs an Installer with kube client and kubeconfig bytes.
func NewInstaller(c *Client, kubeconfig []byte) *Installer {
	return &Installer{Client: c, Kubeconfig: kubeconfig}
}

// writeTempKubeconfig writes kubeconfig bytes to a temporary file and returns its path
// and a cleanup function to remove it.
func writeTempKubeconfig(kubeconfig []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "searchops-kubeconfig-*.yaml")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp kubeconfig: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(kubeconfig); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("write temp kubeconfig: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("close temp kubeconfig: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

func (i *Installer) helmConfig(namespace string) (*action.Configuration, *cli.EnvSettings, func(), error) {
	if i == nil || i.Client == nil || i.Client.RESTConfig == nil {
		return nil, nil, nil, fmt.Errorf("kube installer is not initialized")
	}
	if len(i.Kubeconfig) == 0 {
		return nil, nil, nil, fmt.Errorf("kubeconfig is required for Helm operations")
	}
	kubeconfigPath, cleanup, err := writeTempKubeconfig(i.Kubeconfig)
	if err != nil {
		return nil, nil, nil, err
	}
	settings := cli.New()
	settings.KubeConfig = kubeconfigPath
	cfg := new(action.Configuration)
	if err := cfg.Init(settings.RESTClientGetter(), namespace, "secret", func(format string, v ...any) {}); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("init helm configuration: %w", err)
	}
	return cfg, settings, cleanup, nil
}

// InstallChart installs or upgrades a Helm release described by spec.
// Upgrade is attempted first; when the release doesn't exist it falls back
// to install (CLI-compatible behavior).
func (i *Installer) InstallChart(ctx context.Context, spec ChartSpec) error {
	if spec.Release == "" || spec.Chart == "" {
		return fmt.Errorf("chart spec requires release and chart names")
	}
	ns := spec.Namespace
	if ns == "" {
		ns = "default"
	}
	if err := i.Client.EnsureNamespace(ctx, ns); err != nil {
		return err
	}
	timeout := spec.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	cfg, settings, cleanup, err := i.helmConfig(ns)
	if err != nil {
		return err
	}
	defer cleanup()

	cpo := action.ChartPathOptions{RepoURL: spec.RepoURL, Version: spec.Version}
	chartPath, err := cpo.LocateChart(spec.Chart, settings)
	if err != nil {
		return fmt.Errorf("locate chart %s: %w", spec.Chart, err)
	}
	ch, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", spec.Chart, err)
	}

	up := action.NewUpgrade(cfg)
	up.Namespace = ns
	up.Atomic = true
	up.Wait = true
	up.Timeout = timeout

	values := map[string]any(spec.Values)
	if _, err := up.Run(spec.Release, ch, values); err != nil {
		// If release doesn't exist, perform install instead
		if stdErrors.Is(err, helmdriver.ErrNoDeployedReleases) {
			in := action.NewInstall(cfg)
			in.Namespace = ns
			in.ReleaseName = spec.Release
			in.Atomic = true
			in.Wait = true
			in.Timeout = timeout
			if _, ierr := in.Run(ch, values); ierr != nil {
				return fmt.Errorf("helm install %s: %w", spec.Release, ierr)
			}
			return nil
		}
		return fmt.Errorf("helm upgrade %s: %w", spec.Release, err)
	}
	return nil
}

// UninstallChart removes a Helm release. It's best-effort and idempotent.
func (i *Installer) UninstallChart(ctx context.Context, namespace, release string) error {
	ns := namespace
	if ns == "" {
		ns = "default"
	}
	cfg, _, cleanup, err := i.helmConfig(ns)
	if err != nil {
		return err
	}
	defer cleanup()

	un := action.NewUninstall(cfg)
	if _, err := un.Run(release); err != nil {
		// When the release doesn't exist, treat as success
		if stdErrors.Is(err, helmdriver.ErrReleaseNotFound) {
			return nil
		}
		return fmt.Errorf("helm uninstall %s: %w", release, err)
	}
	return nil
}

// WaitForDeploymentReady polls the deployment until at least one replica is ready or context timeout.
func (i *Installer) WaitForDeploymentReady(ctx context.Context, namespace, name string) error {
	if i == nil || i.Client == nil || i.Client.Clientset == nil {
		return fmt.Errorf("kube installer is not initialized")
	}
	// Lightweight poll loop without extra dependencies
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()
	timeout := time.NewTimer(5 * time.Minute)
	defer timeout.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout.C:
			return fmt.Errorf("timeout waiting for deployment %s/%s ready", namespace, name)
		case <-ticker.C:
			dep, err := i.Client.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
			if err != nil {
				if apierrors.IsNotFound(err) {
					continue
				}
				// transient error, keep polling
				continue
			}
			if dep.Status.ReadyReplicas >= 1 {
				return nil
			}
		}
	}
}
