package kube

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/searchops/searchops/domain/model"
)

// LabelManagedBy marks objects owned by this tool.
const LabelManagedBy = "app.kubernetes.io/managed-by"

// WorkloadSpec carries everything needed to materialize one service's
// Deployment, Service and optional Ingress in a namespace.
type WorkloadSpec struct {
	Namespace        string
	Service          *model.Service
	Labels           map[string]string
	EnvFromSecret    string
	IngressClassName string
	OTLPEndpoint     string
}

func workloadLabels(spec WorkloadSpec) map[string]string {
	labels := map[string]string{
		"app":                    spec.Service.Name,
		"app.kubernetes.io/name": spec.Service.Name,
		LabelManagedBy:           "searchops",
	}
	for k, v := range spec.Labels {
		labels[k] = v
	}
	return labels
}

// ApplyWorkload creates or updates the Deployment and Service for one
// application service. The Deployment pod template wires environment
// variables from the service spec, an optional envFrom Secret, and the
// OTLP endpoint for trace export.
func (c *Client) ApplyWorkload(ctx context.Context, spec WorkloadSpec) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if spec.Service == nil {
		return fmt.Errorf("workload spec requires a service")
	}
	labels := workloadLabels(spec)

	dep := buildDeployment(spec, labels)
	if err := c.createOrUpdateDeployment(ctx, spec.Namespace, dep); err != nil {
		return err
	}
	svc := buildService(spec, labels)
	if err := c.createOrUpdateService(ctx, spec.Namespace, svc); err != nil {
		return err
	}
	if spec.Service.Ingress != nil && spec.Service.Ingress.Host != "" {
		ing := buildIngress(spec, labels)
		if err := c.createOrUpdateIngress(ctx, spec.Namespace, ing); err != nil {
			return err
		}
	}
	return nil
}

// DeleteWorkload removes workload resources for a service. Missing
// resources are ignored.
func (c *Client) DeleteWorkload(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if err := c.Clientset.NetworkingV1().Ingresses(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete ingress %s/%s: %w", namespace, name, err)
	}
	if err := c.Clientset.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete service %s/%s: %w", namespace, name, err)
	}
	if err := c.Clientset.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete deployment %s/%s: %w", namespace, name, err)
	}
	return nil
}

func buildDeployment(spec WorkloadSpec, labels map[string]string) *appsv1.Deployment {
	s := spec.Service
	replicas := int32(s.Replicas)
	if replicas <= 0 {
		replicas = 1
	}
	var env []corev1.EnvVar
	for k, v := range s.Env {
		env = append(env, corev1.EnvVar{Name: k, Value: v})
	}
	if spec.OTLPEndpoint != "" {
		env = append(env, corev1.EnvVar{Name: "OTEL_EXPORTER_OTLP_ENDPOINT", Value: spec.OTLPEndpoint})
	}
	env = append(env, corev1.EnvVar{Name: "OTEL_SERVICE_NAME", Value: s.Name})

	var envFrom []corev1.EnvFromSource
	if spec.EnvFromSecret != "" {
		envFrom = append(envFrom, corev1.EnvFromSource{
			SecretRef: &corev1.SecretEnvSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: spec.EnvFromSecret},
			},
		})
	}

	container := corev1.Container{
		Name:    s.Name,
		Image:   s.Image,
		Ports:   []corev1.ContainerPort{{Name: "http", ContainerPort: int32(s.Port)}},
		Env:     env,
		EnvFrom: envFrom,
		ReadinessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/readyz", Port: intstr.FromString("http")},
			},
			InitialDelaySeconds: 2,
			PeriodSeconds:       5,
		},
		LivenessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/healthz", Port: intstr.FromString("http")},
			},
			InitialDelaySeconds: 5,
			PeriodSeconds:       10,
		},
	}
	if len(s.Resources) > 0 {
		container.Resources = buildResources(s.Resources)
	}

	podSpec := corev1.PodSpec{Containers: []corev1.Container{container}}
	if s.ServiceAccount != "" {
		podSpec.ServiceAccountName = s.ServiceAccount
	}

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.Name,
			Namespace: spec.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": s.Name}},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec:       podSpec,
			},
		},
	}
}

// buildResources maps resource keys (cpu, memory, cpu_limit, memory_limit)
// onto Kubernetes requests and limits. Quantities that fail to parse are
// skipped rather than aborting the whole apply.
func buildResources(r map[string]string) corev1.ResourceRequirements {
	req := corev1.ResourceRequirements{
		Requests: corev1.ResourceList{},
		Limits:   corev1.ResourceList{},
	}
	set := func(list corev1.ResourceList, name corev1.ResourceName, v string) {
		q, err := resource.ParseQuantity(v)
		if err != nil {
			return
		}
		list[name] = q
	}
	if v := r["cpu"]; v != "" {
		set(req.Requests, corev1.ResourceCPU, v)
	}
	if v := r["memory"]; v != "" {
		set(req.Requests, corev1.ResourceMemory, v)
	}
	if v := r["cpu_limit"]; v != "" {
		set(req.Limits, corev1.ResourceCPU, v)
	}
	if v := r["memory_limit"]; v != "" {
		set(req.Limits, corev1.ResourceMemory, v)
	}
	return req
}

func buildService(spec WorkloadSpec, labels map[string]string) *corev1.Service {
	s := spec.Service
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.Name,
			Namespace: spec.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{"app": s.Name},
			Ports: []corev1.ServicePort{{
				Name:       "http",
				Port:       int32(s.Port),
				TargetPort: intstr.FromString("http"),
			}},
		},
	}
}

func buildIngress(spec WorkloadSpec, labels map[string]string) *networkingv1.Ingress {
	s := spec.Service
	pathType := networkingv1.PathTypePrefix
	prefix := s.Ingress.PathPrefix
	if prefix == "" {
		prefix = "/"
	}
	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.Name,
			Namespace: spec.Namespace,
			Labels:    labels,
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: s.Ingress.Host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     prefix,
							PathType: &pathType,
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: s.Name,
									Port: networkingv1.ServiceBackendPort{Number: int32(s.Port)},
								},
							},
						}},
					},
				},
			}},
		},
	}
	if spec.IngressClassName != "" {
		ing.Spec.IngressClassName = &spec.IngressClassName
	}
	return ing
}

func (c *Client) createOrUpdateDeployment(ctx context.Context, namespace string, dep *appsv1.Deployment) error {
	api := c.Clientset.AppsV1().Deployments(namespace)
	cur, err := api.Get(ctx, dep.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		if _, cerr := api.Create(ctx, dep, metav1.CreateOptions{}); cerr != nil {
			return fmt.Errorf("create deployment %s/%s: %w", namespace, dep.Name, cerr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get deployment %s/%s: %w", namespace, dep.Name, err)
	}
	dep.ResourceVersion = cur.ResourceVersion
	if _, err := api.Update(ctx, dep, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update deployment %s/%s: %w", namespace, dep.Name, err)
	}
	return nil
}

func (c *Client) createOrUpdateService(ctx context.Context, namespace string, svc *corev1.Service) error {
	api := c.Clientset.CoreV1().Services(namespace)
	cur, err := api.Get(ctx, svc.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		if _, cerr := api.Create(ctx, svc, metav1.CreateOptions{}); cerr != nil {
			return fmt.Errorf("create service %s/%s: %w", namespace, svc.Name, cerr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get service %s/%s: %w", namespace, svc.Name, err)
	}
	// ClusterIP is immutable; carry it over on update.
	svc.ResourceVersion = cur.ResourceVersion
	svc.Spec.ClusterIP = cur.Spec.ClusterIP
	if _, err := api.Update(ctx, svc, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update service %s/%s: %w", namespace, svc.Name, err)
	}
	return nil
}

func (c *Client) createOrUpdateIngress(ctx context.Context, namespace string, ing *networkingv1.Ingress) error {
	api := c.Clientset.NetworkingV1().Ingresses(namespace)
	cur, err := api.Get(ctx, ing.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		if _, cerr := api.Create(ctx, ing, metav1.CreateOptions{}); cerr != nil {
			return fmt.Errorf("create ingress %s/%s: %w", namespace, ing.Name, cerr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get ingress %s/%s: %w", namespace, ing.Name, err)
	}
	ing.ResourceVersion = cur.ResourceVersion
	if _, err := api.Update(ctx, ing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update ingress %s/%s: %w", namespace, ing.Name, err)
	}
	return nil
}
