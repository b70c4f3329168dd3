package kube

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeploymentStatus reports the observed state of one Deployment against
// the expectations recorded in the environment configuration.
type DeploymentStatus struct {
	Name            string `json:"name"`
	Namespace       string `json:"namespace"`
	Exists          bool   `json:"exists"`
	ReadyReplicas   int32  `json:"ready_replicas"`
	DesiredReplicas int32  `json:"desired_replicas"`
	Available       bool   `json:"available"`
	LabelsMatch     bool   `json:"labels_match"`
	PortMatch       bool   `json:"port_match"`
}

// CheckDeployment verifies a named Deployment exists and is available with
// the expected labels and container port.
func (c *Client) CheckDeployment(ctx context.Context, namespace, name string, labels map[string]string, port int) (*DeploymentStatus, error) {
	if c == nil || c.Clientset == nil {
		return nil, fmt.Errorf("kube client is not initialized")
	}
	st := &DeploymentStatus{Name: name, Namespace: namespace}

	dep, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deployment %s/%s: %w", namespace, name, err)
	}

	st.Exists = true
	st.ReadyReplicas = dep.Status.ReadyReplicas
	if dep.Spec.Replicas != nil {
		st.DesiredReplicas = *dep.Spec.Replicas
	}
	st.Available = st.DesiredReplicas > 0 && st.ReadyReplicas >= st.DesiredReplicas

	st.LabelsMatch = true
	for k, v := range labels {
		if dep.Labels[k] != v {
			st.LabelsMatch = false
			break
		}
	}

	if port > 0 {
		for _, ctn := range dep.Spec.Template.Spec.Containers {
			for _, p := range ctn.Ports {
				if int(p.ContainerPort) == port {
					st.PortMatch = true
				}
			}
		}
	} else {
		st.PortMatch = true
	}

	return st, nil
}

// SecretSynced reports whether a synced Secret exists and carries data.
func (c *Client) SecretSynced(ctx context.Context, namespace, name string) (bool, error) {
	s, err := c.GetSecret(ctx, namespace, name)
	if err != nil {
		return false, err
	}
	return s != nil && len(s.Data) > 0, nil
}

// IngressHostname returns the load balancer hostname assigned to an
// Ingress, or "" while the controller has not published one yet.
func (c *Client) IngressHostname(ctx context.Context, namespace, name string) (string, error) {
	if c == nil || c.Clientset == nil {
		return "", fmt.Errorf("kube client is not initialized")
	}
	ing, err := c.Clientset.NetworkingV1().Ingresses(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get ingress %s/%s: %w", namespace, name, err)
	}
	for _, lb := range ing.Status.LoadBalancer.Ingress {
		if lb.Hostname != "" {
			return lb.Hostname, nil
		}
		if lb.IP != "" {
			return lb.IP, nil
		}
	}
	return "", nil
}
