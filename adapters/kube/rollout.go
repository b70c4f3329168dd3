package kube

import (
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// AnnotationRestartedAt marks the pod template with the time of the last
// forced rollout, the same mechanism kubectl rollout restart uses.
const AnnotationRestartedAt = "searchops.dev/restarted-at"

// RestartDeployment patches the pod template annotation so the Deployment
// controller rolls all pods. Returns model.ErrServiceNotFound mapping is
// left to the caller; here a missing Deployment is a plain error.
func (c *Client) RestartDeployment(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	patch := fmt.Sprintf(
		`{"spec":{"template":{"metadata":{"annotations":{%q:%q}}}}}`,
		AnnotationRestartedAt, now,
	)
	_, err := c.Clientset.AppsV1().Deployments(namespace).Patch(
		ctx, name, types.StrategicMergePatchType, []byte(patch), metav1.PatchOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("deployment %s/%s not found", namespace, name)
	}
	if err != nil {
		return fmt.Errorf("restart deployment %s/%s: %w", namespace, name, err)
	}
	return nil
}
