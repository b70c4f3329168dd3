package kube

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/searchops/searchops/internal/naming"
)

// AnnotationSecretContentHash carries a short hash of the Secret data so
// rollouts can detect content changes without diffing the data itself.
const AnnotationSecretContentHash = "searchops.dev/secret-content-hash"

// AnnotationSecretSource records where a synced Secret was pulled from.
const AnnotationSecretSource = "searchops.dev/secret-source"

// SecretContentHash computes the canonical content hash for Secret data:
// keys sorted, key=value lines joined, short-hashed.
func SecretContentHash(data map[string][]byte) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.Write(data[k])
		b.WriteByte('\n')
	}
	return naming.ShortHash(b.String(), 6)
}

// ApplySecret creates or updates an Opaque Secret with the given data.
// The content hash and source annotations are set on every apply.
// Returns the action taken ("created", "updated" or "unchanged") and the hash.
func (c *Client) ApplySecret(ctx context.Context, namespace, name, source string, data map[string][]byte) (string, string, error) {
	if c == nil || c.Clientset == nil {
		return "", "", fmt.Errorf("kube client is not initialized")
	}
	hash := SecretContentHash(data)
	desired := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Annotations: map[string]string{
				AnnotationSecretContentHash: hash,
				AnnotationSecretSource:      source,
			},
			Labels: map[string]string{"app.kubernetes.io/managed-by": "searchops"},
		},
		Type: corev1.SecretTypeOpaque,
		Data: data,
	}

	existing, err := c.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		if _, err := c.Clientset.CoreV1().Secrets(namespace).Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			return "", "", fmt.Errorf("create secret %s/%s: %w", namespace, name, err)
		}
		return "created", hash, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	if existing.Annotations[AnnotationSecretContentHash] == hash {
		return "unchanged", hash, nil
	}
	existing.Data = data
	if existing.Annotations == nil {
		existing.Annotations = map[string]string{}
	}
	existing.Annotations[AnnotationSecretContentHash] = hash
	existing.Annotations[AnnotationSecretSource] = source
	if _, err := c.Clientset.CoreV1().Secrets(namespace).Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return "", "", fmt.Errorf("update secret %s/%s: %w", namespace, name, err)
	}
	return "updated", hash, nil
}

// DeleteSecret removes a Secret if it exists.
func (c *Client) DeleteSecret(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	err := c.Clientset.CoreV1().Secrets(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete secret %s/%s: %w", namespace, name, err)
	}
	return nil
}

// GetSecret fetches a Secret, returning nil without error when absent.
func (c *Client) GetSecret(ctx context.Context, namespace, name string) (*corev1.Secret, error) {
	if c == nil || c.Clientset == nil {
		return nil, fmt.Errorf("kube client is not initialized")
	}
	s, err := c.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	return s, nil
}
