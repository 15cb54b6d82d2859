// Package k8sclient provides the small slice of Kubernetes operations addon
// installation needs, built on k8s.io/client-go.
package k8sclient

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client performs the Kubernetes operations addons depend on.
type Client interface {
	// EnsureServiceAccount creates the service account or converges the
	// annotations of an existing one. Annotations not in the given map are
	// left alone.
	EnsureServiceAccount(ctx context.Context, namespace, name string, annotations map[string]string) error
}

type client struct {
	clientset kubernetes.Interface
}

// NewFromKubeconfig creates a Client from kubeconfig bytes, avoiding any
// temporary kubeconfig file.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config from kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	return &client{clientset: clientset}, nil
}

// NewFromClientset creates a Client from a pre-built clientset. Used by
// tests with fake clientsets.
func NewFromClientset(clientset kubernetes.Interface) Client {
	return &client{clientset: clientset}
}

func (c *client) EnsureServiceAccount(ctx context.Context, namespace, name string, annotations map[string]string) error {
	accounts := c.clientset.CoreV1().ServiceAccounts(namespace)

	existing, err := accounts.Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = accounts.Create(ctx, &corev1.ServiceAccount{
			ObjectMeta: metav1.ObjectMeta{
				Name:        name,
				Namespace:   namespace,
				Annotations: annotations,
			},
		}, metav1.CreateOptions{})
		if err != nil {
			return fmt.Errorf("failed to create service account %s/%s: %w", namespace, name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get service account %s/%s: %w", namespace, name, err)
	}

	if existing.Annotations == nil {
		existing.Annotations = make(map[string]string, len(annotations))
	}
	for k, v := range annotations {
		existing.Annotations[k] = v
	}
	if _, err := accounts.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update service account %s/%s: %w", namespace, name, err)
	}
	return nil
}
