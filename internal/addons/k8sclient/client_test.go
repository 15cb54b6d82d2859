package k8sclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

const roleAnnotation = "eks.amazonaws.com/role-arn"

func TestEnsureServiceAccount_CreatesWhenMissing(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	c := NewFromClientset(clientset)

	err := c.EnsureServiceAccount(context.Background(), "kube-system", "aws-load-balancer-controller", map[string]string{
		roleAnnotation: "arn:aws:iam::123456789012:role/ingress",
	})
	require.NoError(t, err)

	sa, err := clientset.CoreV1().ServiceAccounts("kube-system").Get(context.Background(), "aws-load-balancer-controller", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123456789012:role/ingress", sa.Annotations[roleAnnotation])
}

func TestEnsureServiceAccount_ConvergesAnnotations(t *testing.T) {
	clientset := fake.NewSimpleClientset(&corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "aws-load-balancer-controller",
			Namespace: "kube-system",
			Annotations: map[string]string{
				roleAnnotation: "arn:aws:iam::123456789012:role/stale",
				"unrelated":    "kept",
			},
		},
	})
	c := NewFromClientset(clientset)

	err := c.EnsureServiceAccount(context.Background(), "kube-system", "aws-load-balancer-controller", map[string]string{
		roleAnnotation: "arn:aws:iam::123456789012:role/current",
	})
	require.NoError(t, err)

	sa, err := clientset.CoreV1().ServiceAccounts("kube-system").Get(context.Background(), "aws-load-balancer-controller", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123456789012:role/current", sa.Annotations[roleAnnotation])
	assert.Equal(t, "kept", sa.Annotations["unrelated"])
}
