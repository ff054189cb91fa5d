package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"e2mcheck/internal/config"
	"e2mcheck/pkg/logging"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// APIResolver resolves addresses through the Kubernetes API.
type APIResolver struct {
	client    client.Client
	namespace string
}

// NewAPIResolver connects to the cluster named by cfg.Kubeconfig, or to the
// one controller-runtime discovers (KUBECONFIG, in-cluster, ~/.kube/config).
func NewAPIResolver(cfg config.ClusterConfig) (*APIResolver, error) {
	restConfig, err := restConfig(cfg.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	c, err := client.New(restConfig, client.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return NewAPIResolverWithClient(c, cfg.Namespace), nil
}

// NewAPIResolverWithClient wraps an existing client.
func NewAPIResolverWithClient(c client.Client, namespace string) *APIResolver {
	return &APIResolver{client: c, namespace: namespace}
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	return ctrl.GetConfig()
}

// ServiceIP returns the cluster IP of the named service.
func (a *APIResolver) ServiceIP(ctx context.Context, name string) (string, error) {
	var svc corev1.Service
	key := client.ObjectKey{Namespace: a.namespace, Name: name}
	if err := a.client.Get(ctx, key, &svc); err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("service %s/%s: %w", a.namespace, name, ErrNotFound)
		}
		return "", fmt.Errorf("failed to get service %s/%s: %w", a.namespace, name, err)
	}
	if !validIP(svc.Spec.ClusterIP) {
		return "", fmt.Errorf("service %s has no cluster IP: %w", name, ErrNotFound)
	}
	return svc.Spec.ClusterIP, nil
}

// PodName returns the first pod, by name, whose name starts with prefix.
func (a *APIResolver) PodName(ctx context.Context, prefix string) (string, error) {
	var pods corev1.PodList
	if err := a.client.List(ctx, &pods, client.InNamespace(a.namespace)); err != nil {
		return "", fmt.Errorf("failed to list pods in %s: %w", a.namespace, err)
	}

	names := make([]string, 0, len(pods.Items))
	for _, p := range pods.Items {
		if strings.HasPrefix(p.Name, prefix) {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no pod with prefix %s: %w", prefix, ErrNotFound)
	}
	sort.Strings(names)
	logging.Debug(subsystem, "Pods matching %s: %v", prefix, names)
	return names[0], nil
}
