package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"e2mcheck/internal/config"
	"e2mcheck/pkg/logging"
)

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// KubectlResolver resolves addresses by running kubectl.
type KubectlResolver struct {
	kubectl    string
	namespace  string
	kubeconfig string
}

// NewKubectlResolver creates a resolver for cfg.Namespace.
func NewKubectlResolver(cfg config.ClusterConfig) *KubectlResolver {
	kubectl := cfg.KubectlPath
	if kubectl == "" {
		kubectl = config.DefaultKubectlPath
	}
	return &KubectlResolver{
		kubectl:    kubectl,
		namespace:  cfg.Namespace,
		kubeconfig: cfg.Kubeconfig,
	}
}

// ServiceIP returns the cluster IP of the named service.
func (k *KubectlResolver) ServiceIP(ctx context.Context, name string) (string, error) {
	out, err := k.run(ctx, "get", "svc", name, "-o=jsonpath={.spec.clusterIP}")
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(out)
	if !validIP(ip) {
		return "", fmt.Errorf("service %s has no cluster IP: %w", name, ErrNotFound)
	}
	return ip, nil
}

// PodName returns the first pod, by name, whose name starts with prefix.
func (k *KubectlResolver) PodName(ctx context.Context, prefix string) (string, error) {
	out, err := k.run(ctx, "get", "pods", "-o=jsonpath={.items[*].metadata.name}")
	if err != nil {
		return "", err
	}

	var names []string
	for _, name := range strings.Fields(out) {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no pod with prefix %s: %w", prefix, ErrNotFound)
	}
	sort.Strings(names)
	return names[0], nil
}

func (k *KubectlResolver) run(ctx context.Context, args ...string) (string, error) {
	var full []string
	if k.kubeconfig != "" {
		full = append(full, "--kubeconfig", k.kubeconfig)
	}
	if k.namespace != "" {
		full = append(full, "-n", k.namespace)
	}
	full = append(full, args...)

	logging.Debug(subsystem, "Running %s %s", k.kubectl, strings.Join(full, " "))

	var stderr bytes.Buffer
	cmd := execCommandContext(ctx, k.kubectl, full...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "NotFound") {
			return "", fmt.Errorf("%s: %w", msg, ErrNotFound)
		}
		if msg != "" {
			return "", fmt.Errorf("kubectl %s failed: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("kubectl %s failed: %w", args[0], err)
	}
	return string(out), nil
}
