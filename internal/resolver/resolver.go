// Package resolver looks up the runtime addresses of the E2 Manager, the E2
// Termination and the E2 adapter in the cluster they are deployed to.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"e2mcheck/internal/config"
	"e2mcheck/pkg/logging"

	"golang.org/x/sync/errgroup"
)

const subsystem = "Resolver"

// ErrNotFound is returned when no service or pod matches, or when a service
// has no cluster IP assigned.
var ErrNotFound = errors.New("not found")

// Resolver finds service IPs and pod names in one namespace.
type Resolver interface {
	// ServiceIP returns the cluster IP of the named service.
	ServiceIP(ctx context.Context, name string) (string, error)
	// PodName returns the name of the first pod whose name starts with prefix.
	PodName(ctx context.Context, prefix string) (string, error)
}

// Addresses are the resolved endpoints a test run talks to. They are
// computed once and passed to whatever needs them.
type Addresses struct {
	E2MgrURL        string `json:"e2mgrUrl" yaml:"e2mgrUrl"`
	E2TAlphaAddress string `json:"e2tAlphaAddress" yaml:"e2tAlphaAddress"`
	E2AdapterPod    string `json:"e2adapterPod" yaml:"e2adapterPod"`
}

// ResolveAddresses resolves all Addresses concurrently. The first failure
// cancels the remaining lookups.
func ResolveAddresses(ctx context.Context, r Resolver, cfg config.ClusterConfig) (Addresses, error) {
	var addrs Addresses
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ip, err := r.ServiceIP(gctx, cfg.E2MgrService)
		if err != nil {
			return fmt.Errorf("service %s: %w", cfg.E2MgrService, err)
		}
		addrs.E2MgrURL = "http://" + hostPort(ip, cfg.E2MgrPort)
		return nil
	})
	g.Go(func() error {
		ip, err := r.ServiceIP(gctx, cfg.E2TService)
		if err != nil {
			return fmt.Errorf("service %s: %w", cfg.E2TService, err)
		}
		addrs.E2TAlphaAddress = hostPort(ip, cfg.E2TPort)
		return nil
	})
	g.Go(func() error {
		pod, err := r.PodName(gctx, cfg.E2AdapterPod)
		if err != nil {
			return fmt.Errorf("pod %s: %w", cfg.E2AdapterPod, err)
		}
		addrs.E2AdapterPod = pod
		return nil
	})

	if err := g.Wait(); err != nil {
		return Addresses{}, err
	}
	logging.Info(subsystem, "Resolved e2mgr=%s e2t=%s e2adapter=%s", addrs.E2MgrURL, addrs.E2TAlphaAddress, addrs.E2AdapterPod)
	return addrs, nil
}

func hostPort(ip string, port int) string {
	return net.JoinHostPort(ip, strconv.Itoa(port))
}

// New returns the resolver selected by cfg.Resolver.
func New(cfg config.ClusterConfig) (Resolver, error) {
	switch cfg.Resolver {
	case config.ResolverKubectl, "":
		return NewKubectlResolver(cfg), nil
	case config.ResolverAPI:
		r, err := NewAPIResolver(cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown resolver %q", cfg.Resolver)
	}
}

// validIP rejects the values kubectl prints for headless or pending services.
func validIP(ip string) bool {
	return ip != "" && ip != "None"
}
