package config

import (
	"net"
	"strconv"
	"time"
)

// E2MCheckConfig is the top-level configuration structure for e2mcheck.
type E2MCheckConfig struct {
	Store   StoreConfig   `yaml:"store"`
	Cluster ClusterConfig `yaml:"cluster"`
	Logs    LogsConfig    `yaml:"logs"`
}

// StoreConfig defines how to reach the Redis instance the E2 Manager persists to.
type StoreConfig struct {
	Host        string        `yaml:"host,omitempty"`        // Redis host (default: localhost)
	Port        int           `yaml:"port,omitempty"`        // Redis port (default: 6379)
	DB          int           `yaml:"db,omitempty"`          // Redis logical database (default: 0)
	DialTimeout time.Duration `yaml:"dialTimeout,omitempty"` // Connect timeout (default: 5s)
}

// Addr returns the host:port pair for the store.
func (s StoreConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Resolver backends for ClusterConfig.Resolver.
const (
	ResolverKubectl = "kubectl"
	ResolverAPI     = "api"
)

// ClusterConfig names the cluster objects whose runtime addresses are resolved.
type ClusterConfig struct {
	Namespace    string `yaml:"namespace,omitempty"`    // Namespace of the RIC platform (default: ricplt)
	Kubeconfig   string `yaml:"kubeconfig,omitempty"`   // Optional kubeconfig path; empty uses standard discovery
	Resolver     string `yaml:"resolver,omitempty"`     // "kubectl" or "api" (default: kubectl)
	KubectlPath  string `yaml:"kubectlPath,omitempty"`  // kubectl binary (default: kubectl)
	E2MgrService string `yaml:"e2mgrService,omitempty"` // E2 Manager HTTP service name
	E2MgrPort    int    `yaml:"e2mgrPort,omitempty"`    // E2 Manager HTTP port
	E2TService   string `yaml:"e2tService,omitempty"`   // E2 Termination alpha RMR service name
	E2TPort      int    `yaml:"e2tPort,omitempty"`      // E2 Termination RMR port
	E2AdapterPod string `yaml:"e2adapterPod,omitempty"` // Prefix of the E2 adapter pod name
}

// LogsConfig locates the log files the verifier scans.
type LogsConfig struct {
	Directory  string `yaml:"directory,omitempty"`  // Directory holding collected logs
	E2MgrLog   string `yaml:"e2mgrLog,omitempty"`   // E2 Manager log file name (default: e2mgr.log)
	MonitorLog string `yaml:"monitorLog,omitempty"` // File the publish recorder writes to
}
