package config

import "time"

const (
	DefaultStoreHost        = "localhost"
	DefaultStorePort        = 6379
	DefaultStoreDialTimeout = 5 * time.Second

	DefaultNamespace    = "ricplt"
	DefaultKubectlPath  = "kubectl"
	DefaultE2MgrService = "e2mgr-http"
	DefaultE2MgrPort    = 3800
	DefaultE2TService   = "e2term-rmr-alpha"
	DefaultE2TPort      = 38000
	DefaultE2AdapterPod = "e2adapter"

	DefaultE2MgrLog   = "e2mgr.log"
	DefaultMonitorLog = "redis-monitor.log"
)

// GetDefaultConfig returns the default configuration for e2mcheck.
func GetDefaultConfig() E2MCheckConfig {
	return E2MCheckConfig{
		Store: StoreConfig{
			Host:        DefaultStoreHost,
			Port:        DefaultStorePort,
			DialTimeout: DefaultStoreDialTimeout,
		},
		Cluster: ClusterConfig{
			Namespace:    DefaultNamespace,
			Resolver:     ResolverKubectl,
			KubectlPath:  DefaultKubectlPath,
			E2MgrService: DefaultE2MgrService,
			E2MgrPort:    DefaultE2MgrPort,
			E2TService:   DefaultE2TService,
			E2TPort:      DefaultE2TPort,
			E2AdapterPod: DefaultE2AdapterPod,
		},
		Logs: LogsConfig{
			Directory:  ".",
			E2MgrLog:   DefaultE2MgrLog,
			MonitorLog: DefaultMonitorLog,
		},
	}
}
