// Package config loads the e2mcheck configuration.
//
// Configuration is read from config.yaml in a single directory. The default
// directory is ~/.config/e2mcheck; commands accept --config to point elsewhere.
// A missing file yields GetDefaultConfig. Environment variables
// (E2MCHECK_REDIS_HOST, E2MCHECK_REDIS_PORT, E2MCHECK_NAMESPACE, KUBECONFIG)
// are applied on top by ApplyEnv.
//
// # Example config.yaml
//
//	store:
//	  host: 10.0.2.15
//	  port: 6379
//	cluster:
//	  namespace: ricplt
//	  resolver: api
//	logs:
//	  directory: /var/log/e2e
//
// Validate reports every problem at once as ValidationErrors.
package config
