// Package logging provides the subsystem logger used across e2mcheck.
//
// It is a thin layer over Go's slog package: every entry carries a subsystem
// name and, for errors, the error text as a separate attribute.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Seeder", "Flushed store at %s", addr)
//	logging.Debug("LogScan", "Scanning %s for %d matchers", path, n)
//	logging.Warn("Resolver", "Service %s has no cluster IP", name)
//	logging.Error("Store", err, "Failed to read %s", key)
//
// Messages below the configured level are dropped before formatting.
//
// # Controller-Runtime Integration
//
// InitForCLI also installs a logr logger backed by the same slog handler into
// controller-runtime, so the Kubernetes API resolver logs through the same
// output at the same level.
//
// # Subsystems
//
//   - Config: configuration loading and validation
//   - Store: Redis connection and commands
//   - Seeder: baseline reset and fixtures
//   - Inspector: store record checks
//   - LogScan: log file verification
//   - Monitor: publish event recording
//   - Resolver: service and pod address resolution
package logging
