package monitor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"e2mcheck/pkg/logging"
)

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

const killRedisCliCommand = "for pid in $(pidof redis-cli); do sudo kill -9 $pid; done"

// StopRedisCliMonitors kills every redis-cli process on the host, which is
// how external `redis-cli monitor` captures are ended. It returns the
// command output.
func StopRedisCliMonitors(ctx context.Context) (string, error) {
	cmd := execCommandContext(ctx, "/bin/bash", "-c", killRedisCliCommand)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("failed to stop redis-cli monitors: %w", err)
	}
	logging.Info(subsystem, "Stopped redis-cli monitors")
	return strings.TrimSpace(string(out)), nil
}
