// Package logscan verifies that log files contain expected messages.
//
// Matching is a plain substring search over newline-delimited text. A file is
// read once from the start; there is no regex and no timestamp correlation.
package logscan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"e2mcheck/internal/store"
	"e2mcheck/pkg/logging"
)

const subsystem = "LogScan"

// maxLineSize bounds a single log line. E2 Manager lines carrying hex dumps
// of PDUs are far longer than bufio's 64 KiB default.
const maxLineSize = 4 * 1024 * 1024

// E2ManagerLogFile is the log file name the E2 Manager writes.
const E2ManagerLogFile = "e2mgr.log"

// Message types logged by the E2 Manager for the flows the helpers verify.
const (
	MTypeResetRequest                = 10070
	MTypeResetResponse               = 10071
	MTypeConfigurationUpdate         = 10370
	MTypeConfigurationUpdateResponse = 10371
)

// LineMatcher is satisfied by a line containing every one of its substrings.
type LineMatcher []string

// Matches reports whether line contains all substrings of m.
func (m LineMatcher) Matches(line string) bool {
	for _, s := range m {
		if !strings.Contains(line, s) {
			return false
		}
	}
	return true
}

// MatchAll reads r line by line and returns true as soon as every matcher has
// been satisfied by some line. Different matchers may be satisfied by
// different lines. It returns false when the input ends first.
func MatchAll(r io.Reader, matchers ...LineMatcher) (bool, error) {
	pending := make([]LineMatcher, len(matchers))
	copy(pending, matchers)
	if len(pending) == 0 {
		return true, nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		remaining := pending[:0]
		for _, m := range pending {
			if !m.Matches(line) {
				remaining = append(remaining, m)
			}
		}
		pending = remaining
		if len(pending) == 0 {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read log: %w", err)
	}
	return false, nil
}

// MatchFile opens path and runs MatchAll over it. Open errors, including a
// missing file, are returned unchanged.
func MatchFile(path string, matchers ...LineMatcher) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	found, err := MatchAll(f, matchers...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug(subsystem, "Scanned %s for %d matchers: found=%t", path, len(matchers), found)
	return found, nil
}

// FileContainsAll reports whether every target appears on some line of path.
func FileContainsAll(path string, targets ...string) (bool, error) {
	matchers := make([]LineMatcher, 0, len(targets))
	for _, t := range targets {
		matchers = append(matchers, LineMatcher{t})
	}
	return MatchFile(path, matchers...)
}

// VerifyLogMessage reports whether message appears on some line of path.
func VerifyLogMessage(path, message string) (bool, error) {
	return FileContainsAll(path, message)
}

// PublishMessage renders a PUBLISH command as redis-cli MONITOR logs it.
func PublishMessage(channel, ranName, event string) string {
	return `"PUBLISH" "` + channel + `" "` + ranName + "_" + event + `"`
}

// VerifyManipulationMessage reports whether a RAN manipulation event for
// ranName was published according to the monitor log at path.
func VerifyManipulationMessage(path, ranName, event string) (bool, error) {
	return VerifyLogMessage(path, PublishMessage(store.RanManipulationChannel, ranName, event))
}

// VerifyConnectionStatusChangeMessage reports whether a connection status
// change event for ranName was published according to the monitor log at path.
func VerifyConnectionStatusChangeMessage(path, ranName, event string) (bool, error) {
	return VerifyLogMessage(path, PublishMessage(store.RanConnectionStatusChangeChannel, ranName, event))
}

// MessageTypeMatcher matches an E2 Manager log line for an RMR message of
// type mtype addressed to meid. The E2 Manager logs the meid with escaped
// quotes, so the matcher looks for Meid: \"<meid>\".
func MessageTypeMatcher(mtype int, meid string) LineMatcher {
	return LineMatcher{
		fmt.Sprintf("MType: %d", mtype),
		`Meid: \"` + meid + `\"`,
	}
}

// VerifyResetRanToRic reports whether the E2 Manager log in dir shows both
// the reset request and the reset response for ranName.
func VerifyResetRanToRic(dir, ranName string) (bool, error) {
	return MatchFile(filepath.Join(dir, E2ManagerLogFile),
		MessageTypeMatcher(MTypeResetRequest, ranName),
		MessageTypeMatcher(MTypeResetResponse, ranName),
	)
}

// VerifyConfigurationUpdate reports whether the log at path shows both the
// configuration update and its acknowledgement for ranName.
func VerifyConfigurationUpdate(path, ranName string) (bool, error) {
	return MatchFile(path,
		MessageTypeMatcher(MTypeConfigurationUpdate, ranName),
		MessageTypeMatcher(MTypeConfigurationUpdateResponse, ranName),
	)
}
