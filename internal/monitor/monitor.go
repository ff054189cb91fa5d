// Package monitor records the notifications the E2 Manager publishes to the
// store, in the line format redis-cli MONITOR prints, so that the log
// verifier can check them afterwards.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"e2mcheck/internal/clock"
	"e2mcheck/internal/store"
	"e2mcheck/pkg/logging"

	"github.com/redis/go-redis/v9"
)

const subsystem = "Monitor"

// Subscriber opens a confirmed subscription. *store.Store implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error)
}

// DefaultChannels are the channels the E2 Manager publishes RAN events on.
var DefaultChannels = []string{
	store.RanManipulationChannel,
	store.RanConnectionStatusChangeChannel,
}

// Recorder writes one line per published message.
type Recorder struct {
	sub      Subscriber
	clock    clock.Clock
	channels []string
}

// NewRecorder creates a recorder for channels, or DefaultChannels when none
// are given. A nil clock means real time.
func NewRecorder(sub Subscriber, clk clock.Clock, channels ...string) *Recorder {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	return &Recorder{sub: sub, clock: clk, channels: channels}
}

// Run subscribes and writes received messages to w until ctx ends. It
// returns nil on cancellation.
func (r *Recorder) Run(ctx context.Context, w io.Writer) error {
	ps, err := r.sub.Subscribe(ctx, r.channels...)
	if err != nil {
		return err
	}
	defer ps.Close()

	logging.Info(subsystem, "Recording publishes on %v", r.channels)
	messages := ps.Channel()
	count := 0
	for {
		select {
		case <-ctx.Done():
			logging.Info(subsystem, "Stopped recording after %d messages", count)
			return nil
		case msg, ok := <-messages:
			if !ok {
				return errors.New("subscription closed")
			}
			if _, err := io.WriteString(w, FormatLine(r.clock.Now(), msg.Channel, msg.Payload)+"\n"); err != nil {
				return fmt.Errorf("failed to write monitor line: %w", err)
			}
			count++
		}
	}
}

// RecordToFile runs the recorder appending to path, creating it if needed.
func (r *Recorder) RecordToFile(ctx context.Context, path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open monitor log: %w", err)
	}
	defer f.Close()
	return r.Run(ctx, f)
}

// FormatLine renders a publish the way redis-cli MONITOR does:
//
//	1577619310.484022 [0 pubsub] "PUBLISH" "<channel>" "<payload>"
//
// Arguments are quoted with backslash escapes as redis does for printable
// ASCII.
func FormatLine(t time.Time, channel, payload string) string {
	return fmt.Sprintf("%d.%06d [0 pubsub] \"PUBLISH\" %s %s",
		t.Unix(), t.Nanosecond()/int(time.Microsecond), strconv.Quote(channel), strconv.Quote(payload))
}
