// Package seed resets the store to the baseline the E2 Manager end-to-end
// tests start from and writes the fixtures individual test cases need.
//
// Every reset begins with FLUSHALL: anything already in the store is lost.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"e2mcheck/internal/clock"
	"e2mcheck/internal/store"
	"e2mcheck/pkg/logging"
)

const subsystem = "Seeder"

// Literal records written by the seeder.
const (
	DefaultE2TAddress = "e2t.att.com:38000"

	RsmGeneralConfigurationJSON = `{"enableResourceStatus":true,"partialSuccessAllowed":true,"prbPeriodic":true,` +
		`"tnlLoadIndPeriodic":true,"wwLoadIndPeriodic":true,"absStatusPeriodic":true,"rsrpMeasurementPeriodic":true,` +
		`"csiPeriodic":true,"periodicityMs":1,"periodicityRsrpMeasurementMs":3,"periodicityCsiMs":3}`

	DisabledRicGeneralConfigurationJSON = `{"enableRic":false}`

	// LoadInformationValue is an encoded RAN load information record for
	// cell 02f829:0007ab00, stored as raw bytes.
	LoadInformationValue = "\b\x98\xf7\xdd\xa3\xc7\xb4\x83\xde\x15\x12\x11\n\x0f02f829:0007ab00"

	// fixtureKeepAliveTimestamp is the keep-alive of the get-e2t-instances fixture.
	fixtureKeepAliveTimestamp int64 = 1577619310484022369
)

// FixtureAssociatedRans are the RANs the get-e2t-instances fixture associates.
var FixtureAssociatedRans = []string{"test1", "test2", "test3"}

// Writer is the subset of store.Store the seeder uses.
type Writer interface {
	FlushAll(ctx context.Context) error
	Set(ctx context.Context, key, value string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Baseline describes the state Reset restores.
type Baseline struct {
	// E2TAddress of the registered E2T instance. Defaults to DefaultE2TAddress.
	E2TAddress string
	// KeepAliveOffset shifts the instance keep-alive timestamp relative to now.
	// Positive values simulate a fresh instance, negative values a stale one.
	KeepAliveOffset time.Duration
	// WithoutE2TKeys skips the E2T addresses and instance records.
	WithoutE2TKeys bool
}

// Seeder writes literal records through a Writer.
type Seeder struct {
	store Writer
	clock clock.Clock
}

// New creates a Seeder. A nil clock uses the system time.
func New(w Writer, c clock.Clock) *Seeder {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Seeder{store: w, clock: c}
}

// Reset flushes the store and writes the baseline records.
func (s *Seeder) Reset(ctx context.Context, baseline Baseline) error {
	if err := s.store.FlushAll(ctx); err != nil {
		return err
	}
	if err := s.store.Set(ctx, store.RsmGeneralConfigurationKey, RsmGeneralConfigurationJSON); err != nil {
		return err
	}
	if baseline.WithoutE2TKeys {
		logging.Info(subsystem, "Store reset without E2T keys")
		return nil
	}

	address := baseline.E2TAddress
	if address == "" {
		address = DefaultE2TAddress
	}
	keepAlive := clock.Offset{Base: s.clock, Shift: baseline.KeepAliveOffset}.Now()
	if err := s.writeE2T(ctx, store.NewE2TInstance(address, keepAlive)); err != nil {
		return err
	}

	logging.Info(subsystem, "Store reset with E2T instance %s (keep-alive %s)", address, keepAlive.Format(time.RFC3339Nano))
	return nil
}

// Flush resets the store to the default baseline with a fresh E2T instance.
func (s *Seeder) Flush(ctx context.Context) error {
	return s.Reset(ctx, Baseline{})
}

// FlushAndRestoreWithoutE2TKeys resets the store keeping only the RSM configuration.
func (s *Seeder) FlushAndRestoreWithoutE2TKeys(ctx context.Context) error {
	return s.Reset(ctx, Baseline{WithoutE2TKeys: true})
}

// PopulateE2TInstancesForGetE2TInstances writes the E2T instance fixture used
// by the get-e2t-instances test case. It does not flush.
func (s *Seeder) PopulateE2TInstancesForGetE2TInstances(ctx context.Context) error {
	instance := &store.E2TInstance{
		Address:            DefaultE2TAddress,
		AssociatedRanList:  append([]string(nil), FixtureAssociatedRans...),
		KeepAliveTimestamp: fixtureKeepAliveTimestamp,
		State:              store.E2TInstanceActive,
	}
	return s.writeE2T(ctx, instance)
}

// SetEnableRicFalse disables the RIC in the E2 Manager general configuration.
func (s *Seeder) SetEnableRicFalse(ctx context.Context) error {
	return s.store.Set(ctx, store.GeneralConfigurationKey, DisabledRicGeneralConfigurationJSON)
}

// AddLoadInformation writes the load information record for ranName and
// reports whether the key exists afterwards.
func (s *Seeder) AddLoadInformation(ctx context.Context, ranName string) (bool, error) {
	key := store.LoadInformationKey(ranName)
	if err := s.store.Set(ctx, key, LoadInformationValue); err != nil {
		return false, err
	}
	return s.store.Exists(ctx, key)
}

func (s *Seeder) writeE2T(ctx context.Context, instance *store.E2TInstance) error {
	addresses, err := json.Marshal([]string{instance.Address})
	if err != nil {
		return fmt.Errorf("failed to encode E2T addresses: %w", err)
	}
	record, err := json.Marshal(instance)
	if err != nil {
		return fmt.Errorf("failed to encode E2T instance %s: %w", instance.Address, err)
	}

	if err := s.store.Set(ctx, store.E2TAddressesKey, string(addresses)); err != nil {
		return err
	}
	return s.store.Set(ctx, store.E2TInstanceKey(instance.Address), string(record))
}
