// Package inspect reads E2 Manager records from the store and checks them
// against expected literal values.
//
// Every boolean check follows one contract: a missing key yields
// (false, nil), a payload that is not valid JSON yields an error, and a
// missing associatedRanList field is treated as an empty list. Typed
// accessors such as E2TInstance return store.ErrKeyNotFound instead.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"e2mcheck/internal/clock"
	"e2mcheck/internal/store"
	"e2mcheck/pkg/logging"
	pkgstrings "e2mcheck/pkg/strings"

	"github.com/valyala/fastjson"
)

const subsystem = "Inspector"

// Reader is the subset of store.Store the inspector uses.
type Reader interface {
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Inspector runs read-and-compare checks against the store.
type Inspector struct {
	store Reader
	clock clock.Clock
}

// New creates an Inspector. A nil clock uses the system time.
func New(r Reader, c clock.Clock) *Inspector {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Inspector{store: r, clock: c}
}

// get reads key and reports found=false for a missing key.
func (i *Inspector) get(ctx context.Context, key string) (string, bool, error) {
	value, err := i.store.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		logging.Debug(subsystem, "Key %s not found", key)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func decode(key, value string, out interface{}) error {
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

// E2TInstance returns the decoded E2T instance record for address.
func (i *Inspector) E2TInstance(ctx context.Context, address string) (*store.E2TInstance, error) {
	key := store.E2TInstanceKey(address)
	value, err := i.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var instance store.E2TInstance
	if err := decode(key, value, &instance); err != nil {
		return nil, err
	}
	return &instance, nil
}

// lookupE2TInstance is E2TInstance with the missing-key contract applied.
func (i *Inspector) lookupE2TInstance(ctx context.Context, address string) (*store.E2TInstance, bool, error) {
	instance, err := i.E2TInstance(ctx, address)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return instance, true, nil
}

// RanIsAssociatedWithE2TInstance reports whether ranName is in the
// association list of the E2T instance at address.
func (i *Inspector) RanIsAssociatedWithE2TInstance(ctx context.Context, ranName, address string) (bool, error) {
	instance, found, err := i.lookupE2TInstance(ctx, address)
	if err != nil || !found {
		return false, err
	}
	return instance.IsAssociated(ranName), nil
}

// E2TInstanceHasNoAssociatedRans reports whether the E2T instance at address
// exists and has an empty association list.
func (i *Inspector) E2TInstanceHasNoAssociatedRans(ctx context.Context, address string) (bool, error) {
	instance, found, err := i.lookupE2TInstance(ctx, address)
	if err != nil || !found {
		return false, err
	}
	return len(instance.AssociatedRanList) == 0, nil
}

// E2TInstanceExistsInAddresses reports whether address is in the registered
// E2T addresses list.
func (i *Inspector) E2TInstanceExistsInAddresses(ctx context.Context, address string) (bool, error) {
	value, found, err := i.get(ctx, store.E2TAddressesKey)
	if err != nil || !found {
		return false, err
	}
	var addresses []string
	if err := decode(store.E2TAddressesKey, value, &addresses); err != nil {
		return false, err
	}
	for _, a := range addresses {
		if a == address {
			return true, nil
		}
	}
	return false, nil
}

// E2TInstanceKeyExists reports whether an E2T instance record exists for address.
func (i *Inspector) E2TInstanceKeyExists(ctx context.Context, address string) (bool, error) {
	return i.store.Exists(ctx, store.E2TInstanceKey(address))
}

// E2TAddressesEqual reports whether the stored E2T addresses record is exactly
// the JSON list of the given addresses, in order.
func (i *Inspector) E2TAddressesEqual(ctx context.Context, addresses ...string) (bool, error) {
	if addresses == nil {
		addresses = []string{}
	}
	expected, err := json.Marshal(addresses)
	if err != nil {
		return false, fmt.Errorf("failed to encode expected addresses: %w", err)
	}
	value, found, err := i.get(ctx, store.E2TAddressesKey)
	if err != nil || !found {
		return false, err
	}
	return value == string(expected), nil
}

// E2TInstanceInitialized reports whether the E2T instance at address looks
// like a freshly initialized one: matching address, no associated RANs and
// state ACTIVE. An associatedRanList that is null or absent counts as empty.
func (i *Inspector) E2TInstanceInitialized(ctx context.Context, address string) (bool, error) {
	instance, found, err := i.lookupE2TInstance(ctx, address)
	if err != nil || !found {
		return false, err
	}
	return instance.Address == address &&
		len(instance.AssociatedRanList) == 0 &&
		instance.State == store.E2TInstanceActive, nil
}

// E2TInstanceIsStale reports whether the keep-alive of the E2T instance at
// address is older than threshold.
func (i *Inspector) E2TInstanceIsStale(ctx context.Context, address string, threshold time.Duration) (bool, error) {
	instance, found, err := i.lookupE2TInstance(ctx, address)
	if err != nil || !found {
		return false, err
	}
	return instance.IsStale(i.clock.Now(), threshold), nil
}

// ListE2TInstances returns the instance records of every registered E2T
// address. Addresses without a record are skipped.
func (i *Inspector) ListE2TInstances(ctx context.Context) ([]*store.E2TInstance, error) {
	value, found, err := i.get(ctx, store.E2TAddressesKey)
	if err != nil || !found {
		return nil, err
	}
	var addresses []string
	if err := decode(store.E2TAddressesKey, value, &addresses); err != nil {
		return nil, err
	}

	instances := make([]*store.E2TInstance, 0, len(addresses))
	for _, address := range addresses {
		instance, found, err := i.lookupE2TInstance(ctx, address)
		if err != nil {
			return nil, err
		}
		if !found {
			logging.Warn(subsystem, "E2T address %s is registered but has no instance record", address)
			continue
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// DefaultRsmRanInfo is the RSM record expected after starting resource
// status reporting for ranName.
func DefaultRsmRanInfo(ranName string) store.RsmRanInfo {
	return store.RsmRanInfo{
		RanName:           ranName,
		Enb1MeasurementID: 1,
		Enb2MeasurementID: 0,
		Action:            "start",
		ActionStatus:      false,
	}
}

// RsmRanInfoMatches reports whether the RSM record of expected.RanName is
// exactly the JSON encoding of expected.
func (i *Inspector) RsmRanInfoMatches(ctx context.Context, expected store.RsmRanInfo) (bool, error) {
	literal, err := json.Marshal(expected)
	if err != nil {
		return false, fmt.Errorf("failed to encode expected RSM RAN info: %w", err)
	}
	value, found, err := i.get(ctx, store.RsmRanKey(expected.RanName))
	if err != nil || !found {
		return false, err
	}
	return value == string(literal), nil
}

// RicEnabledIs reports whether the general configuration exists and its
// enableRic flag equals expected.
func (i *Inspector) RicEnabledIs(ctx context.Context, expected bool) (bool, error) {
	return i.FieldEquals(ctx, store.GeneralConfigurationKey, []string{"enableRic"}, strconv.FormatBool(expected))
}

// RicEnabled reports the enableRic flag of the general configuration. A
// missing record reads as false; use RicEnabledIs to tell the two apart.
func (i *Inspector) RicEnabled(ctx context.Context) (bool, error) {
	value, found, err := i.get(ctx, store.GeneralConfigurationKey)
	if err != nil || !found {
		return false, err
	}
	var cfg store.GeneralConfiguration
	if err := decode(store.GeneralConfigurationKey, value, &cfg); err != nil {
		return false, err
	}
	return cfg.EnableRic, nil
}

// LoadInformationExists reports whether a load information record exists for ranName.
func (i *Inspector) LoadInformationExists(ctx context.Context, ranName string) (bool, error) {
	return i.store.Exists(ctx, store.LoadInformationKey(ranName))
}

// LoadInformationMatches reports whether the load information record of
// ranName is byte-for-byte equal to expected.
func (i *Inspector) LoadInformationMatches(ctx context.Context, ranName, expected string) (bool, error) {
	value, found, err := i.get(ctx, store.LoadInformationKey(ranName))
	if err != nil || !found {
		return false, err
	}
	return value == expected, nil
}

// FieldEquals parses the record at key and compares the value at path with
// expected. Path elements are object keys or array indices. String values
// are compared unquoted; any other value is compared by its JSON text, so
// expected is "false", "1" or "[]" for those.
func (i *Inspector) FieldEquals(ctx context.Context, key string, path []string, expected string) (bool, error) {
	value, found, err := i.get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	var p fastjson.Parser
	root, err := p.Parse(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	field := root.Get(path...)
	if field == nil {
		logging.Debug(subsystem, "Field %v not present in %s", path, key)
		return false, nil
	}
	actual := field.String()
	if field.Type() == fastjson.TypeString {
		actual = string(field.GetStringBytes())
	}
	if actual != expected {
		logging.Debug(subsystem, "Field %v of %s is %s, expected %s", path, key, pkgstrings.Truncate(actual, pkgstrings.DefaultMaxLen), expected)
		return false, nil
	}
	return true, nil
}

// FieldContains parses the record at key and reports whether the array at
// path holds a string element equal to member.
func (i *Inspector) FieldContains(ctx context.Context, key string, path []string, member string) (bool, error) {
	value, found, err := i.get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	var p fastjson.Parser
	root, err := p.Parse(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	field := root.Get(path...)
	if field == nil || field.Type() != fastjson.TypeArray {
		return false, nil
	}
	for idx, element := range field.GetArray() {
		if element.Type() == fastjson.TypeString && string(element.GetStringBytes()) == member {
			logging.Debug(subsystem, "Found %s at %v[%d] in %s", member, path, idx, key)
			return true, nil
		}
	}
	return false, nil
}
