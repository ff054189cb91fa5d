package inspect

import (
	"context"
	"errors"
	"testing"
	"time"

	"e2mcheck/internal/clock"
	"e2mcheck/internal/seed"
	"e2mcheck/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const e2tAddress = "e2t.att.com:38000"

type fixture struct {
	mr        *miniredis.Miniredis
	clock     *clock.FakeClock
	seeder    *seed.Seeder
	inspector *Inspector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	s := store.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { s.Close() })

	c := clock.NewFakeClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	return &fixture{
		mr:        mr,
		clock:     c,
		seeder:    seed.New(s, c),
		inspector: New(s, c),
	}
}

func TestSeededConfigurationReadsBackLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.seeder.Flush(ctx))

	matches, err := f.inspector.FieldEquals(ctx, store.RsmGeneralConfigurationKey, []string{"periodicityMs"}, "1")
	require.NoError(t, err)
	assert.True(t, matches)

	raw, err := f.mr.Get(store.RsmGeneralConfigurationKey)
	require.NoError(t, err)
	assert.Equal(t, seed.RsmGeneralConfigurationJSON, raw)
}

func TestE2TInstanceExistsInAddresses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.seeder.Flush(ctx))

	registered, err := f.inspector.E2TInstanceExistsInAddresses(ctx, e2tAddress)
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = f.inspector.E2TInstanceExistsInAddresses(ctx, "10.0.0.9:38000")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestMissingKeysReturnFalse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checks := map[string]func() (bool, error){
		"associated":     func() (bool, error) { return f.inspector.RanIsAssociatedWithE2TInstance(ctx, "test1", e2tAddress) },
		"no rans":        func() (bool, error) { return f.inspector.E2TInstanceHasNoAssociatedRans(ctx, e2tAddress) },
		"in addresses":   func() (bool, error) { return f.inspector.E2TInstanceExistsInAddresses(ctx, e2tAddress) },
		"key exists":     func() (bool, error) { return f.inspector.E2TInstanceKeyExists(ctx, e2tAddress) },
		"addresses":      func() (bool, error) { return f.inspector.E2TAddressesEqual(ctx, e2tAddress) },
		"initialized":    func() (bool, error) { return f.inspector.E2TInstanceInitialized(ctx, e2tAddress) },
		"stale":          func() (bool, error) { return f.inspector.E2TInstanceIsStale(ctx, e2tAddress, time.Second) },
		"rsm":            func() (bool, error) { return f.inspector.RsmRanInfoMatches(ctx, DefaultRsmRanInfo("test1")) },
		"ric enabled":    func() (bool, error) { return f.inspector.RicEnabled(ctx) },
		"ric enabled is": func() (bool, error) { return f.inspector.RicEnabledIs(ctx, false) },
		"load exists":    func() (bool, error) { return f.inspector.LoadInformationExists(ctx, "test1") },
		"load matches":   func() (bool, error) { return f.inspector.LoadInformationMatches(ctx, "test1", seed.LoadInformationValue) },
		"field equals":   func() (bool, error) { return f.inspector.FieldEquals(ctx, store.GeneralConfigurationKey, []string{"enableRic"}, "false") },
		"field contains": func() (bool, error) { return f.inspector.FieldContains(ctx, store.E2TAddressesKey, nil, e2tAddress) },
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			result, err := check()
			assert.NoError(t, err)
			assert.False(t, result)
		})
	}
}

func TestE2TInstance_MissingKeyIsTypedError(t *testing.T) {
	f := newFixture(t)

	_, err := f.inspector.E2TInstance(context.Background(), e2tAddress)
	assert.True(t, errors.Is(err, store.ErrKeyNotFound))
}

func TestMalformedJSONIsAnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.mr.Set(store.E2TInstanceKey(e2tAddress), "{not json"))
	require.NoError(t, f.mr.Set(store.E2TAddressesKey, "[broken"))

	_, err := f.inspector.RanIsAssociatedWithE2TInstance(ctx, "test1", e2tAddress)
	assert.Error(t, err)

	_, err = f.inspector.E2TInstanceExistsInAddresses(ctx, e2tAddress)
	assert.Error(t, err)

	_, err = f.inspector.FieldEquals(ctx, store.E2TAddressesKey, []string{"0"}, e2tAddress)
	assert.Error(t, err)
}

func TestRanAssociation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.seeder.PopulateE2TInstancesForGetE2TInstances(ctx))

	associated, err := f.inspector.RanIsAssociatedWithE2TInstance(ctx, "test2", e2tAddress)
	require.NoError(t, err)
	assert.True(t, associated)

	associated, err = f.inspector.RanIsAssociatedWithE2TInstance(ctx, "test9", e2tAddress)
	require.NoError(t, err)
	assert.False(t, associated)

	empty, err := f.inspector.E2TInstanceHasNoAssociatedRans(ctx, e2tAddress)
	require.NoError(t, err)
	assert.False(t, empty)

	contains, err := f.inspector.FieldContains(ctx, store.E2TInstanceKey(e2tAddress), []string{"associatedRanList"}, "test3")
	require.NoError(t, err)
	assert.True(t, contains)
}

func TestMissingAssociatedRanListIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.mr.Set(store.E2TInstanceKey(e2tAddress), `{"address":"e2t.att.com:38000","state":"ACTIVE"}`))

	associated, err := f.inspector.RanIsAssociatedWithE2TInstance(ctx, "test1", e2tAddress)
	require.NoError(t, err)
	assert.False(t, associated)

	empty, err := f.inspector.E2TInstanceHasNoAssociatedRans(ctx, e2tAddress)
	require.NoError(t, err)
	assert.True(t, empty)

	initialized, err := f.inspector.E2TInstanceInitialized(ctx, e2tAddress)
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestE2TInitialization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := "10.0.0.7:38000"
	require.NoError(t, f.seeder.Reset(ctx, seed.Baseline{E2TAddress: alpha}))

	equal, err := f.inspector.E2TAddressesEqual(ctx, alpha)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = f.inspector.E2TAddressesEqual(ctx, alpha, e2tAddress)
	require.NoError(t, err)
	assert.False(t, equal)

	initialized, err := f.inspector.E2TInstanceInitialized(ctx, alpha)
	require.NoError(t, err)
	assert.True(t, initialized)

	exists, err := f.inspector.E2TInstanceKeyExists(ctx, alpha)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestE2TInstanceIsStale(t *testing.T) {
	threshold := 3 * time.Second

	tests := []struct {
		name   string
		offset time.Duration
		stale  bool
	}{
		{"keep-alive ahead of now", 10 * time.Second, false},
		{"keep-alive behind now", -10 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			require.NoError(t, f.seeder.Reset(ctx, seed.Baseline{KeepAliveOffset: tt.offset}))

			stale, err := f.inspector.E2TInstanceIsStale(ctx, e2tAddress, threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.stale, stale)
		})
	}
}

func TestRsmRanInfoMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.mr.Set(store.RsmRanKey("test1"),
		`{"ranName":"test1","enb1MeasurementId":1,"enb2MeasurementId":0,"action":"start","actionStatus":false}`))

	matches, err := f.inspector.RsmRanInfoMatches(ctx, DefaultRsmRanInfo("test1"))
	require.NoError(t, err)
	assert.True(t, matches)

	stopped := DefaultRsmRanInfo("test1")
	stopped.Action = "stop"
	matches, err = f.inspector.RsmRanInfoMatches(ctx, stopped)
	require.NoError(t, err)
	assert.False(t, matches)
}

func TestRicEnabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mr.Set(store.GeneralConfigurationKey, `{"enableRic":true}`))
	enabled, err := f.inspector.RicEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, f.seeder.SetEnableRicFalse(ctx))
	enabled, err = f.inspector.RicEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	matches, err := f.inspector.FieldEquals(ctx, store.GeneralConfigurationKey, []string{"enableRic"}, "false")
	require.NoError(t, err)
	assert.True(t, matches)
}

func TestLoadInformation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.seeder.AddLoadInformation(ctx, "test1")
	require.NoError(t, err)

	exists, err := f.inspector.LoadInformationExists(ctx, "test1")
	require.NoError(t, err)
	assert.True(t, exists)

	matches, err := f.inspector.LoadInformationMatches(ctx, "test1", seed.LoadInformationValue)
	require.NoError(t, err)
	assert.True(t, matches)

	matches, err = f.inspector.LoadInformationMatches(ctx, "test1", "other")
	require.NoError(t, err)
	assert.False(t, matches)
}

func TestFieldEquals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.seeder.PopulateE2TInstancesForGetE2TInstances(ctx))
	key := store.E2TInstanceKey(e2tAddress)

	tests := []struct {
		path     []string
		expected string
		want     bool
	}{
		{[]string{"state"}, "ACTIVE", true},
		{[]string{"state"}, `"ACTIVE"`, false},
		{[]string{"associatedRanList", "0"}, "test1", true},
		{[]string{"keepAliveTimestamp"}, "1577619310484022369", true},
		{[]string{"associatedRanList"}, `["test1","test2","test3"]`, true},
		{[]string{"missing"}, "", false},
	}

	for _, tt := range tests {
		got, err := f.inspector.FieldEquals(ctx, key, tt.path, tt.expected)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "path %v expected %q", tt.path, tt.expected)
	}
}

func TestListE2TInstances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instances, err := f.inspector.ListE2TInstances(ctx)
	require.NoError(t, err)
	assert.Empty(t, instances)

	require.NoError(t, f.seeder.Flush(ctx))
	require.NoError(t, f.mr.Set(store.E2TAddressesKey, `["e2t.att.com:38000","10.0.0.1:38000"]`))

	instances, err = f.inspector.ListE2TInstances(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, e2tAddress, instances[0].Address)
}

func TestRicEnabledIs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.seeder.Flush(ctx))

	disabled, err := f.inspector.RicEnabledIs(ctx, false)
	require.NoError(t, err)
	assert.False(t, disabled, "a missing general configuration must not count as disabled")

	require.NoError(t, f.seeder.SetEnableRicFalse(ctx))
	disabled, err = f.inspector.RicEnabledIs(ctx, false)
	require.NoError(t, err)
	assert.True(t, disabled)

	enabled, err := f.inspector.RicEnabledIs(ctx, true)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestE2TInstanceInitialized_Records(t *testing.T) {
	tests := []struct {
		name        string
		record      string
		initialized bool
	}{
		{
			name:        "empty list",
			record:      `{"address":"e2t.att.com:38000","associatedRanList":[],"keepAliveTimestamp":1,"state":"ACTIVE"}`,
			initialized: true,
		},
		{
			name:        "null list counts as empty",
			record:      `{"address":"e2t.att.com:38000","associatedRanList":null,"keepAliveTimestamp":1,"state":"ACTIVE"}`,
			initialized: true,
		},
		{
			name:   "associated rans",
			record: `{"address":"e2t.att.com:38000","associatedRanList":["test1"],"keepAliveTimestamp":1,"state":"ACTIVE"}`,
		},
		{
			name:   "to be deleted",
			record: `{"address":"e2t.att.com:38000","associatedRanList":[],"keepAliveTimestamp":1,"state":"` + string(store.E2TInstanceToBeDeleted) + `"}`,
		},
		{
			name:   "routing manager failure",
			record: `{"address":"e2t.att.com:38000","associatedRanList":[],"keepAliveTimestamp":1,"state":"` + string(store.E2TInstanceRoutingManagerFailure) + `"}`,
		},
		{
			name:   "other address",
			record: `{"address":"10.0.0.9:38000","associatedRanList":[],"keepAliveTimestamp":1,"state":"ACTIVE"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.mr.Set(store.E2TInstanceKey(e2tAddress), tt.record))

			initialized, err := f.inspector.E2TInstanceInitialized(context.Background(), e2tAddress)
			require.NoError(t, err)
			assert.Equal(t, tt.initialized, initialized)
		})
	}
}
