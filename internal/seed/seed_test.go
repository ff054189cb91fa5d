package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"e2mcheck/internal/clock"
	"e2mcheck/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestSeeder(t *testing.T) (*Seeder, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := store.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { s.Close() })
	return New(s, clock.NewFakeClock(fixedNow)), mr
}

func TestFlush_WritesBaseline(t *testing.T) {
	seeder, mr := newTestSeeder(t)
	require.NoError(t, mr.Set("{e2Manager},NODEB:leftover", "stale data"))

	require.NoError(t, seeder.Flush(context.Background()))

	assert.False(t, mr.Exists("{e2Manager},NODEB:leftover"), "flush must remove pre-existing keys")

	cfg, err := mr.Get(store.RsmGeneralConfigurationKey)
	require.NoError(t, err)
	assert.Equal(t, RsmGeneralConfigurationJSON, cfg)

	addresses, err := mr.Get(store.E2TAddressesKey)
	require.NoError(t, err)
	assert.Equal(t, `["e2t.att.com:38000"]`, addresses)

	instance, err := mr.Get(store.E2TInstanceKey(DefaultE2TAddress))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(
		`{"address":"e2t.att.com:38000","associatedRanList":[],"keepAliveTimestamp":%d,"state":"ACTIVE"}`,
		fixedNow.UnixNano()), instance)
}

func TestReset_KeepAliveOffset(t *testing.T) {
	seeder, mr := newTestSeeder(t)

	require.NoError(t, seeder.Reset(context.Background(), Baseline{
		E2TAddress:      "10.0.0.5:38000",
		KeepAliveOffset: -time.Minute,
	}))

	raw, err := mr.Get(store.E2TInstanceKey("10.0.0.5:38000"))
	require.NoError(t, err)

	var instance store.E2TInstance
	require.NoError(t, json.Unmarshal([]byte(raw), &instance))
	assert.Equal(t, fixedNow.Add(-time.Minute).UnixNano(), instance.KeepAliveTimestamp)
	assert.True(t, instance.IsStale(fixedNow, 30*time.Second))
}

func TestFlushAndRestoreWithoutE2TKeys(t *testing.T) {
	seeder, mr := newTestSeeder(t)

	require.NoError(t, seeder.FlushAndRestoreWithoutE2TKeys(context.Background()))

	assert.True(t, mr.Exists(store.RsmGeneralConfigurationKey))
	assert.False(t, mr.Exists(store.E2TAddressesKey))
	assert.Equal(t, []string{store.RsmGeneralConfigurationKey}, mr.Keys())
}

func TestPopulateE2TInstancesForGetE2TInstances(t *testing.T) {
	seeder, mr := newTestSeeder(t)

	require.NoError(t, seeder.PopulateE2TInstancesForGetE2TInstances(context.Background()))

	instance, err := mr.Get(store.E2TInstanceKey(DefaultE2TAddress))
	require.NoError(t, err)
	assert.Equal(t,
		`{"address":"e2t.att.com:38000","associatedRanList":["test1","test2","test3"],"keepAliveTimestamp":1577619310484022369,"state":"ACTIVE"}`,
		instance)
}

func TestSetEnableRicFalse(t *testing.T) {
	seeder, mr := newTestSeeder(t)

	require.NoError(t, seeder.SetEnableRicFalse(context.Background()))

	value, err := mr.Get(store.GeneralConfigurationKey)
	require.NoError(t, err)
	assert.Equal(t, `{"enableRic":false}`, value)
}

func TestAddLoadInformation(t *testing.T) {
	seeder, mr := newTestSeeder(t)

	exists, err := seeder.AddLoadInformation(context.Background(), "test1")
	require.NoError(t, err)
	assert.True(t, exists)

	value, err := mr.Get(store.LoadInformationKey("test1"))
	require.NoError(t, err)
	assert.Equal(t, LoadInformationValue, value)
}

func TestRsmGeneralConfigurationLiteralMatchesModel(t *testing.T) {
	var cfg store.RsmGeneralConfiguration
	require.NoError(t, json.Unmarshal([]byte(RsmGeneralConfigurationJSON), &cfg))

	assert.True(t, cfg.EnableResourceStatus)
	assert.Equal(t, 1, cfg.PeriodicityMs)
	assert.Equal(t, 3, cfg.PeriodicityCsiMs)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, RsmGeneralConfigurationJSON, string(data))
}

type failingWriter struct {
	err error
}

func (f failingWriter) FlushAll(context.Context) error               { return f.err }
func (f failingWriter) Set(context.Context, string, string) error    { return f.err }
func (f failingWriter) Exists(context.Context, string) (bool, error) { return false, f.err }

func TestReset_PropagatesStoreError(t *testing.T) {
	refused := errors.New("connection refused")
	seeder := New(failingWriter{err: refused}, nil)

	err := seeder.Flush(context.Background())
	assert.ErrorIs(t, err, refused)

	_, err = seeder.AddLoadInformation(context.Background(), "test1")
	assert.ErrorIs(t, err, refused)
}
