package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIngestFixture(t *testing.T) (*IngestService, *memStore) {
	t.Helper()
	store := newMemStore()
	require.NoError(t, store.CreateUser(context.Background(), &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}))
	require.NoError(t, store.CreateAppliance(context.Background(), &domain.Appliance{ID: "D1", Name: "Heater", UserID: "u1"}))
	return NewIngestService(store, store), store
}

func telemetryPayload(deviceID string, power float64) []byte {
	return []byte(fmt.Sprintf(
		`{"device_id":%q,"voltage":230,"current":1.2,"power":%g,"frequency":50,"power_factor":0.98}`,
		deviceID, power))
}

func TestSubmitStoresReadingAndAccumulatesUsage(t *testing.T) {
	svc, store := newIngestFixture(t)
	ctx := context.Background()

	echo, err := svc.Submit(ctx, telemetryPayload("D1", 276))
	require.NoError(t, err)
	assert.Equal(t, "D1", echo["device_id"])

	_, err = svc.Submit(ctx, telemetryPayload("D1", 276))
	require.NoError(t, err)

	assert.Equal(t, 552.0, store.usageOf("D1"))
	assert.Equal(t, 2, store.readingCount())

	readings, err := store.ReadingsByDevice(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 230.0, readings[0].Voltage)
	assert.Equal(t, 276.0, readings[0].Power)
	assert.Equal(t, 0.98, readings[0].PowerFactor)

	last := svc.LastSample()
	assert.Equal(t, "D1", last["device_id"])
	assert.Equal(t, 276.0, last["power"])
}

func TestSubmitCoercesQuotedNumbers(t *testing.T) {
	svc, store := newIngestFixture(t)

	payload := []byte(`{"device_id":"D1","voltage":"230.5","current":"1.2","power":"276","frequency":"50","power_factor":"0.98"}`)
	_, err := svc.Submit(context.Background(), payload)
	require.NoError(t, err)

	readings, err := store.ReadingsByDevice(context.Background(), "D1")
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 230.5, readings[0].Voltage)
	assert.Equal(t, 276.0, readings[0].Power)
}

func TestSubmitAppliesDefaults(t *testing.T) {
	svc, store := newIngestFixture(t)

	before := time.Now().UTC()
	_, err := svc.Submit(context.Background(), telemetryPayload("D1", 100))
	require.NoError(t, err)

	readings, err := store.ReadingsByDevice(context.Background(), "D1")
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 0.0, readings[0].Energy)
	assert.Equal(t, "active", readings[0].Status)
	assert.False(t, readings[0].Timestamp.Before(before))
}

func TestSubmitHonorsOptionalFields(t *testing.T) {
	svc, store := newIngestFixture(t)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(fmt.Sprintf(
		`{"device_id":"D1","timestamp":%q,"voltage":230,"current":1.2,"power":276,"energy":3.5,"frequency":50,"power_factor":0.98,"status":"idle"}`,
		ts.Format(time.RFC3339)))
	_, err := svc.Submit(context.Background(), payload)
	require.NoError(t, err)

	readings, err := store.ReadingsByDevice(context.Background(), "D1")
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.True(t, readings[0].Timestamp.Equal(ts))
	assert.Equal(t, 3.5, readings[0].Energy)
	assert.Equal(t, "idle", readings[0].Status)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	svc, store := newIngestFixture(t)

	cases := map[string]string{
		"missing device_id":    `{"voltage":230,"current":1.2,"power":276,"frequency":50,"power_factor":0.98}`,
		"missing voltage":      `{"device_id":"D1","current":1.2,"power":276,"frequency":50,"power_factor":0.98}`,
		"missing current":      `{"device_id":"D1","voltage":230,"power":276,"frequency":50,"power_factor":0.98}`,
		"missing power":        `{"device_id":"D1","voltage":230,"current":1.2,"frequency":50,"power_factor":0.98}`,
		"missing frequency":    `{"device_id":"D1","voltage":230,"current":1.2,"power":276,"power_factor":0.98}`,
		"missing power_factor": `{"device_id":"D1","voltage":230,"current":1.2,"power":276,"frequency":50}`,
		"non-numeric power":    `{"device_id":"D1","voltage":230,"current":1.2,"power":"lots","frequency":50,"power_factor":0.98}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), []byte(payload))
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	assert.Equal(t, 0, store.readingCount())
	assert.Equal(t, 0.0, store.usageOf("D1"))
	assert.Equal(t, "No data yet", svc.LastSample()["status"])
}

func TestSubmitRejectsUnknownDevice(t *testing.T) {
	svc, store := newIngestFixture(t)

	_, err := svc.Submit(context.Background(), telemetryPayload("D9", 100))
	require.ErrorIs(t, err, domain.ErrDeviceNotFound)
	assert.Equal(t, 0, store.readingCount())
	assert.Equal(t, "No data yet", svc.LastSample()["status"])
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	svc, _ := newIngestFixture(t)

	_, err := svc.Submit(context.Background(), []byte(`{"device_id":`))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestSubmitConcurrentIncrementsNeverLost(t *testing.T) {
	svc, store := newIngestFixture(t)
	require.NoError(t, store.CreateAppliance(context.Background(), &domain.Appliance{ID: "D2", Name: "Kettle", UserID: "u1"}))

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		device := "D1"
		if w%2 == 1 {
			device = "D2"
		}
		wg.Add(1)
		go func(device string) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := svc.Submit(context.Background(), telemetryPayload(device, 10)); err != nil {
					t.Error(err)
					return
				}
			}
		}(device)
	}
	wg.Wait()

	assert.Equal(t, float64(workers/2*perWorker*10), store.usageOf("D1"))
	assert.Equal(t, float64(workers/2*perWorker*10), store.usageOf("D2"))
	assert.Equal(t, workers*perWorker, store.readingCount())
}

func TestReadingsForOwner(t *testing.T) {
	svc, _ := newIngestFixture(t)
	ctx := context.Background()

	for _, power := range []float64{10, 20, 30} {
		_, err := svc.Submit(ctx, telemetryPayload("D1", power))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	readings, err := svc.ReadingsForOwner(ctx, "D1", "u1")
	require.NoError(t, err)
	require.Len(t, readings, 3)
	// Newest first.
	assert.Equal(t, 30.0, readings[0].Power)
	assert.Equal(t, 10.0, readings[2].Power)

	_, err = svc.ReadingsForOwner(ctx, "D1", "someone-else")
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = svc.ReadingsForOwner(ctx, "D9", "u1")
	require.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

type captureAlerter struct {
	mu    sync.Mutex
	calls []float64
}

func (a *captureAlerter) SendOverPowerAlert(_ context.Context, _ string, power, _ float64) error {
	a.mu.Lock()
	a.calls = append(a.calls, power)
	a.mu.Unlock()
	return nil
}

func TestSubmitTriggersOverPowerAlert(t *testing.T) {
	svc, _ := newIngestFixture(t)
	alerter := &captureAlerter{}
	svc.EnableAlerts(alerter, 500)

	_, err := svc.Submit(context.Background(), telemetryPayload("D1", 100))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), telemetryPayload("D1", 900))
	require.NoError(t, err)

	require.Len(t, alerter.calls, 1)
	assert.Equal(t, 900.0, alerter.calls[0])
}
