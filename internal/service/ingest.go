package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/metrics"
	"github.com/rs/zerolog/log"
)

// TelemetrySubmission is the wire payload posted by a plug. The electrical
// fields are pointers so a missing field is distinguishable from zero.
type TelemetrySubmission struct {
	DeviceID    string            `json:"device_id"`
	Timestamp   *time.Time        `json:"timestamp"`
	Voltage     *domain.FlexFloat `json:"voltage"`
	Current     *domain.FlexFloat `json:"current"`
	Power       *domain.FlexFloat `json:"power"`
	Energy      *domain.FlexFloat `json:"energy"`
	Frequency   *domain.FlexFloat `json:"frequency"`
	PowerFactor *domain.FlexFloat `json:"power_factor"`
	Status      string            `json:"status"`
}

// IngestService accepts telemetry submissions, validates them, records a
// reading and advances the owning appliance's snapshot and usage counter.
type IngestService struct {
	readings   ReadingStore
	appliances ApplianceStore
	last       *LastSample

	alerter        Alerter
	alertThreshold float64
}

func NewIngestService(readings ReadingStore, appliances ApplianceStore) *IngestService {
	return &IngestService{
		readings:   readings,
		appliances: appliances,
		last:       NewLastSample(),
	}
}

// EnableAlerts turns on over-power notifications for accepted readings
// whose power sample exceeds threshold.
func (s *IngestService) EnableAlerts(a Alerter, threshold float64) {
	s.alerter = a
	s.alertThreshold = threshold
}

// Submit ingests one raw telemetry payload. On success the echoed payload
// is returned and the last-sample cache holds it; on any failure nothing
// is stored and the cache is untouched.
//
// The appliance's usage counter advances by the submitted power value
// itself, not power integrated over time. Dashboards present usage as
// "sum of power samples" and the firmware relies on that, so the simplified
// model is deliberate and must stay.
func (s *IngestService) Submit(ctx context.Context, payload []byte) (map[string]any, error) {
	start := time.Now()
	defer func() { metrics.IngestDuration.Observe(time.Since(start).Seconds()) }()

	var sub TelemetrySubmission
	if err := json.Unmarshal(payload, &sub); err != nil {
		metrics.ReadingsRejected.WithLabelValues("malformed").Inc()
		return nil, domain.NewValidationError("payload", err.Error())
	}

	if err := validateSubmission(&sub); err != nil {
		metrics.ReadingsRejected.WithLabelValues("validation").Inc()
		return nil, err
	}

	rd := readingFrom(&sub)
	if err := s.readings.RecordReading(ctx, rd); err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			metrics.ReadingsRejected.WithLabelValues("unknown_device").Inc()
		} else {
			metrics.ReadingsRejected.WithLabelValues("store").Inc()
		}
		return nil, err
	}

	metrics.ReadingsIngested.Inc()
	metrics.LastPower.WithLabelValues(rd.DeviceID).Set(rd.Power)

	var echo map[string]any
	if err := json.Unmarshal(payload, &echo); err == nil {
		s.last.Set(echo)
	}

	s.maybeAlert(rd)

	log.Info().
		Str("device_id", rd.DeviceID).
		Float64("power", rd.Power).
		Msg("reading stored")

	return echo, nil
}

// LastSample returns the most recent raw payload accepted from any device.
func (s *IngestService) LastSample() map[string]any {
	return s.last.Get()
}

// ReadingsForOwner lists a device's readings, newest first. Only the
// owning user may read them; admins are deliberately not escalated here,
// matching the dashboard contract.
func (s *IngestService) ReadingsForOwner(ctx context.Context, deviceID, requesterID string) ([]domain.Reading, error) {
	a, err := s.appliances.Appliance(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if a.UserID != requesterID {
		return nil, domain.ErrAccessDenied
	}
	return s.readings.ReadingsByDevice(ctx, deviceID)
}

func validateSubmission(sub *TelemetrySubmission) error {
	if sub.DeviceID == "" {
		return domain.NewValidationError("device_id", "required")
	}
	required := []struct {
		name  string
		value *domain.FlexFloat
	}{
		{"voltage", sub.Voltage},
		{"current", sub.Current},
		{"power", sub.Power},
		{"frequency", sub.Frequency},
		{"power_factor", sub.PowerFactor},
	}
	for _, f := range required {
		if f.value == nil {
			return domain.NewValidationError(f.name, "required")
		}
	}
	return nil
}

func readingFrom(sub *TelemetrySubmission) *domain.Reading {
	rd := &domain.Reading{
		DeviceID:    sub.DeviceID,
		Timestamp:   time.Now().UTC(),
		Voltage:     sub.Voltage.Float64(),
		Current:     sub.Current.Float64(),
		Power:       sub.Power.Float64(),
		Frequency:   sub.Frequency.Float64(),
		PowerFactor: sub.PowerFactor.Float64(),
		Status:      "active",
	}
	if sub.Timestamp != nil {
		rd.Timestamp = *sub.Timestamp
	}
	if sub.Energy != nil {
		rd.Energy = sub.Energy.Float64()
	}
	if sub.Status != "" {
		rd.Status = sub.Status
	}
	return rd
}

func (s *IngestService) maybeAlert(rd *domain.Reading) {
	if s.alerter == nil || rd.Power <= s.alertThreshold {
		return
	}
	// Best effort; an alert failure never fails the ingestion.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.alerter.SendOverPowerAlert(ctx, rd.DeviceID, rd.Power, s.alertThreshold); err != nil {
		log.Error().Err(err).Str("device_id", rd.DeviceID).Msg("over-power alert failed")
	}
}
