package repository

import (
	"context"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
)

// RecordReading appends the reading and updates the owning appliance in a
// single transaction. The usage increment is a relative UPDATE computed by
// the database, so concurrent submissions for the same device never lose
// increments to a read-modify-write race.
func (r *Repos) RecordReading(ctx context.Context, rd *domain.Reading) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE appliances
		 SET voltage = $1, current = $2, power = $3, frequency = $4, power_factor = $5,
		     usage = usage + $3, updated_at = now()
		 WHERE id = $6`,
		rd.Voltage, rd.Current, rd.Power, rd.Frequency, rd.PowerFactor, rd.DeviceID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDeviceNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO readings(device_id, timestamp, voltage, current, power, energy, frequency, power_factor, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rd.DeviceID, rd.Timestamp, rd.Voltage, rd.Current, rd.Power, rd.Energy, rd.Frequency, rd.PowerFactor, rd.Status); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repos) ReadingsByDevice(ctx context.Context, deviceID string) ([]domain.Reading, error) {
	var out []domain.Reading
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, device_id, timestamp, voltage, current, power, energy, frequency, power_factor, status, created_at
		 FROM readings WHERE device_id = $1 ORDER BY timestamp DESC`, deviceID)
	return out, err
}
