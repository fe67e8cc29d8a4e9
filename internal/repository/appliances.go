package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
)

func (r *Repos) CreateAppliance(ctx context.Context, a *domain.Appliance) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO appliances(id, name, usage, user_id) VALUES ($1,$2,$3,$4)`,
		a.ID, a.Name, a.Usage, a.UserID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateDevice
	}
	return err
}

func (r *Repos) Appliance(ctx context.Context, id string) (*domain.Appliance, error) {
	var a domain.Appliance
	err := r.db.GetContext(ctx, &a,
		`SELECT id, name, usage, user_id, voltage, current, power, frequency, power_factor, created_at, updated_at
		 FROM appliances WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repos) AppliancesByOwner(ctx context.Context, ownerID string) ([]domain.Appliance, error) {
	var out []domain.Appliance
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, usage, user_id, voltage, current, power, frequency, power_factor, created_at, updated_at
		 FROM appliances WHERE user_id = $1 ORDER BY created_at`, ownerID)
	return out, err
}

// UpdateAppliance overwrites name and usage for the appliance matching
// (id, ownerID). This is the absolute admin edit, not the cumulative
// ingestion path.
func (r *Repos) UpdateAppliance(ctx context.Context, id, ownerID, name string, usage float64) (*domain.Appliance, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appliances SET name = $1, usage = $2, updated_at = now() WHERE id = $3 AND user_id = $4`,
		name, usage, id, ownerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrDeviceNotFound
	}
	return r.Appliance(ctx, id)
}

func (r *Repos) DeleteAppliance(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM appliances WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}
