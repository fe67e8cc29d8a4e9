// Package service holds the application logic between the HTTP/MQTT edges
// and the persistence layer.
package service

import (
	"context"
	"errors"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

// UserStore is the persistence contract for user records.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	UserByID(ctx context.Context, id string) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetPassword(ctx context.Context, id, hash string, mustChange bool) error
	DeleteUser(ctx context.Context, id string) error
}

// ApplianceStore is the persistence contract for registered plugs.
type ApplianceStore interface {
	CreateAppliance(ctx context.Context, a *domain.Appliance) error
	Appliance(ctx context.Context, id string) (*domain.Appliance, error)
	AppliancesByOwner(ctx context.Context, ownerID string) ([]domain.Appliance, error)
	UpdateAppliance(ctx context.Context, id, ownerID, name string, usage float64) (*domain.Appliance, error)
	DeleteAppliance(ctx context.Context, id, ownerID string) error
}

// ReadingStore is the persistence contract for telemetry samples.
// RecordReading must apply the reading append and the appliance
// snapshot/usage update atomically.
type ReadingStore interface {
	RecordReading(ctx context.Context, rd *domain.Reading) error
	ReadingsByDevice(ctx context.Context, deviceID string) ([]domain.Reading, error)
}

// Alerter sends out-of-band notifications. Optional; nil disables alerts.
type Alerter interface {
	SendOverPowerAlert(ctx context.Context, deviceID string, power, threshold float64) error
}

type Services struct {
	Ingest    *IngestService
	Auth      *AuthService
	Directory *DirectoryService
}

func New(db *sqlx.DB, tokens *auth.JWTManager) *Services {
	repos := repository.New(db)
	return &Services{
		Ingest:    NewIngestService(repos, repos),
		Auth:      NewAuthService(repos, tokens),
		Directory: NewDirectoryService(repos, repos),
	}
}

var validate = validator.New()

// asValidationError maps validator failures onto the domain taxonomy so
// handlers can translate them uniformly.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewValidationError(verrs[0].Field(), "failed on the '"+verrs[0].Tag()+"' rule")
	}
	return domain.NewValidationError("payload", err.Error())
}
