package service

import (
	"context"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/google/uuid"
)

type AddApplianceRequest struct {
	UserID   string            `json:"userId" validate:"required"`
	ID       string            `json:"id"`
	DeviceID string            `json:"deviceId"`
	Name     string            `json:"name" validate:"required"`
	Usage    *domain.FlexFloat `json:"usage" validate:"required"`
}

type UpdateApplianceRequest struct {
	UserID string            `json:"userId" validate:"required"`
	Name   string            `json:"name" validate:"required"`
	Usage  *domain.FlexFloat `json:"usage" validate:"required"`
}

// UserView is a dashboard projection: the account plus its appliances
// reduced to {id, name, usage}.
type UserView struct {
	ID                 string                    `json:"id"`
	Username           string                    `json:"username"`
	Name               string                    `json:"name"`
	Role               string                    `json:"role"`
	MustChangePassword bool                      `json:"mustChangePassword"`
	Devices            []domain.ApplianceSummary `json:"devices"`
}

// DirectoryService serves the dashboard views and the admin-side appliance
// and user management. Role checks happen at the route boundary; ownership
// is matched here via (id, userId) scoped queries.
type DirectoryService struct {
	users      UserStore
	appliances ApplianceStore
}

func NewDirectoryService(users UserStore, appliances ApplianceStore) *DirectoryService {
	return &DirectoryService{users: users, appliances: appliances}
}

func (s *DirectoryService) viewOf(ctx context.Context, u *domain.User) (*UserView, error) {
	appliances, err := s.appliances.AppliancesByOwner(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	devices := make([]domain.ApplianceSummary, 0, len(appliances))
	for i := range appliances {
		devices = append(devices, appliances[i].Summary())
	}
	return &UserView{
		ID:                 u.ID,
		Username:           u.Username,
		Name:               u.Name,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		Devices:            devices,
	}, nil
}

func (s *DirectoryService) UserView(ctx context.Context, userID string) (*UserView, error) {
	u, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, u)
}

// AdminView lists every account (passwords excluded) with its reduced
// appliance list.
func (s *DirectoryService) AdminView(ctx context.Context) ([]UserView, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for i := range users {
		v, err := s.viewOf(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// AddAppliance registers a plug for a user. The id is the explicit id,
// the provided deviceId, or a generated one, and must be unique across
// all appliances. The starting usage is the seeded value, not zero.
func (s *DirectoryService) AddAppliance(ctx context.Context, req AddApplianceRequest) (*domain.ApplianceSummary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}
	if req.Usage.Float64() <= 0 {
		return nil, domain.NewValidationError("usage", "must be a positive number")
	}

	if _, err := s.users.UserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = req.DeviceID
	}
	if id == "" {
		id = uuid.NewString()
	}

	a := &domain.Appliance{
		ID:     id,
		Name:   req.Name,
		Usage:  req.Usage.Float64(),
		UserID: req.UserID,
	}
	if err := s.appliances.CreateAppliance(ctx, a); err != nil {
		return nil, err
	}

	sum := a.Summary()
	return &sum, nil
}

// UpdateAppliance overwrites name and usage absolutely, bypassing the
// cumulative ingestion semantics.
func (s *DirectoryService) UpdateAppliance(ctx context.Context, deviceID string, req UpdateApplianceRequest) (*domain.ApplianceSummary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	a, err := s.appliances.UpdateAppliance(ctx, deviceID, req.UserID, req.Name, req.Usage.Float64())
	if err != nil {
		return nil, err
	}
	sum := a.Summary()
	return &sum, nil
}

// DeleteAppliance removes the plug matching (deviceID, userID). Its
// readings are retained as history.
func (s *DirectoryService) DeleteAppliance(ctx context.Context, deviceID, userID string) error {
	if userID == "" {
		return domain.NewValidationError("userId", "required")
	}
	return s.appliances.DeleteAppliance(ctx, deviceID, userID)
}

// DeleteUser removes the account and all appliances it owns.
func (s *DirectoryService) DeleteUser(ctx context.Context, userID string) error {
	return s.users.DeleteUser(ctx, userID)
}
