package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID                 string    `db:"id" json:"id"`
	Username           string    `db:"username" json:"username"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	Name               string    `db:"name" json:"name"`
	Role               string    `db:"role" json:"role"`
	MustChangePassword bool      `db:"must_change_password" json:"mustChangePassword"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Appliance is one registered plug. The snapshot columns hold the last
// submitted electrical values and stay NULL until the first reading arrives.
type Appliance struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Usage       float64    `db:"usage" json:"usage"`
	UserID      string     `db:"user_id" json:"userId"`
	Voltage     *float64   `db:"voltage" json:"voltage,omitempty"`
	Current     *float64   `db:"current" json:"current,omitempty"`
	Power       *float64   `db:"power" json:"power,omitempty"`
	Frequency   *float64   `db:"frequency" json:"frequency,omitempty"`
	PowerFactor *float64   `db:"power_factor" json:"power_factor,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// ApplianceSummary is the reduced projection returned by the dashboard views.
type ApplianceSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Usage float64 `json:"usage"`
}

func (a *Appliance) Summary() ApplianceSummary {
	return ApplianceSummary{ID: a.ID, Name: a.Name, Usage: a.Usage}
}

type Reading struct {
	ID          int64     `db:"id" json:"id"`
	DeviceID    string    `db:"device_id" json:"device_id"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
	Voltage     float64   `db:"voltage" json:"voltage"`
	Current     float64   `db:"current" json:"current"`
	Power       float64   `db:"power" json:"power"`
	Energy      float64   `db:"energy" json:"energy"`
	Frequency   float64   `db:"frequency" json:"frequency"`
	PowerFactor float64   `db:"power_factor" json:"power_factor"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
