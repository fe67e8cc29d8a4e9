package service

import (
	"context"
	"sort"
	"sync"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
)

// memStore is an in-memory stand-in for the repository, mirroring its
// semantics including the atomic reading append + appliance update.
type memStore struct {
	mu         sync.Mutex
	users      []*domain.User
	appliances []*domain.Appliance
	readings   []domain.Reading
	nextID     int64
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUser
		}
	}
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) UserByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) ListUsers(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memStore) SetPassword(_ context.Context, id, hash string, mustChange bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = hash
			u.MustChangePassword = mustChange
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memStore) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, u := range m.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrUserNotFound
	}
	kept := m.appliances[:0]
	for _, a := range m.appliances {
		if a.UserID != id {
			kept = append(kept, a)
		}
	}
	m.appliances = kept
	m.users = append(m.users[:idx], m.users[idx+1:]...)
	return nil
}

func (m *memStore) CreateAppliance(_ context.Context, a *domain.Appliance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.appliances {
		if existing.ID == a.ID {
			return domain.ErrDuplicateDevice
		}
	}
	cp := *a
	m.appliances = append(m.appliances, &cp)
	return nil
}

func (m *memStore) Appliance(_ context.Context, id string) (*domain.Appliance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appliances {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (m *memStore) AppliancesByOwner(_ context.Context, ownerID string) ([]domain.Appliance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Appliance
	for _, a := range m.appliances {
		if a.UserID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) UpdateAppliance(_ context.Context, id, ownerID, name string, usage float64) (*domain.Appliance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appliances {
		if a.ID == id && a.UserID == ownerID {
			a.Name = name
			a.Usage = usage
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (m *memStore) DeleteAppliance(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.appliances {
		if a.ID == id && a.UserID == ownerID {
			m.appliances = append(m.appliances[:i], m.appliances[i+1:]...)
			return nil
		}
	}
	return domain.ErrDeviceNotFound
}

func (m *memStore) RecordReading(_ context.Context, rd *domain.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var target *domain.Appliance
	for _, a := range m.appliances {
		if a.ID == rd.DeviceID {
			target = a
			break
		}
	}
	if target == nil {
		return domain.ErrDeviceNotFound
	}
	v, c, p, f, pf := rd.Voltage, rd.Current, rd.Power, rd.Frequency, rd.PowerFactor
	target.Voltage, target.Current, target.Power, target.Frequency, target.PowerFactor = &v, &c, &p, &f, &pf
	target.Usage += rd.Power

	m.nextID++
	cp := *rd
	cp.ID = m.nextID
	m.readings = append(m.readings, cp)
	return nil
}

func (m *memStore) ReadingsByDevice(_ context.Context, deviceID string) ([]domain.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Reading
	for _, rd := range m.readings {
		if rd.DeviceID == deviceID {
			out = append(out, rd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memStore) readingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.readings)
}

func (m *memStore) usageOf(id string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appliances {
		if a.ID == id {
			return a.Usage
		}
	}
	return -1
}
