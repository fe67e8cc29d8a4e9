package service

import "sync"

var noDataYet = map[string]any{"status": "No data yet"}

// LastSample holds the most recent raw payload accepted from any device.
// It is process-wide and last-writer-wins: concurrent submissions from
// different devices overwrite each other and only the newest survives.
// It exists for quick device bring-up checks and is never an authoritative
// data source; it resets on restart.
type LastSample struct {
	mu      sync.RWMutex
	payload map[string]any
}

func NewLastSample() *LastSample { return &LastSample{} }

func (l *LastSample) Set(p map[string]any) {
	l.mu.Lock()
	l.payload = p
	l.mu.Unlock()
}

// Get returns the last accepted payload, or the "No data yet" sentinel if
// nothing has been ingested since process start.
func (l *LastSample) Get() map[string]any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.payload == nil {
		return noDataYet
	}
	return l.payload
}
