package vision

import "sync"

// Manager holds the live-tunable pupil threshold and hands out the current
// value once per tick. The threshold can be changed from the window trackbar
// or the dashboard while the session runs.
type Manager struct {
	mu        sync.RWMutex
	threshold int

	// Callback when the threshold changes (for syncing external controls)
	OnChange func(threshold int)
}

// NewManager creates a manager with the given starting threshold.
func NewManager(threshold int) (*Manager, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Manager{threshold: threshold}, nil
}

// Threshold returns the current pupil threshold.
func (m *Manager) Threshold() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.threshold
}

// SetThreshold updates the threshold. Out-of-range values are rejected here
// and never reach the detector.
func (m *Manager) SetThreshold(v int) error {
	if err := ValidateThreshold(v); err != nil {
		return err
	}

	m.mu.Lock()
	changed := m.threshold != v
	m.threshold = v
	callback := m.OnChange
	m.mu.Unlock()

	if changed && callback != nil {
		callback(v)
	}
	return nil
}
