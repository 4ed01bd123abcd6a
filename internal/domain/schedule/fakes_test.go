package schedule

import (
	"context"
	"sync"

	"github.com/plannora/appointments-api/internal/models"
)

// ---------- In-memory stores ----------

type memoryStore struct {
	mu      sync.Mutex
	nextID  uint
	appts   map[uint]models.Appointment
	periods map[uint]models.BlockedPeriod
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		appts:   make(map[uint]models.Appointment),
		periods: make(map[uint]models.BlockedPeriod),
	}
}

func (m *memoryStore) addAppointment(ap models.Appointment) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ap.ID = m.nextID
	m.appts[ap.ID] = ap
	return ap.ID
}

func (m *memoryStore) addPeriod(bp models.BlockedPeriod) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	bp.ID = m.nextID
	m.periods[bp.ID] = bp
	return bp.ID
}

func (m *memoryStore) CountOverlapping(_ context.Context, providerID, serviceID uint, iv Interval, sameService bool, excludeID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, ap := range m.appts {
		if ap.ID == excludeID || ap.ProviderID != providerID || ap.IsUnavailability {
			continue
		}
		if !Status(ap.Status).CountsTowardCapacity() {
			continue
		}
		if ap.ServiceID == nil {
			continue
		}
		if sameService != (*ap.ServiceID == serviceID) {
			continue
		}
		if Overlaps(Interval{Start: ap.Start, End: ap.End}, iv) {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) ListOverlapping(_ context.Context, providerID uint, iv Interval, excludeID uint) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, ap := range m.appts {
		if ap.ID == excludeID || ap.ProviderID != providerID {
			continue
		}
		if !Status(ap.Status).CountsTowardCapacity() {
			continue
		}
		if Overlaps(Interval{Start: ap.Start, End: ap.End}, iv) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *memoryStore) HashExists(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.appts {
		if ap.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) ListOverlappingPeriods(_ context.Context, iv Interval, excludeID uint) ([]models.BlockedPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.BlockedPeriod
	for _, bp := range m.periods {
		if bp.ID == excludeID {
			continue
		}
		if Overlaps(Interval{Start: bp.Start, End: bp.End}, iv) {
			out = append(out, bp)
		}
	}
	return out, nil
}

// periodStore adapts memoryStore to BlockedPeriodStore.
type periodStore struct{ *memoryStore }

func (p periodStore) ListOverlapping(ctx context.Context, iv Interval, excludeID uint) ([]models.BlockedPeriod, error) {
	return p.memoryStore.ListOverlappingPeriods(ctx, iv, excludeID)
}
