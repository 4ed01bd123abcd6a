package appointment

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

// ---------- Appointment repository ----------

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	appts  map[uint]*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[uint]*models.Appointment)}
}

func (f *fakeRepo) CountOverlapping(_ context.Context, providerID, serviceID uint, iv schedule.Interval, sameService bool, excludeID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, ap := range f.appts {
		if ap.ID == excludeID || ap.ProviderID != providerID || ap.IsUnavailability {
			continue
		}
		if !schedule.Status(ap.Status).CountsTowardCapacity() || ap.ServiceID == nil {
			continue
		}
		if sameService != (*ap.ServiceID == serviceID) {
			continue
		}
		if schedule.Overlaps(schedule.NewInterval(ap.Start, ap.End), iv) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListOverlapping(_ context.Context, providerID uint, iv schedule.Interval, excludeID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appts {
		if ap.ID == excludeID || ap.ProviderID != providerID {
			continue
		}
		if !schedule.Status(ap.Status).CountsTowardCapacity() {
			continue
		}
		if schedule.Overlaps(schedule.NewInterval(ap.Start, ap.End), iv) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) HashExists(_ context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appts {
		if ap.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appts[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appts[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ap
	f.appts[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appts, id)
	return nil
}

func (f *fakeRepo) WithProviderLock(_ context.Context, _ uint, fn func(tx schedule.Repository) error) error {
	return fn(f)
}

// ---------- Blocked periods ----------

type fakePeriods struct {
	periods []models.BlockedPeriod
}

func (f *fakePeriods) ListOverlapping(_ context.Context, iv schedule.Interval, excludeID uint) ([]models.BlockedPeriod, error) {
	var out []models.BlockedPeriod
	for _, bp := range f.periods {
		if bp.ID == excludeID {
			continue
		}
		if schedule.Overlaps(schedule.NewInterval(bp.Start, bp.End), iv) {
			out = append(out, bp)
		}
	}
	return out, nil
}

// ---------- Directory / catalog / settings ----------

type fakeDirectory struct {
	roles map[uint]string
}

func (f *fakeDirectory) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := f.roles[id]
	return ok, nil
}

func (f *fakeDirectory) HasRole(_ context.Context, id uint, roleSlug string) (bool, error) {
	return f.roles[id] == roleSlug, nil
}

type fakeCatalog struct {
	services map[uint]models.Service
}

func (f *fakeCatalog) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := f.services[id]
	return ok, nil
}

func (f *fakeCatalog) AttendantsNumber(_ context.Context, id uint) (int, error) {
	return f.services[id].AttendantsNumber, nil
}

func (f *fakeCatalog) DurationMinutes(_ context.Context, id uint) (int, error) {
	return f.services[id].Duration, nil
}

type fakeSettings struct {
	min time.Duration
}

func (f *fakeSettings) MinimumDuration(_ context.Context) time.Duration {
	if f.min == 0 {
		return 15 * time.Minute
	}
	return f.min
}

// ---------- Webhook plumbing ----------

type nopSource struct{}

func (nopSource) ActiveEndpoints(_ context.Context, _ string) ([]models.WebhookEndpoint, error) {
	return nil, nil
}

type nopSender struct{}

func (nopSender) Send(_ context.Context, _ models.WebhookEndpoint, _ webhook.Event) error {
	return nil
}

func newNopDispatcher() *webhook.Dispatcher {
	return webhook.NewDispatcher(nopSource{}, nopSender{}, zap.NewNop())
}

// ---------- Fixture ----------

type fixture struct {
	repo     *fakeRepo
	periods  *fakePeriods
	users    *fakeDirectory
	services *fakeCatalog
	settings *fakeSettings
	events   *webhook.Dispatcher
}

func newFixture() *fixture {
	return &fixture{
		repo:    newFakeRepo(),
		periods: &fakePeriods{},
		users: &fakeDirectory{roles: map[uint]string{
			1: models.RoleProvider,
			2: models.RoleCustomer,
			3: models.RoleCustomer,
			9: models.RoleAdmin,
		}},
		services: &fakeCatalog{services: map[uint]models.Service{
			7: {ID: 7, Name: "Consultation", Duration: 60, AttendantsNumber: 1},
			8: {ID: 8, Name: "Follow-up", Duration: 30, AttendantsNumber: 1},
		}},
		settings: &fakeSettings{},
		events:   newNopDispatcher(),
	}
}

func (fx *fixture) create() *CreateAppointment {
	return NewCreateAppointment(fx.repo, fx.periods, fx.users, fx.services, fx.settings, fx.events)
}

func (fx *fixture) update() *UpdateAppointment {
	return NewUpdateAppointment(fx.repo, fx.periods, fx.users, fx.services, fx.settings, fx.events)
}
