package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plannora/appointments-api/internal/models"
)

// Actions emitted by the use cases.
const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentUpdated   = "appointment_updated"
	ActionAppointmentConfirmed = "appointment_confirmed"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentCompleted = "appointment_completed"
	ActionAppointmentDeleted   = "appointment_deleted"
	ActionBlockedPeriodSaved   = "blocked_period_saved"
	ActionBlockedPeriodDeleted = "blocked_period_deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   uint      `json:"entity_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EndpointSource lists the endpoints subscribed to an action.
type EndpointSource interface {
	ActiveEndpoints(ctx context.Context, action string) ([]models.WebhookEndpoint, error)
}

// Sender delivers one event to one endpoint.
type Sender interface {
	Send(ctx context.Context, ep models.WebhookEndpoint, ev Event) error
}

// Dispatcher fans events out to subscribed endpoints from a background
// worker. Dispatch never blocks the calling request; when the queue is full
// the event is dropped and logged, never failing the triggering write.
type Dispatcher struct {
	source EndpointSource
	sender Sender
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(source EndpointSource, sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		source: source,
		sender: sender,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	endpoints, err := d.source.ActiveEndpoints(ctx, ev.Action)
	if err != nil {
		d.log.Error("webhook endpoint lookup failed",
			zap.String("action", ev.Action), zap.Error(err))
		return
	}

	for _, ep := range endpoints {
		if err := d.sender.Send(ctx, ep, ev); err != nil {
			d.log.Warn("webhook delivery failed",
				zap.Uint("endpoint_id", ep.ID),
				zap.String("action", ev.Action),
				zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("webhook queue full, dropping event",
			zap.String("action", ev.Action), zap.Uint("entity_id", ev.EntityID))
	}
}

// Close stops the worker after draining queued events.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
