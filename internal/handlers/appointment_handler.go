package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	"github.com/plannora/appointments-api/internal/models"
	ucAppointment "github.com/plannora/appointments-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	deleteUC   *ucAppointment.DeleteAppointment

	availabilityUC *ucAppointment.CheckAvailability
	conflictsUC    *ucAppointment.GetConflicts
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	availabilityUC *ucAppointment.CheckAvailability,
	conflictsUC *ucAppointment.GetConflicts,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		createUC:       createUC,
		updateUC:       updateUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		deleteUC:       deleteUC,
		availabilityUC: availabilityUC,
		conflictsUC:    conflictsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ProviderID uint `json:"provider_id" binding:"required"`
	CustomerID uint `json:"customer_id"`
	ServiceID  uint `json:"service_id"`

	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end"`

	Location string `json:"location"`
	Notes    string `json:"notes"`
	Color    string `json:"color"`

	IsUnavailability bool `json:"is_unavailability"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		ProviderID:       req.ProviderID,
		CustomerID:       req.CustomerID,
		ServiceID:        req.ServiceID,
		Start:            req.Start,
		End:              req.End,
		Location:         req.Location,
		Notes:            req.Notes,
		Color:            req.Color,
		IsUnavailability: req.IsUnavailability,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateInput{
		ID:         id,
		ProviderID: req.ProviderID,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Start:      req.Start,
		End:        req.End,
		Location:   req.Location,
		Notes:      req.Notes,
		Color:      req.Color,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Provider").
		Preload("Customer").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

// List returns appointments in a [from, to) window, optionally filtered by
// provider, ordered by start time.
func (h *AppointmentHandler) List(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		httperr.BadRequest(c, "missing_from", "Query parameter 'from' is required.")
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		to = from.AddDate(0, 0, 1)
	}

	q := h.db.
		Preload("Provider").
		Preload("Customer").
		Preload("Service").
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC")

	if providerID, ok := parseUintQuery(c, "provider_id"); ok {
		q = q.Where("provider_id = ?", providerID)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list appointments.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirmUC.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.completeUC.Execute)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	execute func(ctx context.Context, id uint) (*models.Appointment, error),
) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	providerID, ok := parseUintQuery(c, "provider_id")
	if !ok {
		httperr.BadRequest(c, "missing_provider_id", "Query parameter 'provider_id' is required.")
		return
	}
	serviceID, ok := parseUintQuery(c, "service_id")
	if !ok {
		httperr.BadRequest(c, "missing_service_id", "Query parameter 'service_id' is required.")
		return
	}
	start, ok := parseTimeQuery(c, "start")
	if !ok {
		httperr.BadRequest(c, "missing_start", "Query parameter 'start' is required.")
		return
	}
	end, ok := parseTimeQuery(c, "end")
	if !ok {
		httperr.BadRequest(c, "missing_end", "Query parameter 'end' is required.")
		return
	}
	excludeID, _ := parseUintQuery(c, "exclude_id")

	iv := schedule.NewInterval(start, end)
	if !iv.Valid() {
		httperr.BadRequest(c, "invalid_interval", "End must be after start.")
		return
	}

	res, err := h.availabilityUC.Execute(c.Request.Context(), providerID, serviceID, iv, excludeID)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) Conflicts(c *gin.Context) {
	providerID, ok := parseUintQuery(c, "provider_id")
	if !ok {
		httperr.BadRequest(c, "missing_provider_id", "Query parameter 'provider_id' is required.")
		return
	}
	start, ok := parseTimeQuery(c, "start")
	if !ok {
		httperr.BadRequest(c, "missing_start", "Query parameter 'start' is required.")
		return
	}
	end, ok := parseTimeQuery(c, "end")
	if !ok {
		httperr.BadRequest(c, "missing_end", "Query parameter 'end' is required.")
		return
	}
	excludeID, _ := parseUintQuery(c, "exclude_id")

	iv := schedule.NewInterval(start, end)
	if !iv.Valid() {
		httperr.BadRequest(c, "invalid_interval", "End must be after start.")
		return
	}

	conflicts, err := h.conflictsUC.Execute(c.Request.Context(), providerID, iv, excludeID)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, conflicts)
}
