package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	"github.com/plannora/appointments-api/internal/middleware"
	"github.com/plannora/appointments-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,min=1"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Color       string  `json:"color"`

	AttendantsNumber   int    `json:"attendants_number"`
	IsPrivate          bool   `json:"is_private"`
	AvailabilitiesType string `json:"availabilities_type"`

	ProviderIDs []uint `json:"provider_ids"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Preload("Providers")

	// Private services are hidden from customer listings.
	if role, _ := c.Get(middleware.ContextUserRole); role == models.RoleCustomer {
		q = q.Where("is_private = ?", false)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.Preload("Providers").First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:               req.Name,
		Description:        req.Description,
		Duration:           req.Duration,
		Price:              req.Price,
		Currency:           req.Currency,
		Color:              req.Color,
		AttendantsNumber:   req.AttendantsNumber,
		IsPrivate:          req.IsPrivate,
		AvailabilitiesType: req.AvailabilitiesType,
	}
	if svc.AttendantsNumber <= 0 {
		svc.AttendantsNumber = 1
	}
	if svc.AvailabilitiesType == "" {
		svc.AvailabilitiesType = models.AvailabilitiesTypeFlexible
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create service.")
		return
	}

	if len(req.ProviderIDs) > 0 {
		if err := h.assignProviders(c, &svc, req.ProviderIDs); err != nil {
			return
		}
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Duration = req.Duration
	svc.Price = req.Price
	svc.Currency = req.Currency
	svc.Color = req.Color
	svc.IsPrivate = req.IsPrivate
	if req.AttendantsNumber > 0 {
		svc.AttendantsNumber = req.AttendantsNumber
	}
	if req.AvailabilitiesType != "" {
		svc.AvailabilitiesType = req.AvailabilitiesType
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update service.")
		return
	}

	if req.ProviderIDs != nil {
		if err := h.assignProviders(c, &svc, req.ProviderIDs); err != nil {
			return
		}
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	if err := h.db.Delete(&models.Service{}, id).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Failed to delete service.")
		return
	}
	c.Status(204)
}

// assignProviders replaces the provider association; every id must belong to
// a user holding the provider role.
func (h *ServiceHandler) assignProviders(c *gin.Context, svc *models.Service, ids []uint) error {
	var providers []models.User
	if err := h.db.
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.id IN ? AND roles.slug = ?", ids, models.RoleProvider).
		Find(&providers).Error; err != nil {
		httperr.Internal(c, "provider_lookup_failed", "Failed to resolve providers.")
		return err
	}
	if len(providers) != len(ids) {
		httperr.BadRequest(c, "invalid_provider", "Every provider id must belong to a provider.")
		return gorm.ErrRecordNotFound
	}

	if err := h.db.Model(svc).Association("Providers").Replace(providers); err != nil {
		httperr.Internal(c, "provider_assignment_failed", "Failed to assign providers.")
		return err
	}
	svc.Providers = providers
	return nil
}
