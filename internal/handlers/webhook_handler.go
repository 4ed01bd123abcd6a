package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	"github.com/plannora/appointments-api/internal/models"
)

type WebhookHandler struct {
	db *gorm.DB
}

func NewWebhookHandler(db *gorm.DB) *WebhookHandler {
	return &WebhookHandler{db: db}
}

type WebhookEndpointRequest struct {
	Name          string `json:"name" binding:"required"`
	URL           string `json:"url" binding:"required"`
	Secret        string `json:"secret"`
	Actions       string `json:"actions"`
	IsSslVerified *bool  `json:"is_ssl_verified"`
	IsActive      *bool  `json:"is_active"`
	Notes         string `json:"notes"`
}

func validEndpointURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *WebhookHandler) List(c *gin.Context) {
	var endpoints []models.WebhookEndpoint
	if err := h.db.Order("name ASC").Find(&endpoints).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list webhook endpoints.")
		return
	}
	httpresp.List(c, endpoints)
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req WebhookEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !validEndpointURL(req.URL) {
		httperr.BadRequest(c, "invalid_url", "Endpoint URL must be http(s).")
		return
	}

	ep := models.WebhookEndpoint{
		Name:          req.Name,
		URL:           req.URL,
		Secret:        req.Secret,
		Actions:       req.Actions,
		IsSslVerified: true,
		IsActive:      true,
		Notes:         req.Notes,
	}
	if req.IsSslVerified != nil {
		ep.IsSslVerified = *req.IsSslVerified
	}
	if req.IsActive != nil {
		ep.IsActive = *req.IsActive
	}

	if err := h.db.Create(&ep).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create webhook endpoint.")
		return
	}
	httpresp.Created(c, ep)
}

func (h *WebhookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid endpoint id.")
		return
	}

	var ep models.WebhookEndpoint
	if err := h.db.First(&ep, id).Error; err != nil {
		httperr.NotFound(c, "endpoint_not_found", "Webhook endpoint not found.")
		return
	}

	var req WebhookEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !validEndpointURL(req.URL) {
		httperr.BadRequest(c, "invalid_url", "Endpoint URL must be http(s).")
		return
	}

	ep.Name = req.Name
	ep.URL = req.URL
	ep.Actions = req.Actions
	ep.Notes = req.Notes
	if req.Secret != "" {
		ep.Secret = req.Secret
	}
	if req.IsSslVerified != nil {
		ep.IsSslVerified = *req.IsSslVerified
	}
	if req.IsActive != nil {
		ep.IsActive = *req.IsActive
	}

	if err := h.db.Save(&ep).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update webhook endpoint.")
		return
	}
	httpresp.OK(c, ep)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid endpoint id.")
		return
	}

	if err := h.db.Delete(&models.WebhookEndpoint{}, id).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Failed to delete webhook endpoint.")
		return
	}
	c.Status(204)
}

// Deliveries lists the delivery log for one endpoint, newest first.
func (h *WebhookHandler) Deliveries(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid endpoint id.")
		return
	}

	var deliveries []models.WebhookDelivery
	if err := h.db.
		Where("endpoint_id = ?", id).
		Order("created_at DESC").
		Limit(100).
		Find(&deliveries).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list deliveries.")
		return
	}
	httpresp.List(c, deliveries)
}
