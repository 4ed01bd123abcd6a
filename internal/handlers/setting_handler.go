package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/settings"
	"github.com/plannora/appointments-api/internal/timezone"
)

type SettingHandler struct {
	settings *settings.Service
}

func NewSettingHandler(svc *settings.Service) *SettingHandler {
	return &SettingHandler{settings: svc}
}

type SettingRequest struct {
	Value string `json:"value"`
}

// known settings and their validation.
var settingValidators = map[string]func(string) bool{
	models.SettingCompanyTimezone: timezone.IsValid,
	models.SettingMinimumDurationMinutes: func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n > 0
	},
}

func (h *SettingHandler) Get(c *gin.Context) {
	name := c.Param("name")
	if _, ok := settingValidators[name]; !ok {
		httperr.NotFound(c, "unknown_setting", "Unknown setting.")
		return
	}

	value, err := h.settings.Get(c.Request.Context(), name)
	if err != nil {
		httperr.Internal(c, "setting_read_failed", "Failed to read setting.")
		return
	}
	httpresp.OK(c, gin.H{"name": name, "value": value})
}

func (h *SettingHandler) Put(c *gin.Context) {
	name := c.Param("name")
	validate, ok := settingValidators[name]
	if !ok {
		httperr.NotFound(c, "unknown_setting", "Unknown setting.")
		return
	}

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !validate(req.Value) {
		httperr.BadRequest(c, "invalid_value", "Invalid value for setting "+name+".")
		return
	}

	if err := h.settings.Put(c.Request.Context(), name, req.Value); err != nil {
		httperr.Internal(c, "setting_write_failed", "Failed to write setting.")
		return
	}
	httpresp.OK(c, gin.H{"name": name, "value": req.Value})
}
