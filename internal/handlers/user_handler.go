package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/timezone"
	"github.com/plannora/appointments-api/internal/validators"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type CreateUserRequest struct {
	RoleSlug  string `json:"role" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Timezone  string `json:"timezone"`
	Notes     string `json:"notes"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Timezone  string `json:"timezone"`
	Notes     string `json:"notes"`
}

func (h *UserHandler) List(c *gin.Context) {
	q := h.db.Preload("Role")

	if role := c.Query("role"); role != "" {
		q = q.Joins("JOIN roles ON roles.id = users.role_id").
			Where("roles.slug = ?", role)
	}

	var users []models.User
	if err := q.Order("last_name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list users.")
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid user id.")
		return
	}

	var user models.User
	if err := h.db.Preload("Role").Preload("Services").First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var role models.Role
	if err := h.db.Where("slug = ?", req.RoleSlug).First(&role).Error; err != nil {
		httperr.BadRequest(c, "invalid_role", "Unknown role.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not resolve.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "A user with this e-mail already exists.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	user := models.User{
		RoleID:    role.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     req.Phone,
		Address:   req.Address,
		Timezone:  req.Timezone,
		Notes:     req.Notes,
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Failed to hash password.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create user.")
		return
	}
	user.Role = role

	httpresp.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid user id.")
		return
	}

	var user models.User
	if err := h.db.Preload("Role").First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			if !validators.IsEmailDomainValid(email) {
				httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not resolve.")
				return
			}
			var count int64
			h.db.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "email_already_exists", "A user with this e-mail already exists.")
				return
			}
			user.Email = email
		}
	}

	if req.Timezone != "" {
		if !timezone.IsValid(req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		user.Timezone = req.Timezone
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Notes != "" {
		user.Notes = req.Notes
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Failed to hash password.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update user.")
		return
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid user id.")
		return
	}

	// Users with appointment history keep their rows; otherwise reports and
	// listings would dangle.
	var count int64
	h.db.Model(&models.Appointment{}).
		Where("provider_id = ? OR customer_id = ?", id, id).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "user_has_appointments", "User has appointments and cannot be deleted.")
		return
	}

	if err := h.db.Delete(&models.User{}, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "delete_failed", "Failed to delete user.")
		return
	}
	c.Status(204)
}
