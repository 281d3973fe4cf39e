package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

type SessionNoteHandler struct {
	db *gorm.DB
}

func NewSessionNoteHandler(db *gorm.DB) *SessionNoteHandler {
	return &SessionNoteHandler{db: db}
}

// --------- Requests ---------

type CreateNoteTemplateRequest struct {
	Name string `json:"name" binding:"required"`
	Body string `json:"body" binding:"required"`
}

type UpdateNoteTemplateRequest struct {
	Name   *string `json:"name,omitempty"`
	Body   *string `json:"body,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type CreateSessionNoteRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	AppointmentID *uint  `json:"appointment_id"`
	TemplateID    *uint  `json:"template_id"`
	Body          string `json:"body" binding:"required"`
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *SessionNoteHandler) ListTemplates(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var templates []models.SessionNoteTemplate
	if err := h.db.
		Where("clinic_id = ? AND active = ?", clinicID, true).
		Order("name ASC").
		Find(&templates).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_templates"})
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *SessionNoteHandler) CreateTemplate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateNoteTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	tpl := models.SessionNoteTemplate{
		ClinicID: clinicID,
		Name:     req.Name,
		Body:     req.Body,
		Active:   true,
	}

	if err := h.db.Create(&tpl).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_template"})
		return
	}

	c.JSON(http.StatusCreated, tpl)
}

func (h *SessionNoteHandler) UpdateTemplate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var tpl models.SessionNoteTemplate
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&tpl).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "template_not_found"})
		return
	}

	var req UpdateNoteTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Body != nil {
		tpl.Body = *req.Body
	}
	if req.Active != nil {
		tpl.Active = *req.Active
	}

	if err := h.db.Save(&tpl).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_template"})
		return
	}

	c.JSON(http.StatusOK, tpl)
}

// ======================================================
// NOTES
// ======================================================

func (h *SessionNoteHandler) ListNotesByClient(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID := c.Param("id")

	// garante que o cliente pertence à clínica antes de expor anotações
	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", clientID, clinicID).
		First(&client).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	var notes []models.SessionNote
	if err := h.db.
		Where("client_id = ? AND clinician_id = ?", client.ID, clinicianID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *SessionNoteHandler) CreateNote(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateSessionNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.ClientID, clinicID).
		First(&client).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	note := models.SessionNote{
		ClinicianID:   clinicianID,
		ClientID:      client.ID,
		AppointmentID: req.AppointmentID,
		TemplateID:    req.TemplateID,
		Body:          req.Body,
	}

	if err := h.db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}
