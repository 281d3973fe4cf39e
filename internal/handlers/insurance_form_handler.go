package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/httpresp"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/storage"
)

const maxDocumentUpload = 10 << 20 // 10 MB

type InsuranceFormHandler struct {
	db    *gorm.DB
	store *storage.DocumentStore
}

func NewInsuranceFormHandler(db *gorm.DB, store *storage.DocumentStore) *InsuranceFormHandler {
	return &InsuranceFormHandler{db: db, store: store}
}

// --------- Requests ---------

type CreateInsuranceFormRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	PayerName string `json:"payer_name" binding:"required"`
	MemberID  string `json:"member_id"`
	GroupID   string `json:"group_id"`
}

type UpdateInsuranceFormRequest struct {
	PayerName *string `json:"payer_name,omitempty"`
	MemberID  *string `json:"member_id,omitempty"`
	GroupID   *string `json:"group_id,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// ======================================================
// CRUD
// ======================================================

func (h *InsuranceFormHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var forms []models.InsuranceForm
	if err := q.
		Order("created_at DESC").
		Find(&forms).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_forms"})
		return
	}

	httpresp.List(c, forms)
}

func (h *InsuranceFormHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateInsuranceFormRequest
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

	form := models.InsuranceForm{
		ClinicID:  clinicID,
		ClientID:  client.ID,
		PayerName: req.PayerName,
		MemberID:  req.MemberID,
		GroupID:   req.GroupID,
		Status:    "pending",
	}

	if err := h.db.Create(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_form"})
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *InsuranceFormHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var form models.InsuranceForm
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&form).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "form_not_found"})
		return
	}

	var req UpdateInsuranceFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.PayerName != nil {
		form.PayerName = *req.PayerName
	}
	if req.MemberID != nil {
		form.MemberID = *req.MemberID
	}
	if req.GroupID != nil {
		form.GroupID = *req.GroupID
	}
	if req.Status != nil {
		switch *req.Status {
		case "pending", "submitted", "approved", "denied":
			form.Status = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
	}

	if err := h.db.Save(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_form"})
		return
	}

	c.JSON(http.StatusOK, form)
}

// ======================================================
// UPLOAD DO DOCUMENTO
// ======================================================

// UploadDocument recebe o arquivo do formulário (pdf ou imagem) e sobe
// para o bucket; a chave fica no registro.
func (h *InsuranceFormHandler) UploadDocument(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var form models.InsuranceForm
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&form).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "form_not_found"})
		return
	}

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_document"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed_to_read_document"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.store.Put(c.Request.Context(), "insurance-forms", contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_document"})
		return
	}

	form.DocumentKey = key
	form.Status = "submitted"

	if err := h.db.Save(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_document_key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_key": key,
		"status":       form.Status,
	})
}
