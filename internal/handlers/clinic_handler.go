package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicConfigRequest struct {
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Timezone          *string `json:"timezone"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao buscar dados da clínica.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clinic":           clinic,
		"timezone_display": timezone.FormatZoneDisplay(clinic.Timezone),
	})
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao buscar dados da clínica.")
		return
	}

	var req UpdateClinicConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		clinic.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.Timezone != nil {
		// entrada fora do padrão degrada para a zona default
		clinic.Timezone = timezone.EnsureIANA(*req.Timezone)
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Erro ao salvar as configurações da clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
