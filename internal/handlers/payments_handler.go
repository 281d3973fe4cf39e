package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/appointment"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/payments"
)

type PaymentsHandler struct {
	db      *gorm.DB
	charger *payments.Charger
}

func NewPaymentsHandler(db *gorm.DB, charger *payments.Charger) *PaymentsHandler {
	return &PaymentsHandler{db: db, charger: charger}
}

// ChargeAppointment cria a cobrança pix de uma sessão já concluída.
func (h *PaymentsHandler) ChargeAppointment(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	if !h.charger.Enabled() {
		httperr.BadRequest(c, "payments_disabled", "Cobrança online não está configurada.")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("SessionType").
		Where("id = ? AND clinic_id = ? AND clinician_id = ?", id, clinicID, clinicianID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Sessão não encontrada.")
		return
	}

	if domain.Status(ap.Status) != domain.StatusCompleted {
		httperr.BadRequest(c, "not_completed", "Só é possível cobrar sessões concluídas.")
		return
	}

	if ap.Client.Email == "" {
		httperr.BadRequest(c, "client_without_email", "Cliente sem email cadastrado.")
		return
	}

	result, err := h.charger.ChargeSession(
		c.Request.Context(),
		&ap,
		&ap.SessionType,
		ap.Client.Email,
	)
	if err != nil {
		httperr.Internal(c, "charge_failed", "Erro ao criar cobrança.")
		return
	}

	c.JSON(http.StatusOK, result)
}
