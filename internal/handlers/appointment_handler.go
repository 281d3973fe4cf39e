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
	ucAppointment "github.com/VidaPlenaApps/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC      *ucAppointment.CreateAppointment
	completeUC    *ucAppointment.CompleteAppointment
	cancelUC      *ucAppointment.CancelAppointment
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth
	slotsUC       *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	slotsUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		createUC:      createUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		slotsUC:       slotsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ClientPhone   string `json:"client_phone" binding:"required"`
	ClientEmail   string `json:"client_email"`
	SessionTypeID uint   `json:"session_type_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClinicID:      clinicID,
		ClinicianID:   clinicianID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		SessionTypeID: req.SessionTypeID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		case httperr.IsBusiness(err, "too_soon"):
			httperr.BadRequest(c, "too_soon", "Horário inválido.")
		case httperr.IsBusiness(err, "session_type_not_found"):
			httperr.BadRequest(c, "session_type_not_found", "Tipo de sessão não encontrado.")
		case httperr.IsBusiness(err, "outside_availability"):
			httperr.BadRequest(c, "outside_availability", "Fora da disponibilidade do profissional.")
		case httperr.IsBusiness(err, "time_conflict"):
			httperr.BadRequest(c, "time_conflict", "Conflito de horário.")
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar sessão.")
		}
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "clinic_not_found", "Clínica não encontrada.")
		return
	}

	date, err := parseDateInClinic(&clinic, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), clinicianID, clinicID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar sessões.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), clinicianID, clinicID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar sessões.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// SLOTS
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	sessionTypeStr := c.Query("session_type_id")

	if dateStr == "" || sessionTypeStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e tipo de sessão são obrigatórios.")
		return
	}

	sessionTypeID, err := strconv.Atoi(sessionTypeStr)
	if err != nil || sessionTypeID <= 0 {
		httperr.BadRequest(c, "invalid_session_type", "Tipo de sessão inválido.")
		return
	}

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "clinic_not_found", "Clínica não encontrada.")
		return
	}

	date, err := parseDateInClinic(&clinic, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		ClinicID:      clinicID,
		ClinicianID:   clinicianID,
		SessionTypeID: uint(sessionTypeID),
		Date:          date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "session_type_not_found") {
			httperr.BadRequest(c, "session_type_not_found", "Tipo de sessão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_slots", "Erro ao calcular horários livres.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), clinicID, clinicianID, uint(id))
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), clinicID, clinicianID, uint(id))
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) writeStateChangeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Sessão não encontrada.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Sessão não pode mudar de estado.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar sessão.")
	}
}
