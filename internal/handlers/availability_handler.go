package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httpresp"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	ucAvailability "github.com/VidaPlenaApps/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db      *gorm.DB
	saveUC  *ucAvailability.SaveAvailability
	monthUC *ucAvailability.ListMonth
}

func NewAvailabilityHandler(
	db *gorm.DB,
	saveUC *ucAvailability.SaveAvailability,
	monthUC *ucAvailability.ListMonth,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:      db,
		saveUC:  saveUC,
		monthUC: monthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyBlockConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeeklyBlocksUpdateRequest struct {
	Days []WeeklyBlockConfig `json:"days" binding:"required"`
}

type SaveAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Timezone  string `json:"timezone"`

	// flags do bloco sendo editado, como a UI as conhece
	BlockID      uint `json:"block_id"`
	IsRecurring  bool `json:"is_recurring"`
	IsException  bool `json:"is_exception"`
	IsStandalone bool `json:"is_standalone"`
	OriginalID   uint `json:"original_availability_id"`

	// "occurrence" | "series" (só importa para bloco recorrente)
	Scope string `json:"scope"`
}

// ======================================================
// WEEKLY BLOCKS (configuração base)
// ======================================================

func (h *AvailabilityHandler) GetBlocks(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	clinicianID := userIDVal.(uint)

	var blocks []models.AvailabilityBlock
	if err := h.db.
		Where("clinician_id = ?", clinicianID).
		Order("weekday ASC").
		Find(&blocks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *AvailabilityHandler) UpdateBlocks(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	clinicianID := userIDVal.(uint)

	var req WeeklyBlocksUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// exceções NÃO são apagadas aqui: continuam valendo para as
	// datas em que foram criadas
	if err := h.db.Where("clinician_id = ?", clinicianID).Delete(&models.AvailabilityBlock{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_blocks"})
		return
	}

	var toCreate []models.AvailabilityBlock
	for _, d := range req.Days {
		block := models.AvailabilityBlock{
			ClinicianID: clinicianID,
			Weekday:     d.Weekday,
			Active:      d.Active,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Recurring:   true,
		}
		toCreate = append(toCreate, block)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_blocks"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// SAVE (ocorrência / série / slot avulso)
// ======================================================

func (h *AvailabilityHandler) Save(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	scope := domain.ScopeOccurrence
	if req.Scope == string(domain.ScopeSeries) {
		scope = domain.ScopeSeries
	}

	result, err := h.saveUC.Execute(c.Request.Context(), ucAvailability.SaveAvailabilityInput{
		ClinicID:    clinicID,
		ClinicianID: clinicianID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Timezone:    req.Timezone,
		Block: domain.BlockRef{
			ID:           req.BlockID,
			IsRecurring:  req.IsRecurring,
			IsException:  req.IsException,
			IsStandalone: req.IsStandalone,
			OriginalID:   req.OriginalID,
		},
		Scope: scope,
	})

	if err != nil {
		if httperr.AnyBusiness(err) {
			httperr.BadRequest(c, err.Error(), "Não foi possível salvar a disponibilidade.")
			return
		}
		httperr.Internal(c, "failed_to_save_availability", "Erro ao salvar disponibilidade.")
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// MONTH CALENDAR
// ======================================================

func (h *AvailabilityHandler) Month(c *gin.Context) {
	clinicianID := c.MustGet(middleware.ContextUserID).(uint)

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

	tz := c.Query("timezone")

	occurrences, err := h.monthUC.Execute(c.Request.Context(), clinicianID, year, month, tz)
	if err != nil {
		httperr.Internal(c, "failed_to_expand_month", "Erro ao montar o calendário.")
		return
	}

	httpresp.OK(c, gin.H{
		"year":        year,
		"month":       month,
		"occurrences": occurrences,
	})
}
