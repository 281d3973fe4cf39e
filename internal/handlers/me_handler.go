package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/media"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/storage"
)

type MeHandler struct {
	db    *gorm.DB
	store *storage.DocumentStore
}

func NewMeHandler(db *gorm.DB, store *storage.DocumentStore) *MeHandler {
	return &MeHandler{db: db, store: store}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		httperr.Unauthorized(c, "user_not_in_context", "Sessão inválida.")
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		httperr.Unauthorized(c, "invalid_user_id_type", "Sessão inválida.")
		return
	}

	var user models.User
	if err := h.db.Preload("Clinic").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
			"credential": user.Credential,
			"photo_key":  user.PhotoKey,
			"clinic_id":  user.ClinicID,
		},
		"clinic": gin.H{
			"id":       user.Clinic.ID,
			"name":     user.Clinic.Name,
			"slug":     user.Clinic.Slug,
			"phone":    user.Clinic.Phone,
			"address":  user.Clinic.Address,
			"timezone": user.Clinic.Timezone,
		},
	})
}

const maxPhotoUpload = 5 << 20 // 5 MB

// UploadPhoto recebe a foto de perfil, normaliza para webp e sobe
// para o bucket; guardamos só a chave no usuário.
func (h *MeHandler) UploadPhoto(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_photo"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed_to_read_photo"})
		return
	}

	normalized, err := media.NormalizePhoto(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image"})
		return
	}

	key, err := h.store.Put(c.Request.Context(), "profile-photos", "image/webp", normalized)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_store_photo"})
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("photo_key", key).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_photo_key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_key": key})
}
