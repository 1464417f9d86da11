package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/PalcoServices/palco-hire/internal/dto"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/httpresp"
	"github.com/PalcoServices/palco-hire/internal/middleware"
	"github.com/PalcoServices/palco-hire/internal/models"
	"github.com/PalcoServices/palco-hire/internal/storage"
)

const artistCacheTTL = 10 * time.Minute

// ======================================================
// HANDLER
// ======================================================

// ArtistHandler serve o diretório de artistas: dado de referência, somente
// leitura para o núcleo de contratações.
type ArtistHandler struct {
	db      *gorm.DB
	cache   *redis.Client
	avatars *storage.AvatarStore
}

func NewArtistHandler(db *gorm.DB, cache *redis.Client, avatars *storage.AvatarStore) *ArtistHandler {
	return &ArtistHandler{
		db:      db,
		cache:   cache,
		avatars: avatars,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *ArtistHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	search := c.Query("search")
	genre := c.Query("genre")

	q := h.db.
		Model(&models.ArtistProfile{}).
		Joins("JOIN users ON users.id = artist_profiles.user_id")

	if search != "" {
		q = q.Where("users.name ILIKE ?", "%"+search+"%")
	}
	if genre != "" {
		q = q.Where("artist_profiles.genre = ?", genre)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Erro ao listar artistas.")
		return
	}

	var profiles []models.ArtistProfile
	if err := q.
		Preload("User").
		Order("artist_profiles.rating DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Erro ao listar artistas.")
		return
	}

	artists := make([]dto.ArtistDTO, 0, len(profiles))
	for _, p := range profiles {
		artists = append(artists, toArtistDTO(&p))
	}

	httpresp.OK(c, gin.H{
		"artists": artists,
		"total":   total,
	})
}

// ======================================================
// GET BY ID (cache-aside)
// ======================================================

func (h *ArtistHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_artist_id", "ID inválido.")
		return
	}

	key := artistCacheKey(uint(id))

	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), key).Result(); err == nil {
			var a dto.ArtistDTO
			if json.Unmarshal([]byte(cached), &a) == nil {
				httpresp.OK(c, a)
				return
			}
		}
	}

	var profile models.ArtistProfile
	if err := h.db.
		Preload("User").
		Where("user_id = ?", id).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Artista não encontrado.")
		return
	}

	a := toArtistDTO(&profile)

	if h.cache != nil {
		if payload, err := json.Marshal(a); err == nil {
			h.cache.Set(c.Request.Context(), key, payload, artistCacheTTL)
		}
	}

	httpresp.OK(c, a)
}

// ======================================================
// UPDATE BIO (artista autenticado)
// ======================================================

type UpdateBioRequest struct {
	Genre      string   `json:"genre"`
	Location   string   `json:"location"`
	Bio        string   `json:"bio"`
	About      string   `json:"about"`
	HourlyRate *float64 `json:"hourly_rate"`
	Available  *bool    `json:"available"`
}

func (h *ArtistHandler) UpdateBio(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != "artist" {
		httperr.Forbidden(c, "wrong_role", "Apenas artistas podem editar o perfil.")
		return
	}

	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var profile models.ArtistProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "artist_not_found", "Perfil não encontrado.")
		return
	}

	if req.Genre != "" {
		profile.Genre = req.Genre
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.About != "" {
		profile.About = req.About
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			httperr.BadRequest(c, "invalid_hourly_rate", "Tarifa inválida.")
			return
		}
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	h.invalidate(c.Request.Context(), userID)

	httpresp.OK(c, profile)
}

// ======================================================
// AVATAR UPLOAD
// ======================================================

func (h *ArtistHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar", "Arquivo de avatar obrigatório.")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxAvatarSize {
		httperr.BadRequest(c, "avatar_too_large", "Arquivo excede o limite.")
		return
	}

	url, err := h.avatars.Upload(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "invalid_avatar", "Não foi possível processar a imagem.")
		return
	}

	if err := h.db.
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_avatar", "Erro ao salvar avatar.")
		return
	}

	h.invalidate(c.Request.Context(), userID)

	httpresp.OK(c, gin.H{"avatar_url": url})
}

// ======================================================
// HELPERS
// ======================================================

func toArtistDTO(p *models.ArtistProfile) dto.ArtistDTO {
	return dto.ArtistDTO{
		ID:            p.UserID,
		Name:          p.User.Name,
		AvatarURL:     p.User.AvatarURL,
		Verified:      p.Verified,
		HourlyRate:    p.HourlyRate,
		Genre:         p.Genre,
		Location:      p.Location,
		Rating:        p.Rating,
		TotalBookings: p.TotalBookings,
		Bio:           p.Bio,
		Available:     p.Available,
	}
}

func artistCacheKey(id uint) string {
	return fmt.Sprintf("artist:%d", id)
}

func (h *ArtistHandler) invalidate(ctx context.Context, id uint) {
	if h.cache != nil {
		h.cache.Del(ctx, artistCacheKey(id))
	}
}
