// Package valentine manages legacy valentine pages and their photo
// galleries. New content is authored as gift sites; this surface keeps
// the earlier schema editable.
package valentine

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/pkg/pagination"
	"github.com/giftloom/core/internal/pkg/response"
)

var ErrSlugTaken = errors.New("slug already exists")

type CreateValentineDTO struct {
	Slug          string                 `json:"slug"           binding:"required"`
	RecipientName string                 `json:"recipient_name" binding:"required"`
	HeroHeadline  string                 `json:"hero_headline"  binding:"required"`
	HeroSubtext   string                 `json:"hero_subtext"`
	SecretMessage string                 `json:"secret_message" binding:"required"`
	SecretCode    *string                `json:"secret_code"`
	LoveLetter    string                 `json:"love_letter"    binding:"required"`
	Promises      []string               `json:"promises"`
	Timeline      []models.TimelineEvent `json:"timeline"`
	MusicURL      *string                `json:"music_url"`
	FinalMessage  string                 `json:"final_message"  binding:"required"`
}

type AddPhotoDTO struct {
	PhotoURL     string  `json:"photo_url" binding:"required"`
	Caption      *string `json:"caption"`
	DisplayOrder int     `json:"display_order"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(q pagination.Query) ([]models.ValentinePageModel, response.Pagination, error) {
	tx := s.db.Model(&models.ValentinePageModel{}).Order("created_at DESC")
	var pages []models.ValentinePageModel
	pag, err := pagination.Paginate(tx, q, &pages)
	return pages, pag, err
}

func (s *Service) GetByID(id string) (*models.ValentinePageModel, error) {
	var page models.ValentinePageModel
	if err := s.db.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (s *Service) Create(dto *CreateValentineDTO) (*models.ValentinePageModel, error) {
	var count int64
	if err := s.db.Model(&models.ValentinePageModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	page := models.ValentinePageModel{
		Slug:          dto.Slug,
		RecipientName: dto.RecipientName,
		HeroHeadline:  dto.HeroHeadline,
		HeroSubtext:   dto.HeroSubtext,
		SecretMessage: dto.SecretMessage,
		SecretCode:    dto.SecretCode,
		LoveLetter:    dto.LoveLetter,
		Promises:      models.StringArray(dto.Promises),
		Timeline:      dto.Timeline,
		MusicURL:      dto.MusicURL,
		FinalMessage:  dto.FinalMessage,
	}
	return &page, s.db.Create(&page).Error
}

// Delete removes a page and its photos in one transaction; a photo
// never outlives its parent.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ValentinePhotoModel{}, "valentine_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ValentinePageModel{}, "id = ?", id).Error
	})
}

func (s *Service) Photos(valentineID string) ([]models.ValentinePhotoModel, error) {
	var photos []models.ValentinePhotoModel
	err := s.db.Where("valentine_id = ?", valentineID).
		Order("display_order ASC").
		Find(&photos).Error
	return photos, err
}

func (s *Service) AddPhoto(valentineID string, dto *AddPhotoDTO) (*models.ValentinePhotoModel, error) {
	page, err := s.GetByID(valentineID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	photo := models.ValentinePhotoModel{
		ValentineID:  valentineID,
		PhotoURL:     dto.PhotoURL,
		Caption:      dto.Caption,
		DisplayOrder: dto.DisplayOrder,
	}
	return &photo, s.db.Create(&photo).Error
}

func (s *Service) DeletePhoto(valentineID, photoID string) error {
	return s.db.Delete(&models.ValentinePhotoModel{}, "id = ? AND valentine_id = ?", photoID, valentineID).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/valentines", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/photos", h.photos)
	g.POST("/:id/photos", h.addPhoto)
	g.DELETE("/:id/photos/:photoId", h.deletePhoto)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	pages, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, pages, pag)
}

func (h *Handler) get(c *gin.Context) {
	page, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, page)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateValentineDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, page)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) photos(c *gin.Context) {
	photos, err := h.svc.Photos(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, photos)
}

func (h *Handler) addPhoto(c *gin.Context) {
	var dto AddPhotoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	photo, err := h.svc.AddPhoto(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if photo == nil {
		response.NotFound(c)
		return
	}
	response.Created(c, photo)
}

func (h *Handler) deletePhoto(c *gin.Context) {
	if err := h.svc.DeletePhoto(c.Param("id"), c.Param("photoId")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
