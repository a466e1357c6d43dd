// Package gift is the authoring surface for new-format gift sites.
package gift

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/giftloom/core/internal/middleware"
	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/pkg/pagination"
	"github.com/giftloom/core/internal/pkg/response"
)

var (
	ErrSlugTaken = errors.New("slug already exists")
	ErrNotOwner  = errors.New("not the owner of this gift site")

	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]`)
)

type CreateGiftSiteDTO struct {
	Slug         string              `json:"slug"`
	TemplateType models.TemplateType `json:"template_type" binding:"required"`
	Content      models.ContentBag   `json:"content"`
	IsPublished  *bool               `json:"is_published"`
}

type UpdateGiftSiteDTO struct {
	Slug         *string              `json:"slug"`
	TemplateType *models.TemplateType `json:"template_type"`
	Content      *models.ContentBag   `json:"content"`
	IsPublished  *bool                `json:"is_published"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// NormalizeSlug lowercases and strips everything that is not URL-safe.
// An empty result falls back to a generated gift-<random> slug.
func NormalizeSlug(raw string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "")
	if slug == "" {
		slug = "gift-" + strconv.FormatUint(uint64(rand.Uint32()), 36)
	}
	return slug
}

func (s *Service) ListByUser(userID string, q pagination.Query) ([]models.GiftSiteModel, response.Pagination, error) {
	tx := s.db.Model(&models.GiftSiteModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	var sites []models.GiftSiteModel
	pag, err := pagination.Paginate(tx, q, &sites)
	return sites, pag, err
}

func (s *Service) GetByID(id string) (*models.GiftSiteModel, error) {
	var site models.GiftSiteModel
	if err := s.db.First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (s *Service) Create(userID string, dto *CreateGiftSiteDTO) (*models.GiftSiteModel, error) {
	if !dto.TemplateType.Valid() {
		return nil, fmt.Errorf("unknown template type %q", dto.TemplateType)
	}

	slug := NormalizeSlug(dto.Slug)
	taken, err := s.slugExists(slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	site := models.GiftSiteModel{
		UserID:       userID,
		Slug:         slug,
		TemplateType: dto.TemplateType,
		Content:      dto.Content,
	}
	if dto.IsPublished != nil {
		site.IsPublished = *dto.IsPublished
	}
	if err := s.db.Create(&site).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &site, nil
}

// isDuplicateKey detects a lost slug race against the unique index.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (s *Service) Update(userID, id string, dto *UpdateGiftSiteDTO) (*models.GiftSiteModel, error) {
	site, err := s.GetByID(id)
	if err != nil || site == nil {
		return site, err
	}
	if site.UserID != userID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if dto.Slug != nil {
		slug := NormalizeSlug(*dto.Slug)
		if slug != site.Slug {
			taken, err := s.slugExists(slug, site.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrSlugTaken
			}
			updates["slug"] = slug
		}
	}
	if dto.TemplateType != nil {
		if !dto.TemplateType.Valid() {
			return nil, fmt.Errorf("unknown template type %q", *dto.TemplateType)
		}
		updates["template_type"] = *dto.TemplateType
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
	}

	if len(updates) == 0 {
		return site, nil
	}
	if err := s.db.Model(site).Updates(updates).Error; err != nil {
		return nil, err
	}
	return site, nil
}

func (s *Service) Delete(userID, id string) error {
	site, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if site == nil {
		return nil
	}
	if site.UserID != userID {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GiftResponseModel{}, "gift_site_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GiftSiteModel{}, "id = ?", id).Error
	})
}

func (s *Service) slugExists(slug, excludeID string) (bool, error) {
	tx := s.db.Model(&models.GiftSiteModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/gifts", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	sites, pag, err := h.svc.ListByUser(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, sites, pag)
}

func (h *Handler) get(c *gin.Context) {
	site, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if site == nil {
		response.NotFound(c)
		return
	}
	if site.UserID != middleware.CurrentUserID(c) {
		response.Forbidden(c)
		return
	}
	response.OK(c, site)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateGiftSiteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	site, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, site)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateGiftSiteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	site, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	switch {
	case errors.Is(err, ErrSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(c)
	case err != nil:
		response.InternalError(c, err)
	case site == nil:
		response.NotFound(c)
	default:
		response.OK(c, site)
	}
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if errors.Is(err, ErrNotOwner) {
		response.Forbidden(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
