// Package card is the authoring and viewing surface for story-style
// gift cards, which are addressed by id rather than slug.
package card

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/giftloom/core/internal/middleware"
	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/modules/dispatch"
	"github.com/giftloom/core/internal/pkg/pagination"
	"github.com/giftloom/core/internal/pkg/response"
)

var ErrNotOwner = errors.New("not the owner of this card")

type CreateCardDTO struct {
	TemplateID models.CardTemplateType `json:"template_id" binding:"required"`
	Content    models.CardContent      `json:"content"`
}

type UpdateCardDTO struct {
	TemplateID *models.CardTemplateType `json:"template_id"`
	Content    *models.CardContent      `json:"content"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListByUser(userID string, q pagination.Query) ([]models.GiftCardModel, response.Pagination, error) {
	tx := s.db.Model(&models.GiftCardModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	var cards []models.GiftCardModel
	pag, err := pagination.Paginate(tx, q, &cards)
	return cards, pag, err
}

func (s *Service) GetByID(id string) (*models.GiftCardModel, error) {
	var card models.GiftCardModel
	if err := s.db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (s *Service) Create(userID string, dto *CreateCardDTO) (*models.GiftCardModel, error) {
	if !dto.TemplateID.Valid() {
		return nil, fmt.Errorf("unknown card template %q", dto.TemplateID)
	}
	card := models.GiftCardModel{
		UserID:     userID,
		TemplateID: dto.TemplateID,
		Content:    dto.Content,
	}
	return &card, s.db.Create(&card).Error
}

func (s *Service) Update(userID, id string, dto *UpdateCardDTO) (*models.GiftCardModel, error) {
	card, err := s.GetByID(id)
	if err != nil || card == nil {
		return card, err
	}
	if card.UserID != userID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if dto.TemplateID != nil {
		if !dto.TemplateID.Valid() {
			return nil, fmt.Errorf("unknown card template %q", *dto.TemplateID)
		}
		updates["template_id"] = *dto.TemplateID
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}

	if len(updates) == 0 {
		return card, nil
	}
	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) Delete(userID, id string) error {
	card, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if card == nil {
		return nil
	}
	if card.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Delete(&models.GiftCardModel{}, "id = ?", id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Cards are shared by opaque id, so viewing is public.
	rg.GET("/cards/:id/view", h.view)

	g := rg.Group("/cards", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) view(c *gin.Context) {
	card, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if card == nil {
		response.NotFound(c)
		return
	}
	layout, err := dispatch.BuildCardLayout(card)
	if err != nil {
		if errors.Is(err, dispatch.ErrUnsupportedTemplate) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"document": card, "layout": layout})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	cards, pag, err := h.svc.ListByUser(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, cards, pag)
}

func (h *Handler) get(c *gin.Context) {
	card, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if card == nil {
		response.NotFound(c)
		return
	}
	if card.UserID != middleware.CurrentUserID(c) {
		response.Forbidden(c)
		return
	}
	response.OK(c, card)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	card, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, card)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	card, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	switch {
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(c)
	case err != nil:
		response.BadRequest(c, err.Error())
	case card == nil:
		response.NotFound(c)
	default:
		response.OK(c, card)
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
