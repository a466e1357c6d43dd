package resolve

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/modules/dispatch"
	"github.com/giftloom/core/internal/pkg/metrics"
	"github.com/giftloom/core/internal/pkg/response"
)

type viewResponse struct {
	Kind     Kind                        `json:"kind"`
	Slug     string                      `json:"slug"`
	Document interface{}                 `json:"document"`
	Layout   *dispatch.Layout            `json:"layout"`
	Photos   []models.ValentinePhotoModel `json:"photos,omitempty"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/view/:slug", h.view)
}

// view resolves a slug and dispatches it to a layout in one request.
func (h *Handler) view(c *gin.Context) {
	slug := c.Param("slug")

	res, err := h.svc.Resolve(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrEmptySlug) {
			response.BadRequest(c, err.Error())
			return
		}
		metrics.Resolutions.WithLabelValues("error").Inc()
		response.InternalError(c, errors.New("failed to load this gift page, please try again"))
		return
	}

	switch res.Kind {
	case KindGiftSite:
		metrics.Resolutions.WithLabelValues("gift_site").Inc()
		layout, err := dispatch.BuildGiftLayout(res.Gift, nil)
		if err != nil {
			if errors.Is(err, dispatch.ErrUnsupportedTemplate) {
				response.UnprocessableEntity(c, err.Error())
				return
			}
			response.InternalError(c, err)
			return
		}
		metrics.LayoutBuilds.WithLabelValues(string(res.Gift.TemplateType)).Inc()
		response.OK(c, viewResponse{
			Kind:     res.Kind,
			Slug:     res.Gift.Slug,
			Document: res.Gift,
			Layout:   layout,
		})

	case KindValentinePage:
		metrics.Resolutions.WithLabelValues("valentine_page").Inc()
		layout := dispatch.BuildValentineLayout(res.Valentine, res.Photos)
		metrics.LayoutBuilds.WithLabelValues("valentine_page").Inc()
		response.OK(c, viewResponse{
			Kind:     res.Kind,
			Slug:     res.Valentine.Slug,
			Document: res.Valentine,
			Layout:   layout,
			Photos:   res.Photos,
		})

	default:
		metrics.Resolutions.WithLabelValues("not_found").Inc()
		response.NotFoundMsg(c, "this gift page does not exist")
	}
}
