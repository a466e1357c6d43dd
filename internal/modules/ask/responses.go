package ask

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/giftloom/core/internal/middleware"
	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/pkg/metrics"
	"github.com/giftloom/core/internal/pkg/response"
)

var (
	ErrSiteNotFound     = errors.New("gift site not found")
	ErrAlreadyResponded = errors.New("a response was already recorded for this viewer")
	ErrUnknownKind      = errors.New("unknown response kind")
)

const responseGuardTTL = 24 * time.Hour

// Store is the persistence surface for ask responses. SiteByID returns
// (nil, nil) when no site matches.
type Store interface {
	SiteByID(ctx context.Context, id string) (*models.GiftSiteModel, error)
	InsertResponse(ctx context.Context, rec *models.GiftResponseModel) error
	ListResponses(ctx context.Context, giftSiteID string) ([]models.GiftResponseModel, error)
}

// Guard keeps one response per viewer per site. Claim reports whether
// the key was newly taken; Release hands a claim back after a failed
// write so the viewer can retry.
type Guard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Service persists visitor responses for valentine_ask sites.
type Service struct {
	store  Store
	guard  Guard
	logger *zap.Logger
}

func NewService(store Store, guard Guard, logger *zap.Logger) *Service {
	return &Service{store: store, guard: guard, logger: logger}
}

// Insert writes a single response row. It is the flow's ResponseWriter.
func (s *Service) Insert(ctx context.Context, giftSiteID string, kind models.ResponseKind, message, date *string) error {
	rec := models.GiftResponseModel{
		GiftSiteID:   giftSiteID,
		Kind:         kind,
		Message:      message,
		SelectedDate: date,
	}
	if err := s.store.InsertResponse(ctx, &rec); err != nil {
		return err
	}
	metrics.Responses.WithLabelValues(string(kind)).Inc()
	return nil
}

// Record validates the request, runs it through the ask flow and
// persists the outcome. viewerKey (client IP) keeps repeat submissions
// from the same viewer out for a day; an unavailable guard never
// blocks the write, and a failed write gives the claim back so the
// viewer's retry is not rejected.
func (s *Service) Record(ctx context.Context, giftSiteID string, kind models.ResponseKind, message, date, viewerKey string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	site, err := s.store.SiteByID(ctx, giftSiteID)
	if err != nil {
		return err
	}
	if site == nil {
		return ErrSiteNotFound
	}

	var guardKey string
	if s.guard != nil && viewerKey != "" {
		key := fmt.Sprintf("gl:response:%s:%s", giftSiteID, viewerKey)
		ok, err := s.guard.Claim(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("response guard unavailable", zap.Error(err))
		case !ok:
			return ErrAlreadyResponded
		default:
			guardKey = key
		}
	}

	if err := s.runFlow(ctx, giftSiteID, kind, message, date); err != nil {
		if guardKey != "" {
			if rerr := s.guard.Release(ctx, guardKey); rerr != nil {
				s.logger.Warn("response guard release failed", zap.String("key", guardKey), zap.Error(rerr))
			}
		}
		return err
	}
	return nil
}

func (s *Service) runFlow(ctx context.Context, giftSiteID string, kind models.ResponseKind, message, date string) error {
	flow := NewFlow(giftSiteID, s)
	if err := flow.Select(ctx, kind); err != nil {
		return err
	}
	if flow.State() != StateAnswering {
		return nil // no path, already submitted
	}
	if message != "" {
		if err := flow.SetMessage(message); err != nil {
			return err
		}
	}
	if date != "" {
		if err := flow.SetDate(date); err != nil {
			return err
		}
	}
	return flow.Submit(ctx)
}

// List returns all responses for a site, newest first.
func (s *Service) List(ctx context.Context, giftSiteID string) ([]models.GiftResponseModel, error) {
	return s.store.ListResponses(ctx, giftSiteID)
}

// SiteOwner returns the owning user id of a site, or ErrSiteNotFound.
func (s *Service) SiteOwner(ctx context.Context, giftSiteID string) (string, error) {
	site, err := s.store.SiteByID(ctx, giftSiteID)
	if err != nil {
		return "", err
	}
	if site == nil {
		return "", ErrSiteNotFound
	}
	return site.UserID, nil
}

type recordResponseDTO struct {
	Kind         models.ResponseKind `json:"response_type" binding:"required"`
	Message      string              `json:"message"`
	SelectedDate string              `json:"selected_date"`
}

type evadeDTO struct {
	Container Bounds `json:"container" binding:"required"`
	Pointer   Point  `json:"pointer"`
}

type Handler struct {
	svc *Service

	// rng is shared across requests and rand.Rand is not
	// concurrency-safe, so evade serializes access through mu.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc: svc,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/gifts/:id/responses", h.record)
	rg.GET("/gifts/:id/responses", authMW, h.list)
	rg.POST("/ask/evade", h.evade)
}

func (h *Handler) record(c *gin.Context) {
	var dto recordResponseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.svc.Record(c.Request.Context(), c.Param("id"), dto.Kind, dto.Message, dto.SelectedDate, c.ClientIP())
	switch {
	case err == nil:
		response.Created(c, gin.H{"recorded": true})
	case errors.Is(err, ErrUnknownKind):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrSiteNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrAlreadyResponded):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) list(c *gin.Context) {
	siteID := c.Param("id")

	owner, err := h.svc.SiteOwner(c.Request.Context(), siteID)
	if err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if owner != middleware.CurrentUserID(c) {
		response.Forbidden(c)
		return
	}

	recs, err := h.svc.List(c.Request.Context(), siteID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, recs)
}

func (h *Handler) evade(c *gin.Context) {
	var dto evadeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.mu.Lock()
	pos := NextEvadePosition(h.rng, dto.Container, dto.Pointer)
	h.mu.Unlock()

	response.OK(c, pos)
}
