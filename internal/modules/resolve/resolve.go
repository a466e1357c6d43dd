// Package resolve maps a requested slug to a single content document.
// Gift sites are consulted first, legacy valentine pages second; the
// lookup order doubles as the precedence rule when a slug exists in
// both tables.
package resolve

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/giftloom/core/internal/models"
)

// ErrEmptySlug marks resolution attempted without a slug. This is a
// caller bug, not a not-found.
var ErrEmptySlug = errors.New("slug must not be empty")

// Kind tags which source a slug resolved to.
type Kind string

const (
	KindGiftSite      Kind = "gift_site"
	KindValentinePage Kind = "valentine_page"
	KindNotFound      Kind = "not_found"
)

// Resolution is the three-way outcome of a slug lookup. Exactly one of
// Gift/Valentine is set for the found kinds; Photos accompanies
// valentine pages only.
type Resolution struct {
	Kind      Kind
	Gift      *models.GiftSiteModel
	Valentine *models.ValentinePageModel
	Photos    []models.ValentinePhotoModel
}

// Store is the read surface the resolver needs. Lookups return
// (nil, nil) when no row matches; a non-nil error means the store
// could not answer, which is distinct from not-found.
type Store interface {
	GiftSiteBySlug(ctx context.Context, slug string) (*models.GiftSiteModel, error)
	ValentinePageBySlug(ctx context.Context, slug string) (*models.ValentinePageModel, error)
	PhotosByValentineID(ctx context.Context, valentineID string) ([]models.ValentinePhotoModel, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Resolve looks up slug across both sources in order. A store failure
// on the gift-site lookup aborts resolution; it is never treated as
// permission to try the legacy table, because that would let a
// transient outage silently serve the wrong document.
func (s *Service) Resolve(ctx context.Context, slug string) (*Resolution, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	gift, err := s.store.GiftSiteBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("gift site lookup failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if gift != nil {
		return &Resolution{Kind: KindGiftSite, Gift: gift}, nil
	}

	page, err := s.store.ValentinePageBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("valentine page lookup failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if page == nil {
		return &Resolution{Kind: KindNotFound}, nil
	}

	photos, err := s.store.PhotosByValentineID(ctx, page.ID)
	if err != nil {
		s.logger.Error("photo lookup failed", zap.String("valentine_id", page.ID), zap.Error(err))
		return nil, err
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].DisplayOrder < photos[j].DisplayOrder
	})

	return &Resolution{Kind: KindValentinePage, Valentine: page, Photos: photos}, nil
}
