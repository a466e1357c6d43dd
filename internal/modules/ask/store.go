package ask

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/giftloom/core/internal/models"
	redispkg "github.com/giftloom/core/internal/pkg/redis"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the primary database.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SiteByID(ctx context.Context, id string) (*models.GiftSiteModel, error) {
	var site models.GiftSiteModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *gormStore) InsertResponse(ctx context.Context, rec *models.GiftResponseModel) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ListResponses(ctx context.Context, giftSiteID string) ([]models.GiftResponseModel, error) {
	var recs []models.GiftResponseModel
	err := s.db.WithContext(ctx).
		Where("gift_site_id = ?", giftSiteID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

type redisGuard struct {
	rdb *redispkg.Client
}

// NewRedisGuard returns a Guard that claims viewer keys in redis for
// responseGuardTTL.
func NewRedisGuard(rdb *redispkg.Client) Guard {
	return &redisGuard{rdb: rdb}
}

func (g *redisGuard) Claim(ctx context.Context, key string) (bool, error) {
	return g.rdb.SetNX(ctx, key, "1", responseGuardTTL)
}

func (g *redisGuard) Release(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, key)
}
