package resolve

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/giftloom/core/internal/models"
)

type gormStore struct{ db *gorm.DB }

// NewStore returns the MySQL-backed Store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) GiftSiteBySlug(ctx context.Context, slug string) (*models.GiftSiteModel, error) {
	var site models.GiftSiteModel
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (s *gormStore) ValentinePageBySlug(ctx context.Context, slug string) (*models.ValentinePageModel, error) {
	var page models.ValentinePageModel
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (s *gormStore) PhotosByValentineID(ctx context.Context, valentineID string) ([]models.ValentinePhotoModel, error) {
	var photos []models.ValentinePhotoModel
	err := s.db.WithContext(ctx).
		Where("valentine_id = ?", valentineID).
		Order("display_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
