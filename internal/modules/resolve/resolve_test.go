package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/giftloom/core/internal/models"
)

// fakeStore counts calls so tests can assert which sources were
// actually consulted.
type fakeStore struct {
	gifts  map[string]*models.GiftSiteModel
	pages  map[string]*models.ValentinePageModel
	photos map[string][]models.ValentinePhotoModel

	giftErr  error
	pageErr  error
	photoErr error

	giftCalls  int
	pageCalls  int
	photoCalls int
}

func (f *fakeStore) GiftSiteBySlug(_ context.Context, slug string) (*models.GiftSiteModel, error) {
	f.giftCalls++
	if f.giftErr != nil {
		return nil, f.giftErr
	}
	return f.gifts[slug], nil
}

func (f *fakeStore) ValentinePageBySlug(_ context.Context, slug string) (*models.ValentinePageModel, error) {
	f.pageCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.pages[slug], nil
}

func (f *fakeStore) PhotosByValentineID(_ context.Context, valentineID string) ([]models.ValentinePhotoModel, error) {
	f.photoCalls++
	if f.photoErr != nil {
		return nil, f.photoErr
	}
	return f.photos[valentineID], nil
}

func newTestService(store Store) *Service {
	return NewService(store, zap.NewNop())
}

func giftSite(slug string) *models.GiftSiteModel {
	return &models.GiftSiteModel{
		Slug:         slug,
		TemplateType: models.TemplateValentineClassic,
	}
}

func valentinePage(id, slug string) *models.ValentinePageModel {
	p := &models.ValentinePageModel{Slug: slug, RecipientName: "Sam"}
	p.ID = id
	return p
}

func TestResolveEmptySlugIsPreconditionFailure(t *testing.T) {
	store := &fakeStore{}
	_, err := newTestService(store).Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptySlug)
	require.Zero(t, store.giftCalls)
	require.Zero(t, store.pageCalls)
}

func TestResolveGiftSiteSkipsLegacyLookup(t *testing.T) {
	store := &fakeStore{gifts: map[string]*models.GiftSiteModel{"for-sam": giftSite("for-sam")}}

	res, err := newTestService(store).Resolve(context.Background(), "for-sam")
	require.NoError(t, err)
	require.Equal(t, KindGiftSite, res.Kind)
	require.NotNil(t, res.Gift)
	require.Equal(t, 1, store.giftCalls)
	require.Zero(t, store.pageCalls, "legacy source must not be consulted on a gift-site hit")
	require.Zero(t, store.photoCalls)
}

func TestResolvePrefersGiftSiteOnSlugCollision(t *testing.T) {
	store := &fakeStore{
		gifts: map[string]*models.GiftSiteModel{"shared": giftSite("shared")},
		pages: map[string]*models.ValentinePageModel{"shared": valentinePage("v1", "shared")},
	}

	res, err := newTestService(store).Resolve(context.Background(), "shared")
	require.NoError(t, err)
	require.Equal(t, KindGiftSite, res.Kind)
	require.Zero(t, store.pageCalls)
}

func TestResolveFallsBackToValentinePage(t *testing.T) {
	store := &fakeStore{
		pages: map[string]*models.ValentinePageModel{"abc123": valentinePage("v1", "abc123")},
		photos: map[string][]models.ValentinePhotoModel{
			"v1": {
				{PhotoURL: "late.jpg", DisplayOrder: 1},
				{PhotoURL: "early.jpg", DisplayOrder: 0},
			},
		},
	}

	res, err := newTestService(store).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, KindValentinePage, res.Kind)
	require.Equal(t, "Sam", res.Valentine.RecipientName)
	require.Equal(t, 1, store.giftCalls)
	require.Equal(t, 1, store.pageCalls)
	require.Equal(t, 1, store.photoCalls)

	require.Len(t, res.Photos, 2)
	require.Equal(t, "early.jpg", res.Photos[0].PhotoURL)
	require.Equal(t, "late.jpg", res.Photos[1].PhotoURL)
}

func TestResolvePhotoSortIsStable(t *testing.T) {
	store := &fakeStore{
		pages: map[string]*models.ValentinePageModel{"abc123": valentinePage("v1", "abc123")},
		photos: map[string][]models.ValentinePhotoModel{
			"v1": {
				{PhotoURL: "first.jpg", DisplayOrder: 3},
				{PhotoURL: "second.jpg", DisplayOrder: 3},
				{PhotoURL: "third.jpg", DisplayOrder: 1},
			},
		},
	}

	res, err := newTestService(store).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, "third.jpg", res.Photos[0].PhotoURL)
	require.Equal(t, "first.jpg", res.Photos[1].PhotoURL)
	require.Equal(t, "second.jpg", res.Photos[2].PhotoURL)
}

func TestResolveNotFoundInEitherSource(t *testing.T) {
	store := &fakeStore{}

	res, err := newTestService(store).Resolve(context.Background(), "xyz")
	require.NoError(t, err)
	require.Equal(t, KindNotFound, res.Kind)
	require.Nil(t, res.Gift)
	require.Nil(t, res.Valentine)
	require.Zero(t, store.photoCalls, "no photo lookup on not-found")
}

func TestResolveGiftLookupFailureDoesNotFallThrough(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{
		giftErr: boom,
		pages:   map[string]*models.ValentinePageModel{"abc123": valentinePage("v1", "abc123")},
	}

	_, err := newTestService(store).Resolve(context.Background(), "abc123")
	require.ErrorIs(t, err, boom)
	require.Zero(t, store.pageCalls, "a transport failure must not be treated as not-found")
}

func TestResolvePhotoLookupFailurePropagates(t *testing.T) {
	boom := errors.New("timeout")
	store := &fakeStore{
		pages:    map[string]*models.ValentinePageModel{"abc123": valentinePage("v1", "abc123")},
		photoErr: boom,
	}

	_, err := newTestService(store).Resolve(context.Background(), "abc123")
	require.ErrorIs(t, err, boom)
}

func TestResolveIsIdempotent(t *testing.T) {
	store := &fakeStore{gifts: map[string]*models.GiftSiteModel{"for-sam": giftSite("for-sam")}}
	svc := newTestService(store)

	first, err := svc.Resolve(context.Background(), "for-sam")
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), "for-sam")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
