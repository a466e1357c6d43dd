package resolve

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/giftloom/core/internal/models"
)

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(newTestService(store))
	h.RegisterRoutes(r.Group("/"))
	return r
}

func doView(t *testing.T, r *gin.Engine, slug string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/view/"+slug, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestViewGiftSite(t *testing.T) {
	store := &fakeStore{gifts: map[string]*models.GiftSiteModel{}}
	site := giftSite("for-sam")
	store.gifts["for-sam"] = site

	w := doView(t, newTestRouter(store), "for-sam")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Kind   string `json:"kind"`
		Slug   string `json:"slug"`
		Layout struct {
			Template string `json:"template"`
			Sections []struct {
				Kind string `json:"kind"`
			} `json:"sections"`
		} `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "gift_site", body.Kind)
	require.Equal(t, "for-sam", body.Slug)
	require.Equal(t, "valentine_classic", body.Layout.Template)
	require.NotEmpty(t, body.Layout.Sections)
	require.Equal(t, "hero", body.Layout.Sections[0].Kind)
}

func TestViewValentinePageIncludesOrderedPhotos(t *testing.T) {
	store := &fakeStore{
		pages: map[string]*models.ValentinePageModel{"abc123": valentinePage("v1", "abc123")},
		photos: map[string][]models.ValentinePhotoModel{
			"v1": {
				{PhotoURL: "late.jpg", DisplayOrder: 1},
				{PhotoURL: "early.jpg", DisplayOrder: 0},
			},
		},
	}

	w := doView(t, newTestRouter(store), "abc123")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Kind   string `json:"kind"`
		Photos []struct {
			PhotoURL string `json:"photo_url"`
		} `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "valentine_page", body.Kind)
	require.Len(t, body.Photos, 2)
	require.Equal(t, "early.jpg", body.Photos[0].PhotoURL)
}

func TestViewNotFound(t *testing.T) {
	w := doView(t, newTestRouter(&fakeStore{}), "xyz")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "does not exist")
}

func TestViewUnsupportedTemplate(t *testing.T) {
	site := giftSite("bday")
	site.TemplateType = models.TemplateBirthday
	store := &fakeStore{gifts: map[string]*models.GiftSiteModel{"bday": site}}

	w := doView(t, newTestRouter(store), "bday")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "unsupported template")
}

func TestViewTransportFailure(t *testing.T) {
	store := &fakeStore{giftErr: errors.New("connection reset")}

	w := doView(t, newTestRouter(store), "abc123")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "try again")
	require.Zero(t, store.pageCalls)
}
