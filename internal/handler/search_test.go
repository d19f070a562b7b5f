package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefinder-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStoreSearchService is a mock implementation of the StoreSearchService interface
type MockStoreSearchService struct {
	mock.Mock
}

func (m *MockStoreSearchService) FindNearby(ctx context.Context, criteria models.SearchCriteria) (models.Page[models.NearbyStoreResult], error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(models.Page[models.NearbyStoreResult]), args.Error(1)
}

func (m *MockStoreSearchService) FindNearbyWithProductName(ctx context.Context, criteria models.SearchCriteria, productName string) (models.Page[models.NearbyStoreResult], error) {
	args := m.Called(ctx, criteria, productName)
	return args.Get(0).(models.Page[models.NearbyStoreResult]), args.Error(1)
}

func (m *MockStoreSearchService) FindNearbyWithProductID(ctx context.Context, latitude, longitude, radiusKm float64, productID int64) ([]models.NearbyStoreResult, error) {
	args := m.Called(ctx, latitude, longitude, radiusKm, productID)
	return args.Get(0).([]models.NearbyStoreResult), args.Error(1)
}

func (m *MockStoreSearchService) SearchNearbyFullText(ctx context.Context, query string, latitude, longitude, radiusKm float64) ([]models.NearbyStoreResult, error) {
	args := m.Called(ctx, query, latitude, longitude, radiusKm)
	return args.Get(0).([]models.NearbyStoreResult), args.Error(1)
}

func (m *MockStoreSearchService) FindNearbyFilteredByTags(ctx context.Context, criteria models.SearchCriteria, tagSet []string, matchAll bool) ([]models.NearbyStoreResult, error) {
	args := m.Called(ctx, criteria, tagSet, matchAll)
	return args.Get(0).([]models.NearbyStoreResult), args.Error(1)
}

func performRequest(h gin.HandlerFunc, target string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	h(c)
	return w
}

func sampleResult(id int64, distance float64) models.NearbyStoreResult {
	return models.NearbyStoreResult{
		ID:             id,
		Name:           fmt.Sprintf("Store %d", id),
		IsVerified:     true,
		IsActive:       true,
		DistanceMeters: distance,
	}
}

func TestStoreSearchHandler_FindNearby(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		target         string
		mockPage       models.Page[models.NearbyStoreResult]
		mockError      error
		serviceCalled  bool
		expectedStatus int
	}{
		{
			name:           "missing latitude",
			target:         "/stores/nearby?lon=3.3792&radius_km=5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed radius",
			target:         "/stores/nearby?lat=6.5244&lon=3.3792&radius_km=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative page",
			target:         "/stores/nearby?lat=6.5244&lon=3.3792&radius_km=5&page=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no stores found",
			target:         "/stores/nearby?lat=6.5244&lon=3.3792&radius_km=5",
			mockError:      fmt.Errorf("service: no stores within 5km radius: %w", models.ErrNotFound),
			serviceCalled:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "gateway down",
			target:         "/stores/nearby?lat=6.5244&lon=3.3792&radius_km=5",
			mockError:      fmt.Errorf("service: spatial query failed: %w", models.ErrDependencyFailure),
			serviceCalled:  true,
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:   "successful search",
			target: "/stores/nearby?lat=6.5244&lon=3.3792&radius_km=5&page=1&size=2&sort_by=distance",
			mockPage: models.NewPage([]models.NearbyStoreResult{
				sampleResult(3, 120.5),
				sampleResult(8, 960.1),
			}, 1, 2, 5),
			serviceCalled:  true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockStoreSearchService)
			h := NewStoreSearchHandler(mockSvc)

			if tt.serviceCalled {
				mockSvc.On("FindNearby", mock.Anything, mock.Anything).Return(tt.mockPage, tt.mockError)
			}

			w := performRequest(h.FindNearby, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var page models.Page[models.NearbyStoreResult]
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
				assert.Equal(t, tt.mockPage, page)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestStoreSearchHandler_FindNearby_PassesCriteria(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockStoreSearchService)
	h := NewStoreSearchHandler(mockSvc)

	expected := models.SearchCriteria{
		Point:         models.GeoPoint{Latitude: 6.5244, Longitude: 3.3792},
		RadiusKm:      5,
		Page:          2,
		Size:          15,
		SortBy:        "name",
		SortDirection: "desc",
	}
	mockSvc.On("FindNearby", mock.Anything, expected).
		Return(models.NewPage([]models.NearbyStoreResult{sampleResult(1, 10)}, 2, 15, 31), nil)

	w := performRequest(h.FindNearby,
		"/stores/nearby?lat=6.5244&lon=3.3792&radius_km=5&page=2&size=15&sort_by=name&sort_dir=desc", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestStoreSearchHandler_FindNearbyWithProductName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockStoreSearchService)
	h := NewStoreSearchHandler(mockSvc)

	mockSvc.On("FindNearbyWithProductName", mock.Anything, mock.Anything, "bread").
		Return(models.Page[models.NearbyStoreResult]{}, fmt.Errorf("service: no product named \"bread\": %w", models.ErrNotFound))

	w := performRequest(h.FindNearbyWithProductName,
		"/stores/nearby/product?name=bread&lat=6.5244&lon=3.3792&radius_km=5", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body gin.H
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "bread")
	mockSvc.AssertExpectations(t)
}

func TestStoreSearchHandler_FindNearbyWithProductID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		idParam        string
		target         string
		serviceCalled  bool
		expectedStatus int
	}{
		{
			name:           "non-numeric product id",
			idParam:        "abc",
			target:         "/stores/nearby/product/abc?lat=6.5244&lon=3.3792&radius_km=5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "successful search",
			idParam:        "4",
			target:         "/stores/nearby/product/4?lat=6.5244&lon=3.3792&radius_km=5",
			serviceCalled:  true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockStoreSearchService)
			h := NewStoreSearchHandler(mockSvc)

			if tt.serviceCalled {
				mockSvc.On("FindNearbyWithProductID", mock.Anything, 6.5244, 3.3792, 5.0, int64(4)).
					Return([]models.NearbyStoreResult{sampleResult(2, 95.1)}, nil)
			}

			w := performRequest(h.FindNearbyWithProductID, tt.target,
				gin.Params{{Key: "id", Value: tt.idParam}})

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestStoreSearchHandler_SearchNearbyFullText(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockStoreSearchService)
	h := NewStoreSearchHandler(mockSvc)

	results := []models.NearbyStoreResult{sampleResult(5, 1210.4)}
	mockSvc.On("SearchNearbyFullText", mock.Anything, "fresh pastries", 6.5244, 3.3792, 5.0).
		Return(results, nil)

	w := performRequest(h.SearchNearbyFullText,
		"/stores/search?q=fresh+pastries&lat=6.5244&lon=3.3792&radius_km=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []models.NearbyStoreResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, results, body)
	mockSvc.AssertExpectations(t)
}

func TestStoreSearchHandler_FindNearbyFilteredByTags(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockStoreSearchService)
	h := NewStoreSearchHandler(mockSvc)

	mockSvc.On("FindNearbyFilteredByTags", mock.Anything, mock.Anything, []string{"electronics", "toys"}, true).
		Return([]models.NearbyStoreResult{sampleResult(3, 410.0)}, nil)

	w := performRequest(h.FindNearbyFilteredByTags,
		"/stores/nearby/tags?tags=electronics,toys&match_all=true&lat=6.5244&lon=3.3792&radius_km=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
