package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefinder-api/internal/metrics"
	"storefinder-api/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// StoreSearchService is the orchestrator interface the handler depends on.
type StoreSearchService interface {
	FindNearby(ctx context.Context, criteria models.SearchCriteria) (models.Page[models.NearbyStoreResult], error)
	FindNearbyWithProductName(ctx context.Context, criteria models.SearchCriteria, productName string) (models.Page[models.NearbyStoreResult], error)
	FindNearbyWithProductID(ctx context.Context, latitude, longitude, radiusKm float64, productID int64) ([]models.NearbyStoreResult, error)
	SearchNearbyFullText(ctx context.Context, query string, latitude, longitude, radiusKm float64) ([]models.NearbyStoreResult, error)
	FindNearbyFilteredByTags(ctx context.Context, criteria models.SearchCriteria, tagSet []string, matchAll bool) ([]models.NearbyStoreResult, error)
}

// StoreSearchHandler exposes the nearby-store search operations over HTTP.
type StoreSearchHandler struct {
	service StoreSearchService
}

// NewStoreSearchHandler creates a new store search handler.
func NewStoreSearchHandler(svc StoreSearchService) *StoreSearchHandler {
	return &StoreSearchHandler{service: svc}
}

func parseCriteria(c *gin.Context) (models.SearchCriteria, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'lat' parameter"})
		return models.SearchCriteria{}, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'lon' parameter"})
		return models.SearchCriteria{}, false
	}
	radiusKm, err := strconv.ParseFloat(c.Query("radius_km"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'radius_km' parameter"})
		return models.SearchCriteria{}, false
	}

	page := 0
	if v := c.Query("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'page' parameter"})
			return models.SearchCriteria{}, false
		}
	}
	size := defaultPageSize
	if v := c.Query("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size < 1 || size > maxPageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'size' parameter"})
			return models.SearchCriteria{}, false
		}
	}

	return models.SearchCriteria{
		Point:         models.GeoPoint{Latitude: lat, Longitude: lon},
		RadiusKm:      radiusKm,
		Page:          page,
		Size:          size,
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_dir"),
	}, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		metrics.EmptyResultsTotal.Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDependencyFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream dependency failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// FindNearby handles GET /stores/nearby requests
//
//	@Summary	Find stores near a point
//	@Produce	json
//	@Param		lat			query	number	true	"Latitude"
//	@Param		lon			query	number	true	"Longitude"
//	@Param		radius_km	query	number	true	"Search radius in kilometers"
//	@Param		page		query	integer	false	"Zero-based page index"
//	@Param		size		query	integer	false	"Page size"
//	@Param		sort_by		query	string	false	"Sort field (distance, name, city)"
//	@Param		sort_dir	query	string	false	"Sort direction (asc, desc)"
//	@Success	200	{object}	models.Page[models.NearbyStoreResult]
//	@Router		/stores/nearby [get]
func (h *StoreSearchHandler) FindNearby(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	page, err := h.service.FindNearby(c.Request.Context(), criteria)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindNearbyWithProductName handles GET /stores/nearby/product requests
//
//	@Summary	Find nearby stores stocking a product by name
//	@Produce	json
//	@Param		name		query	string	true	"Product name (min 3 characters)"
//	@Param		lat			query	number	true	"Latitude"
//	@Param		lon			query	number	true	"Longitude"
//	@Param		radius_km	query	number	true	"Search radius in kilometers"
//	@Success	200	{object}	models.Page[models.NearbyStoreResult]
//	@Router		/stores/nearby/product [get]
func (h *StoreSearchHandler) FindNearbyWithProductName(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	page, err := h.service.FindNearbyWithProductName(c.Request.Context(), criteria, c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindNearbyWithProductID handles GET /stores/nearby/product/:id requests
//
//	@Summary	Find nearby stores stocking an exact product
//	@Produce	json
//	@Param		id			path	integer	true	"Product id"
//	@Param		lat			query	number	true	"Latitude"
//	@Param		lon			query	number	true	"Longitude"
//	@Param		radius_km	query	number	true	"Search radius in kilometers"
//	@Success	200	{array}	models.NearbyStoreResult
//	@Router		/stores/nearby/product/{id} [get]
func (h *StoreSearchHandler) FindNearbyWithProductID(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	results, err := h.service.FindNearbyWithProductID(c.Request.Context(),
		criteria.Point.Latitude, criteria.Point.Longitude, criteria.RadiusKm, productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// SearchNearbyFullText handles GET /stores/search requests
//
//	@Summary	Free-text search over nearby stores
//	@Produce	json
//	@Param		q			query	string	true	"Free-text query"
//	@Param		lat			query	number	true	"Latitude"
//	@Param		lon			query	number	true	"Longitude"
//	@Param		radius_km	query	number	true	"Search radius in kilometers"
//	@Success	200	{array}	models.NearbyStoreResult
//	@Router		/stores/search [get]
func (h *StoreSearchHandler) SearchNearbyFullText(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	results, err := h.service.SearchNearbyFullText(c.Request.Context(), c.Query("q"),
		criteria.Point.Latitude, criteria.Point.Longitude, criteria.RadiusKm)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// FindNearbyFilteredByTags handles GET /stores/nearby/tags requests
//
//	@Summary	Find nearby stores filtered by tags
//	@Produce	json
//	@Param		tags		query	string	true	"Comma-separated tag list"
//	@Param		match_all	query	boolean	false	"Require every tag instead of any"
//	@Param		lat			query	number	true	"Latitude"
//	@Param		lon			query	number	true	"Longitude"
//	@Param		radius_km	query	number	true	"Search radius in kilometers"
//	@Success	200	{array}	models.NearbyStoreResult
//	@Router		/stores/nearby/tags [get]
func (h *StoreSearchHandler) FindNearbyFilteredByTags(c *gin.Context) {
	criteria, ok := parseCriteria(c)
	if !ok {
		return
	}

	var tagSet []string
	if raw := c.Query("tags"); raw != "" {
		tagSet = strings.Split(raw, ",")
	}
	matchAll := strings.EqualFold(c.Query("match_all"), "true")

	results, err := h.service.FindNearbyFilteredByTags(c.Request.Context(), criteria, tagSet, matchAll)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
