package service

import (
	"storefinder-api/internal/models"
)

// MapCandidate converts a raw gateway row into the caller-facing result
// shape. IsVerified and IsActive are set true unconditionally: every query
// already filters on is_active, so a row reaching this point is active by
// construction.
func MapCandidate(c models.StoreCandidate) models.NearbyStoreResult {
	return models.NearbyStoreResult{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		Description:    c.Description,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		IsVerified:     true,
		IsActive:       true,
		DistanceMeters: c.DistanceMeters,
		Tags:           c.Tags,
	}
}

func mapCandidates(candidates []models.StoreCandidate) []models.NearbyStoreResult {
	results := make([]models.NearbyStoreResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, MapCandidate(c))
	}
	return results
}

// mapPage maps a page of candidates, copying the gateway's paging metadata
// through verbatim.
func mapPage(p models.Page[models.StoreCandidate]) models.Page[models.NearbyStoreResult] {
	return models.Page[models.NearbyStoreResult]{
		Content:       mapCandidates(p.Content),
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		IsLast:        p.IsLast,
	}
}
