package models

// GeoPoint is an immutable pair of WGS84 coordinates.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS84 coordinate ranges.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Address holds the decomposed postal address of a store.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// StoreCandidate is a raw row returned by the spatial gateway, carrying the
// precomputed geodesic distance to the query point. It lives only for the
// duration of the request that produced it.
type StoreCandidate struct {
	ID             int64
	Name           string
	Description    string
	IsActive       bool
	Address        Address
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
	Tags           []string
}

// NearbyStoreResult is the caller-facing shape of a single search hit.
type NearbyStoreResult struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Address        Address  `json:"address"`
	Description    string   `json:"description"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	IsVerified     bool     `json:"is_verified"`
	IsActive       bool     `json:"is_active"`
	DistanceMeters float64  `json:"distance_meters"`
	Tags           []string `json:"tags"`
}

// SearchCriteria carries one nearby-search request. Built once per request
// from caller input and never mutated afterwards.
type SearchCriteria struct {
	Point         GeoPoint
	RadiusKm      float64
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}
