package model

// Assignment records the officer chosen for one site.
type Assignment struct {
	RequestID       string     `json:"request_id"`
	CustomerName    string     `json:"customer_name,omitempty"`
	OfficerID       string     `json:"assigned_officer_id"`
	OfficerName     string     `json:"assigned_officer_name,omitempty"`
	SiteLat         float64    `json:"site_lat"`
	SiteLon         float64    `json:"site_lon"`
	Score           float64    `json:"score"`
	OfficerLocation Coordinate `json:"officer_location"` // before the move
	DistanceKM      float64    `json:"distance_km"`
	OfficerZone     string     `json:"officer_zone,omitempty"`
	ZoneRelation    string     `json:"zone_relation,omitempty"`
}

// SiteLocation returns the assigned site's coordinate.
func (a Assignment) SiteLocation() Coordinate {
	return Coordinate{Lat: a.SiteLat, Lon: a.SiteLon}
}
