// Package model defines the records that flow through field allocation:
// officers, sites, zones, assignments and persisted runs.
package model

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the coordinate is finite and within range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return eris.Errorf("coordinate (%v, %v) is not finite", c.Lat, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return eris.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return eris.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// String formats the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
